package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
	}{
		{log.InfoLevel, false},
		{log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level)
			l.Debug("decoded die", "die", 1)
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("decoded die")))
			l.Info("layout written")
			assert.Contains(t, buf.String(), "layout written")
		})
	}
}

func TestProgressReportsStage(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel), "perturb")
	prog.done("run finished", "blocks", 12)

	out := buf.String()
	assert.Contains(t, out, "run finished")
	assert.Contains(t, out, "stage=perturb")
	assert.Contains(t, out, "elapsed=")
	assert.Contains(t, out, "blocks=12")
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	assert.Same(t, custom, loggerFromContext(withLogger(context.Background(), custom)))

	fallback := loggerFromContext(context.Background())
	require.NotNil(t, fallback)
	assert.Equal(t, appName, fallback.GetPrefix())
}

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", home)
		dir, err := cacheDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, appName), dir)
	})
	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", home)
		dir, err := cacheDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".cache", appName), dir)
	})
}
