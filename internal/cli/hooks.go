package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/corblivar/pkg/observability"
)

// logHooks forwards library events to the logger at debug level. Nothing
// is formatted unless debug logging is on.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) enabled() bool {
	return h.logger.GetLevel() <= log.DebugLevel
}

func (h logHooks) OnDecode(layer, blocks int, d time.Duration) {
	if h.enabled() {
		h.logger.Debug("decoded die", "layer", layer, "blocks", blocks, "duration", d)
	}
}

func (h logHooks) OnPacking(layer int, dir string) {
	if h.enabled() {
		h.logger.Debug("packed die", "layer", layer, "dir", dir)
	}
}

func (h logHooks) OnAlignment(requestID int, fulfilled bool) {}

func (h logHooks) OnOperation(op string, guided, applied bool) {}

func (h logHooks) OnRevert(op string) {}

func (h logHooks) OnBest(stored, ok bool) {
	if h.enabled() && !stored {
		h.logger.Debug("applied best solution", "ok", ok)
	}
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	if h.enabled() {
		h.logger.Debug("cache hit", "type", keyType)
	}
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	if h.enabled() {
		h.logger.Debug("cache miss", "type", keyType)
	}
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	if h.enabled() {
		h.logger.Debug("cache write", "type", keyType, "bytes", size)
	}
}

// installLogHooks registers logHooks for every hook kind.
func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetLayoutHooks(h)
	observability.SetOperatorHooks(h)
	observability.SetCacheHooks(h)
}

// teeHooks fans events out to two hook sets, used when perturb exports
// Prometheus metrics while logging.
type teeHooks struct {
	a, b interface {
		observability.LayoutHooks
		observability.OperatorHooks
	}
}

func (t teeHooks) OnDecode(layer, blocks int, d time.Duration) {
	t.a.OnDecode(layer, blocks, d)
	t.b.OnDecode(layer, blocks, d)
}

func (t teeHooks) OnPacking(layer int, dir string) {
	t.a.OnPacking(layer, dir)
	t.b.OnPacking(layer, dir)
}

func (t teeHooks) OnAlignment(requestID int, fulfilled bool) {
	t.a.OnAlignment(requestID, fulfilled)
	t.b.OnAlignment(requestID, fulfilled)
}

func (t teeHooks) OnOperation(op string, guided, applied bool) {
	t.a.OnOperation(op, guided, applied)
	t.b.OnOperation(op, guided, applied)
}

func (t teeHooks) OnRevert(op string) {
	t.a.OnRevert(op)
	t.b.OnRevert(op)
}

func (t teeHooks) OnBest(stored, ok bool) {
	t.a.OnBest(stored, ok)
	t.b.OnBest(stored, ok)
}

var (
	_ observability.LayoutHooks   = logHooks{}
	_ observability.OperatorHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
	_ observability.OperatorHooks = teeHooks{}
)
