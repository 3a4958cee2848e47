// Package cli implements the corblivar command-line interface.
//
// The commands cover the life cycle of a floorplan: building a random
// initial layout from a benchmark, decoding a saved CBL checkpoint,
// perturbing a layout with the neighborhood operators, and rendering an
// exported layout. Results are cached under the XDG cache directory.
//
// # Commands
//
//   - layout: random initial CBLs, decoded and compacted
//   - decode: decode a CBL checkpoint against its benchmark
//   - perturb: seeded operator walk keeping the best solution
//   - render: draw a layout JSON as SVG, DOT, PDF or PNG
//   - config: print the default settings as TOML
//   - cache: manage the solution cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports decode, packing and operator events. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a leveled logger writing to w with short wall-clock
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one stage of a command. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

func newProgress(l *log.Logger, stage string) *progress {
	return &progress{logger: l, stage: stage, start: time.Now()}
}

// done logs msg at info level with the stage, the elapsed time rounded to
// the millisecond, and any extra key-value pairs.
func (p *progress) done(msg string, keyvals ...any) {
	kv := append([]any{"stage", p.stage, "elapsed", time.Since(p.start).Round(time.Millisecond)}, keyvals...)
	p.logger.Info(msg, kv...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or the
// package default prefixed with the application name.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default().WithPrefix(appName)
}
