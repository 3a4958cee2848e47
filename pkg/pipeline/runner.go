package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/corblivar/pkg/cache"
	"github.com/matzehuels/corblivar/pkg/errors"
	"github.com/matzehuels/corblivar/pkg/floorplan"
	fpio "github.com/matzehuels/corblivar/pkg/io"
	"github.com/matzehuels/corblivar/pkg/neighborhood"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state; one Runner may serve several runs
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer selects the DefaultKeyer, a nil
// cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs solve, layout and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(opts.Benchmark)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open benchmark %s", opts.Benchmark)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read benchmark %s", opts.Benchmark)
	}
	bench, err := fpio.ReadBenchmark(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if bench.Name == "" {
		base := filepath.Base(opts.Benchmark)
		bench.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	result := &Result{
		Name:          bench.Name,
		BenchmarkHash: cache.Hash(raw),
		Artifacts:     make(map[string][]byte),
	}
	r.Logger.Debug("loaded benchmark",
		"name", bench.Name,
		"blocks", bench.Registry.Len(),
		"alignments", len(bench.Requests))

	// Stage 1: Solve
	solveStart := time.Now()
	core := NewCore(bench, opts.Settings)
	hit, err := r.Solve(ctx, core, result, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Stats.SolveTime = time.Since(solveStart)
	result.CacheInfo.SolutionHit = hit

	r.Logger.Info("solved floorplan",
		"cached", hit,
		"steps", result.Stats.Steps,
		"improved", result.Stats.Improved,
		"duration", result.Stats.SolveTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	if !Decode(core, opts.Settings) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "benchmark has no blocks")
	}
	result.Layout = fpio.FromCore(bench.Name, core)
	score := Evaluate(core, opts.Settings.Alignment)
	result.Stats.Blocks = core.TupleCount()
	result.Stats.Layers = core.Layers()
	result.Stats.Outline = score.Outline
	result.Stats.Unfulfilled = score.Unfulfilled
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"blocks", result.Stats.Blocks,
		"outline", fmt.Sprintf("%.2f", score.Outline),
		"unfulfilled", score.Unfulfilled,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	text, err := CBLText(core)
	if err != nil {
		return nil, err
	}
	result.SolutionHash = cache.Hash(text)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Layout, text, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Solve installs CBLs on core: from the cache, a checkpoint, or a random
// initial layout optionally refined by a perturbation walk. It reports
// whether the solution came from the cache.
func (r *Runner) Solve(ctx context.Context, core *floorplan.Core, result *Result, opts Options) (bool, error) {
	key := r.Keyer.SolutionKey(result.BenchmarkHash, opts.SolutionKeyOpts())

	if opts.Cacheable() {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if err := ApplyCBLText(core, data); err == nil {
				return true, nil
			}
			r.Logger.Warn("discarding unreadable cached solution", "key", key)
		}
	}

	rng := NewRand(opts.Settings.Seed)
	if opts.Checkpoint != "" {
		if err := LoadCheckpoint(core, opts.Checkpoint); err != nil {
			return false, err
		}
		r.Logger.Debug("resumed from checkpoint", "path", opts.Checkpoint)
	} else {
		core.InitCBLs(rng)
	}

	if opts.Perturb && opts.Settings.Perturb.Steps > 0 {
		set := neighborhood.New(core, opts.Settings.Policy(), rng)
		ws, err := Walk(ctx, set, opts.Settings)
		result.Stats.Steps = ws.Steps
		result.Stats.Applied = ws.Applied
		result.Stats.Improved = ws.Improved
		if err != nil {
			return false, err
		}
	}

	if opts.Checkpoint == "" {
		if text, err := CBLText(core); err == nil {
			if err := r.Cache.Set(ctx, key, text, cache.TTLSolution); err != nil {
				r.Logger.Debug("cache write failed", "err", err)
			}
		}
	}
	return false, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
