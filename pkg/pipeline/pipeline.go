// Package pipeline runs the complete floorplanning flow for the CLI.
//
// The flow has three stages:
//
//  1. Solve: build the multi-die core from a benchmark and obtain CBLs,
//     either randomly, from a checkpoint, or by a perturbation walk
//  2. Layout: decode every die and compact the result
//  3. Render: produce the requested artifacts (JSON, SVG, DOT, CBL, PDF, PNG)
//
// Solutions and artifacts are cached, keyed by the benchmark content and the
// settings that influence the outcome.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Benchmark: "n100.yaml",
//	    Settings:  config.Default(),
//	    Perturb:   true,
//	    Formats:   []string{"svg", "cbl"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/corblivar/pkg/cache"
	"github.com/matzehuels/corblivar/pkg/config"
	"github.com/matzehuels/corblivar/pkg/errors"
	fpio "github.com/matzehuels/corblivar/pkg/io"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale of zero lets the renderer fit the widest die.
	DefaultScale = 0.0

	// DefaultPNGZoom is the resolution factor of PNG output.
	DefaultPNGZoom = 2.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatCBL  = "cbl"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatCBL:  true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Benchmark is the path of the YAML benchmark.
	Benchmark string

	// Checkpoint optionally names a CBL text file to start from instead of
	// a random initial layout.
	Checkpoint string

	// Settings are the behavioral switches of the run.
	Settings config.Settings

	// Perturb runs Settings.Perturb.Steps neighborhood operators and keeps
	// the best solution found.
	Perturb bool

	// Formats lists the artifacts to produce.
	Formats []string

	// Render options
	Scale          float64
	ShowLabels     bool
	ShowAlignments bool

	// Refresh bypasses cached solutions and artifacts.
	Refresh bool

	Logger *log.Logger

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Name is the benchmark name.
	Name string

	// BenchmarkHash identifies the benchmark content.
	BenchmarkHash string

	// SolutionHash identifies the CBLs the layout was decoded from.
	SolutionHash string

	// Layout is the decoded and compacted floorplan.
	Layout fpio.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Blocks      int
	Layers      int
	Steps       int
	Applied     int
	Improved    int
	Outline     float64
	Unfulfilled int
	SolveTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	SolutionHit bool
	RenderHit   bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format %q (must be one of: json, svg, dot, cbl, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it again has no effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Benchmark == "" {
		return errors.New(errors.ErrCodeInvalidInput, "benchmark is required")
	}
	if o.Settings == (config.Settings{}) {
		o.Settings = config.Default()
	}
	if err := o.Settings.Validate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SolutionKeyOpts returns the cache key options of the solve stage.
func (o *Options) SolutionKeyOpts() cache.SolutionKeyOpts {
	s := o.Settings
	k := cache.SolutionKeyOpts{
		Layers:                    s.Layers,
		Seed:                      s.Seed,
		PowerAwareAssignment:      s.PowerAwareAssignment,
		Floorplacement:            s.Floorplacement,
		EnhancedSoftBlockShaping:  s.EnhancedSoftBlockShaping,
		EnhancedHardBlockRotation: s.EnhancedHardBlockRotation,
		Alignment:                 s.Alignment,
		Packing:                   s.Packing.Enabled,
		PackingIterations:         s.Packing.Iterations,
	}
	if o.Perturb {
		k.Steps = s.Perturb.Steps
		k.GuidedFraction = s.Perturb.GuidedFraction
	}
	return k
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:         format,
		Scale:          o.Scale,
		ShowLabels:     o.ShowLabels,
		ShowAlignments: o.ShowAlignments,
	}
}

// Cacheable reports whether the solve stage may use the cache. Runs that
// start from a checkpoint depend on a file outside the key.
func (o *Options) Cacheable() bool {
	return !o.Refresh && o.Checkpoint == ""
}

func (s Stats) String() string {
	return fmt.Sprintf("%d blocks on %d dies, outline %.2f, %d unfulfilled", s.Blocks, s.Layers, s.Outline, s.Unfulfilled)
}
