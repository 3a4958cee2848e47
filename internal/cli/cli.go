package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/corblivar/pkg/buildinfo"
	"github.com/matzehuels/corblivar/pkg/cache"
	"github.com/matzehuels/corblivar/pkg/config"
	"github.com/matzehuels/corblivar/pkg/errors"
	"github.com/matzehuels/corblivar/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "corblivar"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Corblivar places blocks on stacked dies using corner block lists",
		Long: `Corblivar is a 3D floorplanning engine. Every die holds a corner block list
(CBL) that a stack-sweep decoder turns into block positions; a set of
reversible neighborhood operators perturbs the lists.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			installLogHooks(c.Logger)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.perturbCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func newRunner(noCache bool, logger *log.Logger) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/corblivar/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the output path without extension. An empty output
// strips the extension from input; an output ending in a known format
// extension loses it.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// parseFormats parses a comma-separated format list.
func parseFormats(s string, fallback ...string) []string {
	if s == "" {
		return fallback
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Shared Run Flags
// =============================================================================

// runFlags are the flags shared by layout, decode and perturb.
type runFlags struct {
	config  string
	output  string
	formats string
	noCache bool
	refresh bool

	layers         int
	seed           uint64
	powerAware     bool
	floorplacement bool
	softShaping    bool
	hardRotation   bool
	alignment      bool
	packing        int

	scale          float64
	showLabels     bool
	showAlignments bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "TOML settings file")
	fl.StringVarP(&f.output, "output", "o", "", "output base path (default: <benchmark> without extension)")
	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): json (default), svg, dot, cbl, pdf, png (comma-separated)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results")

	fl.IntVarP(&f.layers, "layers", "l", d.Layers, "number of dies")
	fl.Uint64Var(&f.seed, "seed", d.Seed, "random seed")
	fl.BoolVar(&f.powerAware, "power-aware", d.PowerAwareAssignment, "keep denser blocks on higher dies")
	fl.BoolVar(&f.floorplacement, "floorplacement", d.Floorplacement, "keep floorplacement blocks on die 0")
	fl.BoolVar(&f.softShaping, "soft-shaping", d.EnhancedSoftBlockShaping, "shape soft blocks towards neighbor fronts")
	fl.BoolVar(&f.hardRotation, "hard-rotation", d.EnhancedHardBlockRotation, "rotate hard blocks only when it pays")
	fl.BoolVar(&f.alignment, "alignment", d.Alignment, "evaluate alignment requests")
	fl.IntVar(&f.packing, "packing", d.Packing.Iterations, "compaction iterations (0 disables)")

	fl.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "pixels per layout unit (0 fits 600px)")
	fl.BoolVar(&f.showLabels, "labels", true, "draw block IDs")
	fl.BoolVar(&f.showAlignments, "alignments", true, "draw alignment requests")
}

// settings loads the config file, if any, and applies explicitly set flags
// on top.
func (f *runFlags) settings(cmd *cobra.Command) (config.Settings, error) {
	s := config.Default()
	if f.config != "" {
		var err error
		if s, err = config.Load(f.config); err != nil {
			return config.Settings{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("layers") {
		s.Layers = f.layers
	}
	if changed("seed") {
		s.Seed = f.seed
	}
	if changed("power-aware") {
		s.PowerAwareAssignment = f.powerAware
	}
	if changed("floorplacement") {
		s.Floorplacement = f.floorplacement
	}
	if changed("soft-shaping") {
		s.EnhancedSoftBlockShaping = f.softShaping
	}
	if changed("hard-rotation") {
		s.EnhancedHardBlockRotation = f.hardRotation
	}
	if changed("alignment") {
		s.Alignment = f.alignment
	}
	if changed("packing") {
		s.Packing.Iterations = f.packing
		s.Packing.Enabled = f.packing > 0
	}
	return s, s.Validate()
}

// options builds pipeline options for the benchmark at input.
func (f *runFlags) options(cmd *cobra.Command, input string) (pipeline.Options, error) {
	s, err := f.settings(cmd)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Benchmark:      input,
		Settings:       s,
		Formats:        parseFormats(f.formats, pipeline.FormatJSON),
		Scale:          f.scale,
		ShowLabels:     f.showLabels,
		ShowAlignments: f.showAlignments,
		Refresh:        f.refresh,
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return pipeline.Options{}, err
	}
	if err := validateOutput(f.output); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// validateOutput rejects unsafe -o paths. An empty output falls back to the
// input path and is accepted.
func validateOutput(output string) error {
	if output == "" {
		return nil
	}
	return errors.ValidatePath(output)
}

// =============================================================================
// Output
// =============================================================================

// writeArtifacts writes every artifact to base.<format> in the order of
// formats and prints the paths.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := fmt.Sprintf("%s.%s", base, format)
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		printFile(path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
