// Package config loads the behavioral settings of a floorplanning run.
//
// Settings are read from TOML:
//
//	layers = 2
//	seed = 42
//	power_aware_assignment = true
//	floorplacement = false
//	enhanced_soft_block_shaping = true
//	enhanced_hard_block_rotation = true
//	alignment = true
//
//	[packing]
//	enabled = true
//	iterations = 2
//
//	[perturb]
//	steps = 1000
//	guided_fraction = 0.5
//
// Missing keys keep their [Default] values. The CLI overrides individual
// keys with flags after loading.
package config

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/corblivar/pkg/errors"
	"github.com/matzehuels/corblivar/pkg/neighborhood"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultLayers is the number of dies.
	DefaultLayers = 2

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultPackingIterations is the number of alternating compaction passes.
	DefaultPackingIterations = 1

	// DefaultSteps is the number of operator steps of a perturb run.
	DefaultSteps = 1000

	// DefaultGuidedFraction is the share of perturb steps run in the
	// alignment-guided phase.
	DefaultGuidedFraction = 0.5

	// MaxLayers bounds the die count.
	MaxLayers = 16
)

// =============================================================================
// Settings
// =============================================================================

// Settings is the opaque settings record of a run.
type Settings struct {
	Layers int    `toml:"layers"`
	Seed   uint64 `toml:"seed"`

	PowerAwareAssignment      bool `toml:"power_aware_assignment"`
	Floorplacement            bool `toml:"floorplacement"`
	EnhancedSoftBlockShaping  bool `toml:"enhanced_soft_block_shaping"`
	EnhancedHardBlockRotation bool `toml:"enhanced_hard_block_rotation"`
	Alignment                 bool `toml:"alignment"`

	Packing Packing `toml:"packing"`
	Perturb Perturb `toml:"perturb"`
}

// Packing configures post-decode compaction.
type Packing struct {
	Enabled    bool `toml:"enabled"`
	Iterations int  `toml:"iterations"`
}

// Perturb configures the random walk of the perturb command.
type Perturb struct {
	Steps          int     `toml:"steps"`
	GuidedFraction float64 `toml:"guided_fraction"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Layers:    DefaultLayers,
		Seed:      DefaultSeed,
		Alignment: true,
		Packing: Packing{
			Enabled:    true,
			Iterations: DefaultPackingIterations,
		},
		Perturb: Perturb{
			Steps:          DefaultSteps,
			GuidedFraction: DefaultGuidedFraction,
		},
	}
}

// Load reads settings from a TOML file on top of [Default].
func Load(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open config %s", path)
		}
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads settings from r on top of [Default] and validates them.
// Unknown keys are rejected.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Encode writes s as TOML.
func (s Settings) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Layers < 1 || s.Layers > MaxLayers {
		return errors.New(errors.ErrCodeInvalidConfig, "layers must be in [1, %d], got %d", MaxLayers, s.Layers)
	}
	if s.Packing.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "packing.iterations must not be negative")
	}
	if s.Perturb.Steps < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "perturb.steps must not be negative")
	}
	if s.Perturb.GuidedFraction < 0 || s.Perturb.GuidedFraction > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "perturb.guided_fraction must be in [0, 1]")
	}
	return nil
}

// Policy returns the operator switches of s.
func (s Settings) Policy() neighborhood.Policy {
	return neighborhood.Policy{
		PowerAwareAssignment:      s.PowerAwareAssignment,
		Floorplacement:            s.Floorplacement,
		EnhancedSoftBlockShaping:  s.EnhancedSoftBlockShaping,
		EnhancedHardBlockRotation: s.EnhancedHardBlockRotation,
		Alignment:                 s.Alignment,
	}
}
