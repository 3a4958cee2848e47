// Package cache stores floorplanning results between runs.
//
// A solved floorplan is expensive to reproduce: the random walk over the
// neighborhood operators runs thousands of decodes. The pipeline therefore
// caches the best CBL solution keyed by the benchmark content and the
// settings that shaped the walk, and each rendered artifact keyed by the
// solution it was drawn from.
//
// # Implementations
//
//   - [FileCache] keeps entries as JSON files under a directory, used by the CLI
//   - [NullCache] never stores anything, for tests and --no-cache
//
// # Keys
//
// Keys are produced by a [Keyer] so every entry point derives them the same
// way:
//
//	k := cache.NewDefaultKeyer()
//	key := k.SolutionKey(cache.Hash(benchmark), cache.SolutionKeyOpts{Layers: 2, Seed: 42})
package cache

import (
	"context"
	"strings"
	"time"
)

// Default entry lifetimes.
const (
	TTLSolution = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// SolutionKey identifies the best CBLs found for a benchmark.
	SolutionKey(benchmarkHash string, opts SolutionKeyOpts) string

	// ArtifactKey identifies one rendered output of a solution.
	ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string
}

// SolutionKeyOpts lists the settings that change the outcome of a run.
type SolutionKeyOpts struct {
	Layers                    int     `json:"layers"`
	Seed                      uint64  `json:"seed"`
	PowerAwareAssignment      bool    `json:"power_aware_assignment"`
	Floorplacement            bool    `json:"floorplacement"`
	EnhancedSoftBlockShaping  bool    `json:"enhanced_soft_block_shaping"`
	EnhancedHardBlockRotation bool    `json:"enhanced_hard_block_rotation"`
	Alignment                 bool    `json:"alignment"`
	Packing                   bool    `json:"packing"`
	PackingIterations         int     `json:"packing_iterations"`
	Steps                     int     `json:"steps"`
	GuidedFraction            float64 `json:"guided_fraction"`
}

// ArtifactKeyOpts lists the render settings of one artifact.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	Scale          float64 `json:"scale"`
	ShowLabels     bool    `json:"show_labels"`
	ShowAlignments bool    `json:"show_alignments"`
}

// Key prefixes, also reported to cache hooks as the key type.
const (
	prefixSolution = "solution"
	prefixArtifact = "artifact"
)

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) SolutionKey(benchmarkHash string, opts SolutionKeyOpts) string {
	return hashKey(prefixSolution, benchmarkHash, opts)
}

func (DefaultKeyer) ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, solutionHash, opts)
}

// keyType returns the prefix of key, used as a metric label.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
