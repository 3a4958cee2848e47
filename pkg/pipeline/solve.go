package pipeline

import (
	"bytes"
	"context"
	"math/rand/v2"
	"os"

	"github.com/matzehuels/corblivar/pkg/cbl"
	"github.com/matzehuels/corblivar/pkg/config"
	"github.com/matzehuels/corblivar/pkg/errors"
	"github.com/matzehuels/corblivar/pkg/floorplan"
	fpio "github.com/matzehuels/corblivar/pkg/io"
	"github.com/matzehuels/corblivar/pkg/neighborhood"
)

// NewCore builds a multi-die core for bench with the alignment requests of
// the benchmark registered.
func NewCore(bench *fpio.Benchmark, s config.Settings) *floorplan.Core {
	c := floorplan.New(bench.Registry, s.Layers, floorplan.WithPowerAwareAssignment(s.PowerAwareAssignment))
	for _, r := range bench.Requests {
		c.AddRequest(r)
	}
	return c
}

// NewRand returns the generator of a run seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// LoadCheckpoint applies CBLs from a text checkpoint to c.
func LoadCheckpoint(c *floorplan.Core, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open checkpoint %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read checkpoint %s", path)
	}
	return ApplyCBLText(c, data)
}

// ApplyCBLText parses checkpoint text and installs it on c.
func ApplyCBLText(c *floorplan.Core, data []byte) error {
	seqs, err := cbl.ReadText(bytes.NewReader(data), c.Registry())
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCBL, err, "parse CBL text")
	}
	return c.SetCBLs(seqs)
}

// CBLText returns the checkpoint text of c.
func CBLText(c *floorplan.Core) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WriteText(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write CBL text")
	}
	return buf.Bytes(), nil
}

// Decode runs the full decode of c followed by the configured compaction
// passes, alternating horizontal and vertical.
func Decode(c *floorplan.Core, s config.Settings) bool {
	if !c.GenerateLayout(s.Alignment) {
		return false
	}
	if s.Packing.Enabled {
		for range s.Packing.Iterations {
			c.PerformPacking(cbl.Horizontal)
			c.PerformPacking(cbl.Vertical)
		}
	}
	return true
}

// Score ranks decoded layouts: fewer unfulfilled alignment requests first,
// then the smaller outline area.
type Score struct {
	Unfulfilled int
	Outline     float64
}

// Less reports whether s is strictly better than o.
func (s Score) Less(o Score) bool {
	if s.Unfulfilled != o.Unfulfilled {
		return s.Unfulfilled < o.Unfulfilled
	}
	return s.Outline < o.Outline
}

// Evaluate scores the current decoded layout of c.
func Evaluate(c *floorplan.Core, withAlignment bool) Score {
	sc := Score{Outline: c.Outline().Area()}
	if withAlignment {
		for _, r := range c.Requests() {
			if !r.Fulfilled {
				sc.Unfulfilled++
			}
		}
	}
	return sc
}

// WalkStats summarizes a perturbation walk.
type WalkStats struct {
	Steps    int
	Applied  int
	Improved int
	Best     Score
}

// Walk performs steps neighborhood operators on the decoded core behind
// set. The first GuidedFraction of the steps run in the guided phase. An
// operator is kept when the layout does not get worse and reverted
// otherwise; every strict improvement is stored as the best solution,
// which is applied at the end. Walk stops early when ctx is done.
func Walk(ctx context.Context, set *neighborhood.Set, s config.Settings) (WalkStats, error) {
	c := set.Core()
	if !Decode(c, s) {
		return WalkStats{}, errors.New(errors.ErrCodeInvalidInput, "benchmark has no blocks")
	}

	current := Evaluate(c, s.Alignment)
	stats := WalkStats{Best: current}
	set.StoreBest()

	guided := int(float64(s.Perturb.Steps) * s.Perturb.GuidedFraction)
	for step := range s.Perturb.Steps {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Steps++

		if !set.PerformRandomLayoutOp(step < guided, false) {
			continue
		}
		stats.Applied++
		Decode(c, s)

		sc := Evaluate(c, s.Alignment)
		if current.Less(sc) {
			set.PerformRandomLayoutOp(false, true)
			Decode(c, s)
			continue
		}
		current = sc
		if sc.Less(stats.Best) {
			stats.Best = sc
			stats.Improved++
			set.StoreBest()
		}
	}

	if !set.ApplyBest() {
		return stats, floorplan.ErrNoBest
	}
	Decode(c, s)
	return stats, nil
}
