package floorplan

import (
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/matzehuels/corblivar/pkg/alignment"
	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/cbl"
	"github.com/matzehuels/corblivar/pkg/errors"
	"github.com/matzehuels/corblivar/pkg/geometry"
	"github.com/matzehuels/corblivar/pkg/observability"
)

// Core owns the dies of a floorplan. Die i holds layer i.
type Core struct {
	reg        *block.Registry
	dies       []*cbl.Die
	requests   []*alignment.Request
	eval       alignment.Evaluator
	hooks      observability.LayoutHooks
	powerAware bool
}

// Option configures a Core.
type Option func(*Core)

// WithEvaluator sets the evaluator used by GenerateLayout for alignment
// requests. The default is [alignment.GeometricEvaluator].
func WithEvaluator(e alignment.Evaluator) Option {
	return func(c *Core) {
		if e != nil {
			c.eval = e
		}
	}
}

// WithLayoutHooks injects layout hooks. The default is the globally
// registered [observability.Layout].
func WithLayoutHooks(h observability.LayoutHooks) Option {
	return func(c *Core) {
		if h != nil {
			c.hooks = h
		}
	}
}

// WithPowerAwareAssignment makes InitCBLs layer blocks by power density.
func WithPowerAwareAssignment(on bool) Option {
	return func(c *Core) { c.powerAware = on }
}

// New returns a core with layers empty dies over reg.
func New(reg *block.Registry, layers int, opts ...Option) *Core {
	c := &Core{
		reg:   reg,
		dies:  make([]*cbl.Die, max(layers, 1)),
		eval:  alignment.GeometricEvaluator{},
		hooks: observability.Layout(),
	}
	for i := range c.dies {
		c.dies[i] = cbl.NewDie(i, reg)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the block registry.
func (c *Core) Registry() *block.Registry { return c.reg }

// Layers returns the number of dies.
func (c *Core) Layers() int { return len(c.dies) }

// Dies returns all dies in layer order.
func (c *Core) Dies() []*cbl.Die { return c.dies }

// Die returns the die of layer i.
func (c *Core) Die(i int) *cbl.Die { return c.dies[i] }

// Requests returns the alignment requests.
func (c *Core) Requests() []*alignment.Request { return c.requests }

// Request returns the alignment request at i.
func (c *Core) Request(i int) *alignment.Request { return c.requests[i] }

// AddRequest registers an alignment request. Its ID is set to its index.
func (c *Core) AddRequest(r alignment.Request) *alignment.Request {
	r.ID = len(c.requests)
	c.requests = append(c.requests, &r)
	return c.requests[r.ID]
}

// TupleCount returns the number of tuples over all dies.
func (c *Core) TupleCount() int {
	n := 0
	for _, d := range c.dies {
		n += d.Len()
	}
	return n
}

// Outline returns the bounding box over all dies.
func (c *Core) Outline() geometry.Rect {
	rects := make([]geometry.Rect, 0, len(c.dies))
	for _, d := range c.dies {
		if !d.Empty() {
			rects = append(rects, d.Outline())
		}
	}
	return geometry.BoundingBox(rects...)
}

// InitCBLs builds a random initial layout: every registered block gets one
// tuple with a random direction and no junctions. Blocks go to random dies,
// or with power-aware assignment to dies in ascending power-density chunks
// so that denser blocks sit on higher layers.
func (c *Core) InitCBLs(rng *rand.Rand) {
	for _, d := range c.dies {
		d.SetTuples(nil)
	}

	blocks := slices.Clone(c.reg.All())
	rng.Shuffle(len(blocks), func(i, j int) { blocks[i], blocks[j] = blocks[j], blocks[i] })

	if c.powerAware {
		slices.SortStableFunc(blocks, func(a, b *block.Block) int {
			switch {
			case a.PowerDensity < b.PowerDensity:
				return -1
			case a.PowerDensity > b.PowerDensity:
				return 1
			}
			return 0
		})
	}

	chunk := (len(blocks) + len(c.dies) - 1) / len(c.dies)
	for i, b := range blocks {
		layer := rng.IntN(len(c.dies))
		if c.powerAware {
			layer = min(i/max(chunk, 1), len(c.dies)-1)
		}
		dir := cbl.Horizontal
		if rng.IntN(2) == 1 {
			dir = cbl.Vertical
		}
		c.dies[layer].Append(cbl.Tuple{Block: b.Handle, Dir: dir})
	}

	// Shuffle within dies so power-aware chunks do not decode in density order.
	for _, d := range c.dies {
		ts := slices.Clone(d.Tuples())
		rng.Shuffle(len(ts), func(i, j int) { ts[i], ts[j] = ts[j], ts[i] })
		d.SetTuples(ts)
	}
}

// SetCBLs replaces all sequences, e.g. from [cbl.ReadText]. Every registered
// block must appear exactly once.
func (c *Core) SetCBLs(seqs [][]cbl.Tuple) error {
	if len(seqs) > len(c.dies) {
		return errors.New(errors.ErrCodeInvalidCBL, "%d dies given, core has %d layers", len(seqs), len(c.dies))
	}
	seen := make(map[block.Handle]bool, c.reg.Len())
	for _, seq := range seqs {
		for _, t := range seq {
			if seen[t.Block] {
				return errors.New(errors.ErrCodeInvalidCBL, "block %s listed twice", c.reg.Get(t.Block).ID)
			}
			seen[t.Block] = true
		}
	}
	if len(seen) != c.reg.Len() {
		return errors.New(errors.ErrCodeInvalidCBL, "%d of %d blocks listed", len(seen), c.reg.Len())
	}
	for i, d := range c.dies {
		var seq []cbl.Tuple
		if i < len(seqs) {
			seq = seqs[i]
		}
		d.SetTuples(seq)
	}
	return nil
}

// WriteText writes all dies in the checkpoint text format.
func (c *Core) WriteText(w io.Writer) error {
	return cbl.WriteText(w, c.dies, c.reg)
}

// GenerateLayout decodes every die in layer order. With alignment enabled,
// each request is handed to the evaluator as soon as both of its endpoints
// are placed. It returns false only when no die holds a tuple.
func (c *Core) GenerateLayout(withAlignment bool) bool {
	if c.TupleCount() == 0 {
		return false
	}

	c.reg.ResetPlaced()
	var pending []*alignment.Request
	if withAlignment {
		c.reg.ResetAlignment()
		for _, r := range c.requests {
			r.Fulfilled = false
		}
		pending = slices.Clone(c.requests)
	}

	for _, d := range c.dies {
		start := time.Now()
		d.Reset()
		for !d.Done() {
			if b := d.PlaceCurrentBlock(); b != nil && len(pending) > 0 {
				pending = c.evaluatePlaced(pending, b.Handle)
			}
		}
		c.hooks.OnDecode(d.Layer, d.Len(), time.Since(start))
	}
	return true
}

// evaluatePlaced evaluates the pending requests involving h whose other
// endpoint is placed, and returns the rest.
func (c *Core) evaluatePlaced(pending []*alignment.Request, h block.Handle) []*alignment.Request {
	return slices.DeleteFunc(pending, func(r *alignment.Request) bool {
		if !r.Involves(h) || !c.reg.Get(r.Partner(h)).Placed {
			return false
		}
		c.hooks.OnAlignment(r.ID, c.eval.Evaluate(r, c.reg))
		return true
	})
}

// PerformPacking compacts every die along dir.
func (c *Core) PerformPacking(dir cbl.Direction) {
	for _, d := range c.dies {
		d.PerformPacking(dir)
		c.hooks.OnPacking(d.Layer, dir.String())
	}
}
