package cbl

import (
	"slices"

	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

// Die holds the CBL of one layer together with its decode state.
type Die struct {
	Layer int

	reg    *block.Registry
	tuples []Tuple
	backup []Tuple
	best   []Tuple

	// decode state
	pi     int
	done   bool
	hi, vi []block.Handle
}

// NewDie returns an empty die for layer whose tuples refer to blocks in reg.
func NewDie(layer int, reg *block.Registry) *Die {
	return &Die{Layer: layer, reg: reg, done: true}
}

// Len returns the number of tuples.
func (d *Die) Len() int { return len(d.tuples) }

// Empty reports whether the die holds no tuples.
func (d *Die) Empty() bool { return len(d.tuples) == 0 }

// Tuple returns the tuple at i.
func (d *Die) Tuple(i int) Tuple { return d.tuples[i] }

// Tuples returns the live sequence. Callers must not modify it.
func (d *Die) Tuples() []Tuple { return d.tuples }

// Block returns the block referenced by the tuple at i.
func (d *Die) Block(i int) *block.Block { return d.reg.Get(d.tuples[i].Block) }

// Blocks returns the blocks of the die in CBL order.
func (d *Die) Blocks() []*block.Block {
	out := make([]*block.Block, len(d.tuples))
	for i, t := range d.tuples {
		out[i] = d.reg.Get(t.Block)
	}
	return out
}

// IndexOf returns the position of h's tuple, or -1.
func (d *Die) IndexOf(h block.Handle) int {
	return slices.IndexFunc(d.tuples, func(t Tuple) bool { return t.Block == h })
}

// Append adds t at the end of the sequence and moves its block onto this die.
func (d *Die) Append(t Tuple) {
	d.reg.Get(t.Block).Layer = d.Layer
	d.tuples = append(d.tuples, t)
}

// Insert places t at position i, shifting later tuples back.
func (d *Die) Insert(i int, t Tuple) {
	d.tuples = slices.Insert(d.tuples, i, t)
}

// Remove deletes and returns the tuple at i.
func (d *Die) Remove(i int) Tuple {
	t := d.tuples[i]
	d.tuples = slices.Delete(d.tuples, i, i+1)
	return t
}

// SetBlock replaces the block reference of the tuple at i.
func (d *Die) SetBlock(i int, h block.Handle) { d.tuples[i].Block = h }

// SetDirection sets the insertion direction of the tuple at i.
func (d *Die) SetDirection(i int, dir Direction) { d.tuples[i].Dir = dir }

// SetJuncts sets the junction count of the tuple at i, clamped at 0.
func (d *Die) SetJuncts(i, n int) { d.tuples[i].Juncts = max(n, 0) }

// SetTuples replaces the whole sequence and moves all its blocks onto this die.
func (d *Die) SetTuples(ts []Tuple) {
	d.tuples = slices.Clone(ts)
	d.syncLayers()
}

// Done reports whether the last decode pass consumed every tuple.
func (d *Die) Done() bool { return d.done }

// CurrentBlock returns the block at the decode cursor, or nil when done.
func (d *Die) CurrentBlock() *block.Block {
	if d.pi >= len(d.tuples) {
		return nil
	}
	return d.reg.Get(d.tuples[d.pi].Block)
}

// Reset rewinds the decode cursor and clears both stacks.
func (d *Die) Reset() {
	d.pi = 0
	d.done = len(d.tuples) == 0
	d.hi = d.hi[:0]
	d.vi = d.vi[:0]
}

// Outline returns the bounding box of all blocks on the die.
func (d *Die) Outline() geometry.Rect {
	rects := make([]geometry.Rect, len(d.tuples))
	for i, t := range d.tuples {
		rects[i] = d.reg.Get(t.Block).Bounds
	}
	return geometry.BoundingBox(rects...)
}

// Backup snapshots the sequence and every block's rectangle.
func (d *Die) Backup() {
	d.backup = slices.Clone(d.tuples)
	for _, t := range d.tuples {
		b := d.reg.Get(t.Block)
		b.Backup = b.Bounds
	}
}

// Restore rolls the sequence and block rectangles back to the last Backup.
func (d *Die) Restore() {
	d.tuples = slices.Clone(d.backup)
	for _, t := range d.tuples {
		b := d.reg.Get(t.Block)
		b.Bounds = b.Backup
	}
	d.syncLayers()
}

// StoreBest snapshots the sequence and rectangles as the best known solution.
func (d *Die) StoreBest() {
	d.best = slices.Clone(d.tuples)
	for _, t := range d.tuples {
		b := d.reg.Get(t.Block)
		b.Best = b.Bounds
	}
}

// HasBest reports whether the best snapshot holds any tuple.
func (d *Die) HasBest() bool { return len(d.best) > 0 }

// ApplyBest replaces the live sequence and rectangles with the best
// snapshot. An empty snapshot leaves the die empty.
func (d *Die) ApplyBest() {
	d.tuples = slices.Clone(d.best)
	for _, t := range d.tuples {
		b := d.reg.Get(t.Block)
		b.Bounds = b.Best
	}
	d.syncLayers()
}

func (d *Die) syncLayers() {
	for _, t := range d.tuples {
		d.reg.Get(t.Block).Layer = d.Layer
	}
}
