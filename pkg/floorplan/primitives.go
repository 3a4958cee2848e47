package floorplan

import (
	"github.com/matzehuels/corblivar/pkg/errors"
)

// ErrNoBest reports a failed ApplyBestCBLs. It is informational.
var ErrNoBest error = errors.New(errors.ErrCodeNoBest, "no best solution stored")

// SwapBlocks exchanges the block references of two tuples, possibly across
// dies. Directions and junctions stay with their positions.
func (c *Core) SwapBlocks(die1, die2, idx1, idx2 int) {
	d1, d2 := c.dies[die1], c.dies[die2]
	b1, b2 := d1.Block(idx1), d2.Block(idx2)

	b1.Layer, b2.Layer = d2.Layer, d1.Layer

	h1, h2 := b1.Handle, b2.Handle
	d1.SetBlock(idx1, h2)
	d2.SetBlock(idx2, h1)
}

// MoveTuples removes the tuple at (die1, idx1) and inserts it before idx2 in
// die2. The insertion happens first, so on the same die the erase index
// shifts by one when idx2 <= idx1.
func (c *Core) MoveTuples(die1, die2, idx1, idx2 int) {
	d1, d2 := c.dies[die1], c.dies[die2]
	t := d1.Tuple(idx1)

	d2.Insert(idx2, t)
	if die1 == die2 && idx2 <= idx1 {
		d1.Remove(idx1 + 1)
	} else {
		d1.Remove(idx1)
	}

	if die1 != die2 {
		c.reg.Get(t.Block).Layer = d2.Layer
	}
}

// MovedIndex returns where MoveTuples(die, die, idx1, idx2) leaves the tuple.
func MovedIndex(idx1, idx2 int) int {
	if idx2 <= idx1 {
		return idx2
	}
	return idx2 - 1
}

// SwitchInsertionDirection flips the direction of the tuple at idx.
func (c *Core) SwitchInsertionDirection(die, idx int) {
	d := c.dies[die]
	d.SetDirection(idx, d.Tuple(idx).Dir.Flip())
}

// SwitchTupleJunctions sets the junction count of the tuple at idx,
// clamped at 0.
func (c *Core) SwitchTupleJunctions(die, idx, juncts int) {
	c.dies[die].SetJuncts(idx, juncts)
}

// SwapAlignmentCoordinates exchanges the x and y specialization of the
// request at idx.
func (c *Core) SwapAlignmentCoordinates(idx int) {
	c.requests[idx].SwapCoordinates()
}

// BackupCBLs snapshots tuple order and block rectangles of all dies.
func (c *Core) BackupCBLs() {
	for _, d := range c.dies {
		d.Backup()
	}
}

// RestoreCBLs rolls all dies back to the last BackupCBLs.
func (c *Core) RestoreCBLs() {
	for _, d := range c.dies {
		d.Restore()
	}
}

// StoreBestCBLs snapshots all dies as the best solution.
func (c *Core) StoreBestCBLs() {
	for _, d := range c.dies {
		d.StoreBest()
	}
}

// ApplyBestCBLs restores the best snapshot. It fails without any change
// when no die holds a best snapshot; dies whose snapshot is empty end up
// empty.
func (c *Core) ApplyBestCBLs() bool {
	found := false
	for _, d := range c.dies {
		found = found || d.HasBest()
	}
	if !found {
		return false
	}
	for _, d := range c.dies {
		d.ApplyBest()
	}
	return true
}
