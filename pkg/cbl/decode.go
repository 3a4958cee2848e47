package cbl

import (
	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

// Decode places every block of the die. Placed flags of the die's blocks
// are cleared first; blocks placed out of band during the pass are kept.
func (d *Die) Decode() {
	for _, t := range d.tuples {
		d.reg.Get(t.Block).Placed = false
	}
	d.Reset()
	for !d.done {
		d.PlaceCurrentBlock()
	}
}

// PlaceCurrentBlock places the block at the decode cursor and advances the
// cursor. It returns nil and marks the die done when the CBL is empty. A
// block that is already placed is returned unchanged.
func (d *Die) PlaceCurrentBlock() *block.Block {
	if d.pi >= len(d.tuples) {
		d.done = true
		return nil
	}

	t := d.tuples[d.pi]
	cur := d.reg.Get(t.Block)
	if !cur.Placed {
		if t.Dir == Horizontal {
			d.placeHorizontal(cur, t.Juncts)
		} else {
			d.placeVertical(cur, t.Juncts)
		}
		cur.Placed = true
	}

	d.pi++
	if d.pi >= len(d.tuples) {
		d.done = true
	}
	return cur
}

// placeHorizontal covers up to juncts+1 fronts of Hi from the right.
func (d *Die) placeHorizontal(cur *block.Block, juncts int) {
	popped := pop(&d.hi, max(juncts, 0)+1)

	var y float64
	if len(d.hi) > 0 {
		y = d.reg.Get(popped[0]).Bounds.Bottom
		for _, h := range popped[1:] {
			y = min(y, d.reg.Get(h).Bounds.Bottom)
		}
	}
	cur.Bounds = cur.Bounds.MoveTo(0, y)

	var x float64
	for _, h := range popped {
		if r := d.reg.Get(h).Bounds; cur.Bounds.IntersectsVertical(r) {
			x = max(x, r.Right)
		}
	}
	cur.Bounds = cur.Bounds.MoveTo(x, y)

	if !anyRect(d.reg, popped, func(r geometry.Rect) bool { return cur.Bounds.Below(r, false) }) {
		d.vi = append(d.vi, cur.Handle)
	}

	// cur goes below the remaining fronts, which are re-pushed in reverse
	// pop order so the former top stays on top.
	d.hi = append(d.hi, cur.Handle)
	for i := len(popped) - 1; i >= 0; i-- {
		if !d.reg.Get(popped[i]).Bounds.LeftOf(cur.Bounds, true) {
			d.hi = append(d.hi, popped[i])
		}
	}
}

// placeVertical covers up to juncts+1 fronts of Vi from above.
func (d *Die) placeVertical(cur *block.Block, juncts int) {
	popped := pop(&d.vi, max(juncts, 0)+1)

	var x float64
	if len(d.vi) > 0 {
		x = d.reg.Get(popped[0]).Bounds.Left
		for _, h := range popped[1:] {
			x = min(x, d.reg.Get(h).Bounds.Left)
		}
	}
	cur.Bounds = cur.Bounds.MoveTo(x, 0)

	var y float64
	for _, h := range popped {
		if r := d.reg.Get(h).Bounds; cur.Bounds.IntersectsHorizontal(r) {
			y = max(y, r.Top)
		}
	}
	cur.Bounds = cur.Bounds.MoveTo(x, y)

	if !anyRect(d.reg, popped, func(r geometry.Rect) bool { return cur.Bounds.LeftOf(r, false) }) {
		d.hi = append(d.hi, cur.Handle)
	}

	d.vi = append(d.vi, cur.Handle)
	for i := len(popped) - 1; i >= 0; i-- {
		if !d.reg.Get(popped[i]).Bounds.Below(cur.Bounds, true) {
			d.vi = append(d.vi, popped[i])
		}
	}
}

// pop removes up to n handles from the top of stack, top first.
func pop(stack *[]block.Handle, n int) []block.Handle {
	s := *stack
	n = min(n, len(s))
	out := make([]block.Handle, n)
	for i := range n {
		out[i] = s[len(s)-1-i]
	}
	*stack = s[:len(s)-n]
	return out
}

func anyRect(reg *block.Registry, hs []block.Handle, pred func(geometry.Rect) bool) bool {
	for _, h := range hs {
		if pred(reg.Get(h).Bounds) {
			return true
		}
	}
	return false
}
