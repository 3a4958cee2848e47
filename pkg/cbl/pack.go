package cbl

import (
	"cmp"
	"slices"

	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

// axis projects rectangles so one sweep serves both compaction directions:
// lo/hi are along the compaction direction, olo/ohi orthogonal to it.
type axis struct {
	lo, hi   func(geometry.Rect) float64
	olo, ohi func(geometry.Rect) float64
	move     func(geometry.Rect, float64) geometry.Rect
}

var (
	horizontalAxis = axis{
		lo:   func(r geometry.Rect) float64 { return r.Left },
		hi:   func(r geometry.Rect) float64 { return r.Right },
		olo:  func(r geometry.Rect) float64 { return r.Bottom },
		ohi:  func(r geometry.Rect) float64 { return r.Top },
		move: geometry.Rect.MoveX,
	}
	verticalAxis = axis{
		lo:   func(r geometry.Rect) float64 { return r.Bottom },
		hi:   func(r geometry.Rect) float64 { return r.Top },
		olo:  func(r geometry.Rect) float64 { return r.Left },
		ohi:  func(r geometry.Rect) float64 { return r.Right },
		move: geometry.Rect.MoveY,
	}
)

// PerformPacking slides every block towards the origin along dir until it
// abuts the blocks preceding it. The CBL is left untouched.
func (d *Die) PerformPacking(dir Direction) {
	if len(d.tuples) < 2 {
		return
	}
	ax := horizontalAxis
	if dir == Vertical {
		ax = verticalAxis
	}

	blocks := d.Blocks()
	slices.SortStableFunc(blocks, func(a, b *block.Block) int {
		ra, rb := a.Bounds, b.Bounds
		if c := cmp.Compare(ax.lo(ra), ax.lo(rb)); c != 0 {
			return c
		}
		if c := cmp.Compare(ax.hi(ra)-ax.lo(ra), ax.hi(rb)-ax.lo(rb)); c != 0 {
			return c
		}
		return cmp.Compare(ax.olo(ra), ax.olo(rb))
	})

	for i, cur := range blocks {
		if ax.lo(cur.Bounds) <= geometry.Epsilon {
			continue
		}
		extent := ax.ohi(cur.Bounds) - ax.olo(cur.Bounds)

		var front float64
		var cov coverage
		for j := i - 1; j >= 0; j-- {
			prev := blocks[j].Bounds
			if ax.hi(prev) > ax.lo(cur.Bounds)+geometry.Epsilon {
				continue
			}
			lo := max(ax.olo(prev), ax.olo(cur.Bounds))
			hi := min(ax.ohi(prev), ax.ohi(cur.Bounds))
			if hi-lo <= geometry.Epsilon {
				continue
			}
			front = max(front, ax.hi(prev))
			if cov.add(lo, hi) >= extent-geometry.Epsilon {
				break
			}
		}

		if front < ax.lo(cur.Bounds) {
			cur.Bounds = ax.move(cur.Bounds, front)
		}
	}
}

// coverage tracks the union length of a set of intervals.
type coverage struct {
	spans [][2]float64
}

// add merges [lo, hi] into the set and returns the covered length.
func (c *coverage) add(lo, hi float64) float64 {
	c.spans = append(c.spans, [2]float64{lo, hi})
	slices.SortFunc(c.spans, func(a, b [2]float64) int { return cmp.Compare(a[0], b[0]) })

	merged := c.spans[:1]
	for _, s := range c.spans[1:] {
		last := &merged[len(merged)-1]
		if s[0] <= last[1] {
			last[1] = max(last[1], s[1])
			continue
		}
		merged = append(merged, s)
	}
	c.spans = merged

	var total float64
	for _, s := range c.spans {
		total += s[1] - s[0]
	}
	return total
}
