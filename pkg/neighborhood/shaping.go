package neighborhood

import (
	"math"

	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

// rotationPays estimates whether rotating a hard block shrinks the die. A
// wide block is compared against the blocks sharing its bottom edge (its
// row), a tall or square block against those sharing its left edge (its
// column). Rotation trades the block's long side for its short one; it pays
// when the row or column is already taller or wider than the rotated block
// would be, or when the gain exceeds the overhang it creates.
func (s *Set) rotationPays(die int, b *block.Block) bool {
	w, h := b.Width(), b.Height()
	var gain, loss float64
	if w > h {
		rowH := h
		for _, o := range s.core.Die(die).Blocks() {
			if math.Abs(o.Bounds.Bottom-b.Bounds.Bottom) < geometry.Epsilon {
				rowH = max(rowH, o.Height())
			}
		}
		gain, loss = w-h, w-rowH
	} else {
		colW := w
		for _, o := range s.core.Die(die).Blocks() {
			if math.Abs(o.Bounds.Left-b.Bounds.Left) < geometry.Epsilon {
				colW = max(colW, o.Width())
			}
		}
		gain, loss = h-w, h-colW
	}
	return loss < 0 || gain > loss
}

type shapeMode int

const (
	stretchHorizontal shapeMode = iota
	shrinkHorizontal
	stretchVertical
	shrinkVertical
	randomAspectRatio
)

// shapeEnhanced moves the right or top edge of a soft block onto the nearest
// front of another block on the same die, keeping the area, or draws a new
// aspect ratio. The mode is drawn at random; it fails when no front
// qualifies or the aspect ratio leaves the block's bounds.
func (s *Set) shapeEnhanced(die int, b *block.Block) bool {
	return s.shapeTo(die, b, shapeMode(s.rng.IntN(5)))
}

// shapeTo applies one shaping mode. Stretching snaps the edge to the
// nearest right (top) front beyond it; shrinking snaps it to the nearest
// left (bottom) front of another block starting inside the soft block.
func (s *Set) shapeTo(die int, b *block.Block, mode shapeMode) bool {
	if !b.Soft {
		return false
	}
	if mode == randomAspectRatio {
		return b.ShapeRandomlyByAR(s.rng)
	}
	r := b.Bounds
	area := r.Area()

	horizontal := mode == stretchHorizontal || mode == shrinkHorizontal
	edge, lo := r.Right, r.Left
	if !horizontal {
		edge, lo = r.Top, r.Bottom
	}
	stretch := mode == stretchHorizontal || mode == stretchVertical

	front := math.NaN()
	for _, o := range s.core.Die(die).Blocks() {
		if o.Handle == b.Handle {
			continue
		}
		var f float64
		switch {
		case horizontal && stretch:
			f = o.Bounds.Right
		case horizontal:
			f = o.Bounds.Left
		case stretch:
			f = o.Bounds.Top
		default:
			f = o.Bounds.Bottom
		}
		switch {
		case stretch && f > edge+geometry.Epsilon:
			if math.IsNaN(front) || f < front {
				front = f
			}
		case !stretch && f > lo+geometry.Epsilon && f < edge-geometry.Epsilon:
			if math.IsNaN(front) || f > front {
				front = f
			}
		}
	}
	if math.IsNaN(front) {
		return false
	}

	ext := front - lo
	if horizontal {
		return b.ShapeByWidthHeight(ext, area/ext)
	}
	return b.ShapeByWidthHeight(area/ext, ext)
}
