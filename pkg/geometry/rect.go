// Package geometry provides the axis-aligned rectangle primitive used by
// blocks, the CBL decoder and the compaction pass.
package geometry

import "math"

// Epsilon is the tolerance used for all coordinate comparisons.
const Epsilon = 1e-6

// Rect is an axis-aligned rectangle. The zero value is an empty rectangle
// located at the origin.
type Rect struct {
	Left, Right float64
	Bottom, Top float64
}

// New returns a rectangle with its lower-left corner at (x, y).
func New(x, y, w, h float64) Rect {
	return Rect{Left: x, Bottom: y, Right: x + w, Top: y + h}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// Area returns Width * Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.Bottom + r.Top) / 2 }

// AspectRatio returns Width / Height, or 0 for a degenerate rectangle.
func (r Rect) AspectRatio() float64 {
	if h := r.Height(); h > 0 {
		return r.Width() / h
	}
	return 0
}

// MoveTo returns the rectangle translated so its lower-left corner is (x, y).
func (r Rect) MoveTo(x, y float64) Rect {
	return New(x, y, r.Width(), r.Height())
}

// MoveX returns the rectangle with its left edge at x.
func (r Rect) MoveX(x float64) Rect { return r.MoveTo(x, r.Bottom) }

// MoveY returns the rectangle with its bottom edge at y.
func (r Rect) MoveY(y float64) Rect { return r.MoveTo(r.Left, y) }

// Resize returns the rectangle with the same lower-left corner and new extents.
func (r Rect) Resize(w, h float64) Rect {
	return New(r.Left, r.Bottom, w, h)
}

// Equal reports whether both rectangles match within Epsilon on every edge.
func (r Rect) Equal(o Rect) bool {
	return near(r.Left, o.Left) && near(r.Right, o.Right) &&
		near(r.Bottom, o.Bottom) && near(r.Top, o.Top)
}

// IntersectsHorizontal reports whether the x-ranges overlap. Touching edges
// do not count.
func (r Rect) IntersectsHorizontal(o Rect) bool {
	return r.Left < o.Right-Epsilon && o.Left < r.Right-Epsilon
}

// IntersectsVertical reports whether the y-ranges overlap. Touching edges
// do not count.
func (r Rect) IntersectsVertical(o Rect) bool {
	return r.Bottom < o.Top-Epsilon && o.Bottom < r.Top-Epsilon
}

// Intersects reports whether the rectangles share a region of positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.IntersectsHorizontal(o) && r.IntersectsVertical(o)
}

// TouchesHorizontal reports whether the x-ranges overlap or share an edge.
func (r Rect) TouchesHorizontal(o Rect) bool {
	return r.Left <= o.Right+Epsilon && o.Left <= r.Right+Epsilon
}

// TouchesVertical reports whether the y-ranges overlap or share an edge.
func (r Rect) TouchesVertical(o Rect) bool {
	return r.Bottom <= o.Top+Epsilon && o.Bottom <= r.Top+Epsilon
}

// LeftOf reports whether r lies entirely left of o. With requireVertical set,
// the rectangles must also overlap vertically.
func (r Rect) LeftOf(o Rect, requireVertical bool) bool {
	left := r.Right <= o.Left+Epsilon
	if requireVertical {
		return left && r.IntersectsVertical(o)
	}
	return left
}

// Below reports whether r lies entirely below o. With requireHorizontal set,
// the rectangles must also overlap horizontally.
func (r Rect) Below(o Rect, requireHorizontal bool) bool {
	below := r.Top <= o.Bottom+Epsilon
	if requireHorizontal {
		return below && r.IntersectsHorizontal(o)
	}
	return below
}

// OverlapX returns the length of the shared x-range, 0 if disjoint.
func (r Rect) OverlapX(o Rect) float64 {
	return math.Max(0, math.Min(r.Right, o.Right)-math.Max(r.Left, o.Left))
}

// OverlapY returns the length of the shared y-range, 0 if disjoint.
func (r Rect) OverlapY(o Rect) float64 {
	return math.Max(0, math.Min(r.Top, o.Top)-math.Max(r.Bottom, o.Bottom))
}

// BoundingBox returns the smallest rectangle containing all rects. The
// result is anchored at the origin-side extremes of the input.
func BoundingBox(rects ...Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	bb := rects[0]
	for _, r := range rects[1:] {
		bb.Left = math.Min(bb.Left, r.Left)
		bb.Bottom = math.Min(bb.Bottom, r.Bottom)
		bb.Right = math.Max(bb.Right, r.Right)
		bb.Top = math.Max(bb.Top, r.Top)
	}
	return bb
}

func near(a, b float64) bool { return math.Abs(a-b) <= Epsilon }
