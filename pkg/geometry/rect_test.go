package geometry

import "testing"

func TestRectExtents(t *testing.T) {
	tests := []struct {
		name       string
		rect       Rect
		wantWidth  float64
		wantHeight float64
		wantArea   float64
	}{
		{name: "origin", rect: New(0, 0, 4, 2), wantWidth: 4, wantHeight: 2, wantArea: 8},
		{name: "offset", rect: New(10, 20, 3, 5), wantWidth: 3, wantHeight: 5, wantArea: 15},
		{name: "empty", rect: Rect{}, wantWidth: 0, wantHeight: 0, wantArea: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Width(); got != tt.wantWidth {
				t.Errorf("Width() = %v, want %v", got, tt.wantWidth)
			}
			if got := tt.rect.Height(); got != tt.wantHeight {
				t.Errorf("Height() = %v, want %v", got, tt.wantHeight)
			}
			if got := tt.rect.Area(); got != tt.wantArea {
				t.Errorf("Area() = %v, want %v", got, tt.wantArea)
			}
		})
	}
}

func TestRectIntersections(t *testing.T) {
	a := New(0, 0, 4, 2)
	tests := []struct {
		name           string
		b              Rect
		wantHorizontal bool
		wantVertical   bool
		wantTouchH     bool
		wantTouchV     bool
	}{
		{name: "overlapping", b: New(2, 1, 4, 2), wantHorizontal: true, wantVertical: true, wantTouchH: true, wantTouchV: true},
		{name: "abutting right", b: New(4, 0, 3, 2), wantHorizontal: false, wantVertical: true, wantTouchH: true, wantTouchV: true},
		{name: "stacked above", b: New(0, 2, 2, 5), wantHorizontal: true, wantVertical: false, wantTouchH: true, wantTouchV: true},
		{name: "far away", b: New(10, 10, 1, 1), wantHorizontal: false, wantVertical: false, wantTouchH: false, wantTouchV: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.IntersectsHorizontal(tt.b); got != tt.wantHorizontal {
				t.Errorf("IntersectsHorizontal() = %v, want %v", got, tt.wantHorizontal)
			}
			if got := a.IntersectsVertical(tt.b); got != tt.wantVertical {
				t.Errorf("IntersectsVertical() = %v, want %v", got, tt.wantVertical)
			}
			if got := a.TouchesHorizontal(tt.b); got != tt.wantTouchH {
				t.Errorf("TouchesHorizontal() = %v, want %v", got, tt.wantTouchH)
			}
			if got := a.TouchesVertical(tt.b); got != tt.wantTouchV {
				t.Errorf("TouchesVertical() = %v, want %v", got, tt.wantTouchV)
			}
		})
	}
}

func TestRectRelativePosition(t *testing.T) {
	a := New(0, 0, 4, 2)
	right := New(4, 0, 3, 2)
	above := New(0, 2, 2, 5)
	farAbove := New(5, 3, 1, 1)

	if !a.LeftOf(right, true) {
		t.Error("a should be left of right with vertical overlap")
	}
	if a.LeftOf(above, false) {
		t.Error("a should not be left of above")
	}
	if !a.Below(above, true) {
		t.Error("a should be below above with horizontal overlap")
	}
	if a.Below(farAbove, true) {
		t.Error("a does not overlap farAbove horizontally")
	}
	if !a.Below(farAbove, false) {
		t.Error("a should be below farAbove ignoring overlap")
	}
}

func TestRectEqualTolerance(t *testing.T) {
	a := New(1, 1, 2, 2)
	b := New(1+Epsilon/2, 1, 2, 2)
	if !a.Equal(b) {
		t.Error("rects within epsilon should be equal")
	}
	if a.Equal(New(1.1, 1, 2, 2)) {
		t.Error("rects beyond epsilon should differ")
	}
}

func TestBoundingBox(t *testing.T) {
	bb := BoundingBox(New(0, 0, 4, 2), New(4, 0, 3, 2), New(0, 2, 2, 5))
	if want := New(0, 0, 7, 7); !bb.Equal(want) {
		t.Errorf("BoundingBox() = %+v, want %+v", bb, want)
	}
	if got := BoundingBox(); got != (Rect{}) {
		t.Errorf("BoundingBox() of nothing = %+v, want zero", got)
	}
}
