// Package alignment defines the data contract of pairwise block alignment
// requests and the evaluator interface that checks them.
//
// Requests constrain two blocks per axis either to a fixed offset between
// their lower-left corners or to a minimum overlap of their extents. The
// floorplanning core only stores requests and their fulfilled flags; how a
// request is judged (and whether blocks get shifted to satisfy it) is up to
// the [Evaluator].
package alignment

import (
	"fmt"

	"github.com/matzehuels/corblivar/pkg/block"
)

// AxisType selects how an axis of a request is interpreted.
type AxisType int

const (
	// AxisUndef leaves the axis unconstrained.
	AxisUndef AxisType = iota
	// AxisOffset requires B's lower coordinate to equal A's plus Value.
	AxisOffset
	// AxisRange requires the extents to overlap by at least Value.
	AxisRange
)

func (t AxisType) String() string {
	switch t {
	case AxisOffset:
		return "offset"
	case AxisRange:
		return "range"
	default:
		return "undef"
	}
}

// ParseAxisType maps "offset", "range" or "" to an AxisType.
func ParseAxisType(s string) (AxisType, error) {
	switch s {
	case "", "undef":
		return AxisUndef, nil
	case "offset":
		return AxisOffset, nil
	case "range":
		return AxisRange, nil
	}
	return AxisUndef, fmt.Errorf("unknown alignment type %q", s)
}

// Axis is the constraint on one axis.
type Axis struct {
	Type  AxisType
	Value float64
}

// Request is a pairwise alignment constraint between blocks A and B.
type Request struct {
	ID        int
	A, B      block.Handle
	X, Y      Axis
	Fulfilled bool
}

// FixedOffsetX reports whether the x-axis uses a fixed offset.
func (r *Request) FixedOffsetX() bool { return r.X.Type == AxisOffset }

// FixedOffsetY reports whether the y-axis uses a fixed offset.
func (r *Request) FixedOffsetY() bool { return r.Y.Type == AxisOffset }

// RangeX reports whether the x-axis uses a minimum overlap.
func (r *Request) RangeX() bool { return r.X.Type == AxisRange }

// RangeY reports whether the y-axis uses a minimum overlap.
func (r *Request) RangeY() bool { return r.Y.Type == AxisRange }

// ZeroOffsetBoth reports whether the request demands coincident lower-left
// corners.
func (r *Request) ZeroOffsetBoth() bool {
	return r.FixedOffsetX() && r.X.Value == 0 && r.FixedOffsetY() && r.Y.Value == 0
}

// RangeBoth reports whether the request demands an overlap on both axes,
// whatever the minimum.
func (r *Request) RangeBoth() bool {
	return r.RangeX() && r.RangeY()
}

// Involves reports whether h is one of the endpoints.
func (r *Request) Involves(h block.Handle) bool { return r.A == h || r.B == h }

// Partner returns the other endpoint of h.
func (r *Request) Partner(h block.Handle) block.Handle {
	if r.A == h {
		return r.B
	}
	return r.A
}

// SwapCoordinates exchanges the x and y specialization of the request.
func (r *Request) SwapCoordinates() {
	r.X, r.Y = r.Y, r.X
}

// Evaluator judges a request whose endpoints are both placed. It sets the
// request's Fulfilled flag and the endpoints' alignment status, and may
// shift geometry.
type Evaluator interface {
	Evaluate(req *Request, reg *block.Registry) bool
}
