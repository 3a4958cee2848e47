package alignment

import (
	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

// GeometricEvaluator checks requests against the current rectangles and
// never moves blocks. Failing endpoints get mirrored statuses: when B sits
// too far left of A, B is marked FAIL_HOR_TOO_LEFT and A FAIL_HOR_TOO_RIGHT.
// The x-axis is judged first; the first failing axis decides the statuses.
type GeometricEvaluator struct{}

// Evaluate implements Evaluator.
func (GeometricEvaluator) Evaluate(req *Request, reg *block.Registry) bool {
	a, b := reg.Get(req.A), reg.Get(req.B)

	statusB, ok := checkAxis(req.X, a.Bounds.Left, a.Bounds.Right, b.Bounds.Left, b.Bounds.Right,
		block.AlignFailHorTooLeft, block.AlignFailHorTooRight)
	if ok {
		statusB, ok = checkAxis(req.Y, a.Bounds.Bottom, a.Bounds.Top, b.Bounds.Bottom, b.Bounds.Top,
			block.AlignFailVertTooLow, block.AlignFailVertTooHigh)
	}

	req.Fulfilled = ok
	if ok {
		setStatus(a, block.AlignSuccess)
		setStatus(b, block.AlignSuccess)
		return true
	}
	setStatus(b, statusB)
	setStatus(a, mirror(statusB))
	return false
}

// checkAxis returns the status for B and whether the axis is satisfied.
func checkAxis(ax Axis, aLo, aHi, bLo, bHi float64, tooLow, tooHigh block.AlignmentStatus) (block.AlignmentStatus, bool) {
	switch ax.Type {
	case AxisOffset:
		diff := (bLo - aLo) - ax.Value
		switch {
		case diff < -geometry.Epsilon:
			return tooLow, false
		case diff > geometry.Epsilon:
			return tooHigh, false
		}
	case AxisRange:
		overlap := min(aHi, bHi) - max(aLo, bLo)
		if overlap < ax.Value-geometry.Epsilon {
			if (bLo+bHi)/2 < (aLo+aHi)/2 {
				return tooLow, false
			}
			return tooHigh, false
		}
	}
	return block.AlignSuccess, true
}

func mirror(s block.AlignmentStatus) block.AlignmentStatus {
	switch s {
	case block.AlignFailHorTooLeft:
		return block.AlignFailHorTooRight
	case block.AlignFailHorTooRight:
		return block.AlignFailHorTooLeft
	case block.AlignFailVertTooLow:
		return block.AlignFailVertTooHigh
	case block.AlignFailVertTooHigh:
		return block.AlignFailVertTooLow
	}
	return s
}

// setStatus leaves the reference origin untouched.
func setStatus(b *block.Block, s block.AlignmentStatus) {
	if b.Kind == block.KindReferenceOrigin {
		return
	}
	b.Alignment = s
}
