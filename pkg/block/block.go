package block

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/corblivar/pkg/geometry"
)

// Handle addresses a block inside its [Registry].
type Handle int

// RefOrigin is the handle of the registry's reference-origin block.
const RefOrigin Handle = -1

// Kind distinguishes the block variants sharing one geometry model.
type Kind int

const (
	KindStandard Kind = iota
	KindPin
	KindTSVIsland
	KindReferenceOrigin
)

var kindNames = map[Kind]string{
	KindStandard:        "standard",
	KindPin:             "pin",
	KindTSVIsland:       "tsv_island",
	KindReferenceOrigin: "reference_origin",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a kind name back to its tag. Empty input yields KindStandard.
func ParseKind(s string) (Kind, bool) {
	if s == "" {
		return KindStandard, true
	}
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindStandard, false
}

// AlignmentStatus records the outcome of the last alignment evaluation for a block.
type AlignmentStatus int

const (
	AlignUndef AlignmentStatus = iota
	AlignSuccess
	AlignFailHorTooLeft
	AlignFailHorTooRight
	AlignFailVertTooLow
	AlignFailVertTooHigh
)

func (s AlignmentStatus) String() string {
	switch s {
	case AlignSuccess:
		return "SUCCESS"
	case AlignFailHorTooLeft:
		return "FAIL_HOR_TOO_LEFT"
	case AlignFailHorTooRight:
		return "FAIL_HOR_TOO_RIGHT"
	case AlignFailVertTooLow:
		return "FAIL_VERT_TOO_LOW"
	case AlignFailVertTooHigh:
		return "FAIL_VERT_TOO_HIGH"
	default:
		return "UNDEF"
	}
}

// Failed reports whether the status carries a direction to move towards.
func (s AlignmentStatus) Failed() bool {
	return s >= AlignFailHorTooLeft && s <= AlignFailVertTooHigh
}

// TSVIsland holds the parameters of a KindTSVIsland block.
type TSVIsland struct {
	Count int
	Pitch float64
}

// Block is a placeable rectangle.
type Block struct {
	ID     string
	Handle Handle
	Kind   Kind
	TSV    TSVIsland

	// Soft blocks may be reshaped within [ARMin, ARMax]; hard blocks may
	// only be rotated, and only when Rotatable is set.
	Soft         bool
	Rotatable    bool
	ARMin, ARMax float64

	// Floorplacement marks large macros exempt from early perturbation.
	Floorplacement bool
	PowerDensity   float64

	Layer     int
	Placed    bool
	Alignment AlignmentStatus

	Bounds geometry.Rect
	Backup geometry.Rect
	Best   geometry.Rect
}

// Width returns the current width.
func (b *Block) Width() float64 { return b.Bounds.Width() }

// Height returns the current height.
func (b *Block) Height() float64 { return b.Bounds.Height() }

// Rotate swaps width and height, keeping the lower-left corner.
// It fails for non-rotatable blocks, pins and the reference origin.
func (b *Block) Rotate() bool {
	if !b.Rotatable || b.Kind == KindPin || b.Kind == KindReferenceOrigin {
		return false
	}
	b.Bounds = b.Bounds.Resize(b.Height(), b.Width())
	return true
}

// ShapeRandomlyByAR reshapes a soft block to a uniformly drawn aspect ratio
// within its bounds, keeping its area.
func (b *Block) ShapeRandomlyByAR(rng *rand.Rand) bool {
	if !b.Soft {
		return false
	}
	ar := b.ARMin + rng.Float64()*(b.ARMax-b.ARMin)
	area := b.Bounds.Area()
	w := math.Sqrt(area * ar)
	if w <= 0 {
		return false
	}
	b.Bounds = b.Bounds.Resize(w, area/w)
	return true
}

// ShapeByWidthHeight reshapes a soft block to w x h if the resulting aspect
// ratio lies within bounds.
func (b *Block) ShapeByWidthHeight(w, h float64) bool {
	if !b.Soft || w <= 0 || h <= 0 {
		return false
	}
	ar := w / h
	if ar < b.ARMin-geometry.Epsilon || ar > b.ARMax+geometry.Epsilon {
		return false
	}
	b.Bounds = b.Bounds.Resize(w, h)
	return true
}

// SizeTSVIsland derives the square outline of a TSV island from its count
// and pitch. It is a no-op for other kinds.
func (b *Block) SizeTSVIsland() {
	if b.Kind != KindTSVIsland || b.TSV.Count <= 0 {
		return
	}
	side := math.Ceil(math.Sqrt(float64(b.TSV.Count))) * b.TSV.Pitch
	b.Bounds = b.Bounds.Resize(side, side)
}
