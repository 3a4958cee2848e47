package neighborhood

import (
	"github.com/matzehuels/corblivar/pkg/block"
	"github.com/matzehuels/corblivar/pkg/geometry"
)

// Op identifies a layout operator.
type Op int

const (
	OpNone Op = iota
	OpSwapBlocks
	OpMoveTuple
	OpSwitchInsertionDirection
	OpSwitchTupleJunctions
	OpRotateBlock
)

// opCount is the number of operators drawn from.
const opCount = int(OpRotateBlock)

var opNames = map[Op]string{
	OpNone:                     "none",
	OpSwapBlocks:               "swap_blocks",
	OpMoveTuple:                "move_tuple",
	OpSwitchInsertionDirection: "switch_insertion_direction",
	OpSwitchTupleJunctions:     "switch_tuple_junctions",
	OpRotateBlock:              "rotate_block",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "unknown"
}

// Policy holds the behavioral switches of the operator set.
type Policy struct {
	// PowerAwareAssignment keeps blocks of higher power density on higher
	// dies: swaps and moves breaking that order are rejected.
	PowerAwareAssignment bool

	// Floorplacement protects floorplacement blocks from swaps and moves
	// outside the guided phase.
	Floorplacement bool

	// EnhancedSoftBlockShaping snaps soft block edges to neighboring fronts
	// instead of drawing a random aspect ratio.
	EnhancedSoftBlockShaping bool

	// EnhancedHardBlockRotation rotates hard blocks only when the rotation
	// is estimated to reduce the die outline.
	EnhancedHardBlockRotation bool

	// Alignment enables the guided swap override.
	Alignment bool
}

// record is the last applied operator. Indices refer to the state right
// before the operator ran.
type record struct {
	op             Op
	die1, die2     int
	tuple1, tuple2 int
	juncts         int
	block          block.Handle
	bounds         geometry.Rect
}
