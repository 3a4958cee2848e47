package cbl

import (
	"fmt"

	"github.com/matzehuels/corblivar/pkg/block"
)

// Direction is the insertion direction of a tuple.
type Direction int

const (
	// Horizontal inserts the block to the right of the covered fronts.
	Horizontal Direction = iota
	// Vertical inserts the block on top of the covered fronts.
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "V"
	}
	return "H"
}

// Flip returns the other direction.
func (d Direction) Flip() Direction {
	if d == Vertical {
		return Horizontal
	}
	return Vertical
}

// ParseDirection accepts "H"/"V" as well as the numeric forms "0"/"1".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "H", "h", "0":
		return Horizontal, nil
	case "V", "v", "1":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("invalid direction %q", s)
}

// Tuple is one CBL entry.
type Tuple struct {
	Block  block.Handle
	Dir    Direction
	Juncts int
}
