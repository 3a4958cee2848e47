// Package neighborhood implements the layout operators an optimizer uses to
// walk the solution space of a [floorplan.Core].
//
// A [Set] draws one of five operators uniformly at random:
//
//   - OpSwapBlocks exchanges two tuples, possibly across dies
//   - OpMoveTuple relocates one tuple, possibly across dies
//   - OpSwitchInsertionDirection flips one tuple's direction
//   - OpSwitchTupleJunctions steps one tuple's junction count by one
//   - OpRotateBlock rotates a hard block or reshapes a soft one
//
// During the second, alignment-guided phase a swap towards the first
// unfulfilled alignment request replaces the random draw.
//
// Operators that are rejected by a [Policy] leave every die and block
// untouched. The last applied operator is recorded so that it can be undone
// in constant time:
//
//	if !set.PerformRandomLayoutOp(guided, false) {
//	    continue
//	}
//	core.GenerateLayout(withAlignment)
//	if worse(cost(core)) {
//	    set.PerformRandomLayoutOp(guided, true)
//	}
package neighborhood
