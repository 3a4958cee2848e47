package neighborhood

import (
	"github.com/matzehuels/corblivar/pkg/block"
)

// randomSwap draws swap coordinates. It fails when a drawn die is empty or
// a same-die swap lacks a second tuple.
func (s *Set) randomSwap() (die1, die2, t1, t2 int, ok bool) {
	layers := s.core.Layers()
	die1, die2 = s.rng.IntN(layers), s.rng.IntN(layers)
	n1, n2 := s.core.Die(die1).Len(), s.core.Die(die2).Len()
	if n1 == 0 || n2 == 0 || (die1 == die2 && n1 < 2) {
		return 0, 0, 0, 0, false
	}

	t1 = s.rng.IntN(n1)
	t2 = s.rng.IntN(n2)
	for die1 == die2 && t1 == t2 {
		t2 = s.rng.IntN(n2)
	}
	return die1, die2, t1, t2, true
}

// swapBlocks exchanges two tuples after the policy checks.
func (s *Set) swapBlocks(die1, die2, t1, t2 int, guidedPhase bool) bool {
	b1 := s.core.Die(die1).Block(t1)
	b2 := s.core.Die(die2).Block(t2)

	if s.immobile(b1, guidedPhase) || s.immobile(b2, guidedPhase) {
		return false
	}
	if s.policy.PowerAwareAssignment {
		// b1 ends up on die2 and b2 on die1.
		if die1 < die2 && b1.PowerDensity < b2.PowerDensity {
			return false
		}
		if die2 < die1 && b2.PowerDensity < b1.PowerDensity {
			return false
		}
	}

	s.core.SwapBlocks(die1, die2, t1, t2)
	s.commit(record{op: OpSwapBlocks, die1: die1, die2: die2, tuple1: t1, tuple2: t2})
	return true
}

// moveTuple relocates a random tuple.
func (s *Set) moveTuple(guidedPhase bool) bool {
	layers := s.core.Layers()
	die1, die2 := s.rng.IntN(layers), s.rng.IntN(layers)
	d1, d2 := s.core.Die(die1), s.core.Die(die2)
	if d1.Empty() || (die1 == die2 && d1.Len() < 2) {
		return false
	}

	t1 := s.rng.IntN(d1.Len())
	var t2 int
	if die1 == die2 {
		for t2 = t1; t2 == t1; {
			t2 = s.rng.IntN(d2.Len())
		}
	} else {
		t2 = s.rng.IntN(d2.Len() + 1)
	}

	return s.moveTupleAt(die1, die2, t1, t2, guidedPhase)
}

// moveTupleAt moves the tuple at (die1, t1) before t2 on die2 after the
// policy checks.
func (s *Set) moveTupleAt(die1, die2, t1, t2 int, guidedPhase bool) bool {
	d2 := s.core.Die(die2)
	b := s.core.Die(die1).Block(t1)
	if s.immobile(b, guidedPhase) {
		return false
	}
	if s.policy.PowerAwareAssignment && die1 != die2 && !d2.Empty() {
		// the block lands next to the tuple currently at t2
		peer := d2.Block(min(t2, d2.Len()-1))
		if die2 > die1 && b.PowerDensity < peer.PowerDensity {
			return false
		}
		if die2 < die1 && b.PowerDensity > peer.PowerDensity {
			return false
		}
	}

	s.core.MoveTuples(die1, die2, t1, t2)
	s.commit(record{op: OpMoveTuple, die1: die1, die2: die2, tuple1: t1, tuple2: t2})
	return true
}

func (s *Set) switchInsertionDirection() bool {
	die, t, ok := s.randomTuple()
	if !ok {
		return false
	}
	s.core.SwitchInsertionDirection(die, t)
	s.commit(record{op: OpSwitchInsertionDirection, die1: die, tuple1: t})
	return true
}

// switchTupleJunctions steps the junction count by one. Zero always steps
// up; otherwise the direction is random.
func (s *Set) switchTupleJunctions() bool {
	die, t, ok := s.randomTuple()
	if !ok {
		return false
	}
	old := s.core.Die(die).Tuple(t).Juncts
	next := 1
	if old > 0 {
		if s.rng.IntN(2) == 0 {
			next = old - 1
		} else {
			next = old + 1
		}
	}
	s.core.SwitchTupleJunctions(die, t, next)
	s.commit(record{op: OpSwitchTupleJunctions, die1: die, tuple1: t, juncts: old})
	return true
}

// rotateBlock reshapes a soft block or rotates a hard one.
func (s *Set) rotateBlock() bool {
	die, t, ok := s.randomTuple()
	if !ok {
		return false
	}
	b := s.core.Die(die).Block(t)
	old := b.Bounds

	if b.Soft {
		if s.policy.EnhancedSoftBlockShaping {
			ok = s.shapeEnhanced(die, b)
		} else {
			ok = b.ShapeRandomlyByAR(s.rng)
		}
	} else {
		if s.policy.EnhancedHardBlockRotation && !s.rotationPays(die, b) {
			return false
		}
		ok = b.Rotate()
	}
	if !ok {
		return false
	}
	s.commit(record{op: OpRotateBlock, die1: die, tuple1: t, block: b.Handle, bounds: old})
	return true
}

// randomTuple draws a die and a tuple on it; it fails on an empty die.
func (s *Set) randomTuple() (die, t int, ok bool) {
	die = s.rng.IntN(s.core.Layers())
	n := s.core.Die(die).Len()
	if n == 0 {
		return 0, 0, false
	}
	return die, s.rng.IntN(n), true
}

// immobile reports whether b is protected by floorplacement. Protection
// only applies outside the guided phase.
func (s *Set) immobile(b *block.Block, guidedPhase bool) bool {
	return s.policy.Floorplacement && !guidedPhase && b.Floorplacement
}
