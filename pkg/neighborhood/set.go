package neighborhood

import (
	"math/rand/v2"

	"github.com/matzehuels/corblivar/pkg/floorplan"
	"github.com/matzehuels/corblivar/pkg/observability"
)

// Set applies random layout operators to a core.
type Set struct {
	core   *floorplan.Core
	policy Policy
	rng    *rand.Rand
	hooks  observability.OperatorHooks

	last    record
	hasLast bool
}

// Option configures a Set.
type Option func(*Set)

// WithOperatorHooks injects operator hooks. The default is the globally
// registered [observability.Operator].
func WithOperatorHooks(h observability.OperatorHooks) Option {
	return func(s *Set) {
		if h != nil {
			s.hooks = h
		}
	}
}

// New returns an operator set over core drawing from rng.
func New(core *floorplan.Core, policy Policy, rng *rand.Rand, opts ...Option) *Set {
	s := &Set{
		core:   core,
		policy: policy,
		rng:    rng,
		hooks:  observability.Operator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Core returns the core the set operates on.
func (s *Set) Core() *floorplan.Core { return s.core }

// LastOp returns the last applied operator, or OpNone after a revert.
func (s *Set) LastOp() Op {
	if !s.hasLast {
		return OpNone
	}
	return s.last.op
}

// PerformRandomLayoutOp applies one random operator and reports whether it
// was applied. With revert set it instead undoes the last applied operator
// and reports whether there was one.
//
// During the guided phase with alignment enabled, a swap towards the first
// unfulfilled alignment request takes precedence; when no swap partner can
// be found a random swap is tried instead.
func (s *Set) PerformRandomLayoutOp(guidedPhase, revert bool) bool {
	if revert {
		return s.revert()
	}

	if guidedPhase && s.policy.Alignment {
		if req := s.firstUnfulfilled(); req != nil {
			d1, d2, t1, t2, found := s.guidedSwap(req)
			if !found {
				var ok bool
				d1, d2, t1, t2, ok = s.randomSwap()
				if !ok {
					s.hooks.OnOperation(OpSwapBlocks.String(), true, false)
					return false
				}
			}
			ok := s.swapBlocks(d1, d2, t1, t2, guidedPhase)
			s.hooks.OnOperation(OpSwapBlocks.String(), true, ok)
			return ok
		}
	}

	op := Op(s.rng.IntN(opCount) + 1)
	var ok bool
	switch op {
	case OpSwapBlocks:
		if d1, d2, t1, t2, drawn := s.randomSwap(); drawn {
			ok = s.swapBlocks(d1, d2, t1, t2, guidedPhase)
		}
	case OpMoveTuple:
		ok = s.moveTuple(guidedPhase)
	case OpSwitchInsertionDirection:
		ok = s.switchInsertionDirection()
	case OpSwitchTupleJunctions:
		ok = s.switchTupleJunctions()
	case OpRotateBlock:
		ok = s.rotateBlock()
	}
	s.hooks.OnOperation(op.String(), false, ok)
	return ok
}

// StoreBest snapshots the current solution as the best one.
func (s *Set) StoreBest() {
	s.core.StoreBestCBLs()
	s.hooks.OnBest(true, true)
}

// ApplyBest restores the best snapshot; it fails when none was stored.
func (s *Set) ApplyBest() bool {
	ok := s.core.ApplyBestCBLs()
	s.hooks.OnBest(false, ok)
	return ok
}

func (s *Set) commit(r record) {
	s.last = r
	s.hasLast = true
}

// revert undoes the recorded operator exactly once.
func (s *Set) revert() bool {
	if !s.hasLast {
		return false
	}
	r := s.last
	s.hasLast = false

	switch r.op {
	case OpSwapBlocks:
		s.core.SwapBlocks(r.die1, r.die2, r.tuple1, r.tuple2)
	case OpMoveTuple:
		if r.die1 == r.die2 {
			pos := floorplan.MovedIndex(r.tuple1, r.tuple2)
			target := r.tuple1
			if r.tuple1 > pos {
				target++
			}
			s.core.MoveTuples(r.die1, r.die1, pos, target)
		} else {
			s.core.MoveTuples(r.die2, r.die1, r.tuple2, r.tuple1)
		}
	case OpSwitchInsertionDirection:
		s.core.SwitchInsertionDirection(r.die1, r.tuple1)
	case OpSwitchTupleJunctions:
		s.core.SwitchTupleJunctions(r.die1, r.tuple1, r.juncts)
	case OpRotateBlock:
		s.core.Registry().Get(r.block).Bounds = r.bounds
	}
	s.hooks.OnRevert(r.op.String())
	return true
}
