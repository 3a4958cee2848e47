package neighborhood

import (
	"github.com/matzehuels/corblivar/pkg/alignment"
	"github.com/matzehuels/corblivar/pkg/block"
)

// firstUnfulfilled returns the first alignment request not fulfilled by the
// last layout, or nil.
func (s *Set) firstUnfulfilled() *alignment.Request {
	for _, r := range s.core.Requests() {
		if !r.Fulfilled {
			return r
		}
	}
	return nil
}

// guidedSwap picks swap coordinates that move one endpoint of req towards
// its partner.
func (s *Set) guidedSwap(req *alignment.Request) (die1, die2, t1, t2 int, ok bool) {
	reg := s.core.Registry()

	ep := req.A
	switch {
	case req.A == block.RefOrigin:
		ep = req.B
	case req.B == block.RefOrigin:
	case s.rng.IntN(2) == 1:
		ep = req.B
	}
	partner := req.Partner(ep)
	b, p := reg.Get(ep), reg.Get(partner)

	die1 = b.Layer
	t1 = s.core.Die(die1).IndexOf(ep)
	if t1 < 0 {
		return 0, 0, 0, 0, false
	}

	// Two blocks on one die never intersect, so requests demanding overlap
	// are served by bringing in an intersecting block from another die.
	if (req.ZeroOffsetBoth() || req.RangeBoth()) && partner != block.RefOrigin && p.Layer == b.Layer {
		if s.core.Layers() < 2 {
			return 0, 0, 0, 0, false
		}
		die2 = s.otherDie(die1)
		for i, o := range s.core.Die(die2).Blocks() {
			if o.Handle != partner && o.Bounds.Intersects(b.Bounds) {
				return die1, die2, t1, i, true
			}
		}
		return 0, 0, 0, 0, false
	}

	die2 = die1
	if s.core.Layers() > 1 && s.rng.IntN(2) == 1 {
		die2 = s.otherDie(die1)
	}
	t2 = nearestInFailingDirection(s.core.Die(die2).Blocks(), b, partner)
	if t2 < 0 {
		return 0, 0, 0, 0, false
	}
	return die1, die2, t1, t2, true
}

// otherDie draws a die other than die. The core must have two dies or more.
func (s *Set) otherDie(die int) int {
	other := s.rng.IntN(s.core.Layers() - 1)
	if other >= die {
		other++
	}
	return other
}

// nearestInFailingDirection returns the index of the block closest to b in
// the direction b has to move to satisfy its alignment, or -1.
func nearestInFailingDirection(blocks []*block.Block, b *block.Block, partner block.Handle) int {
	r := b.Bounds
	best := -1
	var bestPos float64

	for i, o := range blocks {
		if o.Handle == b.Handle || o.Handle == partner {
			continue
		}
		q := o.Bounds
		var pos float64
		var closer bool
		switch b.Alignment {
		case block.AlignFailHorTooLeft:
			if q.Left <= r.Left || !q.TouchesVertical(r) {
				continue
			}
			pos, closer = q.Left, q.Left < bestPos
		case block.AlignFailHorTooRight:
			if q.Right >= r.Right || !q.TouchesVertical(r) {
				continue
			}
			pos, closer = q.Right, q.Right > bestPos
		case block.AlignFailVertTooLow:
			if q.Bottom <= r.Bottom || !q.TouchesHorizontal(r) {
				continue
			}
			pos, closer = q.Bottom, q.Bottom < bestPos
		case block.AlignFailVertTooHigh:
			if q.Top >= r.Top || !q.TouchesHorizontal(r) {
				continue
			}
			pos, closer = q.Top, q.Top > bestPos
		default:
			return -1
		}
		if best < 0 || closer {
			best, bestPos = i, pos
		}
	}
	return best
}
