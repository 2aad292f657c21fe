package ctl

import (
	"context"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/symbolic"
	"go.uber.org/zap"
)

// fixpoint describes one temporal operator as the iteration of step from the
// empty set (least) or from the universe (greatest).
type fixpoint struct {
	op       string
	greatest bool
	// monotone is set when the result at a capacity bound lies between the
	// initial iterate and the result at the full capacity, so that it can
	// seed the next round.
	monotone bool
	step     func(z *symbolic.Set, capacity petri.Capacity) *symbolic.Set
}

// bounds lists the capacities the fixpoint is solved under, ending with the
// capacity of the net.
func (e *Evaluator) bounds(fp fixpoint) []petri.Capacity {
	full := e.net.Capacity()
	if !e.cfg.Saturated || !fp.monotone {
		return []petri.Capacity{full}
	}
	var ret []petri.Capacity
	for k := 1; k < e.net.MaxCapacity(); k++ {
		ret = append(ret, e.net.CapacityBound(k))
	}
	return append(ret, full)
}

// solve iterates fp until it is stable under every capacity bound. It
// returns early with the current iterate once stop reports true.
func (e *Evaluator) solve(ctx context.Context, fp fixpoint, stop func(*symbolic.Set) bool) (*symbolic.Set, error) {
	c := e.cfg.Canonicity
	res := symbolic.NewSet(c)
	if fp.greatest {
		res = symbolic.Universe(len(e.net.Places))
	}
	for round, capacity := range e.bounds(fp) {
		for i := 0; ; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			step := fp.step(res, capacity)
			var next *symbolic.Set
			var done bool
			if fp.greatest {
				next = res.Intersection(step, c)
				done = res.IsIncluded(next)
			} else {
				next = res.Union(step, c)
				done = next.IsIncluded(res)
			}
			if e.cfg.Simplify {
				next = next.Simplified()
			}
			res = next
			e.log.Debug("fixpoint iteration",
				zap.String("op", fp.op),
				zap.Int("round", round),
				zap.Int("iteration", i),
				zap.Int("size", res.Len()),
			)
			if stop != nil && stop(res) {
				return res, nil
			}
			if done {
				break
			}
		}
	}
	return res, nil
}

// fixpointFor builds the fixpoint of a temporal operator from the sets of
// its operands.
func (e *Evaluator) fixpointFor(f Formula, phi, psi *symbolic.Set) fixpoint {
	c := e.cfg.Canonicity
	ex := func(z *symbolic.Set, capacity petri.Capacity) *symbolic.Set {
		return z.Revert(e.net, capacity, c)
	}
	ax := func(z *symbolic.Set, capacity petri.Capacity) *symbolic.Set {
		return z.RevertTilde(e.net, capacity, c)
	}
	switch f.(type) {
	case EF:
		return fixpoint{op: "EF", monotone: true, step: func(z *symbolic.Set, capacity petri.Capacity) *symbolic.Set {
			return phi.Union(ex(z, capacity), c)
		}}
	case EU:
		return fixpoint{op: "EU", monotone: true, step: func(z *symbolic.Set, capacity petri.Capacity) *symbolic.Set {
			return psi.Union(phi.Intersection(ex(z, capacity), c), c)
		}}
	case AF:
		return fixpoint{op: "AF", step: func(z *symbolic.Set, capacity petri.Capacity) *symbolic.Set {
			return phi.Union(ex(z, capacity).Intersection(ax(z, capacity), c), c)
		}}
	case AU:
		return fixpoint{op: "AU", step: func(z *symbolic.Set, capacity petri.Capacity) *symbolic.Set {
			some := phi.Intersection(ex(z, capacity), c)
			return psi.Union(some.Intersection(ax(z, capacity), c), c)
		}}
	case AG:
		return fixpoint{op: "AG", greatest: true, monotone: true, step: func(z *symbolic.Set, capacity petri.Capacity) *symbolic.Set {
			return phi.Intersection(ax(z, capacity), c)
		}}
	case EG:
		return fixpoint{op: "EG", greatest: true, step: func(z *symbolic.Set, capacity petri.Capacity) *symbolic.Set {
			return phi.Intersection(ex(z, capacity).Union(ax(z, capacity), c), c)
		}}
	}
	panic("ctl: no fixpoint for " + f.String())
}
