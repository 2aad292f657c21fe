package ctl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/symbolic"
	"go.uber.org/zap"
)

// Evaluator computes the markings of a net satisfying CTL formulas. It holds
// no mutable state and may be shared between goroutines.
type Evaluator struct {
	net *petri.Net
	cfg Config
	log *zap.Logger
}

func New(net *petri.Net, opts ...Option) *Evaluator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Evaluator{
		net: net,
		cfg: cfg,
		log: cfg.Logger.With(zap.String("net", net.Name)),
	}
}

func (e *Evaluator) Net() *petri.Net {
	return e.net
}

func (e *Evaluator) Config() Config {
	return e.cfg
}

// Eval returns the set of markings satisfying f.
func (e *Evaluator) Eval(ctx context.Context, f Formula) (*symbolic.Set, error) {
	if err := Validate(f, e.net); err != nil {
		return nil, err
	}
	run := uuid.NewString()
	start := time.Now()
	res, err := e.eval(ctx, f)
	if err != nil {
		e.log.Info("evaluation aborted", zap.String("run", run), zap.Error(err))
		return nil, err
	}
	e.log.Info("evaluated formula",
		zap.String("run", run),
		zap.Stringer("formula", f),
		zap.Duration("took", time.Since(start)),
		zap.Int("size", res.Len()),
	)
	return res, nil
}

// EvalMarking reports whether m satisfies f. Fixpoints of the outermost
// temporal operators stop as soon as the answer for m is known.
func (e *Evaluator) EvalMarking(ctx context.Context, f Formula, m petri.Marking) (bool, error) {
	if err := e.net.Check(m); err != nil {
		return false, fmt.Errorf("%w: %w", ErrMarking, err)
	}
	if err := Validate(f, e.net); err != nil {
		return false, err
	}
	run := uuid.NewString()
	start := time.Now()
	ok, err := e.holds(ctx, f, m)
	if err != nil {
		e.log.Info("evaluation aborted", zap.String("run", run), zap.Error(err))
		return false, err
	}
	e.log.Info("evaluated formula on marking",
		zap.String("run", run),
		zap.Stringer("formula", f),
		zap.String("marking", e.net.FormatMarking(m)),
		zap.Bool("holds", ok),
		zap.Duration("took", time.Since(start)),
	)
	return ok, nil
}

func (e *Evaluator) eval(ctx context.Context, f Formula) (*symbolic.Set, error) {
	c := e.cfg.Canonicity
	n := len(e.net.Places)
	switch f := f.(type) {
	case True:
		return symbolic.Universe(n), nil
	case False:
		return symbolic.NewSet(c), nil
	case Deadlock:
		return symbolic.Deadlock(e.net), nil
	case Fireable:
		t, _ := e.net.TransitionIndex(f.Transition)
		return symbolic.NewSet(c, symbolic.New(e.net.InputMarking(t))), nil
	case After:
		t, _ := e.net.TransitionIndex(f.Transition)
		return symbolic.NewSet(c, symbolic.New(e.net.OutputMarking(t))), nil
	case Compare:
		return e.compare(f), nil
	case Not:
		s, err := e.eval(ctx, f.F)
		if err != nil {
			return nil, err
		}
		return s.Not(n, c), nil
	case And:
		l, r, err := e.evalPair(ctx, f.Left, f.Right)
		if err != nil {
			return nil, err
		}
		return l.Intersection(r, c), nil
	case Or:
		l, r, err := e.evalPair(ctx, f.Left, f.Right)
		if err != nil {
			return nil, err
		}
		return l.Union(r, c), nil
	case EX:
		s, err := e.eval(ctx, f.F)
		if err != nil {
			return nil, err
		}
		return s.Revert(e.net, e.net.Capacity(), c), nil
	case AX:
		s, err := e.eval(ctx, f.F)
		if err != nil {
			return nil, err
		}
		return s.RevertTilde(e.net, e.net.Capacity(), c), nil
	case EF, AF, EG, AG, EU, AU:
		fp, err := e.temporal(ctx, f)
		if err != nil {
			return nil, err
		}
		return e.solve(ctx, fp, nil)
	}
	return nil, fmt.Errorf("formula %T: %w", f, ErrSyntax)
}

func (e *Evaluator) evalPair(ctx context.Context, a, b Formula) (*symbolic.Set, *symbolic.Set, error) {
	l, err := e.eval(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	r, err := e.eval(ctx, b)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// temporal evaluates the operands of a temporal operator and builds its
// fixpoint.
func (e *Evaluator) temporal(ctx context.Context, f Formula) (fixpoint, error) {
	var phi, psi *symbolic.Set
	var err error
	switch f := f.(type) {
	case EF:
		phi, err = e.eval(ctx, f.F)
	case AF:
		phi, err = e.eval(ctx, f.F)
	case EG:
		phi, err = e.eval(ctx, f.F)
	case AG:
		phi, err = e.eval(ctx, f.F)
	case EU:
		phi, psi, err = e.evalPair(ctx, f.P, f.Q)
	case AU:
		phi, psi, err = e.evalPair(ctx, f.P, f.Q)
	}
	if err != nil {
		return fixpoint{}, err
	}
	return e.fixpointFor(f, phi, psi), nil
}

func (e *Evaluator) holds(ctx context.Context, f Formula, m petri.Marking) (bool, error) {
	switch f := f.(type) {
	case Not:
		ok, err := e.holds(ctx, f.F, m)
		return !ok, err
	case And:
		ok, err := e.holds(ctx, f.Left, m)
		if err != nil || !ok {
			return false, err
		}
		return e.holds(ctx, f.Right, m)
	case Or:
		ok, err := e.holds(ctx, f.Left, m)
		if err != nil || ok {
			return ok, err
		}
		return e.holds(ctx, f.Right, m)
	case EF, AF, EG, AG, EU, AU:
		fp, err := e.temporal(ctx, f)
		if err != nil {
			return false, err
		}
		// least iterates only grow and greatest ones only shrink
		stop := func(s *symbolic.Set) bool { return s.Contains(m) }
		if fp.greatest {
			stop = func(s *symbolic.Set) bool { return !s.Contains(m) }
		}
		res, err := e.solve(ctx, fp, stop)
		if err != nil {
			return false, err
		}
		return res.Contains(m), nil
	}
	s, err := e.eval(ctx, f)
	if err != nil {
		return false, err
	}
	return s.Contains(m), nil
}

// compare translates a comparison of a place's token count with a constant.
func (e *Evaluator) compare(f Compare) *symbolic.Set {
	lv, lconst := f.Left.(Value)
	rv, rconst := f.Right.(Value)
	switch {
	case lconst && rconst:
		if ok, _ := f.Op.holds(int(lv), int(rv)); ok {
			return symbolic.Universe(len(e.net.Places))
		}
		return symbolic.NewSet(e.cfg.Canonicity)
	case lconst:
		return e.tokens(string(f.Right.(Tokens)), f.Op.flip(), int(lv))
	}
	return e.tokens(string(f.Left.(Tokens)), f.Op, int(rv))
}

func (e *Evaluator) tokens(place string, op Operator, v int) *symbolic.Set {
	c := e.cfg.Canonicity
	n := len(e.net.Places)
	p, _ := e.net.PlaceIndex(place)
	switch op {
	case GE:
		if v <= 0 {
			return symbolic.Universe(n)
		}
		return symbolic.NewSet(c, symbolic.New(petri.Unit(n, p, v)))
	case GT:
		return e.tokens(place, GE, v+1)
	case LT:
		if v <= 0 {
			return symbolic.NewSet(c)
		}
		return symbolic.NewSet(c, symbolic.New(petri.Zero(n), petri.Unit(n, p, v)))
	case LE:
		return e.tokens(place, LT, v+1)
	case EQ:
		if v < 0 {
			return symbolic.NewSet(c)
		}
		return symbolic.NewSet(c, symbolic.New(petri.Unit(n, p, v), petri.Unit(n, p, v+1)))
	case NE:
		return e.tokens(place, LT, v).Union(e.tokens(place, GT, v), c)
	}
	panic("ctl: unvalidated operator " + string(op))
}
