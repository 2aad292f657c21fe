// Package analysis holds structural checks over the incidence matrix of a net
// and reachability questions answered by the symbolic checker.
package analysis

import (
	"context"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/ctl"
	"github.com/jt05610/petrisym/symbolic"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"
)

type Net struct {
	*petri.Net
}

func (net *Net) FiringVector(t int) *mat.Dense {
	v := make([]float64, len(net.Transitions))
	v[t] = 1
	return mat.NewDense(1, len(net.Transitions), v)
}

// Incidence has a row per transition and a column per place holding the
// token change of the place when the transition fires.
func (net *Net) Incidence() *mat.Dense {
	m := len(net.Places)
	n := len(net.Transitions)
	d := make([]float64, m*n)
	for i := range net.Transitions {
		pre, post := net.InputMarking(i), net.OutputMarking(i)
		for j := range net.Places {
			d[i*m+j] = float64(post[j] - pre[j])
		}
	}
	return mat.NewDense(n, m, d)
}

func toMarking(v mat.Matrix) (petri.Marking, bool) {
	_, c := v.Dims()
	ret := make(petri.Marking, c)
	for i := range ret {
		ret[i] = int(v.At(0, i))
		if ret[i] < 0 {
			return nil, false
		}
	}
	return ret, true
}

func (net *Net) row(m petri.Marking) *mat.Dense {
	d := make([]float64, len(m))
	for i, v := range m {
		d[i] = float64(v)
	}
	return mat.NewDense(1, len(m), d)
}

// StateEquation computes m + σ·C for the firing count vector σ. It fails when
// a place would hold a negative number of tokens.
func (net *Net) StateEquation(m petri.Marking, sigma []int) (petri.Marking, bool) {
	s := make([]float64, len(sigma))
	for i, v := range sigma {
		s[i] = float64(v)
	}
	var change mat.Dense
	change.Mul(mat.NewDense(1, len(sigma), s), net.Incidence())
	var out mat.Dense
	out.Add(net.row(m), &change)
	return toMarking(&out)
}

// NextState fires t from m through the state equation, respecting the
// precondition and the place capacities.
func (net *Net) NextState(m petri.Marking, t int) (petri.Marking, bool) {
	if !net.Enabled(t, m) {
		return nil, false
	}
	var change mat.Dense
	change.Mul(net.FiringVector(t), net.Incidence())
	var out mat.Dense
	out.Add(net.row(m), &change)
	next, ok := toMarking(&out)
	if !ok || !next.Leq(net.Capacity()) {
		return nil, false
	}
	return next, true
}

// IsInvariant reports whether the weighted token sum w·m is the same in every
// marking, that is whether C·w is zero.
func (net *Net) IsInvariant(w []float64) bool {
	var out mat.VecDense
	out.MulVec(net.Incidence(), mat.NewVecDense(len(w), w))
	for i := 0; i < out.Len(); i++ {
		if out.AtVec(i) != 0 {
			return false
		}
	}
	return true
}

// Conservative reports whether no transition changes the total number of
// tokens.
func (net *Net) Conservative() bool {
	w := make([]float64, len(net.Places))
	for i := range w {
		w[i] = 1
	}
	return net.IsInvariant(w)
}

// StateSpaceSize is the number of markings within capacity.
func (net *Net) StateSpaceSize() decimal.Decimal {
	return symbolic.Universe(len(net.Places)).Count(net.Capacity())
}

// MarkingFormula holds exactly in m.
func (net *Net) MarkingFormula(m petri.Marking) ctl.Formula {
	fs := make([]ctl.Formula, len(net.Places))
	for i, p := range net.Places {
		fs[i] = ctl.Compare{Op: ctl.EQ, Left: ctl.Tokens(p.Name), Right: ctl.Value(m[i])}
	}
	return ctl.Conj(fs...)
}

// Reachable reports whether target can be reached from initial within the
// place capacities.
func (net *Net) Reachable(ctx context.Context, initial, target petri.Marking, opts ...ctl.Option) (bool, error) {
	e := ctl.New(net.Net, opts...)
	return e.EvalMarking(ctx, ctl.EF{F: net.MarkingFormula(target)}, initial)
}

// Reachability is the set of markings from which target can be reached.
func (net *Net) Reachability(ctx context.Context, target petri.Marking, opts ...ctl.Option) (*symbolic.Set, error) {
	e := ctl.New(net.Net, opts...)
	return e.Eval(ctx, ctl.EF{F: net.MarkingFormula(target)})
}
