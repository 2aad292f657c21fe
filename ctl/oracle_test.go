package ctl_test

import (
	"fmt"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/ctl"
)

// oracle checks formulas by enumerating every marking within capacity.
type oracle struct {
	net    *petri.Net
	states []petri.Marking
	index  map[string]int
	succ   [][]int
}

func newOracle(net *petri.Net) *oracle {
	o := &oracle{net: net, index: make(map[string]int)}
	capacity := net.Capacity()
	o.states = []petri.Marking{net.Zero()}
	for p := range capacity {
		var next []petri.Marking
		for _, m := range o.states {
			for v := 0; v <= capacity[p]; v++ {
				c := m.Clone()
				c[p] = v
				next = append(next, c)
			}
		}
		o.states = next
	}
	for i, m := range o.states {
		o.index[m.Key()] = i
	}
	o.succ = make([][]int, len(o.states))
	for i, m := range o.states {
		for _, next := range net.Successors(m, capacity) {
			o.succ[i] = append(o.succ[i], o.index[next.Key()])
		}
	}
	return o
}

func (o *oracle) all(f func(i int, m petri.Marking) bool) []bool {
	ret := make([]bool, len(o.states))
	for i, m := range o.states {
		ret[i] = f(i, m)
	}
	return ret
}

func (o *oracle) some(i int, z []bool) bool {
	for _, j := range o.succ[i] {
		if z[j] {
			return true
		}
	}
	return false
}

func (o *oracle) every(i int, z []bool) bool {
	for _, j := range o.succ[i] {
		if !z[j] {
			return false
		}
	}
	return true
}

// fix iterates step from start until it is stable.
func (o *oracle) fix(start bool, step func(i int, z []bool) bool) []bool {
	z := o.all(func(int, petri.Marking) bool { return start })
	for {
		next := o.all(func(i int, _ petri.Marking) bool { return step(i, z) })
		same := true
		for i := range z {
			if z[i] != next[i] {
				same = false
			}
		}
		if same {
			return z
		}
		z = next
	}
}

func (o *oracle) value(e ctl.IntExpr, m petri.Marking) int {
	switch e := e.(type) {
	case ctl.Value:
		return int(e)
	case ctl.Tokens:
		p, _ := o.net.PlaceIndex(string(e))
		return m[p]
	}
	panic(fmt.Sprintf("unexpected %T", e))
}

func (o *oracle) eval(f ctl.Formula) []bool {
	switch f := f.(type) {
	case ctl.True:
		return o.all(func(int, petri.Marking) bool { return true })
	case ctl.False:
		return o.all(func(int, petri.Marking) bool { return false })
	case ctl.Deadlock:
		return o.all(func(_ int, m petri.Marking) bool {
			for t := range o.net.Transitions {
				if o.net.Enabled(t, m) {
					return false
				}
			}
			return true
		})
	case ctl.Fireable:
		t, _ := o.net.TransitionIndex(f.Transition)
		return o.all(func(_ int, m petri.Marking) bool { return m.Geq(o.net.InputMarking(t)) })
	case ctl.After:
		t, _ := o.net.TransitionIndex(f.Transition)
		return o.all(func(_ int, m petri.Marking) bool { return m.Geq(o.net.OutputMarking(t)) })
	case ctl.Compare:
		return o.all(func(_ int, m petri.Marking) bool {
			a, b := o.value(f.Left, m), o.value(f.Right, m)
			switch f.Op {
			case ctl.LT:
				return a < b
			case ctl.LE:
				return a <= b
			case ctl.EQ:
				return a == b
			case ctl.NE:
				return a != b
			case ctl.GT:
				return a > b
			}
			return a >= b
		})
	case ctl.Not:
		phi := o.eval(f.F)
		return o.all(func(i int, _ petri.Marking) bool { return !phi[i] })
	case ctl.And:
		l, r := o.eval(f.Left), o.eval(f.Right)
		return o.all(func(i int, _ petri.Marking) bool { return l[i] && r[i] })
	case ctl.Or:
		l, r := o.eval(f.Left), o.eval(f.Right)
		return o.all(func(i int, _ petri.Marking) bool { return l[i] || r[i] })
	case ctl.EX:
		phi := o.eval(f.F)
		return o.all(func(i int, _ petri.Marking) bool { return o.some(i, phi) })
	case ctl.AX:
		phi := o.eval(f.F)
		return o.all(func(i int, _ petri.Marking) bool { return o.every(i, phi) })
	case ctl.EF:
		phi := o.eval(f.F)
		return o.fix(false, func(i int, z []bool) bool { return phi[i] || o.some(i, z) })
	case ctl.AF:
		phi := o.eval(f.F)
		return o.fix(false, func(i int, z []bool) bool {
			return phi[i] || len(o.succ[i]) > 0 && o.every(i, z)
		})
	case ctl.EG:
		phi := o.eval(f.F)
		return o.fix(true, func(i int, z []bool) bool {
			return phi[i] && (len(o.succ[i]) == 0 || o.some(i, z))
		})
	case ctl.AG:
		phi := o.eval(f.F)
		return o.fix(true, func(i int, z []bool) bool { return phi[i] && o.every(i, z) })
	case ctl.EU:
		phi, psi := o.eval(f.P), o.eval(f.Q)
		return o.fix(false, func(i int, z []bool) bool { return psi[i] || phi[i] && o.some(i, z) })
	case ctl.AU:
		phi, psi := o.eval(f.P), o.eval(f.Q)
		return o.fix(false, func(i int, z []bool) bool {
			return psi[i] || phi[i] && len(o.succ[i]) > 0 && o.every(i, z)
		})
	}
	panic(fmt.Sprintf("unexpected %T", f))
}
