package symbolic_test

import (
	"math/rand"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/symbolic"
)

type container interface {
	Contains(m petri.Marking) bool
}

// box enumerates every marking bounded by capacity.
func box(capacity petri.Capacity) []petri.Marking {
	ret := []petri.Marking{petri.Zero(len(capacity))}
	for p := range capacity {
		var next []petri.Marking
		for _, m := range ret {
			for v := 0; v <= capacity[p]; v++ {
				c := m.Clone()
				c[p] = v
				next = append(next, c)
			}
		}
		ret = next
	}
	return ret
}

func denoted(c container, capacity petri.Capacity) map[string]bool {
	ret := make(map[string]bool)
	for _, m := range box(capacity) {
		if c.Contains(m) {
			ret[m.Key()] = true
		}
	}
	return ret
}

func sameMarkings(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

type pred func(m petri.Marking) bool

func (f pred) Contains(m petri.Marking) bool { return f(m) }

func randomMarking(r *rand.Rand, n, hi int) petri.Marking {
	m := petri.Zero(n)
	for p := range m {
		m[p] = r.Intn(hi + 1)
	}
	return m
}

// randomVector builds a vector that is not canonised.
func randomVector(r *rand.Rand, n, hi int) symbolic.Vector {
	inc := randomMarking(r, n, hi-1)
	exc := make([]petri.Marking, r.Intn(4))
	for i := range exc {
		exc[i] = randomMarking(r, n, hi)
	}
	return symbolic.Raw(inc, exc...)
}

func randomSet(r *rand.Rand, n, hi int, c symbolic.Canonicity) *symbolic.Set {
	vs := make([]symbolic.Vector, r.Intn(4))
	for i := range vs {
		vs[i] = randomVector(r, n, hi)
	}
	return symbolic.NewSet(c, vs...)
}

var levels = []symbolic.Canonicity{symbolic.None, symbolic.Semi, symbolic.Full}
