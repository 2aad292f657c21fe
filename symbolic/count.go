package symbolic

import (
	"slices"

	"github.com/jt05610/petrisym"
	"github.com/shopspring/decimal"
)

// Markings enumerates the markings of v bounded by capacity, in Compare order.
func (v Vector) Markings(capacity petri.Capacity) []petri.Marking {
	if v.IsEmpty() || !v.Inc.Leq(capacity) {
		return nil
	}
	var ret []petri.Marking
	m := v.Inc.Clone()
	for {
		if v.Contains(m) {
			ret = append(ret, m.Clone())
		}
		// odometer over the box [Inc, capacity], last place fastest
		p := len(m) - 1
		for ; p >= 0; p-- {
			if m[p] < capacity[p] {
				m[p]++
				break
			}
			m[p] = v.Inc[p]
		}
		if p < 0 {
			return ret
		}
	}
}

// Count is the number of markings of v bounded by capacity.
func (v Vector) Count(capacity petri.Capacity) decimal.Decimal {
	if v.IsEmpty() {
		return decimal.Zero
	}
	return countBox(v.Inc, v.Exc, capacity)
}

// countBox counts the markings between inc and capacity avoiding every
// exclusion, peeling one exclusion at a time by inclusion-exclusion. Each
// call first drops the exclusions that cannot change the count, so the
// recursion only branches on exclusions forming an antichain inside the box;
// the worst case stays exponential in their number.
func countBox(inc petri.Marking, exc []petri.Marking, capacity petri.Capacity) decimal.Decimal {
	if !inc.Leq(capacity) {
		return decimal.Zero
	}
	exc, empty := relevant(inc, exc, capacity)
	if empty {
		return decimal.Zero
	}
	if len(exc) == 0 {
		n := decimal.NewFromInt(1)
		for p := range inc {
			n = n.Mul(decimal.NewFromInt(int64(capacity[p] - inc[p] + 1)))
		}
		return n
	}
	last, rest := exc[len(exc)-1], exc[:len(exc)-1]
	return countBox(inc, rest, capacity).Sub(countBox(last, rest, capacity))
}

// relevant lifts the exclusions to inc and keeps the minimal ones lying
// within capacity. It reports true when an exclusion covers the whole box.
func relevant(inc petri.Marking, exc []petri.Marking, capacity petri.Capacity) ([]petri.Marking, bool) {
	lifted := make([]petri.Marking, 0, len(exc))
	for _, e := range exc {
		e = petri.Max(inc, e)
		if e.Equal(inc) {
			return nil, true
		}
		if e.Leq(capacity) {
			lifted = append(lifted, e)
		}
	}
	ret := lifted[:0:0]
	for i, e := range lifted {
		redundant := false
		for j, f := range lifted {
			if j != i && f.Leq(e) && (!f.Equal(e) || j < i) {
				redundant = true
				break
			}
		}
		if !redundant {
			ret = append(ret, e)
		}
	}
	return ret, false
}

// Markings enumerates the markings of s bounded by capacity, in Compare order
// and without duplicates.
func (s *Set) Markings(capacity petri.Capacity) []petri.Marking {
	seen := make(map[string]bool)
	var ret []petri.Marking
	for _, v := range s.vectors {
		for _, m := range v.Markings(capacity) {
			if seen[m.Key()] {
				continue
			}
			seen[m.Key()] = true
			ret = append(ret, m)
		}
	}
	slices.SortFunc(ret, petri.Marking.Compare)
	return ret
}

// Count is the number of markings of s bounded by capacity. Members are made
// pairwise disjoint with Subtract before their counts are added. Counting one
// vector costs up to 2^k box products for k exclusions that are pairwise
// incomparable within capacity, so sets with wide exclusion antichains are
// slow to count even when they are small to store.
func (s *Set) Count(capacity petri.Capacity) decimal.Decimal {
	var pieces []Vector
	for _, v := range s.vectors {
		pieces = append(pieces, subtractAll(v, pieces, None)...)
	}
	total := decimal.Zero
	for _, p := range pieces {
		total = total.Add(p.Count(capacity))
	}
	return total
}
