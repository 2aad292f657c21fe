// Package symbolic implements finite descriptions of possibly infinite sets
// of markings. A Vector denotes the markings above one inclusion marking that
// are not above any of its exclusion markings; a Set is a union of Vectors.
package symbolic

import (
	"slices"
	"strings"

	"github.com/jt05610/petrisym"
)

// Vector denotes { m | m >= Inc and not m >= e for every e in Exc }.
//
// Vectors returned by this package are canonical: no exclusion is below Inc,
// every exclusion is above Inc and the exclusions form an antichain sorted by
// petri.Marking.Compare. Operations never modify their operands.
type Vector struct {
	Inc petri.Marking
	Exc []petri.Marking
}

// New builds the canonical vector for the given inclusion and exclusions.
func New(inc petri.Marking, exc ...petri.Marking) Vector {
	return Raw(inc, exc...).Canonised()
}

// Raw builds a vector without canonising it.
func Raw(inc petri.Marking, exc ...petri.Marking) Vector {
	cp := make([]petri.Marking, len(exc))
	for i, e := range exc {
		cp[i] = e.Clone()
	}
	return Vector{Inc: inc.Clone(), Exc: cp}
}

// Empty is the canonical vector denoting no marking over n places.
func Empty(n int) Vector {
	return Vector{Inc: petri.Zero(n), Exc: []petri.Marking{petri.Zero(n)}}
}

// All is the vector denoting every marking over n places.
func All(n int) Vector {
	return Vector{Inc: petri.Zero(n)}
}

// FromMarking is the vector denoting exactly m.
func FromMarking(m petri.Marking) Vector {
	exc := make([]petri.Marking, len(m))
	for p := range m {
		e := m.Clone()
		e[p]++
		exc[p] = e
	}
	return New(m, exc...)
}

// Dim is the number of places the vector ranges over.
func (v Vector) Dim() int {
	return len(v.Inc)
}

// Contains reports whether m is in the denoted set.
func (v Vector) Contains(m petri.Marking) bool {
	if !m.Geq(v.Inc) {
		return false
	}
	for _, e := range v.Exc {
		if m.Geq(e) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether some exclusion covers the inclusion marking.
func (v Vector) IsEmpty() bool {
	for _, e := range v.Exc {
		if e.Leq(v.Inc) {
			return true
		}
	}
	return false
}

// Nes lifts every exclusion to the componentwise maximum with Inc.
func (v Vector) Nes() Vector {
	exc := make([]petri.Marking, len(v.Exc))
	for i, e := range v.Exc {
		exc[i] = petri.Max(v.Inc, e)
	}
	return Vector{Inc: v.Inc, Exc: exc}
}

// Mes keeps only the minimal exclusions, sorted and without duplicates.
func (v Vector) Mes() Vector {
	sorted := slices.Clone(v.Exc)
	slices.SortFunc(sorted, petri.Marking.Compare)
	exc := make([]petri.Marking, 0, len(sorted))
	for i, e := range sorted {
		if i > 0 && e.Equal(sorted[i-1]) {
			continue
		}
		minimal := true
		for _, f := range sorted {
			if f.Less(e) {
				minimal = false
				break
			}
		}
		if minimal {
			exc = append(exc, e)
		}
	}
	return Vector{Inc: v.Inc, Exc: exc}
}

// Canonised returns the canonical form of v, which is Empty when v denotes
// no marking.
func (v Vector) Canonised() Vector {
	if v.IsEmpty() {
		return Empty(v.Dim())
	}
	return v.Nes().Mes()
}

// Equal compares the representations of two vectors.
func (v Vector) Equal(o Vector) bool {
	if !v.Inc.Equal(o.Inc) || len(v.Exc) != len(o.Exc) {
		return false
	}
	for i := range v.Exc {
		if !v.Exc[i].Equal(o.Exc[i]) {
			return false
		}
	}
	return true
}

// Key identifies the representation of v. Canonical vectors denoting the
// same set share a key.
func (v Vector) Key() string {
	var sb strings.Builder
	sb.WriteString(v.Inc.Key())
	sb.WriteByte('|')
	for i, e := range v.Exc {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(e.Key())
	}
	return sb.String()
}

func (v Vector) String() string {
	exc := make([]string, len(v.Exc))
	for i, e := range v.Exc {
		exc[i] = e.String()
	}
	return "(" + v.Inc.String() + ", [" + strings.Join(exc, " ") + "])"
}

// Intersection keeps the markings denoted by both vectors.
func (v Vector) Intersection(o Vector) Vector {
	exc := make([]petri.Marking, 0, len(v.Exc)+len(o.Exc))
	exc = append(exc, v.Exc...)
	exc = append(exc, o.Exc...)
	return Vector{Inc: petri.Max(v.Inc, o.Inc), Exc: exc}.Canonised()
}

// Overlaps reports whether some marking is denoted by both vectors.
func (v Vector) Overlaps(o Vector) bool {
	return !v.Intersection(o).IsEmpty()
}

// orient orders the vectors so that the first has the smaller inclusion.
func orient(v, o Vector) (outer, inner Vector, ok bool) {
	switch {
	case v.Inc.Leq(o.Inc):
		return v, o, true
	case o.Inc.Leq(v.Inc):
		return o, v, true
	}
	return v, o, false
}

// Mergeable reports whether the union of v and o is denoted by one vector.
// It holds when one inclusion is below the other and every exclusion of the
// outer vector that does not lie above the inner inclusion is also excluded
// by the inner vector.
func (v Vector) Mergeable(o Vector) bool {
	if v.IsEmpty() || o.IsEmpty() {
		return true
	}
	outer, inner, ok := orient(v, o)
	if !ok {
		return false
	}
	for _, qb := range outer.Exc {
		if qb.Geq(inner.Inc) {
			continue
		}
		if !inner.excludes(petri.Max(qb, inner.Inc)) {
			return false
		}
	}
	return true
}

// excludes reports whether some exclusion is below m.
func (v Vector) excludes(m petri.Marking) bool {
	for _, e := range v.Exc {
		if e.Leq(m) {
			return true
		}
	}
	return false
}

// Merge coalesces v and o into one vector when they are mergeable and returns
// both unchanged otherwise.
func (v Vector) Merge(o Vector) []Vector {
	if !v.Mergeable(o) {
		return []Vector{v, o}
	}
	if v.IsEmpty() {
		return []Vector{o.Canonised()}
	}
	if o.IsEmpty() {
		return []Vector{v.Canonised()}
	}
	outer, inner, _ := orient(v, o)
	exc := make([]petri.Marking, 0, len(outer.Exc)*max(1, len(inner.Exc)))
	for _, qb := range outer.Exc {
		if !qb.Geq(inner.Inc) {
			// disjoint from inner, still excluded from the union
			exc = append(exc, qb)
			continue
		}
		for _, e := range inner.Exc {
			exc = append(exc, petri.Max(qb, e))
		}
	}
	return []Vector{Vector{Inc: outer.Inc, Exc: exc}.Canonised()}
}

func mustMerge(v, o Vector) Vector {
	merged := v.Merge(o)
	if len(merged) != 1 {
		panic("symbolic: merging mergeable vectors " + v.String() + " and " + o.String() + " gave more than one vector")
	}
	return merged[0]
}

// SharingPart returns the part of v lying above the inclusion of o, which can
// be moved into o without changing the union, when that part is neither
// empty nor the whole of v.
func (v Vector) SharingPart(o Vector) (Vector, bool) {
	if v.IsEmpty() || o.IsEmpty() {
		return Vector{}, false
	}
	part := Vector{Inc: petri.Max(v.Inc, o.Inc), Exc: v.Exc}.Canonised()
	if part.IsEmpty() || part.Equal(v) || !o.Mergeable(part) {
		return Vector{}, false
	}
	return part, true
}

// Shareable reports whether v has a sharing part with o.
func (v Vector) Shareable(o Vector) bool {
	_, ok := v.SharingPart(o)
	return ok
}

// Subtract returns pairwise disjoint canonical vectors covering the markings
// of v that are not denoted by o. The first piece excludes the inclusion of o,
// the following ones cover the excluded corners of o in Compare order, each
// excluding the corners already handled.
func (v Vector) Subtract(o Vector) []Vector {
	v, o = v.Canonised(), o.Canonised()
	if v.IsEmpty() {
		return nil
	}
	if o.IsEmpty() {
		return []Vector{v}
	}
	var ret []Vector
	outside := make([]petri.Marking, 0, len(v.Exc)+1)
	outside = append(outside, v.Exc...)
	outside = append(outside, o.Inc)
	if piece := (Vector{Inc: v.Inc, Exc: outside}).Canonised(); !piece.IsEmpty() {
		ret = append(ret, piece)
	}
	acc := slices.Clone(v.Exc)
	for _, qd := range o.Exc {
		piece := Vector{Inc: petri.Max(v.Inc, qd), Exc: slices.Clone(acc)}.Canonised()
		if !piece.IsEmpty() {
			ret = append(ret, piece)
		}
		acc = append(acc, qd)
	}
	return ret
}

// IsIncluded reports whether every marking of v is denoted by o.
func (v Vector) IsIncluded(o Vector) bool {
	return len(v.Subtract(o)) == 0
}

// Revert is the backward image of v through transition t within capacity:
// the markings bounded by capacity from which t fires, stays within capacity
// and reaches v. It fails when no such marking exists.
func (v Vector) Revert(net *petri.Net, t int, capacity petri.Capacity) (Vector, bool) {
	if v.IsEmpty() {
		return Vector{}, false
	}
	inc, ok := net.Revert(v.Inc, t, capacity)
	if !ok {
		return Vector{}, false
	}
	n := v.Dim()
	exc := make([]petri.Marking, 0, len(v.Exc)+n)
	for _, e := range v.Exc {
		// exclusions out of capacity are vacuous
		if r, ok := net.Revert(e, t, capacity); ok {
			exc = append(exc, r)
		}
	}
	pre, post := net.InputMarking(t), net.OutputMarking(t)
	for p := 0; p < n; p++ {
		limit := min(capacity[p], capacity[p]+pre[p]-post[p])
		if limit < inc[p] {
			return Vector{}, false
		}
		exc = append(exc, petri.Unit(n, p, limit+1))
	}
	r := Vector{Inc: inc, Exc: exc}.Canonised()
	if r.IsEmpty() {
		return Vector{}, false
	}
	return r, true
}

// RevertAll is the backward image of v through every transition.
func (v Vector) RevertAll(net *petri.Net, capacity petri.Capacity, c Canonicity) *Set {
	s := &Set{}
	for t := range net.Transitions {
		if r, ok := v.Revert(net, t, capacity); ok {
			s.insert(r, c)
		}
	}
	return s
}
