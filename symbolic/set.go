package symbolic

import (
	"slices"
	"strings"

	"github.com/jt05610/petrisym"
)

// Set is a finite union of vectors. The zero value is the empty set.
//
// The canonicity a set was built with is not recorded: every operation takes
// the level to use for the set it returns.
type Set struct {
	vectors []Vector
	keys    map[string]struct{}
}

// NewSet inserts the vectors one by one at the given canonicity.
func NewSet(c Canonicity, vs ...Vector) *Set {
	s := &Set{}
	for _, v := range vs {
		s.insert(v, c)
	}
	return s
}

// Universe is the set of all markings over n places.
func Universe(n int) *Set {
	return NewSet(None, All(n))
}

// Deadlock is the set of markings in which no transition holds its
// precondition.
func Deadlock(net *petri.Net) *Set {
	exc := make([]petri.Marking, len(net.Transitions))
	for t := range net.Transitions {
		exc[t] = net.InputMarking(t)
	}
	return NewSet(None, New(net.Zero(), exc...))
}

func (s *Set) Len() int {
	return len(s.vectors)
}

func (s *Set) IsEmpty() bool {
	return len(s.vectors) == 0
}

// Vectors returns the members of s.
func (s *Set) Vectors() []Vector {
	return slices.Clone(s.vectors)
}

func (s *Set) String() string {
	parts := make([]string, len(s.vectors))
	for i, v := range s.sorted() {
		parts[i] = v.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *Set) sorted() []Vector {
	vs := slices.Clone(s.vectors)
	slices.SortFunc(vs, func(a, b Vector) int {
		if c := a.Inc.Compare(b.Inc); c != 0 {
			return c
		}
		return strings.Compare(a.Key(), b.Key())
	})
	return vs
}

// Equal compares the members of two sets, not the denoted markings. Use
// IsEquiv for the latter.
func (s *Set) Equal(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, v := range o.vectors {
		if !s.has(v) {
			return false
		}
	}
	return true
}

func (s *Set) clone() *Set {
	r := &Set{
		vectors: slices.Clone(s.vectors),
		keys:    make(map[string]struct{}, len(s.vectors)),
	}
	for _, v := range s.vectors {
		r.keys[v.Key()] = struct{}{}
	}
	return r
}

func (s *Set) has(v Vector) bool {
	_, ok := s.keys[v.Key()]
	return ok
}

func (s *Set) put(v Vector) {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	if s.has(v) {
		return
	}
	s.keys[v.Key()] = struct{}{}
	s.vectors = append(s.vectors, v)
}

func (s *Set) remove(i int) {
	delete(s.keys, s.vectors[i].Key())
	s.vectors = slices.Delete(s.vectors, i, i+1)
}

func (s *Set) replace(i int, v Vector) {
	s.remove(i)
	s.put(v)
}

func (s *Set) insert(v Vector, c Canonicity) {
	v = v.Canonised()
	if v.IsEmpty() || s.has(v) {
		return
	}
	switch c {
	case None:
		s.put(v)
	case Semi:
		s.mergeInsert(v)
	default:
		queue := []Vector{v}
		for len(queue) > 0 {
			x := queue[len(queue)-1]
			queue = append(queue[:len(queue)-1], s.fullInsert(x)...)
		}
	}
}

func (s *Set) mergeInsert(v Vector) {
	for i := 0; i < len(s.vectors); {
		if x := s.vectors[i]; x.Mergeable(v) {
			v = mustMerge(x, v)
			s.remove(i)
			i = 0
			continue
		}
		i++
	}
	s.put(v)
}

// fullInsert returns the pieces of v left to insert once the part of v
// overlapping a member has been cut away.
func (s *Set) fullInsert(v Vector) []Vector {
	if s.has(v) {
		return nil
	}
	for _, x := range s.vectors {
		if v.Overlaps(x) {
			return v.Subtract(x)
		}
	}
	s.disjointInsert(v)
	return nil
}

// disjointInsert inserts a vector that overlaps no member.
func (s *Set) disjointInsert(v Vector) {
	s.mergeInsert(v)
	i := slices.IndexFunc(s.vectors, func(x Vector) bool { return x.Equal(v) })
	if i < 0 {
		// merged into a larger member
		return
	}
	s.remove(i)
	for j, x := range s.vectors {
		if part, ok := v.SharingPart(x); ok {
			s.replace(j, mustMerge(x, part))
			for _, rest := range v.Subtract(part) {
				s.disjointInsert(rest)
			}
			return
		}
	}
	s.put(v)
}

// Add returns s with v inserted.
func (s *Set) Add(v Vector, c Canonicity) *Set {
	r := s.clone()
	r.insert(v, c)
	return r
}

func (s *Set) Union(o *Set, c Canonicity) *Set {
	r := s.clone()
	for _, v := range o.vectors {
		r.insert(v, c)
	}
	return r
}

func (s *Set) Intersection(o *Set, c Canonicity) *Set {
	r := &Set{}
	for _, a := range s.vectors {
		for _, b := range o.vectors {
			r.insert(a.Intersection(b), c)
		}
	}
	return r
}

// Subtract removes the markings of o from s, one member of o at a time.
func (s *Set) Subtract(o *Set, c Canonicity) *Set {
	r := &Set{}
	for _, a := range s.vectors {
		for _, p := range subtractAll(a, o.vectors, c) {
			r.insert(p, c)
		}
	}
	return r
}

func subtractAll(a Vector, bs []Vector, c Canonicity) []Vector {
	pieces := []Vector{a}
	for _, b := range bs {
		next := &Set{}
		for _, p := range pieces {
			for _, q := range p.Subtract(b) {
				next.insert(q, min(c, Semi))
			}
		}
		pieces = next.vectors
		if len(pieces) == 0 {
			break
		}
	}
	return pieces
}

// Not is the complement of s among all markings over n places. It is one
// subtraction from the universe rather than a complement of every member.
func (s *Set) Not(n int, c Canonicity) *Set {
	return Universe(n).Subtract(s, c)
}

// IsIncluded reports whether every marking of s is in o.
func (s *Set) IsIncluded(o *Set) bool {
	for _, a := range s.vectors {
		if len(subtractAll(a, o.vectors, None)) > 0 {
			return false
		}
	}
	return true
}

// IsEquiv reports whether s and o denote the same markings.
func (s *Set) IsEquiv(o *Set) bool {
	return s.IsIncluded(o) && o.IsIncluded(s)
}

func (s *Set) Contains(m petri.Marking) bool {
	for _, v := range s.vectors {
		if v.Contains(m) {
			return true
		}
	}
	return false
}

// Simplified merges members pairwise until no pair is mergeable, then drops
// the members covered by the others. The result denotes the same markings;
// it depends on the order of the members and is not unique.
func (s *Set) Simplified() *Set {
	vs := make([]Vector, 0, len(s.vectors))
	for _, v := range s.vectors {
		if v = v.Canonised(); !v.IsEmpty() {
			vs = append(vs, v)
		}
	}
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(vs) && !changed; i++ {
			for j := i + 1; j < len(vs); j++ {
				if vs[i].Mergeable(vs[j]) {
					vs[i] = mustMerge(vs[i], vs[j])
					vs = slices.Delete(vs, j, j+1)
					changed = true
					break
				}
			}
		}
	}
	for i := 0; i < len(vs); {
		others := slices.Delete(slices.Clone(vs), i, i+1)
		if len(subtractAll(vs[i], others, None)) == 0 {
			vs = others
			continue
		}
		i++
	}
	return NewSet(None, vs...)
}

// Revert is the backward image of s through every transition within capacity.
func (s *Set) Revert(net *petri.Net, capacity petri.Capacity, c Canonicity) *Set {
	r := &Set{}
	for _, v := range s.vectors {
		for _, p := range v.RevertAll(net, capacity, c).vectors {
			r.insert(p, c)
		}
	}
	return r
}

// RevertTilde is the set of markings all of whose successors are in s,
// computed as the complement of the backward image of the complement.
func (s *Set) RevertTilde(net *petri.Net, capacity petri.Capacity, c Canonicity) *Set {
	n := len(net.Places)
	return s.Not(n, c).Revert(net, capacity, c).Not(n, c)
}
