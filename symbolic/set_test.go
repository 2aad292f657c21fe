package symbolic_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/examples"
	"github.com/jt05610/petrisym/symbolic"
)

func ExampleSet_Simplified() {
	s := symbolic.NewSet(symbolic.None,
		symbolic.New(petri.Marking{0, 0}, petri.Marking{5, 5}),
		symbolic.New(petri.Marking{5, 5}, petri.Marking{10, 10}),
		symbolic.New(petri.Marking{10, 10}, petri.Marking{15, 15}),
	)
	fmt.Println(s.Len())
	fmt.Println(s.Simplified())
	// Output:
	// 3
	// {([0 0], [[15 15]])}
}

func ExampleSet_Not() {
	net := examples.Interval()
	n := len(net.Places)
	empty := symbolic.NewSet(symbolic.Semi)
	fmt.Println(empty.Not(n, symbolic.Semi))
	fmt.Println(symbolic.Universe(n).Not(n, symbolic.Semi))
	// Output:
	// {([0 0], [])}
	// {}
}

func ExampleDeadlock() {
	net := examples.Mutex()
	d := symbolic.Deadlock(net)
	fmt.Println(d)
	fmt.Println(d.Contains(net.Initial()), d.Contains(net.Zero()))
	// Output:
	// {([0 0 0 0 0], [[0 0 0 1 0] [0 0 1 0 1] [0 1 0 0 0] [1 0 0 0 1]])}
	// false true
}

func TestCanonicityLevels(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		vs := make([]symbolic.Vector, 1+r.Intn(5))
		for j := range vs {
			vs[j] = randomVector(r, 3, 3)
		}
		want := pred(func(m petri.Marking) bool {
			for _, v := range vs {
				if v.Contains(m) {
					return true
				}
			}
			return false
		})
		for _, c := range levels {
			s := symbolic.NewSet(c, vs...)
			if !sameMarkings(denoted(s, bound), denoted(want, bound)) {
				t.Fatalf("%s: inserting %v gave %s", c, vs, s)
			}
			if s.Len() > len(vs) && c == symbolic.Semi {
				t.Fatalf("semi-canonical set %s has more members than inserted", s)
			}
			if c != symbolic.Full {
				continue
			}
			members := s.Vectors()
			for j, a := range members {
				for _, b := range members[j+1:] {
					if a.Overlaps(b) {
						t.Fatalf("full set %s: %s and %s overlap", s, a, b)
					}
				}
			}
		}
	}
}

func TestSetAlgebra(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	for i := 0; i < 300; i++ {
		for _, c := range levels {
			a, b := randomSet(r, 3, 3, c), randomSet(r, 3, 3, c)
			checks := []struct {
				name string
				got  *symbolic.Set
				want pred
			}{
				{"union", a.Union(b, c), func(m petri.Marking) bool { return a.Contains(m) || b.Contains(m) }},
				{"intersection", a.Intersection(b, c), func(m petri.Marking) bool { return a.Contains(m) && b.Contains(m) }},
				{"subtract", a.Subtract(b, c), func(m petri.Marking) bool { return a.Contains(m) && !b.Contains(m) }},
				{"not", a.Not(3, c), func(m petri.Marking) bool { return !a.Contains(m) }},
				{"simplified", a.Simplified(), a.Contains},
			}
			for _, check := range checks {
				if !sameMarkings(denoted(check.got, bound), denoted(check.want, bound)) {
					t.Fatalf("%s %s of %s and %s gave %s", c, check.name, a, b, check.got)
				}
			}
			included := len(denoted(a.Subtract(b, c), bound)) == 0
			if a.IsIncluded(b) != included {
				t.Fatalf("%s included in %s: got %v", a, b, a.IsIncluded(b))
			}
			if a.IsIncluded(b) != a.Intersection(b.Not(3, c), c).IsEmpty() {
				t.Fatalf("%s included in %s disagrees with intersection of the complement", a, b)
			}
			if !a.IsEquiv(a.Simplified()) {
				t.Fatalf("%s is not equivalent to its simplification", a)
			}
		}
	}
}

func TestSetRevert(t *testing.T) {
	net := examples.ProducerConsumer()
	capacity := net.Capacity()
	r := rand.New(rand.NewSource(9))
	for i := 0; i < 100; i++ {
		for _, c := range levels {
			s := randomSet(r, 4, 3, c)
			some := pred(func(m petri.Marking) bool {
				for _, next := range net.Successors(m, capacity) {
					if s.Contains(next) {
						return true
					}
				}
				return false
			})
			all := pred(func(m petri.Marking) bool {
				for _, next := range net.Successors(m, capacity) {
					if !s.Contains(next) {
						return false
					}
				}
				return true
			})
			if got := s.Revert(net, capacity, c); !sameMarkings(denoted(got, capacity), denoted(some, capacity)) {
				t.Fatalf("%s revert of %s gave %s", c, s, got)
			}
			if got := s.RevertTilde(net, capacity, c); !sameMarkings(denoted(got, capacity), denoted(all, capacity)) {
				t.Fatalf("%s revert tilde of %s gave %s", c, s, got)
			}
		}
	}
}

func TestCount(t *testing.T) {
	r := rand.New(rand.NewSource(10))
	for i := 0; i < 200; i++ {
		s := randomSet(r, 3, 3, symbolic.None)
		want := len(s.Markings(bound))
		if got := s.Count(bound).IntPart(); got != int64(want) {
			t.Fatalf("%s: count %d, expected %d", s, got, want)
		}
		if !sameMarkings(denoted(s, bound), denoted(pred(func(m petri.Marking) bool {
			for _, x := range s.Markings(bound) {
				if x.Equal(m) {
					return true
				}
			}
			return false
		}), bound)) {
			t.Fatalf("%s: markings do not match contains", s)
		}
	}
	if got := symbolic.Universe(3).Count(bound).String(); got != "125" {
		t.Errorf("expected 125 markings, got %s", got)
	}
	for i := 0; i < 200; i++ {
		v := randomVector(r, 3, 5)
		if got, want := v.Count(bound).IntPart(), len(denoted(v, bound)); got != int64(want) {
			t.Fatalf("%s: count %d, expected %d", v, got, want)
		}
	}
}

func TestCountRedundantExclusions(t *testing.T) {
	v := symbolic.Vector{Inc: petri.Zero(3), Exc: []petri.Marking{{1, 1, 1}}}
	for i := 0; i < 40; i++ {
		// above {1, 1, 1} or outside the capacity box
		v.Exc = append(v.Exc, petri.Marking{1 + i%4, 1 + i/4%4, 1 + i/16}, petri.Marking{5 + i, 0, 0})
	}
	if got := v.Count(bound).String(); got != "61" {
		t.Errorf("expected 61 markings, got %s", got)
	}
}

func TestParseCanonicity(t *testing.T) {
	for _, c := range levels {
		got, err := symbolic.ParseCanonicity(c.String())
		if err != nil || got != c {
			t.Errorf("%s: got %v, %v", c, got, err)
		}
	}
	if _, err := symbolic.ParseCanonicity("eager"); err == nil {
		t.Error("expected an error")
	}
}
