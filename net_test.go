package petri_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/examples"
)

// ExampleNew builds a cookie machine: a coin dropped in the slot buys one of
// the stored cookies.
func ExampleNew() {
	coinSlot := petri.NewPlace("Coin Slot", 1)
	compartment := petri.NewPlace("Compartment", 1)
	cashBox := petri.NewPlace("Cash Box", 5)
	storage := petri.NewPlace("Storage", 5, 5)

	insert := petri.NewTransition("insert")
	accept := petri.NewTransition("accept")
	take := petri.NewTransition("take")

	net, err := petri.New(
		[]*petri.Place{coinSlot, compartment, cashBox, storage},
		[]*petri.Transition{insert, accept, take},
		[]*petri.Arc{
			petri.NewArc(insert, coinSlot),
			petri.NewArc(coinSlot, accept),
			petri.NewArc(storage, accept),
			petri.NewArc(accept, cashBox),
			petri.NewArc(accept, compartment),
			petri.NewArc(compartment, take),
		},
		"cookies",
	)
	if err != nil {
		panic(err)
	}
	m := net.Initial()
	fmt.Println(net.FormatMarking(m))
	for _, name := range []string{"insert", "accept", "insert"} {
		t, _ := net.TransitionIndex(name)
		m, _ = net.Fire(t, m, net.Capacity())
		fmt.Println(net.FormatMarking(m))
	}
	t, _ := net.TransitionIndex("insert")
	_, ok := net.Fire(t, m, net.Capacity())
	fmt.Println("slot full:", !ok)
	// Output:
	// {Storage: 5}
	// {Coin Slot: 1, Storage: 5}
	// {Compartment: 1, Cash Box: 1, Storage: 4}
	// {Coin Slot: 1, Compartment: 1, Cash Box: 1, Storage: 4}
	// slot full: true
}

func TestNewErrors(t *testing.T) {
	a, b := petri.NewPlace("a", 1), petri.NewPlace("b", 1)
	x := petri.NewTransition("x")
	cases := []struct {
		name   string
		places []*petri.Place
		arcs   []*petri.Arc
		err    error
	}{
		{"place to place", []*petri.Place{a, b}, []*petri.Arc{petri.NewArc(a, b)}, petri.ErrPlaceTransitionArc},
		{"duplicate arc", []*petri.Place{a}, []*petri.Arc{petri.NewArc(a, x), petri.NewArc(a, x, 2)}, petri.ErrDuplicateArc},
		{"unknown place", []*petri.Place{a}, []*petri.Arc{petri.NewArc(x, b)}, petri.ErrUnknownNode},
		{"negative weight", []*petri.Place{a}, []*petri.Arc{petri.NewArc(a, x, -1)}, petri.ErrBadWeight},
		{"duplicate place", []*petri.Place{a, a}, nil, petri.ErrDuplicateNode},
		{"over capacity", []*petri.Place{petri.NewPlace("c", 1, 2)}, nil, petri.ErrBadCapacity},
		{"negative capacity", []*petri.Place{petri.NewPlace("c", -1)}, nil, petri.ErrBadCapacity},
	}
	for _, c := range cases {
		_, err := petri.New(c.places, []*petri.Transition{x}, c.arcs)
		if !errors.Is(err, c.err) {
			t.Errorf("%s: expected %v, got %v", c.name, c.err, err)
		}
	}
	net, err := petri.New([]*petri.Place{a, b}, []*petri.Transition{x}, []*petri.Arc{petri.NewArc(a, x), petri.NewArc(x, a)})
	if err != nil {
		t.Fatal(err)
	}
	if net.Place("a").Capacity != petri.DefaultCapacity {
		t.Errorf("expected default capacity, got %d", net.Place("a").Capacity)
	}
	if len(net.Inputs(x)) != 1 || len(net.Outputs(x)) != 1 || net.Arc(a, x) == nil {
		t.Error("arcs not indexed")
	}
}

func TestNewMarking(t *testing.T) {
	net := examples.Mutex()
	m, err := net.NewMarking(map[string]int{"crit1": 1, "idle2": 1})
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(petri.Marking{0, 1, 1, 0, 0}) {
		t.Errorf("unexpected marking %s", m)
	}
	if _, err := net.NewMarking(map[string]int{"crit3": 1}); !errors.Is(err, petri.ErrUnknownPlace) {
		t.Errorf("expected unknown place, got %v", err)
	}
	if err := net.Check(petri.Marking{1, 2}); !errors.Is(err, petri.ErrMarkingSize) {
		t.Errorf("expected size error, got %v", err)
	}
	if _, err := net.NewMarking(map[string]int{"idle1": 2, "mutex": 1}); !errors.Is(err, petri.ErrBadCapacity) {
		t.Errorf("expected capacity error, got %v", err)
	}
	if err := net.Check(petri.Marking{2, 0, 0, 0, 1}); !errors.Is(err, petri.ErrBadCapacity) {
		t.Errorf("expected capacity error, got %v", err)
	}
	if err := net.Check(net.Capacity()); err != nil {
		t.Errorf("capacity is a marking of the net, got %v", err)
	}
}

func TestFireRevert(t *testing.T) {
	net := examples.ProducerConsumer()
	capacity := net.Capacity()
	for _, m := range all(capacity) {
		for tr := range net.Transitions {
			pre, post := net.InputMarking(tr), net.OutputMarking(tr)
			if next, ok := net.Fire(tr, m, capacity); ok {
				if !next.Leq(capacity) || !m.Geq(pre) {
					t.Fatalf("%s fired from %s to %s", net.Transitions[tr], m, next)
				}
				back, ok := net.Revert(next, tr, capacity)
				if !ok || !back.Leq(m) {
					t.Fatalf("%s: reverting %s gave %s, expected below %s", net.Transitions[tr], next, back, m)
				}
			}
			r, ok := net.Revert(m, tr, capacity)
			if !ok {
				continue
			}
			next, ok := net.Fire(tr, r, capacity)
			if !ok {
				continue
			}
			for p := range m {
				if next[p] < m[p] || m[p] >= post[p] && next[p] != m[p] {
					t.Fatalf("%s: firing %s reverted from %s gave %s", net.Transitions[tr], r, m, next)
				}
			}
		}
	}
}

func TestRevertAll(t *testing.T) {
	net := examples.ProducerConsumer()
	capacity := net.Capacity()
	states := all(capacity)
	for _, m := range states {
		preds := net.RevertAll(m, capacity)
		for _, r := range preds {
			if !r.Leq(capacity) {
				t.Fatalf("reverting %s gave %s over capacity", m, r)
			}
			reaches := false
			for tr := range net.Transitions {
				if next, ok := net.Fire(tr, r, capacity); ok && next.Geq(m) {
					reaches = true
				}
			}
			if !reaches {
				t.Fatalf("no transition fires from %s, reverted from %s, to cover it", r, m)
			}
		}
		// every marking firing into the cone of m lies above some reverted one
		for _, m0 := range states {
			covers := false
			for _, next := range net.Successors(m0, capacity) {
				covers = covers || next.Geq(m)
			}
			if !covers {
				continue
			}
			below := false
			for _, r := range preds {
				below = below || r.Leq(m0)
			}
			if !below {
				t.Fatalf("%s fires above %s but lies above none of %v", m0, m, preds)
			}
		}
	}
	var ms []petri.Marking
	want := make(map[string]bool)
	for _, m := range states {
		if m[1] < 2 {
			continue
		}
		ms = append(ms, m)
		for _, r := range net.RevertAll(m, capacity) {
			want[r.Key()] = true
		}
	}
	got := net.RevertSet(ms, capacity)
	if len(got) != len(want) {
		t.Fatalf("expected %d distinct predecessors, got %d: %v", len(want), len(got), got)
	}
	for _, r := range got {
		if !want[r.Key()] {
			t.Errorf("unexpected predecessor %s", r)
		}
	}
}

func TestCapacityBound(t *testing.T) {
	net := examples.ProducerConsumer()
	if got := net.CapacityBound(2); !got.Equal(petri.Capacity{1, 2, 1, 2}) {
		t.Errorf("unexpected bound %s", got)
	}
	if got := net.CapacityBound(net.MaxCapacity()); !got.Equal(net.Capacity()) {
		t.Errorf("bound at max capacity %s differs from %s", got, net.Capacity())
	}
	if !net.Capacity().Equal(petri.Capacity{1, 3, 1, 2}) {
		t.Errorf("capacity changed to %s", net.Capacity())
	}
}

func all(capacity petri.Capacity) []petri.Marking {
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
