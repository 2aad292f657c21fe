package petri

import (
	"fmt"

	"github.com/google/uuid"
)

// Net is an immutable place/transition net with weighted arcs and bounded places.
type Net struct {
	ID          string
	Name        string
	Places      []*Place
	Transitions []*Transition
	Arcs        []*Arc
	inputs      map[string][]*Arc
	outputs     map[string][]*Arc
	places      map[string]int
	transitions map[string]int
	// pre[t][p] and post[t][p] are the arc weights from p to t and from t to p.
	pre  []Marking
	post []Marking
}

// New builds a net, checking that every arc joins a place and a transition of
// the net and that no arc is declared twice. Places without a capacity get
// DefaultCapacity.
func New(places []*Place, transitions []*Transition, arcs []*Arc, name ...string) (*Net, error) {
	nn := ""
	if len(name) > 0 {
		nn = name[0]
	}
	net := &Net{
		ID:          uuid.NewString(),
		Name:        nn,
		Places:      make([]*Place, len(places)),
		Transitions: make([]*Transition, len(transitions)),
		Arcs:        make([]*Arc, 0, len(arcs)),
		inputs:      make(map[string][]*Arc),
		outputs:     make(map[string][]*Arc),
		places:      make(map[string]int, len(places)),
		transitions: make(map[string]int, len(transitions)),
		pre:         make([]Marking, len(transitions)),
		post:        make([]Marking, len(transitions)),
	}
	for i, p := range places {
		if _, found := net.places[p.Name]; found {
			return nil, fmt.Errorf("place %s: %w", p.Name, ErrDuplicateNode)
		}
		pl := *p
		if pl.Capacity == 0 {
			pl.Capacity = DefaultCapacity
		}
		if pl.Capacity < 0 {
			return nil, fmt.Errorf("place %s has capacity %d: %w", p.Name, p.Capacity, ErrBadCapacity)
		}
		if pl.Initial < 0 || pl.Initial > pl.Capacity {
			return nil, fmt.Errorf("place %s starts with %d tokens over capacity %d: %w", p.Name, pl.Initial, pl.Capacity, ErrBadCapacity)
		}
		net.Places[i] = &pl
		net.places[p.Name] = i
	}
	for i, t := range transitions {
		if _, found := net.transitions[t.Name]; found {
			return nil, fmt.Errorf("transition %s: %w", t.Name, ErrDuplicateNode)
		}
		net.Transitions[i] = &Transition{Name: t.Name}
		net.transitions[t.Name] = i
		net.pre[i] = Zero(len(places))
		net.post[i] = Zero(len(places))
	}
	for _, a := range arcs {
		if err := net.addArc(a); err != nil {
			return nil, err
		}
	}
	return net, nil
}

func (net *Net) addArc(a *Arc) error {
	if a.Src.Kind() == a.Dest.Kind() {
		return fmt.Errorf("%s to %s: %w", a.Src, a.Dest, ErrPlaceTransitionArc)
	}
	if a.Weight < 0 {
		return fmt.Errorf("%s: %w", a, ErrBadWeight)
	}
	pn, tn := a.Src, a.Dest
	if pn.Kind() == TransitionNode {
		pn, tn = tn, pn
	}
	p, ok := net.places[pn.String()]
	if !ok {
		return fmt.Errorf("place %s: %w", pn, ErrUnknownNode)
	}
	t, ok := net.transitions[tn.String()]
	if !ok {
		return fmt.Errorf("transition %s: %w", tn, ErrUnknownNode)
	}
	weights := net.post[t]
	if a.Src.Kind() == PlaceNode {
		weights = net.pre[t]
	}
	if weights[p] != 0 {
		return fmt.Errorf("%s: %w", a, ErrDuplicateArc)
	}
	weights[p] = a.weight()
	arc := &Arc{Weight: a.weight()}
	if a.Src.Kind() == PlaceNode {
		arc.Src, arc.Dest = net.Places[p], net.Transitions[t]
	} else {
		arc.Src, arc.Dest = net.Transitions[t], net.Places[p]
	}
	net.Arcs = append(net.Arcs, arc)
	net.outputs[arc.Src.String()] = append(net.outputs[arc.Src.String()], arc)
	net.inputs[arc.Dest.String()] = append(net.inputs[arc.Dest.String()], arc)
	return nil
}

func (net *Net) Arc(head, tail Node) *Arc {
	for _, arc := range net.outputs[head.String()] {
		if arc.Dest.String() == tail.String() && arc.Dest.Kind() == tail.Kind() {
			return arc
		}
	}
	return nil
}

func (net *Net) Inputs(n Node) []*Arc {
	var inputs []*Arc
	for _, a := range net.inputs[n.String()] {
		if a.Dest.Kind() == n.Kind() {
			inputs = append(inputs, a)
		}
	}
	return inputs
}

func (net *Net) Outputs(n Node) []*Arc {
	var outputs []*Arc
	for _, a := range net.outputs[n.String()] {
		if a.Src.Kind() == n.Kind() {
			outputs = append(outputs, a)
		}
	}
	return outputs
}

func (net *Net) Place(name string) *Place {
	if i, ok := net.places[name]; ok {
		return net.Places[i]
	}
	return nil
}

func (net *Net) PlaceIndex(name string) (int, bool) {
	i, ok := net.places[name]
	return i, ok
}

func (net *Net) Transition(name string) *Transition {
	if i, ok := net.transitions[name]; ok {
		return net.Transitions[i]
	}
	return nil
}

func (net *Net) TransitionIndex(name string) (int, bool) {
	i, ok := net.transitions[name]
	return i, ok
}

// InputMarking is the marking holding exactly the precondition weights of transition t.
func (net *Net) InputMarking(t int) Marking {
	return net.pre[t].Clone()
}

// OutputMarking is the marking holding exactly the postcondition weights of transition t.
func (net *Net) OutputMarking(t int) Marking {
	return net.post[t].Clone()
}

// Zero is the empty marking of the net.
func (net *Net) Zero() Marking {
	return Zero(len(net.Places))
}

// Initial is the marking given by the Initial field of every place.
func (net *Net) Initial() Marking {
	m := net.Zero()
	for i, p := range net.Places {
		m[i] = p.Initial
	}
	return m
}

// NewMarking builds a marking from token counts by place name. Places that
// are not mentioned hold no tokens. Counts above a place capacity are
// rejected.
func (net *Net) NewMarking(tokens map[string]int) (Marking, error) {
	m := net.Zero()
	for name, n := range tokens {
		i, ok := net.places[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, ErrUnknownPlace)
		}
		if n < 0 {
			return nil, fmt.Errorf("place %s holds %d tokens: %w", name, n, ErrMarkingSize)
		}
		if c := net.Places[i].Capacity; n > c {
			return nil, fmt.Errorf("place %s holds %d tokens over capacity %d: %w", name, n, c, ErrBadCapacity)
		}
		m[i] = n
	}
	return m, nil
}

// Check reports an error when m is not a marking of this net or exceeds its
// capacities.
func (net *Net) Check(m Marking) error {
	if len(m) != len(net.Places) {
		return fmt.Errorf("marking has %d places, net has %d: %w", len(m), len(net.Places), ErrMarkingSize)
	}
	for i, v := range m {
		if v < 0 {
			return fmt.Errorf("place %s holds %d tokens: %w", net.Places[i], v, ErrMarkingSize)
		}
		if c := net.Places[i].Capacity; v > c {
			return fmt.Errorf("place %s holds %d tokens over capacity %d: %w", net.Places[i], v, c, ErrBadCapacity)
		}
	}
	return nil
}

// MarkingMap names the token count of every marked place.
func (net *Net) MarkingMap(m Marking) map[string]int {
	ret := make(map[string]int)
	for i, p := range net.Places {
		if m[i] != 0 {
			ret[p.Name] = m[i]
		}
	}
	return ret
}

// Capacity returns a copy of the declared place capacities.
func (net *Net) Capacity() Capacity {
	c := net.Zero()
	for i, p := range net.Places {
		c[i] = p.Capacity
	}
	return c
}

// MaxCapacity is the largest declared place capacity.
func (net *Net) MaxCapacity() int {
	m := 0
	for _, p := range net.Places {
		m = max(m, p.Capacity)
	}
	return m
}

// CapacityBound clamps every place capacity to n.
func (net *Net) CapacityBound(n int) Capacity {
	c := net.Capacity()
	for i := range c {
		c[i] = min(c[i], n)
	}
	return c
}

// Enabled reports whether m holds the precondition of t, ignoring capacities.
func (net *Net) Enabled(t int, m Marking) bool {
	return net.pre[t].Leq(m)
}

// Fire fires t from m. It fails when a precondition is not met or when the
// resulting marking exceeds the capacity.
func (net *Net) Fire(t int, m Marking, capacity Capacity) (Marking, bool) {
	if !net.Enabled(t, m) {
		return nil, false
	}
	r := make(Marking, len(m))
	for p := range m {
		r[p] = m[p] - net.pre[t][p] + net.post[t][p]
		if r[p] > capacity[p] {
			return nil, false
		}
	}
	return r, true
}

// Successors fires every transition enabled in m.
func (net *Net) Successors(m Marking, capacity Capacity) []Marking {
	var ret []Marking
	for t := range net.Transitions {
		if r, ok := net.Fire(t, m, capacity); ok {
			ret = append(ret, r)
		}
	}
	return ret
}

// Revert computes the smallest marking from which firing t yields at least m.
// A place whose count does not exceed the postcondition weight is reset to
// the precondition weight, other places give back what t produced and
// consumed. It fails when m or the result exceeds the capacity.
func (net *Net) Revert(m Marking, t int, capacity Capacity) (Marking, bool) {
	r := make(Marking, len(m))
	for p := range m {
		if m[p] > capacity[p] {
			return nil, false
		}
		pre, post := net.pre[t][p], net.post[t][p]
		if m[p] <= post {
			r[p] = pre
		} else {
			r[p] = m[p] - post + pre
		}
		if r[p] > capacity[p] {
			return nil, false
		}
	}
	return r, true
}

// RevertAll reverts m through every transition.
func (net *Net) RevertAll(m Marking, capacity Capacity) []Marking {
	var ret []Marking
	seen := make(map[string]bool)
	for t := range net.Transitions {
		r, ok := net.Revert(m, t, capacity)
		if !ok || seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		ret = append(ret, r)
	}
	return ret
}

// RevertSet reverts every marking of ms through every transition.
func (net *Net) RevertSet(ms []Marking, capacity Capacity) []Marking {
	var ret []Marking
	seen := make(map[string]bool)
	for _, m := range ms {
		for _, r := range net.RevertAll(m, capacity) {
			if seen[r.Key()] {
				continue
			}
			seen[r.Key()] = true
			ret = append(ret, r)
		}
	}
	return ret
}

// FormatMarking renders m with place names, skipping empty places.
func (net *Net) FormatMarking(m Marking) string {
	s := "{"
	first := true
	for i, p := range net.Places {
		if m[i] == 0 {
			continue
		}
		if !first {
			s += ", "
		}
		first = false
		s += fmt.Sprintf("%s: %d", p.Name, m[i])
	}
	return s + "}"
}
