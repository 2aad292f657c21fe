package graphviz

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz/cgraph"
	"github.com/jt05610/petrisym"
)

// Reader builds nets from graphs rendered by Writer: circles are places,
// boxes are transitions and edge labels are arc weights.
type Reader struct {
	*Config
	mappingOpp  map[string]petri.Node
	g           *cgraph.Graph
	places      []*petri.Place
	transitions []*petri.Transition
	arcs        []*petri.Arc
}

// parsePlace reads a label written by placeLabel. A label without the
// marking suffix is a place with default capacity.
func parsePlace(label string) (*petri.Place, error) {
	i := strings.LastIndex(label, " ")
	if i < 0 {
		return petri.NewPlace(label, 0), nil
	}
	initial, capacity, ok := strings.Cut(label[i+1:], "/")
	if !ok {
		return petri.NewPlace(label, 0), nil
	}
	m, err := strconv.Atoi(initial)
	if err != nil {
		return nil, fmt.Errorf("place %s: %w", label, err)
	}
	c, err := strconv.Atoi(capacity)
	if err != nil {
		return nil, fmt.Errorf("place %s: %w", label, err)
	}
	return petri.NewPlace(label[:i], c, m), nil
}

func (r *Reader) Load(reader io.Reader) (*petri.Net, error) {
	bytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	r.g, err = cgraph.ParseBytes(bytes)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.g.Close()
	}()
	node := r.g.FirstNode()
	for node != nil {
		switch node.Get("shape") {
		case "circle":
			p, err := parsePlace(node.Get("label"))
			if err != nil {
				return nil, err
			}
			r.places = append(r.places, p)
			r.mappingOpp[node.Name()] = p
		case "box":
			t := petri.NewTransition(node.Get("label"))
			r.transitions = append(r.transitions, t)
			r.mappingOpp[node.Name()] = t
		}
		node = r.g.NextNode(node)
	}
	n := r.g.FirstNode()
	for n != nil {
		edge := r.g.FirstOut(n)
		for edge != nil {
			weight := 1
			if l := edge.Get("label"); l != "" {
				if weight, err = strconv.Atoi(l); err != nil {
					return nil, fmt.Errorf("edge from %s: %w", n.Name(), err)
				}
			}
			src := r.mappingOpp[n.Name()]
			dst := r.mappingOpp[edge.Node().Name()]
			r.arcs = append(r.arcs, petri.NewArc(src, dst, weight))
			edge = r.g.NextOut(edge)
		}
		n = r.g.NextNode(n)
	}
	name := ""
	if r.Config != nil {
		name = r.Name
	}
	return petri.New(r.places, r.transitions, r.arcs, name)
}

func Loader() *Reader {
	return &Reader{
		mappingOpp:  make(map[string]petri.Node),
		places:      make([]*petri.Place, 0),
		transitions: make([]*petri.Transition, 0),
		arcs:        make([]*petri.Arc, 0),
	}
}
