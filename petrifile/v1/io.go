package petrifile

import (
	"fmt"
	"sort"

	"github.com/jt05610/petrisym"
	"github.com/jt05610/petrisym/petrifile"
	"gopkg.in/yaml.v3"
)

// Arcs maps place names to arc weights. In a file it is written either as a
// mapping, as a list of place names or as a single place name, the last two
// with weight 1.
type Arcs map[string]int

func (a *Arcs) UnmarshalYAML(value *yaml.Node) error {
	ret := make(Arcs)
	switch value.Kind {
	case yaml.ScalarNode:
		ret[value.Value] = 1
	case yaml.SequenceNode:
		var names []string
		if err := value.Decode(&names); err != nil {
			return err
		}
		for _, n := range names {
			ret[n]++
		}
	case yaml.MappingNode:
		var weights map[string]int
		if err := value.Decode(&weights); err != nil {
			return err
		}
		for k, v := range weights {
			ret[k] = v
		}
	default:
		return fmt.Errorf("line %d: arcs must be a place name, a list or a mapping", value.Line)
	}
	*a = ret
	return nil
}

type Transition struct {
	Name    string `yaml:"name"`
	Inputs  Arcs   `yaml:"inputs,omitempty"`
	Outputs Arcs   `yaml:"outputs,omitempty"`
}

type Petrifile struct {
	Petri       petrifile.Version `yaml:"petri"`
	Name        string            `yaml:"name"`
	Places      []petri.Place     `yaml:"places"`
	Transitions []Transition      `yaml:"transitions"`
	Queries     []petrifile.Query `yaml:"queries,omitempty"`
}

func sortedKeys(a Arcs) []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Net builds the net described by the file.
func (p *Petrifile) Net() (*petri.Net, error) {
	if p.Petri != "" && p.Petri != petrifile.V1 {
		return nil, fmt.Errorf("%q: %w", p.Petri, petrifile.ErrVersion)
	}
	pp := make([]*petri.Place, len(p.Places))
	byName := make(map[string]*petri.Place, len(p.Places))
	for i := range p.Places {
		pl := p.Places[i]
		pp[i] = &pl
		byName[pl.Name] = pp[i]
	}
	tt := make([]*petri.Transition, len(p.Transitions))
	var aa []*petri.Arc
	for i, t := range p.Transitions {
		tt[i] = petri.NewTransition(t.Name)
		for _, name := range sortedKeys(t.Inputs) {
			pl, err := lookup(byName, name, t.Name)
			if err != nil {
				return nil, err
			}
			aa = append(aa, petri.NewArc(pl, tt[i], t.Inputs[name]))
		}
		for _, name := range sortedKeys(t.Outputs) {
			pl, err := lookup(byName, name, t.Name)
			if err != nil {
				return nil, err
			}
			aa = append(aa, petri.NewArc(tt[i], pl, t.Outputs[name]))
		}
	}
	return petri.New(pp, tt, aa, p.Name)
}

func lookup(places map[string]*petri.Place, name, transition string) (*petri.Place, error) {
	pl, ok := places[name]
	if !ok {
		return nil, fmt.Errorf("transition %s uses place %s: %w", transition, name, petri.ErrUnknownNode)
	}
	return pl, nil
}

// FromFile describes a net and its queries.
func FromFile(f *petrifile.File) *Petrifile {
	net := f.Net
	p := &Petrifile{
		Petri:       petrifile.V1,
		Name:        net.Name,
		Places:      make([]petri.Place, len(net.Places)),
		Transitions: make([]Transition, len(net.Transitions)),
		Queries:     f.Queries,
	}
	for i, pl := range net.Places {
		p.Places[i] = *pl
	}
	for i, t := range net.Transitions {
		p.Transitions[i] = Transition{
			Name:    t.Name,
			Inputs:  weights(net, net.InputMarking(i)),
			Outputs: weights(net, net.OutputMarking(i)),
		}
	}
	return p
}

func weights(net *petri.Net, m petri.Marking) Arcs {
	ret := make(Arcs)
	for name, w := range net.MarkingMap(m) {
		ret[name] = w
	}
	if len(ret) == 0 {
		return nil
	}
	return ret
}
