package petri

var _ Node = (*Place)(nil)

// DefaultCapacity is used for places declared without a capacity.
const DefaultCapacity = 1

// Place represents a place.
type Place struct {
	// Name is the name of the place
	Name string `json:"name" yaml:"name"`
	// Capacity is the maximum number of tokens that can be in this place
	Capacity int `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	// Initial is the number of tokens in the place in the initial marking
	Initial int `json:"initial,omitempty" yaml:"initial,omitempty"`
}

// NewPlace creates a new place.
func NewPlace(name string, capacity int, initial ...int) *Place {
	p := &Place{
		Name:     name,
		Capacity: capacity,
	}
	if len(initial) > 0 {
		p.Initial = initial[0]
	}
	return p
}

func (p *Place) Kind() NodeKind { return PlaceNode }

func (p *Place) String() string { return p.Name }
