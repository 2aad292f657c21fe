package petri

var _ Node = (*Transition)(nil)

// Transition represents a transition
type Transition struct {
	Name string `json:"name" yaml:"name"`
}

func NewTransition(name string) *Transition {
	return &Transition{
		Name: name,
	}
}

func (t *Transition) Kind() NodeKind { return TransitionNode }

func (t *Transition) String() string { return t.Name }
