package petri

type NodeKind int

const (
	PlaceNode NodeKind = iota
	TransitionNode
)

func (k NodeKind) String() string {
	switch k {
	case PlaceNode:
		return "place"
	case TransitionNode:
		return "transition"
	}
	return "unknown"
}

// Node is either a *Place or a *Transition.
type Node interface {
	Kind() NodeKind
	String() string
}
