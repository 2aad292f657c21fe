package petri

import "fmt"

// Arc is a weighted connection from a place to a transition or a transition to a place.
type Arc struct {
	// Src is the place or transition that is the source of the arc.
	Src Node
	// Dest is the place or transition that is the destination of the arc.
	Dest Node
	// Weight is the number of tokens moved along the arc when the transition fires. Zero means 1.
	Weight int
}

func NewArc(from, to Node, weight ...int) *Arc {
	a := &Arc{
		Src:  from,
		Dest: to,
	}
	if len(weight) > 0 {
		a.Weight = weight[0]
	}
	return a
}

// Place returns the place end of the arc.
func (a *Arc) Place() *Place {
	if p, ok := a.Src.(*Place); ok {
		return p
	}
	p, _ := a.Dest.(*Place)
	return p
}

// Transition returns the transition end of the arc.
func (a *Arc) Transition() *Transition {
	if t, ok := a.Src.(*Transition); ok {
		return t
	}
	t, _ := a.Dest.(*Transition)
	return t
}

func (a *Arc) String() string {
	return fmt.Sprintf("%s -%d-> %s", a.Src, a.weight(), a.Dest)
}

func (a *Arc) weight() int {
	if a.Weight == 0 {
		return 1
	}
	return a.Weight
}
