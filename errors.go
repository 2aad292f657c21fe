package petri

import "errors"

var (
	ErrPlaceTransitionArc = errors.New("cannot connect two places or two transitions")
	ErrDuplicateArc       = errors.New("arc already exists")
	ErrDuplicateNode      = errors.New("node declared twice")
	ErrUnknownNode        = errors.New("arc references a node outside the net")
	ErrBadWeight          = errors.New("arc weight must be positive")
	ErrBadCapacity        = errors.New("token count outside place capacity")
	ErrMarkingSize        = errors.New("marking does not match the places of the net")
	ErrUnknownPlace       = errors.New("unknown place")
)
