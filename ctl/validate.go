package ctl

import (
	"fmt"

	"github.com/jt05610/petrisym"
)

// Validate checks that every transition and place named by f exists in net
// and that every comparison is supported.
func Validate(f Formula, net *petri.Net) error {
	switch f := f.(type) {
	case True, False, Deadlock:
		return nil
	case Fireable:
		return checkTransition(net, f.Transition)
	case After:
		return checkTransition(net, f.Transition)
	case Compare:
		return checkCompare(net, f)
	case Not:
		return Validate(f.F, net)
	case And:
		return validateAll(net, f.Left, f.Right)
	case Or:
		return validateAll(net, f.Left, f.Right)
	case EX:
		return Validate(f.F, net)
	case AX:
		return Validate(f.F, net)
	case EF:
		return Validate(f.F, net)
	case AF:
		return Validate(f.F, net)
	case EG:
		return Validate(f.F, net)
	case AG:
		return Validate(f.F, net)
	case EU:
		return validateAll(net, f.P, f.Q)
	case AU:
		return validateAll(net, f.P, f.Q)
	case nil:
		return fmt.Errorf("nil formula: %w", ErrSyntax)
	}
	return fmt.Errorf("formula %T: %w", f, ErrSyntax)
}

func validateAll(net *petri.Net, fs ...Formula) error {
	for _, f := range fs {
		if err := Validate(f, net); err != nil {
			return err
		}
	}
	return nil
}

func checkTransition(net *petri.Net, name string) error {
	if _, ok := net.TransitionIndex(name); !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownTransition)
	}
	return nil
}

func checkCompare(net *petri.Net, f Compare) error {
	if _, err := f.Op.holds(0, 0); err != nil {
		return err
	}
	_, lt := f.Left.(Tokens)
	_, rt := f.Right.(Tokens)
	if lt && rt {
		return fmt.Errorf("%s: %w", f, ErrUnsupportedComparison)
	}
	for _, e := range []IntExpr{f.Left, f.Right} {
		switch e := e.(type) {
		case Tokens:
			if _, ok := net.PlaceIndex(string(e)); !ok {
				return fmt.Errorf("%s: %w", string(e), ErrUnknownPlace)
			}
		case Value:
		default:
			return fmt.Errorf("expression %T: %w", e, ErrSyntax)
		}
	}
	return nil
}
