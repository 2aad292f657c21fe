// Package ctl evaluates CTL formulas over Petri nets symbolically.
package ctl

import (
	"fmt"
	"strconv"
)

// Formula is a CTL state formula. Formulas are immutable values built from
// the types of this package.
type Formula interface {
	fmt.Stringer
	isFormula()
}

var (
	_ Formula = True{}
	_ Formula = False{}
	_ Formula = Deadlock{}
	_ Formula = Fireable{}
	_ Formula = After{}
	_ Formula = Compare{}
	_ Formula = Not{}
	_ Formula = And{}
	_ Formula = Or{}
	_ Formula = EX{}
	_ Formula = AX{}
	_ Formula = EF{}
	_ Formula = AF{}
	_ Formula = EG{}
	_ Formula = AG{}
	_ Formula = EU{}
	_ Formula = AU{}
)

type True struct{}

type False struct{}

// Deadlock holds in markings where no transition has its precondition.
type Deadlock struct{}

// Fireable holds in markings holding the precondition of a transition.
type Fireable struct {
	Transition string
}

// After holds in markings holding the postcondition of a transition.
type After struct {
	Transition string
}

// Compare compares two integer expressions. At least one side must be a
// constant.
type Compare struct {
	Op          Operator
	Left, Right IntExpr
}

type Not struct {
	F Formula
}

type And struct {
	Left, Right Formula
}

type Or struct {
	Left, Right Formula
}

// EX: some successor satisfies F.
type EX struct {
	F Formula
}

// AX: every successor satisfies F.
type AX struct {
	F Formula
}

// EF: some path eventually reaches F.
type EF struct {
	F Formula
}

// AF: every path eventually reaches F.
type AF struct {
	F Formula
}

// EG: some maximal path satisfies F everywhere.
type EG struct {
	F Formula
}

// AG: every path satisfies F everywhere.
type AG struct {
	F Formula
}

// EU: some path satisfies P until Q holds.
type EU struct {
	P, Q Formula
}

// AU: every path satisfies P until Q holds.
type AU struct {
	P, Q Formula
}

func (True) isFormula()     {}
func (False) isFormula()    {}
func (Deadlock) isFormula() {}
func (Fireable) isFormula() {}
func (After) isFormula()    {}
func (Compare) isFormula()  {}
func (Not) isFormula()      {}
func (And) isFormula()      {}
func (Or) isFormula()       {}
func (EX) isFormula()       {}
func (AX) isFormula()       {}
func (EF) isFormula()       {}
func (AF) isFormula()       {}
func (EG) isFormula()       {}
func (AG) isFormula()       {}
func (EU) isFormula()       {}
func (AU) isFormula()       {}

func (True) String() string     { return "true" }
func (False) String() string    { return "false" }
func (Deadlock) String() string { return "deadlock" }
func (f Fireable) String() string {
	return "fireable(" + strconv.Quote(f.Transition) + ")"
}
func (f After) String() string {
	return "after(" + strconv.Quote(f.Transition) + ")"
}
func (f Compare) String() string {
	return f.Left.String() + " " + string(f.Op) + " " + f.Right.String()
}
func (f Not) String() string { return "!(" + f.F.String() + ")" }
func (f And) String() string {
	return "(" + f.Left.String() + " && " + f.Right.String() + ")"
}
func (f Or) String() string {
	return "(" + f.Left.String() + " || " + f.Right.String() + ")"
}
func (f EX) String() string { return "EX(" + f.F.String() + ")" }
func (f AX) String() string { return "AX(" + f.F.String() + ")" }
func (f EF) String() string { return "EF(" + f.F.String() + ")" }
func (f AF) String() string { return "AF(" + f.F.String() + ")" }
func (f EG) String() string { return "EG(" + f.F.String() + ")" }
func (f AG) String() string { return "AG(" + f.F.String() + ")" }
func (f EU) String() string {
	return "EU(" + f.P.String() + ", " + f.Q.String() + ")"
}
func (f AU) String() string {
	return "AU(" + f.P.String() + ", " + f.Q.String() + ")"
}

// Conj folds formulas with And; it is True when fs is empty.
func Conj(fs ...Formula) Formula {
	if len(fs) == 0 {
		return True{}
	}
	ret := fs[0]
	for _, f := range fs[1:] {
		ret = And{Left: ret, Right: f}
	}
	return ret
}

// Disj folds formulas with Or; it is False when fs is empty.
func Disj(fs ...Formula) Formula {
	if len(fs) == 0 {
		return False{}
	}
	ret := fs[0]
	for _, f := range fs[1:] {
		ret = Or{Left: ret, Right: f}
	}
	return ret
}
