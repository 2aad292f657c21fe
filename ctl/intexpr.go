package ctl

import (
	"fmt"
	"strconv"
)

// IntExpr is an integer expression over a marking.
type IntExpr interface {
	fmt.Stringer
	isIntExpr()
}

// Value is an integer constant.
type Value int

// Tokens is the number of tokens in the named place.
type Tokens string

func (Value) isIntExpr()  {}
func (Tokens) isIntExpr() {}

func (v Value) String() string { return strconv.Itoa(int(v)) }

func (t Tokens) String() string { return "tokens(" + strconv.Quote(string(t)) + ")" }

// Operator is a comparison operator.
type Operator string

const (
	LT Operator = "<"
	LE Operator = "<="
	EQ Operator = "=="
	NE Operator = "!="
	GT Operator = ">"
	GE Operator = ">="
)

// flip returns the operator with its operands swapped.
func (o Operator) flip() Operator {
	switch o {
	case LT:
		return GT
	case LE:
		return GE
	case GT:
		return LT
	case GE:
		return LE
	}
	return o
}

// holds compares two constants.
func (o Operator) holds(a, b int) (bool, error) {
	switch o {
	case LT:
		return a < b, nil
	case LE:
		return a <= b, nil
	case EQ:
		return a == b, nil
	case NE:
		return a != b, nil
	case GT:
		return a > b, nil
	case GE:
		return a >= b, nil
	}
	return false, fmt.Errorf("%q: %w", string(o), ErrUnsupportedOperator)
}
