package ctl

import (
	"fmt"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Parse reads a formula in the syntax of Formula.String:
//
//	EF(fireable("exit1") && fireable("exit2"))
//	AG(!(crit1 >= 1 and crit2 >= 1))
//	EU(tokens("buf") < 3, after("batch"))
//
// A bare identifier in a comparison names a place. Operator keywords of the
// expression language (and, or, not) are accepted as well.
func Parse(s string) (Formula, error) {
	tree, err := parser.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return translate(tree.Node)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Formula {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

func translate(node ast.Node) (Formula, error) {
	switch n := node.(type) {
	case *ast.BoolNode:
		if n.Value {
			return True{}, nil
		}
		return False{}, nil
	case *ast.IdentifierNode:
		switch n.Value {
		case "deadlock":
			return Deadlock{}, nil
		case "true":
			return True{}, nil
		case "false":
			return False{}, nil
		}
		return nil, fmt.Errorf("identifier %q is not a formula: %w", n.Value, ErrSyntax)
	case *ast.UnaryNode:
		if n.Operator != "!" && n.Operator != "not" {
			break
		}
		f, err := translate(n.Node)
		if err != nil {
			return nil, err
		}
		return Not{F: f}, nil
	case *ast.BinaryNode:
		return translateBinary(n)
	case *ast.CallNode:
		return translateCall(n)
	}
	return nil, fmt.Errorf("unexpected %T: %w", node, ErrSyntax)
}

func translateBinary(n *ast.BinaryNode) (Formula, error) {
	switch n.Operator {
	case "&&", "and", "||", "or":
		l, err := translate(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := translate(n.Right)
		if err != nil {
			return nil, err
		}
		if n.Operator == "&&" || n.Operator == "and" {
			return And{Left: l, Right: r}, nil
		}
		return Or{Left: l, Right: r}, nil
	}
	op := Operator(n.Operator)
	if _, err := op.holds(0, 0); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	l, err := intExpr(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := intExpr(n.Right)
	if err != nil {
		return nil, err
	}
	return Compare{Op: op, Left: l, Right: r}, nil
}

func translateCall(n *ast.CallNode) (Formula, error) {
	callee, ok := n.Callee.(*ast.IdentifierNode)
	if !ok {
		return nil, fmt.Errorf("call of %T: %w", n.Callee, ErrSyntax)
	}
	name := callee.Value
	want := 1
	if name == "EU" || name == "AU" {
		want = 2
	}
	if len(n.Arguments) != want {
		return nil, fmt.Errorf("%s takes %d arguments, got %d: %w", name, want, len(n.Arguments), ErrSyntax)
	}
	switch name {
	case "fireable", "after":
		s, ok := n.Arguments[0].(*ast.StringNode)
		if !ok {
			return nil, fmt.Errorf("%s takes a transition name: %w", name, ErrSyntax)
		}
		if name == "after" {
			return After{Transition: s.Value}, nil
		}
		return Fireable{Transition: s.Value}, nil
	}
	args := make([]Formula, len(n.Arguments))
	for i, a := range n.Arguments {
		f, err := translate(a)
		if err != nil {
			return nil, err
		}
		args[i] = f
	}
	switch name {
	case "EX":
		return EX{F: args[0]}, nil
	case "AX":
		return AX{F: args[0]}, nil
	case "EF":
		return EF{F: args[0]}, nil
	case "AF":
		return AF{F: args[0]}, nil
	case "EG":
		return EG{F: args[0]}, nil
	case "AG":
		return AG{F: args[0]}, nil
	case "EU":
		return EU{P: args[0], Q: args[1]}, nil
	case "AU":
		return AU{P: args[0], Q: args[1]}, nil
	}
	return nil, fmt.Errorf("unknown function %q: %w", name, ErrSyntax)
}

func intExpr(node ast.Node) (IntExpr, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return Value(n.Value), nil
	case *ast.UnaryNode:
		v, ok := n.Node.(*ast.IntegerNode)
		switch {
		case ok && n.Operator == "-":
			return Value(-v.Value), nil
		case ok && n.Operator == "+":
			return Value(v.Value), nil
		}
	case *ast.IdentifierNode:
		return Tokens(n.Value), nil
	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok || callee.Value != "tokens" || len(n.Arguments) != 1 {
			break
		}
		if s, ok := n.Arguments[0].(*ast.StringNode); ok {
			return Tokens(s.Value), nil
		}
	}
	return nil, fmt.Errorf("unexpected %T in comparison: %w", node, ErrSyntax)
}
