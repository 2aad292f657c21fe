package ctl

import "errors"

var (
	ErrUnknownTransition     = errors.New("unknown transition")
	ErrUnknownPlace          = errors.New("unknown place")
	ErrUnsupportedComparison = errors.New("comparing two token counts is not supported")
	ErrUnsupportedOperator   = errors.New("unsupported comparison operator")
	ErrSyntax                = errors.New("syntax error")
	ErrMarking               = errors.New("marking does not belong to the net")
)
