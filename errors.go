package rankincohen

import "errors"

var (
	// ErrInvalidArgument is returned for a negative weight, bracket order or
	// derivative order.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidExpressionKind is returned when a value is not an expression
	// the Algebra can differentiate and simplify.
	ErrInvalidExpressionKind = errors.New("invalid expression kind")
)
