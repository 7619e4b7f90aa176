package rankincohen

import (
	"errors"
	"fmt"

	"github.com/njchilds90/rankincohen/gosymbol"
)

// Expr is an immutable expression owned by an Algebra.
type Expr interface {
	String() string
}

// Algebra is the computer-algebra capability set the bracket machinery is
// written against. Implementations must return new values and never
// mutate their arguments. Expressions from a different Algebra are
// rejected with ErrInvalidExpressionKind.
type Algebra interface {
	// Symbol returns the indeterminate with the given name. Two calls with
	// the same name denote the same indeterminate.
	Symbol(name string) Expr
	// Const returns the rational constant p/q.
	Const(p, q int64) Expr
	Add(terms ...Expr) (Expr, error)
	Mul(factors ...Expr) (Expr, error)
	Pow(base Expr, exp int) (Expr, error)
	// PartialDiff differentiates expr with respect to the indeterminate sym.
	PartialDiff(expr, sym Expr) (Expr, error)
	// Binomial returns the exact generalized binomial coefficient C(a, b).
	Binomial(a, b Expr) (Expr, error)
	// Simplify returns the canonical form of expr.
	Simplify(expr Expr) (Expr, error)
}

// Symbolic implements Algebra on the exact-rational gosymbol kernel.
// Its expressions are gosymbol.Expr values.
type Symbolic struct{}

var _ Algebra = (*Symbolic)(nil)

func NewSymbolic() *Symbolic { return &Symbolic{} }

func (s *Symbolic) Symbol(name string) Expr { return gosymbol.S(name) }

func (s *Symbolic) Const(p, q int64) Expr { return gosymbol.F(p, q) }

func (s *Symbolic) Add(terms ...Expr) (Expr, error) {
	ts, err := s.unwrapAll(terms)
	if err != nil {
		return nil, err
	}
	return gosymbol.AddOf(ts...), nil
}

func (s *Symbolic) Mul(factors ...Expr) (Expr, error) {
	fs, err := s.unwrapAll(factors)
	if err != nil {
		return nil, err
	}
	return gosymbol.MulOf(fs...), nil
}

func (s *Symbolic) Pow(base Expr, exp int) (Expr, error) {
	b, err := s.unwrap(base)
	if err != nil {
		return nil, err
	}
	p := gosymbol.PowOf(b, gosymbol.N(int64(exp)))
	if err := gosymbol.Validate(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpressionKind, err)
	}
	return p, nil
}

func (s *Symbolic) PartialDiff(expr, sym Expr) (Expr, error) {
	e, err := s.unwrap(expr)
	if err != nil {
		return nil, err
	}
	v, ok := sym.(*gosymbol.Sym)
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: differentiation target %v is not a symbol", ErrInvalidExpressionKind, sym)
	}
	return gosymbol.Diff(e, v.Name()), nil
}

// Binomial maps a non-integer lower argument to ErrInvalidArgument.
func (s *Symbolic) Binomial(a, b Expr) (Expr, error) {
	x, err := s.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := s.unwrap(b)
	if err != nil {
		return nil, err
	}
	c, err := gosymbol.Binomial(x, y)
	if errors.Is(err, gosymbol.ErrNonIntegerBinomial) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return c, err
}

func (s *Symbolic) Simplify(expr Expr) (Expr, error) {
	e, err := s.unwrap(expr)
	if err != nil {
		return nil, err
	}
	return gosymbol.Canonicalize(e), nil
}

// Equal reports whether a and b have the same canonical form.
func (s *Symbolic) Equal(a, b Expr) (bool, error) {
	x, err := s.unwrap(a)
	if err != nil {
		return false, err
	}
	y, err := s.unwrap(b)
	if err != nil {
		return false, err
	}
	return gosymbol.Equivalent(x, y), nil
}

// LaTeX renders an expression produced by s.
func (s *Symbolic) LaTeX(expr Expr) (string, error) {
	e, err := s.unwrap(expr)
	if err != nil {
		return "", err
	}
	return gosymbol.LaTeX(e), nil
}

// JSON encodes an expression produced by s as a gosymbol JSON tree.
func (s *Symbolic) JSON(expr Expr) (string, error) {
	e, err := s.unwrap(expr)
	if err != nil {
		return "", err
	}
	return gosymbol.ToJSON(e)
}

// Parse decodes a gosymbol JSON tree into an expression.
func (s *Symbolic) Parse(doc string) (Expr, error) {
	e, err := gosymbol.ParseJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpressionKind, err)
	}
	out, err := s.unwrap(e)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Symbolic) unwrap(expr Expr) (gosymbol.Expr, error) {
	e, ok := expr.(gosymbol.Expr)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a gosymbol expression", ErrInvalidExpressionKind, expr)
	}
	if err := gosymbol.Validate(e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpressionKind, err)
	}
	return e, nil
}

func (s *Symbolic) unwrapAll(exprs []Expr) ([]gosymbol.Expr, error) {
	out := make([]gosymbol.Expr, len(exprs))
	for i, x := range exprs {
		e, err := s.unwrap(x)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
