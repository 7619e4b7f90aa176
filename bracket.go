package rankincohen

import (
	"fmt"
	"log/slog"
)

// Bracket returns the order-n Rankin-Cohen bracket of f (weight k) and g
// (weight l):
//
//	[f, g]_n = sum over r+s=n of (-1)^s C(k+n-1, s) C(l+n-1, r) D^r(f) D^s(g)
//
// The sum is canonicalized. For n = 0 it is the product f*g. Neither the
// weights nor modularity of the result are checked.
func (r *Ring) Bracket(f, g Expr, n, k, l int) (Expr, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: bracket order %d is negative", ErrInvalidArgument, n)
	case k < 0:
		return nil, fmt.Errorf("%w: weight k=%d is negative", ErrInvalidArgument, k)
	case l < 0:
		return nil, fmt.Errorf("%w: weight l=%d is negative", ErrInvalidArgument, l)
	}

	terms := make([]Expr, 0, n+1)
	for i := 0; i <= n; i++ {
		s := n - i
		coeff, err := r.bracketCoefficient(n, k, l, i, s)
		if err != nil {
			return nil, err
		}
		df, err := r.NthDerivative(f, i)
		if err != nil {
			return nil, fmt.Errorf("bracket term r=%d: %w", i, err)
		}
		dg, err := r.NthDerivative(g, s)
		if err != nil {
			return nil, fmt.Errorf("bracket term s=%d: %w", s, err)
		}
		term, err := r.alg.Mul(coeff, df, dg)
		if err != nil {
			return nil, fmt.Errorf("bracket term r=%d: %w", i, err)
		}
		r.log.Debug("bracket term",
			slog.Int("n", n),
			slog.Int("r", i),
			slog.Int("s", s),
			slog.String("coefficient", coeff.String()))
		terms = append(terms, term)
	}

	sum, err := r.alg.Add(terms...)
	if err != nil {
		return nil, fmt.Errorf("bracket sum: %w", err)
	}
	out, err := r.alg.Simplify(sum)
	if err != nil {
		return nil, fmt.Errorf("simplify bracket: %w", err)
	}
	r.log.Debug("bracket computed", slog.Int("n", n), slog.Int("k", k), slog.Int("l", l))
	return out, nil
}

// bracketCoefficient returns (-1)^s C(k+n-1, s) C(l+n-1, r).
func (r *Ring) bracketCoefficient(n, k, l, rr, s int) (Expr, error) {
	cf, err := r.alg.Binomial(r.alg.Const(int64(k+n-1), 1), r.alg.Const(int64(s), 1))
	if err != nil {
		return nil, fmt.Errorf("binomial C(%d, %d): %w", k+n-1, s, err)
	}
	cg, err := r.alg.Binomial(r.alg.Const(int64(l+n-1), 1), r.alg.Const(int64(rr), 1))
	if err != nil {
		return nil, fmt.Errorf("binomial C(%d, %d): %w", l+n-1, rr, err)
	}
	sign := int64(1)
	if s%2 == 1 {
		sign = -1
	}
	return r.alg.Mul(r.alg.Const(sign, 1), cf, cg)
}
