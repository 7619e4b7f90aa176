package rankincohen

import "fmt"

// Differentiate returns the formal derivative
//
//	D(expr) = D(E2)*∂expr/∂E2 + D(E4)*∂expr/∂E4 + D(E6)*∂expr/∂E6
//
// Symbols other than the generators are constants. The result is not
// canonicalized.
func (r *Ring) Differentiate(expr Expr) (Expr, error) {
	terms := make([]Expr, 0, len(Generators))
	for _, g := range Generators {
		partial, err := r.alg.PartialDiff(expr, r.gens[g])
		if err != nil {
			return nil, fmt.Errorf("differentiate with respect to %s: %w", g, err)
		}
		term, err := r.alg.Mul(r.rules[g], partial)
		if err != nil {
			return nil, fmt.Errorf("differentiate: %w", err)
		}
		terms = append(terms, term)
	}
	d, err := r.alg.Add(terms...)
	if err != nil {
		return nil, fmt.Errorf("differentiate: %w", err)
	}
	return d, nil
}

// NthDerivative applies Differentiate k times and returns the canonical
// form of the result. k = 0 canonicalizes expr.
func (r *Ring) NthDerivative(expr Expr, k int) (Expr, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: derivative order %d is negative", ErrInvalidArgument, k)
	}
	f := expr
	for i := 0; i < k; i++ {
		d, err := r.Differentiate(f)
		if err != nil {
			return nil, fmt.Errorf("derivative %d of %d: %w", i+1, k, err)
		}
		f = d
	}
	out, err := r.alg.Simplify(f)
	if err != nil {
		return nil, fmt.Errorf("simplify derivative of order %d: %w", k, err)
	}
	return out, nil
}
