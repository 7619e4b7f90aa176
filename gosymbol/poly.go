package gosymbol

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

var (
	// ErrNotAlgebraic is returned by Validate for expressions outside the
	// Laurent polynomial ring with rational exponents.
	ErrNotAlgebraic = errors.New("gosymbol: expression outside the algebraic domain")

	// ErrNonIntegerBinomial is returned by Binomial when the lower argument
	// is not an integer constant.
	ErrNonIntegerBinomial = errors.New("gosymbol: binomial lower argument must be an integer")
)

// Validate reports whether e can be differentiated and canonicalized: every
// exponent must be a rational constant, no zero base may carry a
// non-positive exponent, and only a bare symbol may be raised to an integer
// power above maxExactExponent.
func Validate(e Expr) error {
	switch v := e.(type) {
	case nil:
		return fmt.Errorf("%w: nil expression", ErrNotAlgebraic)
	case *Num:
		if v == nil || v.val == nil {
			return fmt.Errorf("%w: nil number", ErrNotAlgebraic)
		}
		return nil
	case *Sym:
		if v == nil || v.name == "" {
			return fmt.Errorf("%w: unnamed symbol", ErrNotAlgebraic)
		}
		return nil
	case *Add:
		if v == nil {
			return fmt.Errorf("%w: nil sum", ErrNotAlgebraic)
		}
		for i, t := range v.terms {
			if err := Validate(t); err != nil {
				return fmt.Errorf("add: terms[%d]: %w", i, err)
			}
		}
		return nil
	case *Mul:
		if v == nil {
			return fmt.Errorf("%w: nil product", ErrNotAlgebraic)
		}
		for i, f := range v.factors {
			if err := Validate(f); err != nil {
				return fmt.Errorf("mul: factors[%d]: %w", i, err)
			}
		}
		return nil
	case *Pow:
		if v == nil {
			return fmt.Errorf("%w: nil power", ErrNotAlgebraic)
		}
		en, ok := v.exp.(*Num)
		if !ok {
			return fmt.Errorf("%w: symbolic exponent in %s", ErrNotAlgebraic, v.String())
		}
		if bn, ok := v.base.(*Num); ok && bn.IsZero() && !en.IsPositive() {
			return fmt.Errorf("%w: zero raised to %s", ErrNotAlgebraic, en.String())
		}
		if _, isSym := v.base.(*Sym); !isSym && exceedsExpansion(en.val) {
			return fmt.Errorf("%w: exponent %s exceeds the expansion limit %d",
				ErrNotAlgebraic, en.String(), maxExactExponent)
		}
		return Validate(v.base)
	}
	return fmt.Errorf("%w: unsupported node %T", ErrNotAlgebraic, e)
}

// ============================================================
// Canonicalization
// ============================================================

// Canonicalize expands e into a sparse polynomial over its atoms and
// rebuilds a deterministic expression. Atoms are symbols and, for powers
// of non-monomial bases with a negative or fractional exponent, the
// canonical base itself. Terms are ordered by descending total degree,
// ties broken by the exponent of the alphabetically first atom.
func Canonicalize(e Expr) Expr {
	return toPoly(e).expr()
}

// Equivalent reports whether a and b have the same canonical form.
// Structurally equal trees short-circuit the expansion.
func Equivalent(a, b Expr) bool {
	if a.Equal(b) {
		return true
	}
	diff := Canonicalize(AddOf(a, MulOf(N(-1), b)))
	n, ok := diff.(*Num)
	return ok && n.IsZero()
}

// term is one coefficient*monomial pair; exps maps atom key to exponent.
type term struct {
	coeff *big.Rat
	exps  map[string]*big.Rat
}

type poly struct {
	terms map[string]*term
	atoms map[string]Expr
}

func newPoly() *poly {
	return &poly{terms: map[string]*term{}, atoms: map[string]Expr{}}
}

func constPoly(r *big.Rat) *poly {
	p := newPoly()
	p.addTerm(new(big.Rat).Set(r), map[string]*big.Rat{})
	return p
}

func atomPoly(key string, atom Expr, exp *big.Rat) *poly {
	p := newPoly()
	p.atoms[key] = atom
	p.addTerm(big.NewRat(1, 1), map[string]*big.Rat{key: new(big.Rat).Set(exp)})
	return p
}

func monomialKey(exps map[string]*big.Rat) string {
	keys := sortedKeys(exps)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('^')
		b.WriteString(exps[k].RatString())
		b.WriteByte(';')
	}
	return b.String()
}

func sortedKeys(exps map[string]*big.Rat) []string {
	keys := make([]string, 0, len(exps))
	for k := range exps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p *poly) addTerm(coeff *big.Rat, exps map[string]*big.Rat) {
	if coeff.Sign() == 0 {
		return
	}
	for k, e := range exps {
		if e.Sign() == 0 {
			delete(exps, k)
		}
	}
	key := monomialKey(exps)
	if t, ok := p.terms[key]; ok {
		t.coeff.Add(t.coeff, coeff)
		if t.coeff.Sign() == 0 {
			delete(p.terms, key)
		}
		return
	}
	p.terms[key] = &term{coeff: new(big.Rat).Set(coeff), exps: exps}
}

func (p *poly) adopt(o *poly) {
	for k, a := range o.atoms {
		p.atoms[k] = a
	}
}

func (p *poly) add(o *poly) *poly {
	out := newPoly()
	out.adopt(p)
	out.adopt(o)
	for _, src := range []*poly{p, o} {
		for _, t := range src.terms {
			out.addTerm(t.coeff, copyExps(t.exps))
		}
	}
	return out
}

func (p *poly) mul(o *poly) *poly {
	out := newPoly()
	out.adopt(p)
	out.adopt(o)
	for _, a := range p.terms {
		for _, b := range o.terms {
			exps := copyExps(a.exps)
			for k, e := range b.exps {
				if cur, ok := exps[k]; ok {
					exps[k] = new(big.Rat).Add(cur, e)
				} else {
					exps[k] = new(big.Rat).Set(e)
				}
			}
			out.addTerm(new(big.Rat).Mul(a.coeff, b.coeff), exps)
		}
	}
	return out
}

func (p *poly) pow(n int64) *poly {
	result := constPoly(big.NewRat(1, 1))
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.mul(base)
		}
	}
	return result
}

// single returns the only term of p, if p is a monomial.
func (p *poly) single() (*term, bool) {
	if len(p.terms) != 1 {
		return nil, false
	}
	for _, t := range p.terms {
		return t, true
	}
	return nil, false
}

func copyExps(exps map[string]*big.Rat) map[string]*big.Rat {
	out := make(map[string]*big.Rat, len(exps))
	for k, e := range exps {
		out[k] = new(big.Rat).Set(e)
	}
	return out
}

func toPoly(e Expr) *poly {
	switch v := e.(type) {
	case *Num:
		return constPoly(v.val)
	case *Sym:
		return atomPoly(v.name, v, big.NewRat(1, 1))
	case *Add:
		acc := newPoly()
		for _, t := range v.terms {
			acc = acc.add(toPoly(t))
		}
		return acc
	case *Mul:
		acc := constPoly(big.NewRat(1, 1))
		for _, f := range v.factors {
			acc = acc.mul(toPoly(f))
		}
		return acc
	case *Pow:
		if en, ok := v.exp.(*Num); ok {
			return powPoly(toPoly(v.base), en.val)
		}
	}
	return atomPoly(e.String(), e, big.NewRat(1, 1))
}

// exceedsExpansion reports whether exp is an integer above maxExactExponent.
func exceedsExpansion(exp *big.Rat) bool {
	return exp.IsInt() && exp.Cmp(big.NewRat(maxExactExponent, 1)) > 0
}

// powPoly expands base^exp. A non-monomial base whose exponent cannot be
// expanded within maxExactExponent becomes an opaque atom.
func powPoly(base *poly, exp *big.Rat) *poly {
	if exp.IsInt() && exp.Sign() >= 0 && !exceedsExpansion(exp) {
		return base.pow(exp.Num().Int64())
	}
	if t, ok := base.single(); ok {
		if c, ok := ratPow(t.coeff, exp); ok {
			out := newPoly()
			out.adopt(base)
			exps := make(map[string]*big.Rat, len(t.exps))
			for k, e := range t.exps {
				exps[k] = new(big.Rat).Mul(e, exp)
			}
			out.addTerm(c, exps)
			return out
		}
	}
	atom := base.expr()
	return atomPoly("("+atom.String()+")", atom, exp)
}

// ratPow computes r^exp exactly for integer exp up to maxExactExponent in
// magnitude. 1^exp is 1 for any exp.
func ratPow(r, exp *big.Rat) (*big.Rat, bool) {
	if r.Cmp(big.NewRat(1, 1)) == 0 {
		return big.NewRat(1, 1), true
	}
	if !exp.IsInt() || exceedsExpansion(new(big.Rat).Abs(exp)) {
		return nil, false
	}
	n, ok := numPow(&Num{val: r}, exp.Num().Int64())
	if !ok {
		return nil, false
	}
	return n.val, true
}

// expr rebuilds the ordered expression without re-simplifying, so the term
// and factor order chosen here is the one String prints.
func (p *poly) expr() Expr {
	terms := make([]*term, 0, len(p.terms))
	for _, t := range p.terms {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool { return termLess(terms[i], terms[j]) })

	out := make([]Expr, 0, len(terms))
	for _, t := range terms {
		out = append(out, p.termExpr(t))
	}
	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

func (p *poly) termExpr(t *term) Expr {
	coeff := &Num{val: new(big.Rat).Set(t.coeff)}
	factors := []Expr{}
	for _, k := range sortedKeys(t.exps) {
		atom := p.atoms[k]
		exp := t.exps[k]
		if exp.Cmp(big.NewRat(1, 1)) == 0 {
			factors = append(factors, atom)
		} else {
			factors = append(factors, &Pow{base: atom, exp: R(exp)})
		}
	}
	if len(factors) == 0 {
		return coeff
	}
	if coeff.IsOne() {
		if len(factors) == 1 {
			return factors[0]
		}
		return &Mul{factors: factors}
	}
	return &Mul{factors: append([]Expr{coeff}, factors...)}
}

func termLess(a, b *term) bool {
	da, db := totalDegree(a), totalDegree(b)
	if c := da.Cmp(db); c != 0 {
		return c > 0
	}
	names := map[string]struct{}{}
	for k := range a.exps {
		names[k] = struct{}{}
	}
	for k := range b.exps {
		names[k] = struct{}{}
	}
	ordered := make([]string, 0, len(names))
	for k := range names {
		ordered = append(ordered, k)
	}
	sort.Strings(ordered)
	for _, k := range ordered {
		ea, eb := expOf(a, k), expOf(b, k)
		if c := ea.Cmp(eb); c != 0 {
			return c > 0
		}
	}
	return false
}

func totalDegree(t *term) *big.Rat {
	d := new(big.Rat)
	for _, e := range t.exps {
		d.Add(d, e)
	}
	return d
}

func expOf(t *term, key string) *big.Rat {
	if e, ok := t.exps[key]; ok {
		return e
	}
	return new(big.Rat)
}
