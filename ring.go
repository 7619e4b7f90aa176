package rankincohen

import (
	"fmt"
	"io"
	"log/slog"
)

// Generator names one of the Eisenstein series generating the ring of
// quasimodular forms.
type Generator int

const (
	E2 Generator = iota
	E4
	E6
)

// Generators lists E2, E4 and E6 in chain-rule order.
var Generators = [...]Generator{E2, E4, E6}

func (g Generator) String() string {
	switch g {
	case E2:
		return "E2"
	case E4:
		return "E4"
	case E6:
		return "E6"
	}
	return fmt.Sprintf("Generator(%d)", int(g))
}

// Weight is the modular weight of the generator: 2, 4 or 6.
func (g Generator) Weight() int {
	return 2 * (int(g) + 1)
}

func (g Generator) valid() bool { return g >= E2 && g <= E6 }

// ParseGenerator maps "E2", "E4" or "E6" to its Generator.
func ParseGenerator(name string) (Generator, bool) {
	for _, g := range Generators {
		if g.String() == name {
			return g, true
		}
	}
	return 0, false
}

// Ring holds the generator symbols and their Ramanujan derivative rules.
// It is immutable after NewRing and safe for concurrent use.
type Ring struct {
	alg   Algebra
	gens  [len(Generators)]Expr
	rules [len(Generators)]Expr
	log   *slog.Logger
}

// Option configures a Ring.
type Option func(*Ring)

// WithLogger routes debug tracing of bracket terms to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Ring) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRing builds the generators in alg and derives the rules
//
//	D(E2) = (E2^2 - E4) / 12
//	D(E4) = (E2*E4 - E6) / 3
//	D(E6) = (E2*E6 - E4^2) / 2
func NewRing(alg Algebra, opts ...Option) (*Ring, error) {
	if alg == nil {
		return nil, fmt.Errorf("%w: nil algebra", ErrInvalidArgument)
	}
	r := &Ring{
		alg: alg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, g := range Generators {
		r.gens[g] = alg.Symbol(g.String())
	}
	e2, e4, e6 := r.gens[E2], r.gens[E4], r.gens[E6]

	e4sq, err := alg.Pow(e4, 2)
	if err != nil {
		return nil, fmt.Errorf("build rules: %w", err)
	}

	rows := [len(Generators)]struct {
		a, b, trail Expr
		denom       int64
	}{
		E2: {e2, e2, e4, 12},
		E4: {e2, e4, e6, 3},
		E6: {e2, e6, e4sq, 2},
	}
	for _, g := range Generators {
		row := rows[g]
		rule, err := ramanujanRule(alg, row.a, row.b, row.trail, row.denom)
		if err != nil {
			return nil, fmt.Errorf("build rule for %s: %w", g, err)
		}
		r.rules[g] = rule
	}
	return r, nil
}

// ramanujanRule returns (a*b - trail) / denom in canonical form.
func ramanujanRule(alg Algebra, a, b, trail Expr, denom int64) (Expr, error) {
	prod, err := alg.Mul(a, b)
	if err != nil {
		return nil, err
	}
	neg, err := alg.Mul(alg.Const(-1, 1), trail)
	if err != nil {
		return nil, err
	}
	diff, err := alg.Add(prod, neg)
	if err != nil {
		return nil, err
	}
	scaled, err := alg.Mul(alg.Const(1, denom), diff)
	if err != nil {
		return nil, err
	}
	return alg.Simplify(scaled)
}

// Algebra returns the substrate the ring was built on.
func (r *Ring) Algebra() Algebra { return r.alg }

// Gen returns the symbol for g. It panics on an unknown generator.
func (r *Ring) Gen(g Generator) Expr {
	if !g.valid() {
		panic("rankincohen: unknown generator " + g.String())
	}
	return r.gens[g]
}

// Rule returns the canonical derivative D(g).
func (r *Ring) Rule(g Generator) Expr {
	if !g.valid() {
		panic("rankincohen: unknown generator " + g.String())
	}
	return r.rules[g]
}
