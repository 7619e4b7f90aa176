package gosymbol_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/rankincohen/gosymbol"
)

var (
	x = gosymbol.S("x")
	y = gosymbol.S("y")
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	assert.Equal(t, "42", gosymbol.N(42).String())
}

func TestNum_Rational(t *testing.T) {
	assert.Equal(t, "1/3", gosymbol.F(2, 6).String())
	assert.Equal(t, "-25/9", gosymbol.F(25, -9).String())
}

func TestNum_LaTeX_Rational(t *testing.T) {
	assert.Equal(t, `\frac{2}{5}`, gosymbol.F(2, 5).LaTeX())
	assert.Equal(t, `-\frac{1}{12}`, gosymbol.F(-1, 12).LaTeX())
}

func TestNum_Diff_IsZero(t *testing.T) {
	assert.Equal(t, "0", gosymbol.Diff(gosymbol.N(5), "x").String())
}

func TestNum_ZeroDenominatorPanics(t *testing.T) {
	assert.Panics(t, func() { gosymbol.F(1, 0) })
}

// ============================================================
// Sym tests
// ============================================================

func TestEqual_Structural(t *testing.T) {
	assert.True(t, x.Equal(gosymbol.S("x")))
	assert.False(t, x.Equal(y))
	assert.True(t, gosymbol.F(2, 4).Equal(gosymbol.F(1, 2)))

	a := gosymbol.AddOf(gosymbol.MulOf(gosymbol.N(2), x), gosymbol.PowOf(y, gosymbol.N(-1)))
	b := gosymbol.AddOf(gosymbol.MulOf(gosymbol.N(2), x), gosymbol.PowOf(y, gosymbol.N(-1)))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(gosymbol.AddOf(gosymbol.MulOf(gosymbol.N(3), x), gosymbol.PowOf(y, gosymbol.N(-1)))))
	// Structural equality is order-sensitive; Equivalent is not.
	c := gosymbol.AddOf(gosymbol.PowOf(y, gosymbol.N(-1)), gosymbol.MulOf(gosymbol.N(2), x))
	assert.False(t, a.Equal(c))
	assert.True(t, gosymbol.Equivalent(a, c))
}

func TestSym_Diff(t *testing.T) {
	assert.Equal(t, "1", gosymbol.Diff(x, "x").String())
	assert.Equal(t, "0", gosymbol.Diff(y, "x").String())
}

// ============================================================
// Add / Mul / Pow construction
// ============================================================

func TestAdd_LikeTerms(t *testing.T) {
	assert.Equal(t, "2*x", gosymbol.AddOf(x, x).String())
	assert.Equal(t, "0", gosymbol.AddOf(gosymbol.N(1), gosymbol.N(-1)).String())
	assert.Equal(t, "5", gosymbol.AddOf(gosymbol.N(5)).String())
}

func TestAdd_MergesProducts(t *testing.T) {
	a := gosymbol.MulOf(gosymbol.N(2), x, y)
	b := gosymbol.MulOf(gosymbol.N(3), y, x)
	assert.Equal(t, "5*x*y", gosymbol.AddOf(a, b).String())
}

func TestAdd_NegativeTermsPrintAsSubtraction(t *testing.T) {
	e := gosymbol.AddOf(x, gosymbol.MulOf(gosymbol.F(-1, 3), y), gosymbol.N(-4))
	assert.Equal(t, "x - 1/3*y - 4", e.String())
}

func TestMul_CoefficientFirst(t *testing.T) {
	assert.Equal(t, "3*x", gosymbol.MulOf(x, gosymbol.N(3)).String())
	assert.Equal(t, "0", gosymbol.MulOf(gosymbol.N(0), x).String())
	assert.Equal(t, "-x", gosymbol.MulOf(gosymbol.N(-1), x).String())
}

func TestMul_MergesPowers(t *testing.T) {
	assert.Equal(t, "x^3", gosymbol.MulOf(x, gosymbol.PowOf(x, gosymbol.N(2))).String())
	assert.Equal(t, "1", gosymbol.MulOf(x, gosymbol.PowOf(x, gosymbol.N(-1))).String())
}

func TestPow_Folding(t *testing.T) {
	assert.Equal(t, "1", gosymbol.PowOf(x, gosymbol.N(0)).String())
	assert.Equal(t, "x", gosymbol.PowOf(x, gosymbol.N(1)).String())
	assert.Equal(t, "1/8", gosymbol.PowOf(gosymbol.N(2), gosymbol.N(-3)).String())
	assert.Equal(t, "4*x^2", gosymbol.PowOf(gosymbol.MulOf(gosymbol.N(2), x), gosymbol.N(2)).String())
	assert.Equal(t, "x^(-1)", gosymbol.PowOf(x, gosymbol.N(-1)).String())
}

func TestPow_Diff(t *testing.T) {
	// d/dx x^4 = 4*x^3
	assert.Equal(t, "4*x^3", gosymbol.Diff(gosymbol.PowOf(x, gosymbol.N(4)), "x").String())
	d := gosymbol.PowOf(x, gosymbol.N(4))
	for i := 0; i < 4; i++ {
		d = gosymbol.Diff(d, "x")
	}
	assert.Equal(t, "24", d.String())
}

func TestPow_DiffSymbolicExponentPanics(t *testing.T) {
	e := gosymbol.PowOf(x, y)
	assert.Panics(t, func() { gosymbol.Diff(e, "y") })
	// An exponent free of the variable still obeys the power rule.
	assert.NotPanics(t, func() { gosymbol.Diff(e, "x") })
}

func TestEval_Exact(t *testing.T) {
	e := gosymbol.AddOf(gosymbol.F(1, 3), gosymbol.MulOf(gosymbol.N(2), gosymbol.F(1, 6)))
	v, ok := e.Eval()
	require.True(t, ok)
	assert.Equal(t, "2/3", v.String())

	_, ok = gosymbol.AddOf(x, gosymbol.N(1)).Eval()
	assert.False(t, ok)
}

func TestFreeSymbols(t *testing.T) {
	e := gosymbol.AddOf(gosymbol.MulOf(x, y), gosymbol.S("z"))
	assert.Len(t, gosymbol.FreeSymbols(e), 3)
	assert.Contains(t, gosymbol.FreeSymbols(e), "z")
}

// ============================================================
// Canonicalize
// ============================================================

func TestCanonicalize_ExpandsProducts(t *testing.T) {
	// (x - 2)^2 = x^2 - 4x + 4
	e := gosymbol.PowOf(gosymbol.AddOf(x, gosymbol.N(-2)), gosymbol.N(2))
	assert.Equal(t, "x^2 - 4*x + 4", gosymbol.Canonicalize(e).String())
}

func TestCanonicalize_DegreeThenLexOrder(t *testing.T) {
	e4 := gosymbol.S("E4")
	e6 := gosymbol.S("E6")
	e2 := gosymbol.S("E2")
	e := gosymbol.AddOf(
		gosymbol.PowOf(e4, gosymbol.N(2)),
		gosymbol.MulOf(e2, e6),
		gosymbol.MulOf(gosymbol.PowOf(e2, gosymbol.N(2)), e4),
	)
	assert.Equal(t, "E2^2*E4 + E2*E6 + E4^2", gosymbol.Canonicalize(e).String())
}

func TestCanonicalize_Idempotent(t *testing.T) {
	e := gosymbol.MulOf(
		gosymbol.AddOf(x, gosymbol.F(1, 2)),
		gosymbol.AddOf(y, gosymbol.PowOf(x, gosymbol.N(-1))),
		gosymbol.PowOf(gosymbol.AddOf(x, y), gosymbol.N(-1)),
	)
	once := gosymbol.Canonicalize(e)
	assert.Equal(t, once.String(), gosymbol.Canonicalize(once).String())
}

func TestCanonicalize_OpaqueBaseMerges(t *testing.T) {
	inv := gosymbol.PowOf(gosymbol.AddOf(x, gosymbol.N(1)), gosymbol.N(-1))
	got := gosymbol.Canonicalize(gosymbol.MulOf(gosymbol.N(2), inv, gosymbol.AddOf(inv)))
	assert.Equal(t, "2*(x + 1)^(-2)", got.String())
}

func TestCanonicalize_LargePowersStayOpaque(t *testing.T) {
	sum := gosymbol.PowOf(gosymbol.AddOf(x, gosymbol.N(1)), gosymbol.N(2000))
	assert.Equal(t, "(x + 1)^2000", gosymbol.Canonicalize(sum).String())

	mono := gosymbol.PowOf(x, gosymbol.N(5000))
	assert.Equal(t, "x^5000", gosymbol.Canonicalize(mono).String())
}

func TestEquivalent(t *testing.T) {
	lhs := gosymbol.MulOf(gosymbol.AddOf(x, y), gosymbol.AddOf(x, gosymbol.MulOf(gosymbol.N(-1), y)))
	rhs := gosymbol.AddOf(gosymbol.PowOf(x, gosymbol.N(2)), gosymbol.MulOf(gosymbol.N(-1), gosymbol.PowOf(y, gosymbol.N(2))))
	assert.True(t, gosymbol.Equivalent(lhs, rhs))
	assert.False(t, gosymbol.Equivalent(lhs, x))
}

// ============================================================
// Validate
// ============================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		expr    gosymbol.Expr
		wantErr bool
	}{
		{"constant", gosymbol.N(7), false},
		{"polynomial", gosymbol.AddOf(gosymbol.PowOf(x, gosymbol.N(3)), y), false},
		{"laurent", gosymbol.PowOf(x, gosymbol.N(-2)), false},
		{"fractional exponent", gosymbol.PowOf(x, gosymbol.F(1, 2)), false},
		{"symbolic exponent", gosymbol.PowOf(x, y), true},
		{"nested symbolic exponent", gosymbol.MulOf(x, gosymbol.PowOf(gosymbol.N(2), y)), true},
		{"zero to negative power", gosymbol.PowOf(gosymbol.N(0), gosymbol.N(-1)), true},
		{"large symbol power", gosymbol.PowOf(x, gosymbol.N(5000)), false},
		{"large negative power of sum", gosymbol.PowOf(gosymbol.AddOf(x, y), gosymbol.N(-5000)), false},
		{"sum beyond expansion limit", gosymbol.PowOf(gosymbol.AddOf(x, y), gosymbol.N(1025)), true},
		{"constant beyond expansion limit", gosymbol.PowOf(gosymbol.N(2), gosymbol.N(1025)), true},
		{"nil", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gosymbol.Validate(tt.expr)
			if tt.wantErr {
				assert.True(t, errors.Is(err, gosymbol.ErrNotAlgebraic), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// ============================================================
// Binomial
// ============================================================

func TestBinomial_Integers(t *testing.T) {
	tests := []struct {
		a, b int64
		want string
	}{
		{5, 0, "1"},
		{5, 1, "5"},
		{5, 2, "10"},
		{5, 6, "0"},
		{5, -1, "0"},
		{0, 0, "1"},
		{-1, 0, "1"},
		{-1, 3, "-1"},
		{-3, 2, "6"},
	}
	for _, tt := range tests {
		got, err := gosymbol.Binomial(gosymbol.N(tt.a), gosymbol.N(tt.b))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String(), "C(%d, %d)", tt.a, tt.b)
	}
}

func TestBinomial_RationalAndSymbolic(t *testing.T) {
	got, err := gosymbol.Binomial(gosymbol.F(1, 2), gosymbol.N(2))
	require.NoError(t, err)
	assert.Equal(t, "-1/8", got.String())

	got, err = gosymbol.Binomial(x, gosymbol.N(2))
	require.NoError(t, err)
	assert.Equal(t, "1/2*x^2 - 1/2*x", got.String())
}

func TestBinomial_NonIntegerLower(t *testing.T) {
	_, err := gosymbol.Binomial(gosymbol.N(5), x)
	assert.True(t, errors.Is(err, gosymbol.ErrNonIntegerBinomial))

	_, err = gosymbol.Binomial(gosymbol.N(5), gosymbol.F(1, 2))
	assert.True(t, errors.Is(err, gosymbol.ErrNonIntegerBinomial))
}

// ============================================================
// LaTeX and JSON
// ============================================================

func TestLaTeX(t *testing.T) {
	e := gosymbol.Canonicalize(gosymbol.AddOf(
		gosymbol.MulOf(gosymbol.F(25, 9), gosymbol.PowOf(gosymbol.S("E4"), gosymbol.N(3))),
		gosymbol.MulOf(gosymbol.F(-25, 9), gosymbol.PowOf(gosymbol.S("E6"), gosymbol.N(2))),
	))
	assert.Equal(t, `\frac{25}{9} E4^{3} - \frac{25}{9} E6^{2}`, gosymbol.LaTeX(e))
}

func TestJSON_RoundTrip(t *testing.T) {
	e := gosymbol.Canonicalize(gosymbol.AddOf(
		gosymbol.MulOf(gosymbol.F(1, 12), gosymbol.PowOf(x, gosymbol.N(2))),
		gosymbol.MulOf(gosymbol.F(-1, 12), y),
	))
	doc, err := gosymbol.ToJSON(e)
	require.NoError(t, err)

	back, err := gosymbol.ParseJSON(doc)
	require.NoError(t, err)
	assert.True(t, gosymbol.Equivalent(e, back))
}

func TestParseJSON_Errors(t *testing.T) {
	for _, doc := range []string{
		`not json`,
		`{}`,
		`{"type":"num","value":"abc"}`,
		`{"type":"sym"}`,
		`{"type":"add","terms":[1]}`,
		`{"type":"pow","base":{"type":"sym","name":"x"}}`,
		`{"type":"sin"}`,
	} {
		_, err := gosymbol.ParseJSON(doc)
		assert.Error(t, err, doc)
	}
}
