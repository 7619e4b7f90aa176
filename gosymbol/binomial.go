package gosymbol

import (
	"fmt"
	"math/big"
)

// Binomial returns the generalized binomial coefficient C(a, b) as the
// falling factorial a(a-1)...(a-b+1) divided by b!.
//
// b must be an integer constant. C(a, b) is 0 for b < 0 and for integer
// 0 <= a < b, and 1 for b = 0 whatever a is. A symbolic a yields the
// canonical polynomial in a.
func Binomial(a, b Expr) (Expr, error) {
	bn, ok := b.Eval()
	if !ok || !bn.IsInteger() || !bn.val.Num().IsInt64() {
		return nil, fmt.Errorf("%w: got %s", ErrNonIntegerBinomial, b.String())
	}
	k := bn.val.Num().Int64()
	if k < 0 {
		return N(0), nil
	}

	a = a.Simplify()
	an, isNum := a.(*Num)
	if isNum && an.IsInteger() && an.val.Num().IsInt64() {
		return &Num{val: new(big.Rat).SetInt(binomialInt(an.val.Num().Int64(), k))}, nil
	}
	if isNum {
		acc := new(big.Rat).SetInt64(1)
		for i := int64(0); i < k; i++ {
			f := new(big.Rat).Sub(an.val, new(big.Rat).SetInt64(i))
			acc.Mul(acc, f)
		}
		acc.Quo(acc, new(big.Rat).SetInt(factorial(k)))
		return &Num{val: acc}, nil
	}

	factors := make([]Expr, 0, k+1)
	factors = append(factors, &Num{val: new(big.Rat).SetFrac(big.NewInt(1), factorial(k))})
	for i := int64(0); i < k; i++ {
		factors = append(factors, AddOf(a, N(-i)))
	}
	return Canonicalize(MulOf(factors...)), nil
}

// binomialInt handles integer a, including C(-m, k) = (-1)^k C(m+k-1, k).
func binomialInt(n, k int64) *big.Int {
	if n >= 0 {
		if k > n {
			return new(big.Int)
		}
		return new(big.Int).Binomial(n, k)
	}
	r := new(big.Int).Binomial(-n+k-1, k)
	if k%2 == 1 {
		r.Neg(r)
	}
	return r
}

func factorial(k int64) *big.Int {
	return new(big.Int).MulRange(1, k)
}
