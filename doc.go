// Package rankincohen computes Rankin-Cohen brackets of modular forms
// written as polynomials in the Eisenstein series E2, E4 and E6.
//
// Derivatives are formal: Ramanujan's identities
//
//	D(E2) = (E2^2 - E4) / 12
//	D(E4) = (E2*E4 - E6) / 3
//	D(E6) = (E2*E6 - E4^2) / 2
//
// extend by the chain rule to any expression over the generators. The
// bracket of order n of a weight-k form f and a weight-l form g is
//
//	[f, g]_n = sum over r+s=n of (-1)^s C(k+n-1, s) C(l+n-1, r) D^r(f) D^s(g)
//
// All arithmetic goes through an Algebra. Symbolic is the exact-rational
// implementation backed by the gosymbol kernel:
//
//	ring, _ := rankincohen.NewRing(rankincohen.NewSymbolic())
//	e4 := ring.Gen(rankincohen.E4)
//	b, _ := ring.Bracket(e4, e4, 2, 4, 4)
//	fmt.Println(b) // 25/9*E4^3 - 25/9*E6^2
package rankincohen
