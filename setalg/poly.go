// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package setalg

import (
	"context"

	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/workerpool"
)

// treeProductPool is the shared worker pool backing the polynomial
// tree-product (spec.md section 5: "a shared worker pool is used internally
// by ... polynomial tree-product").
var treeProductPool = workerpool.Default()

// Poly is a dense polynomial over F, coefficients ordered low-to-high
// (Poly[0] is the constant term).
type Poly []field.Element

// One returns the constant polynomial 1.
func One() Poly {
	var one field.Element
	one.SetOne()
	return Poly{one}
}

// Degree returns deg(p), or -1 for the zero polynomial.
func (p Poly) Degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy.
func (p Poly) Clone() Poly {
	out := make(Poly, len(p))
	copy(out, p)
	return out
}

// Mul computes the product p*q by schoolbook convolution, O(deg(p)*deg(q)).
func Mul(p, q Poly) Poly {
	if len(p) == 0 || len(q) == 0 {
		return Poly{}
	}
	out := make(Poly, len(p)+len(q)-1)
	for i, pi := range p {
		if pi.IsZero() {
			continue
		}
		for j, qj := range q {
			var term field.Element
			term.Mul(&pi, &qj)
			out[i+j].Add(&out[i+j], &term)
		}
	}
	return out
}

// Add computes p+q.
func Add(p, q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make(Poly, n)
	copy(out, p)
	for i, qi := range q {
		out[i].Add(&out[i], &qi)
	}
	return out
}

// Sub computes p-q.
func Sub(p, q Poly) Poly {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make(Poly, n)
	copy(out, p)
	for i, qi := range q {
		out[i].Sub(&out[i], &qi)
	}
	return out
}

// Scale multiplies every coefficient by c.
func Scale(p Poly, c field.Element) Poly {
	out := make(Poly, len(p))
	for i := range p {
		out[i].Mul(&p[i], &c)
	}
	return out
}

// linear returns the degree-1 polynomial (x + k).
func linear(k field.Element) Poly {
	return Poly{k, one()}
}

func one() field.Element {
	var e field.Element
	e.SetOne()
	return e
}

// DivMod computes q, r such that p = q*d + r, deg(r) < deg(d). d must be
// monic or otherwise invertible in its leading coefficient; this is always
// true for the divisors used by the accumulator's extended GCD, which are
// themselves produced by this same routine.
func DivMod(p, d Poly) (q, r Poly) {
	dDeg := d.Degree()
	if dDeg < 0 {
		panic("setalg: division by the zero polynomial")
	}
	r = p.Clone()
	qLen := r.Degree() - dDeg + 1
	if qLen < 0 {
		return Poly{}, r
	}
	q = make(Poly, qLen)

	var leadInv field.Element
	leadInv.Inverse(&d[dDeg])

	for r.Degree() >= dDeg {
		rDeg := r.Degree()
		var coef field.Element
		coef.Mul(&r[rDeg], &leadInv)
		shift := rDeg - dDeg
		q[shift] = coef

		for i, di := range d {
			var term field.Element
			term.Mul(&coef, &di)
			r[shift+i].Sub(&r[shift+i], &term)
		}
	}
	return q, r
}

// XGCD computes the extended Euclidean algorithm on a, b: g = gcd(a,b) and
// u, v such that u*a + v*b = g. Used by ACC1's disjointness proof (spec.md
// section 4.5): if deg(g) != 0, the two input polynomials (and hence the
// two underlying sets) are not coprime/disjoint.
func XGCD(a, b Poly) (g, u, v Poly) {
	if b.Degree() < 0 {
		return a.Clone(), One(), Poly{}
	}
	q, r := DivMod(a, b)
	g1, u1, v1 := XGCD(b, r)
	// u1*b + v1*r = g1, and r = a - q*b, so
	// g1 = v1*a + (u1 - v1*q)*b
	return g1, v1, Sub(u1, Mul(v1, q))
}

// ExpandToPoly computes P(x) = prod_i (x + k_i)^{c_i} for the (field
// element, multiplicity) pairs in ds, via a parallel divide-and-conquer tree
// product (spec.md section 4.4).
func ExpandToPoly(ds *DigestSet) Poly {
	factors := make([]Poly, 0, ds.totalMultiplicity())
	for _, e := range ds.entries {
		lin := linear(e.Key)
		for i := uint32(0); i < e.Count; i++ {
			factors = append(factors, lin)
		}
	}
	return treeProduct(factors)
}

func treeProduct(factors []Poly) Poly {
	switch len(factors) {
	case 0:
		return One()
	case 1:
		return factors[0]
	}

	// Below this size the goroutine/errgroup overhead outweighs the win;
	// multiply serially.
	const parallelThreshold = 64
	if len(factors) < parallelThreshold {
		return serialTreeProduct(factors)
	}

	mid := len(factors) / 2
	left := factors[:mid]
	right := factors[mid:]

	var leftResult, rightResult Poly
	g, _ := treeProductPool.Group(context.Background())
	g.Go(func() error {
		leftResult = treeProduct(left)
		return nil
	})
	g.Go(func() error {
		rightResult = treeProduct(right)
		return nil
	})
	_ = g.Wait()

	return Mul(leftResult, rightResult)
}

func serialTreeProduct(factors []Poly) Poly {
	switch len(factors) {
	case 0:
		return One()
	case 1:
		return factors[0]
	}
	mid := len(factors) / 2
	return Mul(serialTreeProduct(factors[:mid]), serialTreeProduct(factors[mid:]))
}
