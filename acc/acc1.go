// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package acc

import (
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/setalg"
)

// Acc1 is the multiplicative-polynomial accumulator: it commits
// S = {(k_i, c_i)} to x = prod_i (s+k_i)^{c_i}, g1^x or g2^x (spec.md
// section 4.5).
type Acc1 struct{}

var _ Accumulator = Acc1{}

// CalAccG1SK computes g1^x directly via the secret s (reference path).
func (Acc1) CalAccG1SK(pp *field.PublicParams, s Set) field.G1 {
	x := acc1Exponent(pp, s)
	return pp.ApplyG1(&x)
}

// CalAccG1 computes g1^x via the polynomial/MSM production path.
func (Acc1) CalAccG1(pp *field.PublicParams, s Set) field.G1 {
	p := acc1ExpandPoly(s)
	points := make([]field.G1, len(p))
	for j := range p {
		points[j] = pp.G1S(uint64(j))
	}
	out, err := field.MSMG1(points, p)
	if err != nil {
		panic(err)
	}
	return out
}

// CalAccG2SK computes g2^x directly via the secret s.
func (Acc1) CalAccG2SK(pp *field.PublicParams, s Set) field.G2 {
	x := acc1Exponent(pp, s)
	return pp.ApplyG2(&x)
}

// CalAccG2 computes g2^x via MSM.
func (Acc1) CalAccG2(pp *field.PublicParams, s Set) field.G2 {
	p := acc1ExpandPoly(s)
	points := make([]field.G2, len(p))
	for j := range p {
		points[j] = pp.G2S(uint64(j))
	}
	out, err := field.MSMG2(points, p)
	if err != nil {
		panic(err)
	}
	return out
}

// GenProof generates a disjointness proof for A, B via extended polynomial
// GCD: if gcd(P_A, P_B) has degree > 0, A and B intersect and no proof
// exists.
func (Acc1) GenProof(pp *field.PublicParams, a, b Set) (Proof, error) {
	pA := acc1ExpandPoly(a)
	pB := acc1ExpandPoly(b)

	g, u, v := setalg.XGCD(pA, pB)
	if g.Degree() != 0 {
		return nil, ErrCannotGenerateProof
	}

	var gInv field.Element
	gInv.Inverse(&g[0])

	uOverG := setalg.Scale(u, gInv)
	vOverG := setalg.Scale(v, gInv)

	f1, err := msmG2FromPoly(pp, uOverG)
	if err != nil {
		return nil, err
	}
	f2, err := msmG2FromPoly(pp, vOverG)
	if err != nil {
		return nil, err
	}

	return &Acc1Proof{F1: f1, F2: f2}, nil
}

func acc1ExpandPoly(s Set) setalg.Poly {
	ds := setalg.NewDigestSet(s)
	return setalg.ExpandToPoly(ds)
}

// acc1Exponent computes x = prod_i (s+k_i)^{c_i} directly (the SK path).
func acc1Exponent(pp *field.PublicParams, s Set) field.Element {
	ds := setalg.NewDigestSet(s)
	var x field.Element
	x.SetOne()
	for _, e := range ds.Entries() {
		var base field.Element
		base.Add(&pp.S, &e.Key)
		term := field.Pow(base, e.Count)
		x.Mul(&x, &term)
	}
	return x
}

func msmG2FromPoly(pp *field.PublicParams, p setalg.Poly) (field.G2, error) {
	points := make([]field.G2, len(p))
	for j := range p {
		points[j] = pp.G2S(uint64(j))
	}
	return field.MSMG2(points, p)
}

// Acc1Proof is the (f1, f2) pair of the ACC1 disjointness proof.
type Acc1Proof struct {
	F1 field.G2
	F2 field.G2
}

var _ Proof = (*Acc1Proof)(nil)

// Verify checks e(Acc_A, f1) * e(Acc_B, f2) == e(g1, g2).
func (p *Acc1Proof) Verify(pp *field.PublicParams, accA, accB AccValue) (bool, error) {
	var negG1 field.G1
	negG1.Neg(&pp.G1)

	return field.PairingProductIsOne(
		[]field.G1{accA.G1, accB.G1, negG1},
		[]field.G2{p.F1, p.F2, pp.G2},
	)
}

// Combine is unsupported for ACC1: its proofs are not additive.
func (p *Acc1Proof) Combine(Proof) (Proof, error) {
	return nil, ErrCombineUnsupported
}
