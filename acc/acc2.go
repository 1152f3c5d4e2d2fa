// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package acc

import (
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/setalg"
)

// Acc2 is the additive-exponential accumulator: it commits
// S = {(k_i, c_i)} to y = sum_i c_i*s^{k_i} in G1, and to
// y' = sum_i c_i*s^{Q-k_i} in G2 (spec.md section 4.5). The Q-shift on the
// G2 side is what makes the disjointness pairing equation work out.
type Acc2 struct{}

var _ Accumulator = Acc2{}

// CalAccG1SK computes g1^y directly via the secret s.
func (Acc2) CalAccG1SK(pp *field.PublicParams, s Set) field.G1 {
	y := acc2SumSK(pp, s, false)
	return pp.ApplyG1(&y)
}

// CalAccG1 computes g1^y via MSM against the precomputed/on-the-fly G1S
// vector, one base per distinct key.
func (Acc2) CalAccG1(pp *field.PublicParams, s Set) field.G1 {
	ds := setalg.NewDigestSet(s)
	entries := ds.Entries()
	points := make([]field.G1, len(entries))
	scalars := make([]field.Element, len(entries))
	for i, e := range entries {
		points[i] = pp.G1SByElement(&e.Key)
		scalars[i] = countElement(e.Count)
	}
	out, err := field.MSMG1(points, scalars)
	if err != nil {
		panic(err)
	}
	return out
}

// CalAccG2SK computes g2^{y'} directly via the secret s, y' using the
// Q-k_i shift.
func (Acc2) CalAccG2SK(pp *field.PublicParams, s Set) field.G2 {
	y := acc2SumSK(pp, s, true)
	return pp.ApplyG2(&y)
}

// CalAccG2 computes g2^{y'} via MSM, base indices shifted by Q-k_i.
func (Acc2) CalAccG2(pp *field.PublicParams, s Set) field.G2 {
	q := field.PubQ()
	ds := setalg.NewDigestSet(s)
	entries := ds.Entries()
	points := make([]field.G2, len(entries))
	scalars := make([]field.Element, len(entries))
	for i, e := range entries {
		var shifted field.Element
		shifted.Sub(&q, &e.Key)
		points[i] = pp.G2SByElement(&shifted)
		scalars[i] = countElement(e.Count)
	}
	out, err := field.MSMG2(points, scalars)
	if err != nil {
		panic(err)
	}
	return out
}

// acc2SumSK computes sum_i c_i*s^{k_i} (g2Shift=false) or
// sum_i c_i*s^{Q-k_i} (g2Shift=true).
func acc2SumSK(pp *field.PublicParams, s Set, g2Shift bool) field.Element {
	q := field.PubQ()
	ds := setalg.NewDigestSet(s)
	var total field.Element
	for _, e := range ds.Entries() {
		exp := e.Key
		if g2Shift {
			exp.Sub(&q, &e.Key)
		}
		spow := pp.ApplyS(&exp)
		var term field.Element
		term.Mul(&spow, countElementPtr(e.Count))
		total.Add(&total, &term)
	}
	return total
}

func countElement(c uint32) field.Element {
	var e field.Element
	e.SetUint64(uint64(c))
	return e
}

func countElementPtr(c uint32) *field.Element {
	e := countElement(c)
	return &e
}

// GenProof builds the product-set proof: for disjoint A = {(a_i,p_i)},
// B = {(b_j,q_j)}, the proof is f = g1^{sum p_i*q_j*s^{Q+a_i-b_j}}. If any
// entry has Q+a_i-b_j == Q (i.e. a_i == b_j), the sets intersect and
// generation fails.
func (Acc2) GenProof(pp *field.PublicParams, a, b Set) (Proof, error) {
	q := field.PubQ()
	dsA := setalg.NewDigestSet(a)
	dsB := setalg.NewDigestSet(b)

	entriesA := dsA.Entries()
	entriesB := dsB.Entries()

	points := make([]field.G1, 0, len(entriesA)*len(entriesB))
	scalars := make([]field.Element, 0, len(entriesA)*len(entriesB))

	for _, ea := range entriesA {
		for _, eb := range entriesB {
			var x field.Element
			x.Add(&q, &ea.Key)
			x.Sub(&x, &eb.Key)
			if x.Equal(&q) {
				return nil, ErrCannotGenerateProof
			}
			points = append(points, pp.G1SByElement(&x))

			var weight field.Element
			weight.Mul(countElementPtr(ea.Count), countElementPtr(eb.Count))
			scalars = append(scalars, weight)
		}
	}

	f, err := field.MSMG1(points, scalars)
	if err != nil {
		return nil, err
	}
	return &Acc2Proof{F: f}, nil
}

// Acc2Proof is the single G1 element proof of ACC2's disjointness property.
// Acc2 proofs are additive: Combine(proof(A,B1), proof(A,B2)) ==
// proof(A, B1 union B2).
type Acc2Proof struct {
	F field.G1
}

var _ Proof = (*Acc2Proof)(nil)

// Verify checks e(Acc_A^{G1}, Acc_B^{G2}) == e(f, g2).
func (p *Acc2Proof) Verify(pp *field.PublicParams, accA, accB AccValue) (bool, error) {
	if !accB.HasG2 {
		return false, ErrWrongProofVariant
	}
	var negF field.G1
	negF.Neg(&p.F)

	return field.PairingProductIsOne(
		[]field.G1{accA.G1, negF},
		[]field.G2{accB.G2, pp.G2},
	)
}

// Combine folds another ACC2 proof into this one: F <- F + other.F.
func (p *Acc2Proof) Combine(other Proof) (Proof, error) {
	op, ok := other.(*Acc2Proof)
	if !ok {
		return nil, ErrWrongProofVariant
	}
	var sum field.G1
	sum.Add(&p.F, &op.F)
	return &Acc2Proof{F: sum}, nil
}
