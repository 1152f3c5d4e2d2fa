// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// DefaultVectorLen is the bound N on the precomputed G1^{s^i}/G2^{s^i}
// vectors (spec.md section 3: "for some bound N (e.g., 5000)").
const DefaultVectorLen = 5000

// PublicParams bundles the process-wide immutable cryptographic state: the
// generators, the secret s (needed only by SK-path computations), the
// precomputed power vectors G1^S and G2^S, and the fixed-base comb tables
// for g1, g2, and s itself.
type PublicParams struct {
	G1 G1
	G2 G2
	S  Element

	g1S []G1
	g2S []G2

	g1Pow *CurvePowG1
	g2Pow *CurvePowG2
	sPow  *ScalarPow
}

// NewPublicParams builds the public parameters with a precomputed vector
// length of n. This is an expensive, one-time setup operation.
func NewPublicParams(n int) *PublicParams {
	g1 := G1Gen()
	g2 := G2Gen()
	s := PriS()

	pp := &PublicParams{
		G1:    g1,
		G2:    g2,
		S:     s,
		g1S:   make([]G1, n),
		g2S:   make([]G2, n),
		g1Pow: NewCurvePowG1(g1),
		g2Pow: NewCurvePowG2(g2),
		sPow:  NewScalarPow(s),
	}

	var sBig big.Int
	s.BigInt(&sBig)

	pp.g1S[0] = g1
	pp.g2S[0] = g2
	for i := 1; i < n; i++ {
		pp.g1S[i].ScalarMultiplication(&pp.g1S[i-1], &sBig)
		pp.g2S[i].ScalarMultiplication(&pp.g2S[i-1], &sBig)
	}
	return pp
}

// VecLen returns the length of the precomputed power vectors.
func (pp *PublicParams) VecLen() int {
	return len(pp.g1S)
}

// G1S returns g1^{s^i}, computing it on the fly via the fixed-base tables
// if i falls outside the precomputed vector.
func (pp *PublicParams) G1S(i uint64) G1 {
	if i < uint64(len(pp.g1S)) {
		return pp.g1S[i]
	}
	si := elementFromUint64(i)
	sPowI := pp.sPow.Apply(&si)
	return pp.g1Pow.Apply(&sPowI)
}

// G2S returns g2^{s^i}, with the same on-the-fly fallback as G1S.
func (pp *PublicParams) G2S(i uint64) G2 {
	if i < uint64(len(pp.g2S)) {
		return pp.g2S[i]
	}
	si := elementFromUint64(i)
	sPowI := pp.sPow.Apply(&si)
	return pp.g2Pow.Apply(&sPowI)
}

// ApplyG1 computes g1^x via the fixed-base table.
func (pp *PublicParams) ApplyG1(x *Element) G1 {
	return pp.g1Pow.Apply(x)
}

// ApplyG2 computes g2^x via the fixed-base table.
func (pp *PublicParams) ApplyG2(x *Element) G2 {
	return pp.g2Pow.Apply(x)
}

// ApplyS computes s^x in F via the fixed-base table.
func (pp *PublicParams) ApplyS(x *Element) Element {
	return pp.sPow.Apply(x)
}

func elementFromUint64(v uint64) Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

// smallIndex reports whether k represents a non-negative integer strictly
// below bound, and returns it as a uint64 if so.
func smallIndex(k *Element, bound int) (uint64, bool) {
	var kBig big.Int
	k.BigInt(&kBig)
	if !kBig.IsUint64() {
		return 0, false
	}
	v := kBig.Uint64()
	return v, v < uint64(bound)
}

// G1SByElement returns g1^{s^k} for an arbitrary field-element exponent k
// (not just a small integer index): ACC2's digest-derived keys can be up to
// ~248 bits, so the precomputed vector only ever serves as a cache for the
// rare case k happens to be small; otherwise this falls back to computing
// s^k via the scalar fixed-base table and then g1^{that} via the curve
// fixed-base table.
func (pp *PublicParams) G1SByElement(k *Element) G1 {
	if idx, ok := smallIndex(k, len(pp.g1S)); ok {
		return pp.g1S[idx]
	}
	sk := pp.sPow.Apply(k)
	return pp.g1Pow.Apply(&sk)
}

// G2SByElement is the G2 analogue of G1SByElement.
func (pp *PublicParams) G2SByElement(k *Element) G2 {
	if idx, ok := smallIndex(k, len(pp.g2S)); ok {
		return pp.g2S[idx]
	}
	sk := pp.sPow.Apply(k)
	return pp.g2Pow.Apply(&sk)
}
