// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// scalarFieldBits is the bit length of the BLS12-381 scalar field modulus.
const scalarFieldBits = 255

const (
	curveWindow = 5 // k for curve-power tables (G1/G2)
	fieldWindow = 8 // k for field-power tables (Fr)
)

func numWindows(k int) int {
	return (scalarFieldBits + k - 1) / k
}

// window extracts the i-th k-bit window of x (window 0 is the least
// significant bits).
func window(x *big.Int, i, k int) uint64 {
	shifted := new(big.Int).Rsh(x, uint(i*k))
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(k)), big.NewInt(1))
	shifted.And(shifted, mask)
	return shifted.Uint64()
}

// CurvePowG1 is a fixed-base comb table for repeated base^x computations in
// G1. Building costs O(2^k * beta/k) group operations; Apply costs
// O(beta/k).
type CurvePowG1 struct {
	tables [][]bls12381.G1Affine // tables[i][0] is the identity; tables[i][j] = base^(j * 2^(i*k))
}

// NewCurvePowG1 builds a fixed-base table for the given base point.
func NewCurvePowG1(base bls12381.G1Affine) *CurvePowG1 {
	n := numWindows(curveWindow)
	size := 1 << curveWindow
	tables := make([][]bls12381.G1Affine, n)

	var cur bls12381.G1Jac
	cur.FromAffine(&base)
	for i := 0; i < n; i++ {
		tbl := make([]bls12381.G1Affine, size) // tbl[0] stays the identity (zero value)
		var step bls12381.G1Jac
		step.Set(&cur)
		var acc bls12381.G1Jac
		for j := 1; j < size; j++ {
			acc.AddAssign(&step)
			tbl[j].FromJacobian(&acc)
		}
		tables[i] = tbl

		// cur <- cur^(2^k) for the next window
		for b := 0; b < curveWindow; b++ {
			cur.DoubleAssign()
		}
	}
	return &CurvePowG1{tables: tables}
}

// Apply computes base^x.
func (t *CurvePowG1) Apply(x *fr.Element) bls12381.G1Affine {
	var xBig big.Int
	x.BigInt(&xBig)

	var acc bls12381.G1Jac
	for i, tbl := range t.tables {
		w := window(&xBig, i, curveWindow)
		if w == 0 {
			continue
		}
		var p bls12381.G1Jac
		p.FromAffine(&tbl[w])
		acc.AddAssign(&p)
	}
	var out bls12381.G1Affine
	out.FromJacobian(&acc)
	return out
}

// CurvePowG2 is the G2 analogue of CurvePowG1.
type CurvePowG2 struct {
	tables [][]bls12381.G2Affine
}

// NewCurvePowG2 builds a fixed-base table for the given base point.
func NewCurvePowG2(base bls12381.G2Affine) *CurvePowG2 {
	n := numWindows(curveWindow)
	size := 1 << curveWindow
	tables := make([][]bls12381.G2Affine, n)

	var cur bls12381.G2Jac
	cur.FromAffine(&base)
	for i := 0; i < n; i++ {
		tbl := make([]bls12381.G2Affine, size)
		var step bls12381.G2Jac
		step.Set(&cur)
		var acc bls12381.G2Jac
		for j := 1; j < size; j++ {
			acc.AddAssign(&step)
			tbl[j].FromJacobian(&acc)
		}
		tables[i] = tbl

		for b := 0; b < curveWindow; b++ {
			cur.DoubleAssign()
		}
	}
	return &CurvePowG2{tables: tables}
}

// Apply computes base^x.
func (t *CurvePowG2) Apply(x *fr.Element) bls12381.G2Affine {
	var xBig big.Int
	x.BigInt(&xBig)

	var acc bls12381.G2Jac
	for i, tbl := range t.tables {
		w := window(&xBig, i, curveWindow)
		if w == 0 {
			continue
		}
		var p bls12381.G2Jac
		p.FromAffine(&tbl[w])
		acc.AddAssign(&p)
	}
	var out bls12381.G2Affine
	out.FromJacobian(&acc)
	return out
}

// ScalarPow is a fixed-base comb table for repeated base^x computations in
// the scalar field F itself (used to compute s^k for ACC2's SK path).
type ScalarPow struct {
	tables [][]fr.Element // tables[i][0] == 1; tables[i][j] = base^(j * 2^(i*k))
}

// NewScalarPow builds a fixed-base table for the given base field element.
func NewScalarPow(base fr.Element) *ScalarPow {
	n := numWindows(fieldWindow)
	size := 1 << fieldWindow
	tables := make([][]fr.Element, n)

	cur := base
	for i := 0; i < n; i++ {
		tbl := make([]fr.Element, size)
		tbl[0].SetOne()
		for j := 1; j < size; j++ {
			tbl[j].Mul(&tbl[j-1], &cur)
		}
		tables[i] = tbl

		// cur <- cur^(2^k) for the next window
		for b := 0; b < fieldWindow; b++ {
			cur.Mul(&cur, &cur)
		}
	}
	return &ScalarPow{tables: tables}
}

// Apply computes base^x in F.
func (t *ScalarPow) Apply(x *fr.Element) fr.Element {
	var xBig big.Int
	x.BigInt(&xBig)

	var acc fr.Element
	acc.SetOne()
	for i, tbl := range t.tables {
		w := window(&xBig, i, fieldWindow)
		if w == 0 {
			continue
		}
		acc.Mul(&acc, &tbl[w])
	}
	return acc
}
