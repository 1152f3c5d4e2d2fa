// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"math/big"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/vqchain/digest"
)

func TestDigestToFieldFitsIn248Bits(t *testing.T) {
	var all0xff digest.Digest
	for i := range all0xff {
		all0xff[i] = 0xff
	}

	got := DigestToField(all0xff)
	var gotBig big.Int
	got.BigInt(&gotBig)

	require.LessOrEqual(t, gotBig.BitLen(), 248)
}

func TestDigestToFieldDeterministic(t *testing.T) {
	d := digest.Sum([]byte("hello"))
	a := DigestToField(d)
	b := DigestToField(d)
	require.True(t, a.Equal(&b))
}

func TestCurvePowG1MatchesScalarMultiplication(t *testing.T) {
	g1 := G1Gen()
	tbl := NewCurvePowG1(g1)

	for _, x := range []uint64{0, 1, 2, 31, 32, 1000, 123456} {
		var e Element
		e.SetUint64(x)

		got := tbl.Apply(&e)

		var want bls12381.G1Affine
		want.ScalarMultiplication(&g1, big.NewInt(0).SetUint64(x))

		require.True(t, got.Equal(&want), "mismatch at x=%d", x)
	}
}

func TestScalarPowMatchesRepeatedMultiplication(t *testing.T) {
	var base Element
	base.SetUint64(7)
	tbl := NewScalarPow(base)

	for _, x := range []uint64{0, 1, 2, 255, 256, 10000} {
		var e Element
		e.SetUint64(x)
		got := tbl.Apply(&e)

		want := Element{}
		want.SetOne()
		for i := uint64(0); i < x; i++ {
			want.Mul(&want, &base)
		}
		require.True(t, got.Equal(&want), "mismatch at x=%d", x)
	}
}

func TestPublicParamsG1SOnTheFlyFallback(t *testing.T) {
	pp := NewPublicParams(4)
	require.Equal(t, 4, pp.VecLen())

	// index inside the precomputed vector of a larger parameter set
	inside := NewPublicParams(8).G1S(5)
	// index outside this vector, forcing the fixed-base fallback
	outside := pp.G1S(5)
	require.True(t, inside.Equal(&outside))
}
