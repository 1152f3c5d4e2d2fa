// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/luxfi/vqchain/digest"
)

// clearTopByteMask keeps the low 248 bits of a 256-bit value, clearing the
// top byte. This is the digest-to-field domain constant of spec.md section
// 6: it guarantees Q-x and Q+x1-x2 stay representable without wraparound.
var clearTopByteMask = func() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), 248)
	return m.Sub(m, big.NewInt(1))
}()

// DigestToField maps a 32-byte digest into the scalar field F: interpret the
// bytes as a big-endian integer, reduce modulo the field order, then mask
// the result down to 248 bits.
//
// This never fails: the masked value is always strictly smaller than the
// field modulus, so SetBigInt cannot reject it.
func DigestToField(d digest.Digest) Element {
	raw := new(big.Int).SetBytes(d[:])

	var reduced fr.Element
	reduced.SetBigInt(raw)

	var reducedBig big.Int
	reduced.BigInt(&reducedBig)
	reducedBig.And(&reducedBig, clearTopByteMask)

	var out fr.Element
	out.SetBigInt(&reducedBig)
	return out
}

// PubQ is the public, fixed 249-bit constant Q used by ACC2's G2 shift and
// its disjointness-proof product set. It must stay fixed for interop with
// any existing proofs (spec.md section 6).
func PubQ() Element {
	var q fr.Element
	if _, err := q.SetString("480721077433357505777975950918924200361380912084288598463024400624539293706"); err != nil {
		panic(err)
	}
	return q
}

// PriS is the secret setup scalar s, used only by the SK (reference) proof
// and accumulator paths and to build the fixed-base tables and the public
// G1^{s^i}/G2^{s^i} vectors.
func PriS() Element {
	var s fr.Element
	if _, err := s.SetString("259535143263514268207918833918737523409"); err != nil {
		panic(err)
	}
	return s
}
