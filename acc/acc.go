// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package acc implements the two pairing-based set accumulators, ACC1
// (multiplicative) and ACC2 (additive), over BLS12-381: commitment,
// disjointness-proof generation, and proof verification (spec.md section
// 4.5).
package acc

import (
	"errors"

	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/setalg"
)

// ErrCannotGenerateProof is returned by GenProof when the two input sets are
// not disjoint: under spec.md section 4.5/7 this is a recoverable signal
// that the query would have matched the node, not a structural failure.
var ErrCannotGenerateProof = errors.New("acc: cannot generate proof: sets are not disjoint")

// ErrWrongProofVariant is returned when a Proof is verified against the
// wrong accumulator scheme.
var ErrWrongProofVariant = errors.New("acc: proof does not belong to this accumulator variant")

// ErrCombineUnsupported is returned by ACC1's CombineProof: ACC1 proofs are
// not additive (spec.md section 4.5).
var ErrCombineUnsupported = errors.New("acc: this accumulator variant does not support combining proofs")

// Set is the multiset type accumulators operate over.
type Set = setalg.MultiSet[chainmodel.SetElement]

// AccValue carries an accumulator commitment in whichever group(s) a given
// verification equation needs. ACC1's equation consumes both sides in G1;
// ACC2's equation consumes the left side in G1 and the right side in G2.
type AccValue struct {
	G1    field.G1
	G2    field.G2
	HasG2 bool
}

// G1Value wraps a G1-only accumulator value.
func G1Value(v field.G1) AccValue {
	return AccValue{G1: v}
}

// G1G2Value wraps an accumulator value carried in both groups.
func G1G2Value(g1 field.G1, g2 field.G2) AccValue {
	return AccValue{G1: g1, G2: g2, HasG2: true}
}

// Proof is a disjointness certificate for two sets A, B, verified against
// their accumulator commitments.
type Proof interface {
	// Verify checks the proof against ACC(A) and ACC(B).
	Verify(pp *field.PublicParams, accA, accB AccValue) (bool, error)
	// Combine folds another proof for the same left-hand set A (but a
	// different right-hand set) into this one, so that a single proof can
	// certify disjointness of A against a union of right-hand sets. Only
	// ACC2 supports this; ACC1 returns ErrCombineUnsupported.
	Combine(other Proof) (Proof, error)
}

// Accumulator is the capability set every accumulator variant implements:
// commitment (SK and PK paths, both groups) and disjointness-proof
// generation (spec.md section 9, "Polymorphism over accumulator type").
type Accumulator interface {
	CalAccG1SK(pp *field.PublicParams, s Set) field.G1
	CalAccG1(pp *field.PublicParams, s Set) field.G1
	CalAccG2SK(pp *field.PublicParams, s Set) field.G2
	CalAccG2(pp *field.PublicParams, s Set) field.G2
	GenProof(pp *field.PublicParams, a, b Set) (Proof, error)
}

// CalcG1 dispatches to the SK or PK path per useSK, matching the original's
// multiset_to_g1 dispatch table (spec.md section 4.9/chain/utils.rs).
func CalcG1(acc Accumulator, pp *field.PublicParams, s Set, useSK bool) field.G1 {
	if useSK {
		return acc.CalAccG1SK(pp, s)
	}
	return acc.CalAccG1(pp, s)
}

// CalcG2 is the G2 analogue of CalcG1.
func CalcG2(acc Accumulator, pp *field.PublicParams, s Set, useSK bool) field.G2 {
	if useSK {
		return acc.CalAccG2SK(pp, s)
	}
	return acc.CalAccG2(pp, s)
}
