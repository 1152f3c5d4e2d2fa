// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package acc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/setalg"
)

func testParams(t *testing.T) *field.PublicParams {
	t.Helper()
	return field.NewPublicParams(32)
}

func wSet(words ...string) Set {
	elems := make([]chainmodel.SetElement, len(words))
	for i, w := range words {
		elems[i] = chainmodel.W(w)
	}
	return setalg.FromSlice(elems)
}

func TestAcc1SKAndPKAgree(t *testing.T) {
	pp := testParams(t)
	s := wSet("a", "b", "c")

	g1SK, g1PK := Acc1{}.CalAccG1SK(pp, s), Acc1{}.CalAccG1(pp, s)
	require.True(t, g1SK.Equal(&g1PK))

	g2SK, g2PK := Acc1{}.CalAccG2SK(pp, s), Acc1{}.CalAccG2(pp, s)
	require.True(t, g2SK.Equal(&g2PK))
}

func TestAcc2SKAndPKAgree(t *testing.T) {
	pp := testParams(t)
	s := wSet("x", "y", "z")

	g1SK, g1PK := Acc2{}.CalAccG1SK(pp, s), Acc2{}.CalAccG1(pp, s)
	require.True(t, g1SK.Equal(&g1PK))

	g2SK, g2PK := Acc2{}.CalAccG2SK(pp, s), Acc2{}.CalAccG2(pp, s)
	require.True(t, g2SK.Equal(&g2PK))
}

func TestAcc1DisjointProofVerifies(t *testing.T) {
	pp := testParams(t)
	a := wSet("a", "b")
	b := wSet("c", "d")

	proof, err := Acc1{}.GenProof(pp, a, b)
	require.NoError(t, err)

	accA := G1Value(Acc1{}.CalAccG1SK(pp, a))
	accB := G1Value(Acc1{}.CalAccG1SK(pp, b))

	ok, err := proof.Verify(pp, accA, accB)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAcc1NonDisjointProofFails(t *testing.T) {
	pp := testParams(t)
	a := wSet("a", "b")
	b := wSet("b", "c")

	_, err := Acc1{}.GenProof(pp, a, b)
	require.ErrorIs(t, err, ErrCannotGenerateProof)
}

func TestAcc2DisjointProofVerifies(t *testing.T) {
	pp := testParams(t)
	a := wSet("a", "b")
	b := wSet("c", "d")

	proof, err := Acc2{}.GenProof(pp, a, b)
	require.NoError(t, err)

	accA := G1Value(Acc2{}.CalAccG1SK(pp, a))
	accB := G1G2Value(Acc2{}.CalAccG1SK(pp, b), Acc2{}.CalAccG2SK(pp, b))

	ok, err := proof.Verify(pp, accA, accB)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAcc2NonDisjointProofFails(t *testing.T) {
	pp := testParams(t)
	a := wSet("a", "b")
	b := wSet("b", "c")

	_, err := Acc2{}.GenProof(pp, a, b)
	require.ErrorIs(t, err, ErrCannotGenerateProof)
}

// TestAcc2CombineProof matches spec.md's testable property: for disjoint
// triples (A,B,C), combine_proof(proof(A,B), proof(A,C)) verifies against
// Acc(A), Acc(B)+Acc(C).
func TestAcc2CombineProof(t *testing.T) {
	pp := testParams(t)
	a := wSet("a")
	b := wSet("b")
	c := wSet("c")

	proofAB, err := Acc2{}.GenProof(pp, a, b)
	require.NoError(t, err)
	proofAC, err := Acc2{}.GenProof(pp, a, c)
	require.NoError(t, err)

	combined, err := proofAB.Combine(proofAC)
	require.NoError(t, err)

	accA := G1Value(Acc2{}.CalAccG1SK(pp, a))

	accBG1 := Acc2{}.CalAccG1SK(pp, b)
	accCG1 := Acc2{}.CalAccG1SK(pp, c)
	var sumG1 field.G1
	sumG1.Add(&accBG1, &accCG1)

	accBG2 := Acc2{}.CalAccG2SK(pp, b)
	accCG2 := Acc2{}.CalAccG2SK(pp, c)
	var sumG2 field.G2
	sumG2.Add(&accBG2, &accCG2)

	ok, err := combined.Verify(pp, accA, G1G2Value(sumG1, sumG2))
	require.NoError(t, err)
	require.True(t, ok)
}

func ptr[T any](v T) *T { return &v }
