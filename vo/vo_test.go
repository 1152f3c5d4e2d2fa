// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/setalg"
)

func testParams(t *testing.T) *field.PublicParams {
	t.Helper()
	return field.NewPublicParams(32)
}

func wSet(words ...string) acc.Set {
	elems := make([]chainmodel.SetElement, len(words))
	for i, w := range words {
		elems[i] = chainmodel.W(w)
	}
	return setalg.FromSlice(elems)
}

// testParamsGlobal is shared by every object testObject creates, across all
// tests in this package.
var testParamsGlobal = field.NewPublicParams(32)

func testObject(blockID chainmodel.ID, words ...string) chainmodel.Object {
	raw := chainmodel.RawObject{BlockID: blockID, WData: words}
	return chainmodel.CreateObject(raw, nil, func(s setalg.MultiSet[chainmodel.SetElement]) field.G1 {
		return acc.Acc1{}.CalAccG1SK(testParamsGlobal, s)
	})
}

func TestFlatBlkNodeComputeDigestMixesMatchAndNoMatch(t *testing.T) {
	objs := NewResultObjs()
	matched := testObject(1, "a")
	objs.Add(matched)

	voAcc := NewResultVOAcc()
	noMatchDigest := digest.SumString("no-match-placeholder")

	node := FlatBlkNode{
		BlockID: 1,
		SubNodes: []ObjNode{
			MatchObjNode{ObjID: matched.ID},
			NoMatchObjNode{ObjHash: noMatchDigest},
		},
	}

	got, ok := node.DataRoot(objs)
	require.True(t, ok)
	want := digest.ConcatDigest(matched.ToDigest(), noMatchDigest)
	require.Equal(t, want, got)
	_ = voAcc
}

func TestFlatBlkNodeComputeDigestFailsOnMissingObject(t *testing.T) {
	objs := NewResultObjs()
	node := FlatBlkNode{BlockID: 1, SubNodes: []ObjNode{MatchObjNode{ObjID: 999}}}
	_, ok := node.DataRoot(objs)
	require.False(t, ok)
}

func TestIntraNonLeafComputeDigestRecomputesFromChildren(t *testing.T) {
	pp := testParams(t)
	objs := NewResultObjs()
	voAcc := NewResultVOAcc()

	matched := testObject(1, "a")
	objs.Add(matched)

	leaf := MatchIntraLeaf{ObjID: matched.ID}
	noMatchLeafHash := digest.SumString("pruned-leaf")
	noMatchLeaf := NoMatchIntraLeaf{ObjHash: noMatchLeafHash, ProofIdx: AccProofIdx{SetIdx: 0, EntryIdx: 0}}

	// wire a proof so GetObjectAcc resolves for the pruned leaf.
	queryE := wSet("z")
	objSet := wSet("q")
	_, err := voAcc.AddProof(params.ACC1, acc.Acc1{}, pp, queryE, objSet, acc.Acc1{}.CalAccG1SK(pp, objSet))
	require.NoError(t, err)

	nonLeaf := IntraNonLeaf{
		AccVal:   acc.Acc1{}.CalAccG1SK(pp, wSet("a", "q")),
		Children: []IntraNode{leaf, noMatchLeaf},
	}

	got, ok := nonLeaf.ComputeDigest(objs, voAcc)
	require.True(t, ok)

	leafDigest, _ := leaf.ComputeDigest(objs, voAcc)
	noMatchDigest, _ := noMatchLeaf.ComputeDigest(objs, voAcc)
	childHashDigest := digest.ConcatDigest(leafDigest, noMatchDigest)
	accDigest := field.DigestG1(nonLeaf.AccVal)
	want := digest.Concat(accDigest[:], childHashDigest[:])
	require.Equal(t, want, got)
}

func TestResultVOAccACC1KeepsOneProofPerEntry(t *testing.T) {
	pp := testParams(t)
	voAcc := NewResultVOAcc()

	query := wSet("z")
	objA := wSet("a")
	objB := wSet("b")

	idxA, err := voAcc.AddProof(params.ACC1, acc.Acc1{}, pp, query, objA, acc.Acc1{}.CalAccG1SK(pp, objA))
	require.NoError(t, err)
	idxB, err := voAcc.AddProof(params.ACC1, acc.Acc1{}, pp, query, objB, acc.Acc1{}.CalAccG1SK(pp, objB))
	require.NoError(t, err)

	require.Equal(t, idxA.SetIdx, idxB.SetIdx)
	require.NotEqual(t, idxA.EntryIdx, idxB.EntryIdx)
	require.Len(t, voAcc.QueryExpSets, 1)

	res := voAcc.Verify(params.ACC1, acc.Acc1{}, pp)
	require.True(t, res.IsOk())
}

func TestResultVOAccACC2CombinesIntoEntryZero(t *testing.T) {
	pp := testParams(t)
	voAcc := NewResultVOAcc()

	query := wSet("z")
	objA := wSet("a")
	objB := wSet("b")

	_, err := voAcc.AddProof(params.ACC2, acc.Acc2{}, pp, query, objA, acc.Acc2{}.CalAccG1SK(pp, objA))
	require.NoError(t, err)
	_, err = voAcc.AddProof(params.ACC2, acc.Acc2{}, pp, query, objB, acc.Acc2{}.CalAccG1SK(pp, objB))
	require.NoError(t, err)

	require.Len(t, voAcc.proofs[0], 1)
	require.Len(t, voAcc.objectAccs[0], 2)

	res := voAcc.Verify(params.ACC2, acc.Acc2{}, pp)
	require.True(t, res.IsOk())
}

func TestResultVOAccDetectsForgedProof(t *testing.T) {
	pp := testParams(t)
	voAcc := NewResultVOAcc()

	query := wSet("z")
	objA := wSet("a")
	_, err := voAcc.AddProof(params.ACC1, acc.Acc1{}, pp, query, objA, acc.Acc1{}.CalAccG1SK(pp, objA))
	require.NoError(t, err)

	// forge: swap in a query set the proof was never generated against.
	voAcc.QueryExpSets[0] = wSet("different")

	res := voAcc.Verify(params.ACC1, acc.Acc1{}, pp)
	require.False(t, res.IsOk())
	require.Equal(t, InvalidAccProof, res.Kind)
}
