// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vqchain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainbuild"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/query"
	"github.com/luxfi/vqchain/queryengine"
	"github.com/luxfi/vqchain/setalg"
	"github.com/luxfi/vqchain/storage"
	"github.com/luxfi/vqchain/verifier"
	"github.com/luxfi/vqchain/vo"
)

type memLightClient struct {
	db *storage.MemChain
}

func (c memLightClient) GetParameter(context.Context) (params.Parameter, error) {
	return c.db.GetParameter()
}

func (c memLightClient) ReadBlockHeader(_ context.Context, id chainmodel.ID) (chainmodel.BlockHeader, error) {
	return c.db.ReadBlockHeader(id)
}

func twoObjsPerBlock(n int) map[chainmodel.ID][]chainmodel.RawObject {
	out := make(map[chainmodel.ID][]chainmodel.RawObject)
	for i := 0; i < n; i++ {
		blockID := chainmodel.ID(i)
		out[blockID] = []chainmodel.RawObject{
			{BlockID: blockID, VData: []uint32{uint32(i * 10)}, WData: []string{"even"}},
			{BlockID: blockID, VData: []uint32{uint32(i*10 + 1)}, WData: []string{"odd"}},
		}
	}
	return out
}

// TestTwoBlockChainWithIntraIndexAndNoSkipList covers the smallest
// end-to-end shape: two blocks, an intra-index in each, no skip list.
func TestTwoBlockChainWithIntraIndexAndNoSkipList(t *testing.T) {
	pp := field.NewPublicParams(16)
	param := params.ForTest([]uint8{16}, params.ACC2, true, 0)
	db := storage.NewMemChain()
	require.NoError(t, db.SetParameter(param))

	builder := chainbuild.NewBuilder(pp, param, acc.Acc2{}, db, nil, nil)
	raws := twoObjsPerBlock(2)
	for i := chainmodel.ID(0); i < 2; i++ {
		_, err := builder.BuildNextBlock(i, raws[i])
		require.NoError(t, err)
	}

	lo, hi := uint32(0), uint32(100)
	q := query.Query{
		StartBlock: 0,
		EndBlock:   1,
		Range:      &query.Range{Dims: []query.Dim{{Lo: &lo, Hi: &hi}}},
	}

	result, err := queryengine.Execute(pp, param, acc.Acc2{}, db, q)
	require.NoError(t, err)
	require.Equal(t, 4, result.ResObjs.Len())

	client := memLightClient{db: db}
	verdict, err := verifier.Verify(context.Background(), client, pp, *result)
	require.NoError(t, err)
	require.True(t, verdict.IsOk(), "verdict: %v", verdict)
}

// TestTwentyBlockChainWithSkipListLevelTwo exercises a chain long enough
// for skip-list level 0 and 1 windows (4 and 8 blocks) to attach, and
// confirms a selective query still verifies.
func TestTwentyBlockChainWithSkipListLevelTwo(t *testing.T) {
	pp := field.NewPublicParams(16)
	param := params.ForTest([]uint8{16}, params.ACC2, true, 2)
	db := storage.NewMemChain()
	require.NoError(t, db.SetParameter(param))

	builder := chainbuild.NewBuilder(pp, param, acc.Acc2{}, db, nil, nil)
	raws := twoObjsPerBlock(20)
	for i := chainmodel.ID(0); i < 20; i++ {
		_, err := builder.BuildNextBlock(i, raws[i])
		require.NoError(t, err)
	}

	// Block 1 holds the only objects with v_data 10 and 11; every other
	// block's values lie outside [10,10].
	lo, hi := uint32(10), uint32(10)
	q := query.Query{
		StartBlock: 0,
		EndBlock:   19,
		Range:      &query.Range{Dims: []query.Dim{{Lo: &lo, Hi: &hi}}},
	}

	result, err := queryengine.Execute(pp, param, acc.Acc2{}, db, q)
	require.NoError(t, err)
	require.Equal(t, 1, result.ResObjs.Len())

	stats := result.ComputeStats()
	require.Greater(t, stats.JumpNum, 0, "expected at least one skip-list jump over 20 blocks")

	client := memLightClient{db: db}
	verdict, err := verifier.Verify(context.Background(), client, pp, *result)
	require.NoError(t, err)
	require.True(t, verdict.IsOk(), "verdict: %v", verdict)
}

// TestForgedObjectIsRejectedByVerifier tampers with a matched object's
// set_data after the VO was produced and confirms the verifier catches it
// at the object-match step (spec.md section 4.10 step 1).
func TestForgedObjectIsRejectedByVerifier(t *testing.T) {
	pp := field.NewPublicParams(16)
	param := params.ForTest([]uint8{16}, params.ACC1, true, 0)
	db := storage.NewMemChain()
	require.NoError(t, db.SetParameter(param))

	builder := chainbuild.NewBuilder(pp, param, acc.Acc1{}, db, nil, nil)
	raws := twoObjsPerBlock(2)
	for i := chainmodel.ID(0); i < 2; i++ {
		_, err := builder.BuildNextBlock(i, raws[i])
		require.NoError(t, err)
	}

	lo, hi := uint32(0), uint32(100)
	q := query.Query{
		StartBlock: 0,
		EndBlock:   1,
		Range:      &query.Range{Dims: []query.Dim{{Lo: &lo, Hi: &hi}}},
	}

	result, err := queryengine.Execute(pp, param, acc.Acc1{}, db, q)
	require.NoError(t, err)
	require.Greater(t, result.ResObjs.Len(), 0)

	result.ResObjs.Range(func(id chainmodel.ID, obj chainmodel.Object) {
		obj.SetData = setalg.NewMultiSet[chainmodel.SetElement]()
		result.ResObjs.Replace(obj)
	})

	client := memLightClient{db: db}
	verdict, err := verifier.Verify(context.Background(), client, pp, *result)
	require.NoError(t, err)
	require.False(t, verdict.IsOk())
	require.Equal(t, vo.InvalidMatchObj, verdict.Kind)
}
