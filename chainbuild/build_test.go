// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chainbuild

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/storage"
)

func rawObjs(blockID chainmodel.ID, n int) []chainmodel.RawObject {
	objs := make([]chainmodel.RawObject, n)
	for i := range objs {
		objs[i] = chainmodel.RawObject{
			BlockID: blockID,
			VData:   []uint32{uint32(i)},
			WData:   []string{"w"},
		}
	}
	return objs
}

func TestBuildBlockSealsIntraIndexedBlock(t *testing.T) {
	pp := field.NewPublicParams(16)
	param := params.ForTest([]uint8{8}, params.ACC2, true, 0)
	db := storage.NewMemChain()
	require.NoError(t, db.SetParameter(param))

	b := NewBuilder(pp, param, acc.Acc2{}, db, nil, nil)

	header, err := b.BuildNextBlock(0, rawObjs(0, 3))
	require.NoError(t, err)
	require.Equal(t, chainmodel.ID(0), header.BlockID)
	require.False(t, header.HasSkipList)

	data, err := db.ReadBlockData(0)
	require.NoError(t, err)
	require.Equal(t, chainmodel.IntraDataIndex, data.Kind)
	require.Equal(t, 12, data.SetData.Len()) // 11 distinct V prefix elements (8 for v=0, 1 new for v=1, 2 new for v=2) + 1 shared W element

	root, err := db.ReadIntraIndexNode(data.RootID)
	require.NoError(t, err)
	require.Equal(t, data.RootID, root.ID())
}

func TestBuildBlockFlatPathAggregatesDirectly(t *testing.T) {
	pp := field.NewPublicParams(16)
	param := params.ForTest([]uint8{8}, params.ACC1, false, 0)
	db := storage.NewMemChain()
	require.NoError(t, db.SetParameter(param))

	b := NewBuilder(pp, param, acc.Acc1{}, db, nil, nil)

	header, err := b.BuildNextBlock(0, rawObjs(0, 2))
	require.NoError(t, err)

	data, err := db.ReadBlockData(0)
	require.NoError(t, err)
	require.Equal(t, chainmodel.IntraDataFlat, data.Kind)
	require.Len(t, data.ObjIDs, 2)
	require.NotEqual(t, header.DataRoot, header.PrevHash)
}

func TestBuildNextBlockChainsPrevHash(t *testing.T) {
	pp := field.NewPublicParams(16)
	param := params.ForTest([]uint8{8}, params.ACC2, true, 2)
	db := storage.NewMemChain()
	require.NoError(t, db.SetParameter(param))

	b := NewBuilder(pp, param, acc.Acc2{}, db, nil, nil)

	h0, err := b.BuildNextBlock(0, rawObjs(0, 2))
	require.NoError(t, err)
	h1, err := b.BuildNextBlock(1, rawObjs(1, 2))
	require.NoError(t, err)

	require.Equal(t, h0.ToDigest(), h1.PrevHash)
}

func TestBuildBlockAttachesSkipListAfterEnoughBlocks(t *testing.T) {
	pp := field.NewPublicParams(16)
	param := params.ForTest([]uint8{8}, params.ACC2, false, 1)
	db := storage.NewMemChain()
	require.NoError(t, db.SetParameter(param))

	b := NewBuilder(pp, param, acc.Acc2{}, db, nil, nil)

	var lastHeader chainmodel.BlockHeader
	for i := chainmodel.ID(0); i < 5; i++ {
		h, err := b.BuildNextBlock(i, rawObjs(i, 1))
		require.NoError(t, err)
		lastHeader = h
	}
	// level 0's window of 2^(0+2)=4 blocks is the block itself plus blocks
	// 3, 2 and 1 (block 0 is never aggregated); block 4 is the first to fill it.
	require.True(t, lastHeader.HasSkipList)
}
