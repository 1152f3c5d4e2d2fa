// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package skiplist

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

type fakeChain struct {
	headers map[chainmodel.ID]chainmodel.BlockHeader
	data    map[chainmodel.ID]chainmodel.BlockData
}

func (c *fakeChain) ReadBlockHeader(id chainmodel.ID) (chainmodel.BlockHeader, error) {
	h, ok := c.headers[id]
	if !ok {
		return chainmodel.BlockHeader{}, errNotFound
	}
	return h, nil
}

func (c *fakeChain) ReadBlockData(id chainmodel.ID) (chainmodel.BlockData, error) {
	d, ok := c.data[id]
	if !ok {
		return chainmodel.BlockData{}, errNotFound
	}
	return d, nil
}

type notFoundErr struct{}

func (notFoundErr) Error() string { return "not found" }

var errNotFound = notFoundErr{}

func wordSet(words ...string) setalg.MultiSet[chainmodel.SetElement] {
	elems := make([]chainmodel.SetElement, len(words))
	for i, w := range words {
		elems[i] = chainmodel.W(w)
	}
	return setalg.FromSlice(elems)
}

func TestBuildProducesNoNodesWhenHistoryTooShort(t *testing.T) {
	pp := field.NewPublicParams(16)
	chain := &fakeChain{headers: map[chainmodel.ID]chainmodel.BlockHeader{}, data: map[chainmodel.ID]chainmodel.BlockData{}}

	// block 1's level-0 window needs 3 more blocks beyond itself (total 4),
	// but none exist: a level's quota must be fully satisfiable or no node
	// at all is emitted for this block (spec.md section 4.7 / build.rs).
	ownSet := wordSet("a")
	ownAcc := acc.Acc1{}.CalAccG1SK(pp, ownSet)

	nodes, root, has, err := Build(pp, params.ACC1, 1, 2, ownSet, ownAcc, chain)
	require.NoError(t, err)
	require.False(t, has)
	require.Equal(t, digest.Digest{}, root)
	require.Nil(t, nodes)
}

func TestBuildNoSkipListWhenMaxLevelZero(t *testing.T) {
	pp := field.NewPublicParams(16)
	chain := &fakeChain{headers: map[chainmodel.ID]chainmodel.BlockHeader{}, data: map[chainmodel.ID]chainmodel.BlockData{}}
	ownSet := wordSet("a")
	ownAcc := acc.Acc1{}.CalAccG1SK(pp, ownSet)

	nodes, _, has, err := Build(pp, params.ACC1, 5, 0, ownSet, ownAcc, chain)
	require.NoError(t, err)
	require.False(t, has)
	require.Nil(t, nodes)
}

func TestBuildAggregatesAcrossMultipleBlocks(t *testing.T) {
	pp := field.NewPublicParams(16)
	chain := &fakeChain{headers: map[chainmodel.ID]chainmodel.BlockHeader{}, data: map[chainmodel.ID]chainmodel.BlockData{}}

	for i := chainmodel.ID(1); i <= 3; i++ {
		chain.headers[i] = chainmodel.BlockHeader{BlockID: i, PrevHash: digest.LE32(uint32(i))}
		chain.data[i] = chainmodel.BlockData{BlockID: i, SetData: wordSet("x")}
	}

	ownSet := wordSet("own")
	ownAcc := acc.Acc1{}.CalAccG1SK(pp, ownSet)

	nodes, _, has, err := Build(pp, params.ACC1, 4, 1, ownSet, ownAcc, chain)
	require.NoError(t, err)
	require.True(t, has)
	require.Len(t, nodes, 1)
	// level 0 unions own's set with blocks 3,2,1's (all "x"): two distinct
	// elements survive the union.
	require.Equal(t, 2, nodes[0].SetData.Len())
	// pre_skipped_hash is block 1's prev_hash, the earliest block touched.
	require.Equal(t, chain.headers[1].PrevHash, nodes[0].PreSkippedHash)
}
