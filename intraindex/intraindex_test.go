// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package intraindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/setalg"
)

type memWriter struct {
	nodes map[chainmodel.ID]Node
}

func newMemWriter() *memWriter {
	return &memWriter{nodes: make(map[chainmodel.ID]Node)}
}

func (w *memWriter) WriteIntraIndexNode(n Node) error {
	w.nodes[n.ID()] = n
	return nil
}

func testObject(blockID chainmodel.ID, pp *field.PublicParams, words ...string) chainmodel.Object {
	raw := chainmodel.RawObject{BlockID: blockID, WData: words}
	return chainmodel.CreateObject(raw, []uint8{4}, func(s setalg.MultiSet[chainmodel.SetElement]) field.G1 {
		return acc.Acc1{}.CalAccG1SK(pp, s)
	})
}

func TestBuildRootCoversUnionOfAllObjects(t *testing.T) {
	pp := field.NewPublicParams(16)
	objs := []chainmodel.Object{
		testObject(1, pp, "a"),
		testObject(1, pp, "b"),
		testObject(1, pp, "c"),
	}

	w := newMemWriter()
	root, err := Build(1, objs, func(s setalg.MultiSet[chainmodel.SetElement]) field.G1 {
		return acc.Acc1{}.CalAccG1SK(pp, s)
	}, w)
	require.NoError(t, err)

	var union setalg.MultiSet[chainmodel.SetElement]
	union = setalg.NewMultiSet[chainmodel.SetElement]()
	for _, o := range objs {
		union = setalg.Union(union, o.SetData)
	}
	require.Equal(t, union.Len(), root.SetData.Len())
}

func TestBuildEmptyBlockProducesEmptyRoot(t *testing.T) {
	pp := field.NewPublicParams(16)
	w := newMemWriter()
	root, err := Build(1, nil, func(s setalg.MultiSet[chainmodel.SetElement]) field.G1 {
		return acc.Acc1{}.CalAccG1SK(pp, s)
	}, w)
	require.NoError(t, err)
	require.Equal(t, 0, root.SetData.Len())
	require.Empty(t, root.ChildIDs)
}

func TestBuildSingleObjectPromotesToRoot(t *testing.T) {
	pp := field.NewPublicParams(16)
	obj := testObject(1, pp, "solo")
	w := newMemWriter()
	root, err := Build(1, []chainmodel.Object{obj}, func(s setalg.MultiSet[chainmodel.SetElement]) field.G1 {
		return acc.Acc1{}.CalAccG1SK(pp, s)
	}, w)
	require.NoError(t, err)
	require.Len(t, root.ChildIDs, 1)
}
