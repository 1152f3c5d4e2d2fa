// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package intraindex

import (
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/setalg"
)

// Writer is the subset of the storage contract the builder needs to
// persist nodes as it creates them (spec.md section 6, "write_*").
type Writer interface {
	WriteIntraIndexNode(Node) error
}

// AccFunc computes a non-leaf's acc_value, ACC(set_data) in G1, using the
// chain's configured accumulator variant.
type AccFunc func(setalg.MultiSet[chainmodel.SetElement]) field.G1

// Build runs the greedy similarity-clustering algorithm bottom-up over a
// block's objects and returns the root NonLeaf (spec.md section 4.6). Every
// created node is persisted via w.
func Build(blockID chainmodel.ID, objs []chainmodel.Object, accFn AccFunc, w Writer) (*NonLeaf, error) {
	leaves := make([]*Leaf, len(objs))
	for i, obj := range objs {
		leaf := NewLeaf(blockID, obj)
		leaves[i] = leaf
		if err := w.WriteIntraIndexNode(leaf); err != nil {
			return nil, err
		}
	}

	level, err := clusterLeaves(blockID, leaves, accFn, w)
	if err != nil {
		return nil, err
	}

	for len(level) > 1 {
		level, err = clusterNonLeaves(blockID, level, accFn, w)
		if err != nil {
			return nil, err
		}
	}

	if len(level) == 0 {
		root := NewNonLeaf(blockID, setalg.NewMultiSet[chainmodel.SetElement](), accFn(setalg.NewMultiSet[chainmodel.SetElement]()), nil, nil)
		if err := w.WriteIntraIndexNode(root); err != nil {
			return nil, err
		}
		return root, nil
	}
	return level[0], nil
}

// clusterLeaves performs one pass of greedy clustering over leaves,
// producing the first level of non-leaves.
func clusterLeaves(blockID chainmodel.ID, leaves []*Leaf, accFn AccFunc, w Writer) ([]*NonLeaf, error) {
	var nonLeaves []*NonLeaf
	for len(leaves) > 0 {
		leftIdx := maxSetIndex(len(leaves), func(i int) int { return leaves[i].SetData.Len() })
		left := leaves[leftIdx]
		leaves = removeLeaf(leaves, leftIdx)

		if len(leaves) == 0 {
			node := NewNonLeaf(blockID, left.SetData, left.AccVal,
				[]digest.Digest{left.ToDigest()}, []chainmodel.ID{left.NodeID})
			nonLeaves = append(nonLeaves, node)
			if err := w.WriteIntraIndexNode(node); err != nil {
				return nil, err
			}
			break
		}

		rightIdx := bestSimilarityLeaf(left.SetData, leaves)
		right := leaves[rightIdx]
		leaves = removeLeaf(leaves, rightIdx)

		minSet := setalg.Union(left.SetData, right.SetData)
		node := NewNonLeaf(blockID, minSet, accFn(minSet),
			[]digest.Digest{left.ToDigest(), right.ToDigest()},
			[]chainmodel.ID{left.NodeID, right.NodeID})
		nonLeaves = append(nonLeaves, node)
		if err := w.WriteIntraIndexNode(node); err != nil {
			return nil, err
		}
	}
	return nonLeaves, nil
}

// clusterNonLeaves performs one pass of greedy clustering over a level of
// non-leaves, producing the next level up.
func clusterNonLeaves(blockID chainmodel.ID, level []*NonLeaf, accFn AccFunc, w Writer) ([]*NonLeaf, error) {
	var next []*NonLeaf
	for len(level) > 1 {
		leftIdx := maxSetIndex(len(level), func(i int) int { return level[i].SetData.Len() })
		left := level[leftIdx]
		level = removeNonLeaf(level, leftIdx)

		rightIdx := bestSimilarityNonLeaf(left.SetData, level)
		right := level[rightIdx]
		level = removeNonLeaf(level, rightIdx)

		minSet := setalg.Union(left.SetData, right.SetData)
		node := NewNonLeaf(blockID, minSet, accFn(minSet),
			[]digest.Digest{left.ToDigest(), right.ToDigest()},
			[]chainmodel.ID{left.NodeID, right.NodeID})
		next = append(next, node)
		if err := w.WriteIntraIndexNode(node); err != nil {
			return nil, err
		}
	}
	next = append(next, level...)
	return next, nil
}

func maxSetIndex(n int, size func(i int) int) int {
	best := 0
	bestSize := size(0)
	for i := 1; i < n; i++ {
		if s := size(i); s > bestSize {
			best, bestSize = i, s
		}
	}
	return best
}

// jaccard returns |a∩b| / |a∪b|.
func jaccard(a, b setalg.MultiSet[chainmodel.SetElement]) (float64, setalg.MultiSet[chainmodel.SetElement]) {
	union := setalg.Union(a, b)
	inter := setalg.Intersect(a, b)
	if union.Len() == 0 {
		return 0, union
	}
	return float64(inter.Len()) / float64(union.Len()), union
}

func bestSimilarityLeaf(left setalg.MultiSet[chainmodel.SetElement], candidates []*Leaf) int {
	bestIdx := 0
	bestSim, _ := jaccard(left, candidates[0].SetData)
	for i := 1; i < len(candidates); i++ {
		sim, _ := jaccard(left, candidates[i].SetData)
		if sim > bestSim {
			bestSim, bestIdx = sim, i
		}
	}
	return bestIdx
}

func bestSimilarityNonLeaf(left setalg.MultiSet[chainmodel.SetElement], candidates []*NonLeaf) int {
	bestIdx := 0
	bestSim, _ := jaccard(left, candidates[0].SetData)
	for i := 1; i < len(candidates); i++ {
		sim, _ := jaccard(left, candidates[i].SetData)
		if sim > bestSim {
			bestSim, bestIdx = sim, i
		}
	}
	return bestIdx
}

func removeLeaf(s []*Leaf, i int) []*Leaf {
	out := append(s[:i:i], s[i+1:]...)
	return out
}

func removeNonLeaf(s []*NonLeaf, i int) []*NonLeaf {
	out := append(s[:i:i], s[i+1:]...)
	return out
}
