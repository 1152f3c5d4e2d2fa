// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package intraindex implements the per-block similarity-clustered binary
// tree that authenticates the objects within a single block (spec.md
// section 4.6).
package intraindex

import (
	"sync/atomic"

	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/setalg"
)

var nodeIDCounter uint64

// NextNodeID returns the next process-wide intra-index node id, a
// counter separate from chainmodel's object-id counter (spec.md section 3,
// "Ids are monotonically assigned within their category").
func NextNodeID() chainmodel.ID {
	return chainmodel.ID(atomic.AddUint64(&nodeIDCounter, 1))
}

// Node is either a Leaf or a NonLeaf (spec.md section 3: IntraIndexLeaf /
// IntraIndexNonLeaf).
type Node interface {
	isIntraIndexNode()
	// ToDigest returns the node's authenticated digest.
	ToDigest() digest.Digest
	// ID returns the node's own id.
	ID() chainmodel.ID
}

// Leaf mirrors one object's accumulated set (spec.md section 3).
type Leaf struct {
	NodeID  chainmodel.ID
	BlockID chainmodel.ID
	SetData setalg.MultiSet[chainmodel.SetElement]
	AccVal  field.G1
	ObjID   chainmodel.ID
	ObjHash digest.Digest
}

func (*Leaf) isIntraIndexNode() {}

// ID returns the leaf's own node id.
func (l *Leaf) ID() chainmodel.ID { return l.NodeID }

// NewLeaf builds a Leaf from an already-materialized Object.
func NewLeaf(blockID chainmodel.ID, obj chainmodel.Object) *Leaf {
	return &Leaf{
		NodeID:  NextNodeID(),
		BlockID: blockID,
		SetData: obj.SetData,
		AccVal:  obj.AccVal,
		ObjID:   obj.ID,
		ObjHash: obj.ToDigest(),
	}
}

// ToDigest computes H(acc_value || obj_hash) (spec.md section 3).
func (l *Leaf) ToDigest() digest.Digest {
	accDigest := field.DigestG1(l.AccVal)
	return digest.Concat(accDigest[:], l.ObjHash[:])
}

// NonLeaf is an internal tree node covering the union of its children's
// sets (spec.md section 3).
type NonLeaf struct {
	NodeID          chainmodel.ID
	BlockID         chainmodel.ID
	SetData         setalg.MultiSet[chainmodel.SetElement]
	AccVal          field.G1
	ChildHashDigest digest.Digest
	ChildHashes     []digest.Digest
	ChildIDs        []chainmodel.ID
}

func (*NonLeaf) isIntraIndexNode() {}

// ID returns the non-leaf's own node id.
func (n *NonLeaf) ID() chainmodel.ID { return n.NodeID }

// NewNonLeaf builds a NonLeaf from up to two children and the already
// unioned/accumulated set_data (spec.md section 4.6).
func NewNonLeaf(blockID chainmodel.ID, setData setalg.MultiSet[chainmodel.SetElement], accVal field.G1, childHashes []digest.Digest, childIDs []chainmodel.ID) *NonLeaf {
	hashBytes := make([][]byte, len(childHashes))
	for i, h := range childHashes {
		hashBytes[i] = h[:]
	}
	return &NonLeaf{
		NodeID:          NextNodeID(),
		BlockID:         blockID,
		SetData:         setData,
		AccVal:          accVal,
		ChildHashDigest: digest.Concat(hashBytes...),
		ChildHashes:     childHashes,
		ChildIDs:        childIDs,
	}
}

// ToDigest computes H(acc_value || child_hash_digest) (spec.md section 3).
func (n *NonLeaf) ToDigest() digest.Digest {
	accDigest := field.DigestG1(n.AccVal)
	return digest.Concat(accDigest[:], n.ChildHashDigest[:])
}
