// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package skiplist implements the inter-block skip list that lets a query
// jump back over whole windows of blocks known in advance to be
// non-matching (spec.md section 4.7).
package skiplist

import (
	"sync/atomic"

	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/setalg"
)

var nodeIDCounter uint64

// NextNodeID returns the next process-wide skip-list node id, a counter
// separate from the object and intra-index-node counters (spec.md section
// 3, "monotonically assigned within their category").
func NextNodeID() chainmodel.ID {
	return chainmodel.ID(atomic.AddUint64(&nodeIDCounter, 1))
}

// Node is one level's worth of aggregated skip data (spec.md section 3:
// SkipListNode).
type Node struct {
	NodeID         chainmodel.ID
	BlockID        chainmodel.ID
	Level          uint8
	SetData        setalg.MultiSet[chainmodel.SetElement]
	AccVal         field.G1
	PreSkippedHash digest.Digest
}

// New builds a Node, assigning it the next node id.
func New(blockID chainmodel.ID, level uint8, setData setalg.MultiSet[chainmodel.SetElement], accVal field.G1, preSkippedHash digest.Digest) *Node {
	return &Node{
		NodeID:         NextNodeID(),
		BlockID:        blockID,
		Level:          level,
		SetData:        setData,
		AccVal:         accVal,
		PreSkippedHash: preSkippedHash,
	}
}

// ToDigest computes H(acc_value || pre_skipped_hash) (spec.md section 3).
func (n *Node) ToDigest() digest.Digest {
	accDigest := field.DigestG1(n.AccVal)
	return digest.Concat(accDigest[:], n.PreSkippedHash[:])
}

// Reader is the subset of the storage contract needed to walk back through
// already-sealed blocks (spec.md section 6, "read_block_header,
// read_block_data").
type Reader interface {
	ReadBlockHeader(id chainmodel.ID) (chainmodel.BlockHeader, error)
	ReadBlockData(id chainmodel.ID) (chainmodel.BlockData, error)
}

// Build attaches up to maxLevel skip-list nodes to a freshly built block
// (spec.md section 4.7). ownSetData/ownAccVal are the new block's own
// (pre-skip) aggregate set and accumulator value; level 0's window starts
// by counting the new block itself, then walks backward merging
// predecessors until its quota of 2^(level+2) blocks is reached (or the
// chain runs out). Returns the created nodes and, if any were created, the
// block's skip_list_root digest.
func Build(
	pp *field.PublicParams,
	accType params.AccType,
	blockID chainmodel.ID,
	maxLevel uint8,
	ownSetData setalg.MultiSet[chainmodel.SetElement],
	ownAccVal field.G1,
	r Reader,
) (nodes []*Node, skipListRoot digest.Digest, hasSkipList bool, err error) {
	if maxLevel == 0 || blockID < 1 {
		return nil, digest.Digest{}, false, nil
	}

	prevBlkID := blockID - 1
	skippedBlkNum := uint32(1)
	setDataToSkip := ownSetData
	accValToSkip := ownAccVal
	var hashToSkip digest.Digest

	var digests []digest.Digest

outer:
	for level := uint8(0); level < maxLevel; level++ {
		blkNum := params.SkippedBlocksNum(level)
		for skippedBlkNum < blkNum {
			if prevBlkID == 0 {
				break outer
			}
			prevHeader, hdrErr := r.ReadBlockHeader(prevBlkID)
			if hdrErr != nil {
				break outer
			}
			hashToSkip = prevHeader.PrevHash

			prevData, dataErr := r.ReadBlockData(prevBlkID)
			if dataErr != nil {
				return nil, digest.Digest{}, false, dataErr
			}

			switch accType {
			case params.ACC1:
				setDataToSkip = setalg.Union(setDataToSkip, prevData.SetData)
			case params.ACC2:
				setDataToSkip = setalg.Sum(setDataToSkip, prevData.SetData)
				accValToSkip.Add(&accValToSkip, &prevData.AccVal)
			}

			skippedBlkNum++
			prevBlkID--
		}

		var levelAcc field.G1
		switch accType {
		case params.ACC1:
			levelAcc = acc.Acc1{}.CalAccG1(pp, setDataToSkip)
		case params.ACC2:
			levelAcc = accValToSkip
		}

		node := New(blockID, level, setDataToSkip.Clone(), levelAcc, hashToSkip)
		nodes = append(nodes, node)
		d := node.ToDigest()
		digests = append(digests, d)
	}

	if len(nodes) == 0 {
		return nil, digest.Digest{}, false, nil
	}
	return nodes, digest.ConcatDigest(digests...), true, nil
}
