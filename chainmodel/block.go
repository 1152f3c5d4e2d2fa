// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chainmodel

import (
	"encoding/binary"

	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/setalg"
)

// IntraDataKind distinguishes a flat object list from an intra-index tree.
type IntraDataKind uint8

const (
	// IntraDataFlat means BlockData.ObjIDs is the authoritative object list.
	IntraDataFlat IntraDataKind = iota
	// IntraDataIndex means BlockData.RootID names the intra-index root.
	IntraDataIndex
)

// BlockData is the per-block payload: either a flat object list or the id
// of the intra-index root, plus the block's aggregate set and accumulator
// (spec.md section 3).
type BlockData struct {
	BlockID ID
	Kind    IntraDataKind
	ObjIDs  []ID // valid when Kind == IntraDataFlat
	RootID  ID   // valid when Kind == IntraDataIndex

	SetData     setalg.MultiSet[SetElement]
	AccVal      field.G1
	SkipListIDs []ID
}

// BlockHeader is the authenticated summary of a block, chained to its
// predecessor by PrevHash (spec.md section 3).
type BlockHeader struct {
	BlockID       ID
	PrevHash      digest.Digest
	DataRoot      digest.Digest
	SkipListRoot  digest.Digest
	HasSkipList   bool
}

// ToDigest computes H(block_id || prev_hash || data_root || skip_list_root?),
// the block-header hash that anchors the entire verification chain.
func (h BlockHeader) ToDigest() digest.Digest {
	var idBuf [8]byte
	binary.LittleEndian.PutUint64(idBuf[:], uint64(h.BlockID))

	parts := [][]byte{idBuf[:], h.PrevHash[:], h.DataRoot[:]}
	if h.HasSkipList {
		parts = append(parts, h.SkipListRoot[:])
	}
	return digest.Concat(parts...)
}
