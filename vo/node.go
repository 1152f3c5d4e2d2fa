// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vo implements the verification-object tree: the compact,
// self-describing proof structure the query engine emits and the verifier
// recomputes a root hash from, without ever touching storage (spec.md
// section 4.9).
package vo

import (
	"encoding/binary"

	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
)

// ObjNode is one object-level leaf of a FlatBlkNode or IntraNode subtree:
// either the object matched (MatchObjNode, revealing its id so the verifier
// can fetch and re-derive its digest/set) or it didn't (NoMatchObjNode,
// carrying only the digest and a reference to the disjointness proof that
// attests the mismatch).
type ObjNode interface {
	isObjNode()
	// ComputeDigest recomputes the object's authenticated digest: either by
	// looking the matched object up in objs, or returning the carried digest
	// directly for a non-match.
	ComputeDigest(objs ResultObjs) (digest.Digest, bool)
}

// MatchObjNode names a matching object by id; its digest is recomputed from
// the object the caller separately supplied (the result set proper),
// matching the original's "objects travel once, in the result list".
type MatchObjNode struct {
	ObjID chainmodel.ID
}

func (MatchObjNode) isObjNode() {}

// ComputeDigest looks up the object in objs and returns its digest.
func (n MatchObjNode) ComputeDigest(objs ResultObjs) (digest.Digest, bool) {
	obj, ok := objs.Get(n.ObjID)
	if !ok {
		return digest.Digest{}, false
	}
	return obj.ToDigest(), true
}

// NoMatchObjNode carries a non-matching object's digest directly, plus the
// index of the disjointness proof (object_set, query_exp_set) that attests
// the mismatch.
type NoMatchObjNode struct {
	ObjHash  digest.Digest
	ProofIdx AccProofIdx
}

func (NoMatchObjNode) isObjNode() {}

// ComputeDigest returns the carried digest unchanged.
func (n NoMatchObjNode) ComputeDigest(ResultObjs) (digest.Digest, bool) {
	return n.ObjHash, true
}

// FlatBlkNode is a block's VO content when it has no intra-index: on a
// chain built with Parameter.IntraIndex false, every block lists its
// objects flat.
type FlatBlkNode struct {
	BlockID      chainmodel.ID
	SkipListRoot *digest.Digest // nil if the block carries no skip list
	SubNodes     []ObjNode
}

// DataRoot recomputes the block's data_root: each sub-node contributes its
// object digest, concatenated in order (this is the flat-path analogue of
// BlockData's acc_value/set_data fold described in spec.md section 4.6).
// Unlike BlockHeader.ToDigest, block_id/prev_hash/skip_list_root are folded
// in separately by the caller (see Fold), matching BlockHeader's single
// flat Concat over all four fields rather than a nested hash.
func (n FlatBlkNode) DataRoot(objs ResultObjs) (digest.Digest, bool) {
	parts := make([]digest.Digest, 0, len(n.SubNodes))
	for _, sub := range n.SubNodes {
		d, ok := sub.ComputeDigest(objs)
		if !ok {
			return digest.Digest{}, false
		}
		parts = append(parts, d)
	}
	return digest.ConcatDigest(parts...), true
}

func (FlatBlkNode) isResultVONode() {}

// Fold recomputes this block's header digest — H(block_id || chain ||
// data_root || skip_list_root?) — and returns it as the chain value to feed
// the next ResultVONode, matching the normal (non-jumped) sequential
// hash-chain fold (spec.md section 4.10 step 4).
func (n FlatBlkNode) Fold(chain digest.Digest, objs ResultObjs, _ *ResultVOAcc) (headerDigest digest.Digest, nextChain digest.Digest, ok bool) {
	dataRoot, ok := n.DataRoot(objs)
	if !ok {
		return digest.Digest{}, digest.Digest{}, false
	}
	h := foldHeader(n.BlockID, chain, dataRoot, n.SkipListRoot)
	return h, h, true
}

// IntraNode is one node of a block's intra-index subtree, recursively
// reconstructed from the VO (spec.md section 4.9).
type IntraNode interface {
	isIntraNode()
	ComputeDigest(objs ResultObjs, voAcc *ResultVOAcc) (digest.Digest, bool)
}

// NoMatchIntraNonLeaf prunes an entire non-leaf subtree known in advance
// (via its accumulator proof) not to match: only its own child-hash digest
// travels, never its children.
type NoMatchIntraNonLeaf struct {
	ChildHashDigest digest.Digest
	ProofIdx        AccProofIdx
}

func (NoMatchIntraNonLeaf) isIntraNode() {}

// ComputeDigest recomputes H(acc_value || child_hash_digest) using the
// object accumulator the proof index names for acc_value.
func (n NoMatchIntraNonLeaf) ComputeDigest(_ ResultObjs, voAcc *ResultVOAcc) (digest.Digest, bool) {
	accVal, ok := voAcc.GetObjectAcc(n.ProofIdx)
	if !ok {
		return digest.Digest{}, false
	}
	accDigest := field.DigestG1(accVal)
	return digest.Concat(accDigest[:], n.ChildHashDigest[:]), true
}

// NoMatchIntraLeaf prunes a single non-matching leaf object.
type NoMatchIntraLeaf struct {
	ObjHash  digest.Digest
	ProofIdx AccProofIdx
}

func (NoMatchIntraLeaf) isIntraNode() {}

// ComputeDigest recomputes H(acc_value || obj_hash).
func (n NoMatchIntraLeaf) ComputeDigest(_ ResultObjs, voAcc *ResultVOAcc) (digest.Digest, bool) {
	accVal, ok := voAcc.GetObjectAcc(n.ProofIdx)
	if !ok {
		return digest.Digest{}, false
	}
	accDigest := field.DigestG1(accVal)
	return digest.Concat(accDigest[:], n.ObjHash[:]), true
}

// MatchIntraLeaf names a matching leaf object by id.
type MatchIntraLeaf struct {
	ObjID chainmodel.ID
}

func (MatchIntraLeaf) isIntraNode() {}

// ComputeDigest recomputes H(acc_value || obj_hash) from the object itself:
// a matched leaf's acc_value is the object's own accumulator.
func (n MatchIntraLeaf) ComputeDigest(objs ResultObjs, _ *ResultVOAcc) (digest.Digest, bool) {
	obj, ok := objs.Get(n.ObjID)
	if !ok {
		return digest.Digest{}, false
	}
	accDigest := field.DigestG1(obj.AccVal)
	return digest.Concat(accDigest[:], obj.ToDigest()[:]), true
}

// IntraNonLeaf is a non-leaf the query descended into: its children are
// fully present in the VO (each itself a Match*/NoMatch* variant).
type IntraNonLeaf struct {
	AccVal   field.G1
	Children []IntraNode
}

func (IntraNonLeaf) isIntraNode() {}

// ComputeDigest recomputes H(acc_value || child_hash_digest) where
// child_hash_digest folds each child's own recomputed digest in order.
func (n IntraNonLeaf) ComputeDigest(objs ResultObjs, voAcc *ResultVOAcc) (digest.Digest, bool) {
	childDigests := make([]digest.Digest, 0, len(n.Children))
	for _, c := range n.Children {
		d, ok := c.ComputeDigest(objs, voAcc)
		if !ok {
			return digest.Digest{}, false
		}
		childDigests = append(childDigests, d)
	}
	childHashDigest := digest.ConcatDigest(childDigests...)
	accDigest := field.DigestG1(n.AccVal)
	return digest.Concat(accDigest[:], childHashDigest[:]), true
}

// EmptyIntraNode marks an empty block's singleton empty intra-index root.
type EmptyIntraNode struct {
	AccVal field.G1
}

func (EmptyIntraNode) isIntraNode() {}

// ComputeDigest recomputes H(acc_value || empty_child_hash_digest), where
// the empty root has no children to fold (digest.ConcatDigest() of zero
// digests).
func (n EmptyIntraNode) ComputeDigest(ResultObjs, *ResultVOAcc) (digest.Digest, bool) {
	accDigest := field.DigestG1(n.AccVal)
	childHashDigest := digest.ConcatDigest()
	return digest.Concat(accDigest[:], childHashDigest[:]), true
}

// BlkNode is a block's VO content when it does have an intra-index: the
// root of the (possibly pruned) IntraNode subtree, plus the block's
// skip-list root when present.
type BlkNode struct {
	BlockID      chainmodel.ID
	SkipListRoot *digest.Digest
	SubNode      IntraNode
}

// DataRoot recomputes the intra-index root's own digest (the block's
// data_root). See FlatBlkNode.DataRoot for why skip_list_root is not folded
// in here.
func (n BlkNode) DataRoot(objs ResultObjs, voAcc *ResultVOAcc) (digest.Digest, bool) {
	return n.SubNode.ComputeDigest(objs, voAcc)
}

func (BlkNode) isResultVONode() {}

// Fold is BlkNode's analogue of FlatBlkNode.Fold.
func (n BlkNode) Fold(chain digest.Digest, objs ResultObjs, voAcc *ResultVOAcc) (headerDigest digest.Digest, nextChain digest.Digest, ok bool) {
	dataRoot, ok := n.DataRoot(objs, voAcc)
	if !ok {
		return digest.Digest{}, digest.Digest{}, false
	}
	h := foldHeader(n.BlockID, chain, dataRoot, n.SkipListRoot)
	return h, h, true
}

// foldHeader computes H(block_id || prev_hash || data_root || skip_list_root?),
// matching chainmodel.BlockHeader.ToDigest exactly.
func foldHeader(blockID chainmodel.ID, prevHash, dataRoot digest.Digest, skipListRoot *digest.Digest) digest.Digest {
	var idBuf [8]byte
	binary.LittleEndian.PutUint64(idBuf[:], uint64(blockID))
	parts := [][]byte{idBuf[:], prevHash[:], dataRoot[:]}
	if skipListRoot != nil {
		parts = append(parts, (*skipListRoot)[:])
	}
	return digest.Concat(parts...)
}
