// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vo

import (
	"encoding/binary"

	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
)

// JumpOrNoJumpNode is one level's worth of a block's skip-list VO: either
// the query engine used this level to jump (JumpNode, carrying a proof) or
// it didn't (NoJumpNode, carrying only the precomputed node digest) (spec.md
// section 4.9 step 1).
type JumpOrNoJumpNode interface {
	isJumpOrNoJumpNode()
	// ComputeDigest recomputes H(acc_value || pre_skipped_hash) for this
	// skip-list level. chain is the rolling hash-chain value folded in from
	// every ResultVONode examined so far; a JumpNode binds to it directly,
	// which is what ties the window it skips to the verified chain below it.
	ComputeDigest(chain digest.Digest, voAcc *ResultVOAcc) (digest.Digest, bool)
}

// JumpNode is the level the query engine actually skip-jumped on: its
// acc_value is proven disjoint from the mismatching sub-predicate via
// ProofIdx (spec.md section 3's SkipListNode and section 4.9 step 1).
type JumpNode struct {
	ProofIdx AccProofIdx
}

func (JumpNode) isJumpOrNoJumpNode() {}

// ComputeDigest recomputes H(acc_value || chain) using the object-side
// accumulator the disjointness proof names and the rolling chain value
// folded in so far. Using the folded chain rather than a self-reported
// pre_skipped_hash field is what binds this jump to the chain verified
// below it; a forged lower chain would produce a digest that can never
// match the trusted end-of-range header.
func (n JumpNode) ComputeDigest(chain digest.Digest, voAcc *ResultVOAcc) (digest.Digest, bool) {
	accVal, ok := voAcc.GetObjectAcc(n.ProofIdx)
	if !ok {
		return digest.Digest{}, false
	}
	accDigest := field.DigestG1(accVal)
	return digest.Concat(accDigest[:], chain[:]), true
}

// NoJumpNode is a level the query engine did not use to jump: its digest
// travels as-is, precomputed, so the verifier can still fold it into
// skip_list_root without any proof (spec.md section 4.9 step 1: "Lower-level
// no-jump nodes appear in the VO before the jump").
type NoJumpNode struct {
	Digest digest.Digest
}

func (NoJumpNode) isJumpOrNoJumpNode() {}

// ComputeDigest returns the carried digest unchanged; a level that wasn't
// jumped never binds to the rolling chain.
func (n NoJumpNode) ComputeDigest(_ digest.Digest, _ *ResultVOAcc) (digest.Digest, bool) {
	return n.Digest, true
}

// SkipListRoot is a ResultVONode variant: the VO content for a block the
// query engine skip-jumped over entirely, rather than descending its
// intra-index (spec.md section 4.9 step 1). BlockPrevHash is this block's
// own immediate-predecessor header digest — distinct from chain, which by
// the time Fold runs has rolled forward only to the chain value the jumped
// window's earliest skipped block started from. BlockDataRoot is carried
// directly (unverified in isolation — its correctness is established only
// by the final fold landing on the trusted end_block header, the same way
// every other node's contribution is).
type SkipListRoot struct {
	BlockID       chainmodel.ID
	BlockPrevHash digest.Digest
	BlockDataRoot digest.Digest
	SubNodes      []JumpOrNoJumpNode // ascending level order
}

func (SkipListRoot) isResultVONode() {}

// Fold recomputes this block's own header digest — H(block_id ||
// block_prev_hash || data_root || skip_list_root) — and returns it as the
// chain value to feed the next ResultVONode, the same as every other
// variant's Fold. chain (the rolling value folded up from the jumped
// window's verified tail) is threaded into every sub-node's ComputeDigest
// rather than trusted from a stored field, binding the jump to the chain
// verified below it (spec.md section 4.9 step 1, section 4.10 step 4).
func (n SkipListRoot) Fold(chain digest.Digest, _ ResultObjs, voAcc *ResultVOAcc) (headerDigest digest.Digest, nextChain digest.Digest, ok bool) {
	levelDigests := make([]digest.Digest, 0, len(n.SubNodes))
	var sawJump bool
	for _, sub := range n.SubNodes {
		d, okLevel := sub.ComputeDigest(chain, voAcc)
		if !okLevel {
			return digest.Digest{}, digest.Digest{}, false
		}
		levelDigests = append(levelDigests, d)
		if _, isJump := sub.(JumpNode); isJump {
			sawJump = true
		}
	}
	if !sawJump {
		return digest.Digest{}, digest.Digest{}, false
	}
	skipListRoot := digest.ConcatDigest(levelDigests...)

	var idBuf [8]byte
	binary.LittleEndian.PutUint64(idBuf[:], uint64(n.BlockID))
	header := digest.Concat(idBuf[:], n.BlockPrevHash[:], n.BlockDataRoot[:], skipListRoot[:])
	return header, header, true
}
