// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vo

import (
	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/query"
)

// ResultVONode is one block's worth of VO content: a flat object list, an
// intra-index subtree, or a skip-jumped window (spec.md section 4.9).
type ResultVONode interface {
	isResultVONode()
	// Fold recomputes this node's block-header digest from the rolling
	// chain value and returns the chain value the next ResultVONode should
	// use (spec.md section 4.10 step 4).
	Fold(chain digest.Digest, objs ResultObjs, voAcc *ResultVOAcc) (headerDigest digest.Digest, nextChain digest.Digest, ok bool)
}

// ResultVO is the full verification object for a query: one ResultVONode
// per examined block, in ascending block order (spec.md section 4.9 step 4:
// "Reverse the per-block VO list so verification proceeds in chain order").
type ResultVO struct {
	Nodes []ResultVONode
}

// VOStatistic counts what a query's VO contains, surfaced to callers for
// diagnostics (spec.md section 6, "a stats struct counting proofs, matches,
// and the three mismatch categories").
type VOStatistic struct {
	MatchNum               int
	NoMatchObjNum          int
	NoMatchIntraLeafNum    int
	NoMatchIntraNonLeafNum int
	ProofNum               int
	JumpNum                int
}

// OverallResult bundles a query's full output: the matched objects, the VO,
// the original query and v_bit_len needed to recompute BoolExp, and the
// proof arena (spec.md section 6, "OverallResult").
type OverallResult struct {
	ResObjs  ResultObjs
	ResVO    ResultVO
	VOAcc    *ResultVOAcc
	Query    query.Query
	VBitLen  []uint8
	AccType  params.AccType
}

// ChainReader is the light-client's minimal read surface: just enough to
// anchor the hash-chain fold at both ends (spec.md section 4.10, "a
// light-client interface providing get_parameter() and
// read_block_header(id)").
type ChainReader interface {
	ReadBlockHeader(id chainmodel.ID) (chainmodel.BlockHeader, error)
}

// InnerVerify runs the four-step verification algorithm of spec.md section
// 4.10 and returns the first violation found, or Ok.
func (r OverallResult) InnerVerify(accumulator acc.Accumulator, pp *field.PublicParams, chain ChainReader) VerifyResult {
	exp := query.Reduce(r.Query, r.VBitLen)

	// Step 1: object-side check.
	for id, obj := range r.ResObjs.byID {
		if !exp.IsMatch(obj.SetData) {
			return VerifyResult{Kind: InvalidMatchObj, ObjID: id}
		}
	}

	// Step 2: query-set check — every recorded query_exp_set must appear
	// (subset, not strict equality: spec.md section 9 open question).
	for _, s := range r.VOAcc.QueryExpSets {
		found := false
		for _, e := range exp.Sets {
			if e.Equal(s) {
				found = true
				break
			}
		}
		if !found {
			return VerifyResult{Kind: InvalidQuery}
		}
	}

	// Step 3: accumulator check.
	if res := r.VOAcc.Verify(r.AccType, accumulator, pp); !res.IsOk() {
		return res
	}

	// Step 4: hash-chain check.
	startHeader, err := chain.ReadBlockHeader(r.Query.StartBlock)
	if err != nil {
		return VerifyResult{Kind: InvalidHash}
	}
	endHeader, err := chain.ReadBlockHeader(r.Query.EndBlock)
	if err != nil {
		return VerifyResult{Kind: InvalidHash}
	}

	rolling := startHeader.PrevHash
	for _, node := range r.ResVO.Nodes {
		_, next, ok := node.Fold(rolling, r.ResObjs, r.VOAcc)
		if !ok {
			return VerifyResult{Kind: InvalidHash}
		}
		rolling = next
	}
	if rolling != endHeader.ToDigest() {
		return VerifyResult{Kind: InvalidHash}
	}

	return VerifyResult{Kind: Ok}
}

// ComputeStats tallies the VO's node mix for diagnostics.
func (r OverallResult) ComputeStats() VOStatistic {
	var stat VOStatistic
	stat.MatchNum = r.ResObjs.Len()
	for _, setProofs := range r.VOAcc.proofs {
		stat.ProofNum += len(setProofs)
	}

	var walkIntra func(n IntraNode)
	walkIntra = func(n IntraNode) {
		switch v := n.(type) {
		case NoMatchIntraLeaf:
			stat.NoMatchIntraLeafNum++
		case NoMatchIntraNonLeaf:
			stat.NoMatchIntraNonLeafNum++
		case IntraNonLeaf:
			for _, c := range v.Children {
				walkIntra(c)
			}
		}
	}

	for _, node := range r.ResVO.Nodes {
		switch v := node.(type) {
		case FlatBlkNode:
			for _, sub := range v.SubNodes {
				if _, ok := sub.(NoMatchObjNode); ok {
					stat.NoMatchObjNum++
				}
			}
		case BlkNode:
			walkIntra(v.SubNode)
		case SkipListRoot:
			stat.JumpNum++
		}
	}
	return stat
}
