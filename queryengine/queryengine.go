// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package queryengine descends the authenticated block layout (intra-index
// plus skip list) for a reduced query, producing the matched objects and
// the verification object that attests them (spec.md section 4.9).
package queryengine

import (
	"errors"
	"fmt"

	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/intraindex"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/query"
	"github.com/luxfi/vqchain/skiplist"
	"github.com/luxfi/vqchain/vo"
)

// ErrBlockRangeEmpty is returned when end_block < start_block.
var ErrBlockRangeEmpty = errors.New("queryengine: end_block must be >= start_block")

// Storage is the read-side subset of the storage contract the query engine
// needs (spec.md section 6, "read_block_header, read_block_data,
// read_intra_index_node, read_skip_list_node, read_object").
type Storage interface {
	ReadBlockHeader(id chainmodel.ID) (chainmodel.BlockHeader, error)
	ReadBlockData(id chainmodel.ID) (chainmodel.BlockData, error)
	ReadIntraIndexNode(id chainmodel.ID) (intraindex.Node, error)
	ReadSkipListNode(id chainmodel.ID) (*skiplist.Node, error)
	ReadObject(id chainmodel.ID) (chainmodel.Object, error)
}

// Execute runs a query against storage and returns the full result: every
// matched object plus a VO a verifier can check without further storage
// access (spec.md section 4.9). Processing walks blocks from end_block down
// to start_block; the returned VO is in ascending block order (spec.md
// section 4.9 step 4).
//
// Unlike the original's BFS-with-in-place-pointer-patching descent of the
// intra-index, this walks each subtree with a single ordinary recursive
// call: the resulting VO tree is identical node-for-node, just built via
// plain recursion instead of a queue of raw pointers to patch — the softer
// "BFS order" ordering guarantee in spec.md section 5 concerns VO node
// *emission* order within a block for diagnostics, not anything the
// verifier depends on.
func Execute(pp *field.PublicParams, p params.Parameter, accumulator acc.Accumulator, s Storage, q query.Query) (*vo.OverallResult, error) {
	if q.EndBlock < q.StartBlock {
		return nil, ErrBlockRangeEmpty
	}

	exp := query.Reduce(q, p.VBitLen)
	resObjs := vo.NewResultObjs()
	voAcc := vo.NewResultVOAcc()

	e := &engine{pp: pp, p: p, accumulator: accumulator, s: s, exp: exp, resObjs: &resObjs, voAcc: voAcc}

	var nodes []vo.ResultVONode
	current := q.EndBlock
	for current >= q.StartBlock {
		header, err := s.ReadBlockHeader(current)
		if err != nil {
			return nil, err
		}

		if header.HasSkipList {
			node, nextBlock, jumped, err := e.trySkipJump(header, current, q.StartBlock)
			if err != nil {
				return nil, err
			}
			if jumped {
				nodes = append(nodes, node)
				if nextBlock < q.StartBlock || nextBlock > current {
					break
				}
				current = nextBlock
				continue
			}
		}

		node, err := e.descendBlock(header, current)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)

		if current == 0 {
			break
		}
		current--
	}

	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}

	return &vo.OverallResult{
		ResObjs: resObjs,
		ResVO:   vo.ResultVO{Nodes: nodes},
		VOAcc:   voAcc,
		Query:   q,
		VBitLen: p.VBitLen,
		AccType: p.AccType,
	}, nil
}

type engine struct {
	pp          *field.PublicParams
	p           params.Parameter
	accumulator acc.Accumulator
	s           Storage
	exp         query.BoolExp
	resObjs     *vo.ResultObjs
	voAcc       *vo.ResultVOAcc
}

// trySkipJump reads a block's skip-list nodes top-down (highest level
// first) and jumps at the first level whose window fits within
// [start_block, current] and whose aggregate set is disjoint from some
// sub-predicate (spec.md section 4.9 step 1).
func (e *engine) trySkipJump(header chainmodel.BlockHeader, current, startBlock chainmodel.ID) (vo.SkipListRoot, chainmodel.ID, bool, error) {
	data, err := e.s.ReadBlockData(current)
	if err != nil {
		return vo.SkipListRoot{}, 0, false, err
	}

	levels := make([]*skiplist.Node, len(data.SkipListIDs))
	for i, id := range data.SkipListIDs {
		n, err := e.s.ReadSkipListNode(id)
		if err != nil {
			return vo.SkipListRoot{}, 0, false, err
		}
		levels[i] = n
	}

	jumpLevel := -1
	mismatchSetIdx := 0
	for l := len(levels) - 1; l >= 0; l-- {
		window := params.SkippedBlocksNum(uint8(l))
		if startBlock+window > current {
			continue
		}
		if j, mismatch := e.exp.MismatchIdx(levels[l].SetData); mismatch {
			jumpLevel = l
			mismatchSetIdx = j
			break
		}
	}
	if jumpLevel < 0 {
		return vo.SkipListRoot{}, 0, false, nil
	}

	subNodes := make([]vo.JumpOrNoJumpNode, len(levels))
	for l, n := range levels {
		if l == jumpLevel {
			idx, err := e.voAcc.AddProof(e.p.AccType, e.accumulator, e.pp, e.exp.Sets[mismatchSetIdx], n.SetData, n.AccVal)
			if err != nil {
				return vo.SkipListRoot{}, 0, false, err
			}
			subNodes[l] = vo.JumpNode{ProofIdx: idx}
			continue
		}
		subNodes[l] = vo.NoJumpNode{Digest: n.ToDigest()}
	}

	root := vo.SkipListRoot{
		BlockID:       current,
		BlockPrevHash: header.PrevHash,
		BlockDataRoot: header.DataRoot,
		SubNodes:      subNodes,
	}
	nextBlock := current - params.SkippedBlocksNum(uint8(jumpLevel))
	return root, nextBlock, true, nil
}

// descendBlock builds the VO for a single block's own data, either by
// descending its intra-index or by scanning its flat object list (spec.md
// section 4.9 step 2).
func (e *engine) descendBlock(header chainmodel.BlockHeader, blockID chainmodel.ID) (vo.ResultVONode, error) {
	data, err := e.s.ReadBlockData(blockID)
	if err != nil {
		return nil, err
	}

	var skipListRoot *digest.Digest
	if header.HasSkipList {
		d := header.SkipListRoot
		skipListRoot = &d
	}

	if e.p.IntraIndex && data.Kind == chainmodel.IntraDataIndex {
		root, err := e.s.ReadIntraIndexNode(data.RootID)
		if err != nil {
			return nil, err
		}
		subNode, err := e.descendIntra(root)
		if err != nil {
			return nil, err
		}
		return vo.BlkNode{BlockID: blockID, SkipListRoot: skipListRoot, SubNode: subNode}, nil
	}

	subNodes := make([]vo.ObjNode, len(data.ObjIDs))
	for i, objID := range data.ObjIDs {
		obj, err := e.s.ReadObject(objID)
		if err != nil {
			return nil, err
		}
		n, err := e.objNode(obj)
		if err != nil {
			return nil, err
		}
		subNodes[i] = n
	}
	return vo.FlatBlkNode{BlockID: blockID, SkipListRoot: skipListRoot, SubNodes: subNodes}, nil
}

func (e *engine) objNode(obj chainmodel.Object) (vo.ObjNode, error) {
	if e.exp.IsMatch(obj.SetData) {
		e.resObjs.Add(obj)
		return vo.MatchObjNode{ObjID: obj.ID}, nil
	}
	j, _ := e.exp.MismatchIdx(obj.SetData)
	idx, err := e.voAcc.AddProof(e.p.AccType, e.accumulator, e.pp, e.exp.Sets[j], obj.SetData, obj.AccVal)
	if err != nil {
		return nil, err
	}
	return vo.NoMatchObjNode{ObjHash: obj.ToDigest(), ProofIdx: idx}, nil
}

// descendIntra recursively builds the VO subtree for one intra-index node:
// a pruned non-leaf (disjointness proven without recursing), a pruned leaf,
// a matched leaf, or a fully-expanded non-leaf (spec.md section 4.9 step 2).
func (e *engine) descendIntra(node intraindex.Node) (vo.IntraNode, error) {
	switch n := node.(type) {
	case *intraindex.Leaf:
		if e.exp.IsMatch(n.SetData) {
			obj, err := e.s.ReadObject(n.ObjID)
			if err != nil {
				return nil, err
			}
			e.resObjs.Add(obj)
			return vo.MatchIntraLeaf{ObjID: n.ObjID}, nil
		}
		j, _ := e.exp.MismatchIdx(n.SetData)
		idx, err := e.voAcc.AddProof(e.p.AccType, e.accumulator, e.pp, e.exp.Sets[j], n.SetData, n.AccVal)
		if err != nil {
			return nil, err
		}
		return vo.NoMatchIntraLeaf{ObjHash: n.ObjHash, ProofIdx: idx}, nil

	case *intraindex.NonLeaf:
		if len(n.ChildIDs) == 0 {
			return vo.EmptyIntraNode{AccVal: n.AccVal}, nil
		}
		if j, mismatch := e.exp.MismatchIdx(n.SetData); mismatch {
			idx, err := e.voAcc.AddProof(e.p.AccType, e.accumulator, e.pp, e.exp.Sets[j], n.SetData, n.AccVal)
			if err != nil {
				return nil, err
			}
			return vo.NoMatchIntraNonLeaf{ChildHashDigest: n.ChildHashDigest, ProofIdx: idx}, nil
		}
		children := make([]vo.IntraNode, len(n.ChildIDs))
		for i, cid := range n.ChildIDs {
			child, err := e.s.ReadIntraIndexNode(cid)
			if err != nil {
				return nil, err
			}
			vChild, err := e.descendIntra(child)
			if err != nil {
				return nil, err
			}
			children[i] = vChild
		}
		return vo.IntraNonLeaf{AccVal: n.AccVal, Children: children}, nil

	default:
		return nil, fmt.Errorf("queryengine: unknown intra-index node type %T", node)
	}
}
