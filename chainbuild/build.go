// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainbuild assembles raw objects into a sealed block: it
// materializes objects, builds the per-block authenticated index (either
// the similarity-clustered intra-index tree or a flat object list),
// attaches inter-block skip-list nodes, and persists everything through
// the storage contract (spec.md sections 4.6, 4.7, and 6).
package chainbuild

import (
	"github.com/luxfi/log"

	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/intraindex"
	"github.com/luxfi/vqchain/metrics"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/setalg"
	"github.com/luxfi/vqchain/skiplist"
	"github.com/luxfi/vqchain/storage"
	"github.com/luxfi/vqchain/vqlog"
)

// Builder bundles the process-wide state a block build needs: the public
// parameters, the chain's configuration, which accumulator variant to use,
// and where to read/write records. One Builder is shared across every
// block of a chain, matching spec.md section 5's "process-wide immutable
// state" framing for pp/param.
type Builder struct {
	PP          *field.PublicParams
	Param       params.Parameter
	Accumulator acc.Accumulator
	DB          storage.Database
	Log         log.Logger
	Metrics     *metrics.Metrics
}

// NewBuilder returns a Builder, defaulting Log to a no-op logger and
// Metrics to a no-op collector when the caller passes nil.
func NewBuilder(pp *field.PublicParams, param params.Parameter, accumulator acc.Accumulator, db storage.Database, logger log.Logger, m *metrics.Metrics) *Builder {
	if m == nil {
		m = metrics.NoOp()
	}
	return &Builder{
		PP:          pp,
		Param:       param,
		Accumulator: accumulator,
		DB:          db,
		Log:         vqlog.Default(logger),
		Metrics:     m,
	}
}

// accG1 computes ACC(set_data) in G1 per the builder's configured variant
// and SK/PK path, mirroring the original's multiset_to_g1 dispatch used
// throughout chain/build.rs.
func (b *Builder) accG1(s setalg.MultiSet[chainmodel.SetElement]) field.G1 {
	return acc.CalcG1(b.Accumulator, b.PP, s, b.Param.UseSK)
}

// intraAccG1 is the AccFunc intraindex.Build uses for non-leaf nodes: the
// chain's configured variant and SK/PK path, the same as accG1, so that
// non-leaf acc_values verify against proofs of that variant.
func (b *Builder) intraAccG1(s setalg.MultiSet[chainmodel.SetElement]) field.G1 {
	return b.accG1(s)
}

// BuildBlock materializes raws into objects, builds the block's
// authenticated layout, attaches skip-list nodes, and persists the sealed
// BlockHeader/BlockData — the Go analogue of the original's build_block
// (spec.md sections 4.6, 4.7). prevHash is the hash-chain value the new
// header links to: the previous block's own ToDigest() (or the zero digest
// for block 0).
func (b *Builder) BuildBlock(blockID chainmodel.ID, prevHash digest.Digest, raws []chainmodel.RawObject) (chainmodel.BlockHeader, error) {
	b.Log.Debug("build block", "block_id", blockID, "objects", len(raws))

	objs := make([]chainmodel.Object, len(raws))
	for i, raw := range raws {
		obj := chainmodel.CreateObject(raw, b.Param.VBitLen, b.accG1)
		if err := b.DB.WriteObject(obj); err != nil {
			return chainmodel.BlockHeader{}, err
		}
		objs[i] = obj
	}

	header := chainmodel.BlockHeader{BlockID: blockID, PrevHash: prevHash}

	var blockData chainmodel.BlockData
	if b.Param.IntraIndex {
		root, err := intraindex.Build(blockID, objs, b.intraAccG1, b.DB)
		if err != nil {
			return chainmodel.BlockHeader{}, err
		}
		header.DataRoot = root.ToDigest()
		blockData = chainmodel.BlockData{
			BlockID: blockID,
			Kind:    chainmodel.IntraDataIndex,
			RootID:  root.ID(),
			SetData: root.SetData,
			AccVal:  root.AccVal,
		}
	} else {
		hashes := make([]digest.Digest, len(objs))
		setData := setalg.NewMultiSet[chainmodel.SetElement]()
		objIDs := make([]chainmodel.ID, len(objs))
		for i, obj := range objs {
			accDigest := field.DigestG1(obj.AccVal)
			hashes[i] = digest.Concat(accDigest[:], obj.ToDigest().Bytes())
			setData = setalg.Union(setData, obj.SetData)
			objIDs[i] = obj.ID
		}
		header.DataRoot = digest.ConcatDigest(hashes...)
		blockData = chainmodel.BlockData{
			BlockID: blockID,
			Kind:    chainmodel.IntraDataFlat,
			ObjIDs:  objIDs,
			SetData: setData,
			AccVal:  b.accG1(setData),
		}
	}

	if b.Param.SkipListMaxLevel > 0 && blockID >= 1 {
		nodes, skipListRoot, hasSkipList, err := skiplist.Build(
			b.PP, b.Param.AccType, blockID, b.Param.SkipListMaxLevel,
			blockData.SetData, blockData.AccVal, b.DB,
		)
		if err != nil {
			return chainmodel.BlockHeader{}, err
		}
		if hasSkipList {
			ids := make([]chainmodel.ID, len(nodes))
			for i, n := range nodes {
				if werr := b.DB.WriteSkipListNode(n); werr != nil {
					return chainmodel.BlockHeader{}, werr
				}
				ids[i] = n.NodeID
			}
			blockData.SkipListIDs = ids
			header.SkipListRoot = skipListRoot
			header.HasSkipList = true
		}
	}

	if err := b.DB.WriteBlockData(blockData); err != nil {
		return chainmodel.BlockHeader{}, err
	}
	if err := b.DB.WriteBlockHeader(header); err != nil {
		return chainmodel.BlockHeader{}, err
	}

	b.Metrics.BlocksBuilt.Inc()
	b.Log.Info("sealed block", "block_id", blockID, "objects", len(raws), "has_skip_list", header.HasSkipList)
	return header, nil
}

// BuildNextBlock is a convenience over BuildBlock for the common case of
// sequentially appending blocks: it reads the previous block's header and
// derives prevHash from it (the zero digest for block 0), rather than
// requiring the caller to track the chain tip itself.
func (b *Builder) BuildNextBlock(blockID chainmodel.ID, raws []chainmodel.RawObject) (chainmodel.BlockHeader, error) {
	var prevHash digest.Digest
	if blockID > 0 {
		prevHeader, err := b.DB.ReadBlockHeader(blockID - 1)
		if err != nil {
			return chainmodel.BlockHeader{}, err
		}
		prevHash = prevHeader.ToDigest()
	}
	return b.BuildBlock(blockID, prevHash, raws)
}
