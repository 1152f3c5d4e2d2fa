// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command vqchain is a demo driver: it builds an in-memory chain from a
// raw-object text fixture, runs one query against it, and verifies the
// result, printing VO statistics and the verdict.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainbuild"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/metrics"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/query"
	"github.com/luxfi/vqchain/queryengine"
	"github.com/luxfi/vqchain/storage"
	"github.com/luxfi/vqchain/verifier"
)

var logger = slog.Default().With("module", "vqchain")

func main() {
	input := flag.String("input", "", "path to a raw-object fixture file; empty means a small built-in sample")
	accType := flag.String("acc", "acc2", "accumulator variant: acc1 or acc2")
	useSK := flag.Bool("sk", true, "use the secret-exponent (SK) commitment path")
	intraIndex := flag.Bool("intra-index", true, "build a similarity-clustered intra-block index")
	skipListLevel := flag.Int("skip-list-level", 2, "inter-block skip list max level (0 disables it)")
	queryLo := flag.Uint("lo", 0, "query dimension 0 lower bound")
	queryHi := flag.Uint("hi", 1<<31, "query dimension 0 upper bound")
	flag.Parse()

	var at params.AccType
	switch *accType {
	case "acc1":
		at = params.ACC1
	case "acc2":
		at = params.ACC2
	default:
		logger.Error("invalid accumulator type", "acc", *accType)
		os.Exit(1)
	}

	raws, err := loadFixture(*input)
	if err != nil {
		logger.Error("loading fixture", "error", err)
		os.Exit(1)
	}

	param := params.Parameter{
		VBitLen:          []uint8{32},
		AccType:          at,
		UseSK:            *useSK,
		IntraIndex:       *intraIndex,
		SkipListMaxLevel: uint8(*skipListLevel),
	}
	if err := param.Valid(); err != nil {
		logger.Error("invalid parameter", "error", err)
		os.Exit(1)
	}

	var accumulator acc.Accumulator
	if at == params.ACC1 {
		accumulator = acc.Acc1{}
	} else {
		accumulator = acc.Acc2{}
	}

	pp := field.NewPublicParams(16)
	db := storage.NewMemChain()
	if err := db.SetParameter(param); err != nil {
		logger.Error("setting parameter", "error", err)
		os.Exit(1)
	}

	m := metrics.NoOp()
	builder := chainbuild.NewBuilder(pp, param, accumulator, db, nil, m)

	var lastBlockID chainmodel.ID
	for _, id := range sortedBlockIDs(raws) {
		if _, err := builder.BuildNextBlock(id, raws[id]); err != nil {
			logger.Error("building block", "block_id", id, "error", err)
			os.Exit(1)
		}
		lastBlockID = id
	}
	logger.Info("chain built", "blocks", lastBlockID+1)

	lo := uint32(*queryLo)
	hi := uint32(*queryHi)
	q := query.Query{
		StartBlock: 0,
		EndBlock:   lastBlockID,
		Range:      &query.Range{Dims: []query.Dim{{Lo: &lo, Hi: &hi}}},
	}

	result, err := queryengine.Execute(pp, param, accumulator, db, q)
	if err != nil {
		logger.Error("executing query", "error", err)
		os.Exit(1)
	}

	stats := result.ComputeStats()
	fmt.Printf("matched=%d no_match_obj=%d no_match_leaf=%d no_match_nonleaf=%d proofs=%d jumps=%d\n",
		stats.MatchNum, stats.NoMatchObjNum, stats.NoMatchIntraLeafNum, stats.NoMatchIntraNonLeafNum, stats.ProofNum, stats.JumpNum)

	client := memLightClient{db: db}
	verdict, err := verifier.Verify(context.Background(), client, pp, *result)
	if err != nil {
		logger.Error("verifying", "error", err)
		os.Exit(1)
	}
	fmt.Printf("verify=%s\n", verdict.Kind)
}

// memLightClient adapts storage.Database to verifier.LightClient for the
// demo's single-process setting, where "network" fetches are just map
// lookups.
type memLightClient struct {
	db *storage.MemChain
}

func (c memLightClient) GetParameter(context.Context) (params.Parameter, error) {
	return c.db.GetParameter()
}

func (c memLightClient) ReadBlockHeader(_ context.Context, id chainmodel.ID) (chainmodel.BlockHeader, error) {
	return c.db.ReadBlockHeader(id)
}

func loadFixture(path string) (map[chainmodel.ID][]chainmodel.RawObject, error) {
	if path == "" {
		return chainbuild.LoadRawObjectsFromString(sampleFixture)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return chainbuild.LoadRawObjects(f)
}

func sortedBlockIDs(raws map[chainmodel.ID][]chainmodel.RawObject) []chainmodel.ID {
	ids := make([]chainmodel.ID, 0, len(raws))
	for id := range raws {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

const sampleFixture = `0 [10,200] {alice,bob}
0 [999999,5] {carol}
1 [42,7] {alice,dave}
1 [123456,99] {erin}
`
