// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package verifier adapts the synchronous vo.OverallResult.InnerVerify
// algorithm (spec.md section 4.10) to a light-client setting, where
// fetching a trusted block header may mean a round trip over the network
// and should therefore be context-aware and cancellable.
package verifier

import (
	"context"

	"github.com/luxfi/vqchain/acc"
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/vo"
)

// LightClient is the minimal surface a light client exposes to verify a
// query result: the chain's public parameters and any trusted block
// header by id, both of which may suspend on a network fetch.
type LightClient interface {
	GetParameter(ctx context.Context) (params.Parameter, error)
	ReadBlockHeader(ctx context.Context, id chainmodel.ID) (chainmodel.BlockHeader, error)
}

// chainReaderAdapter lets a ctx-aware LightClient satisfy vo.ChainReader's
// synchronous ReadBlockHeader, fixing ctx for the lifetime of one Verify
// call.
type chainReaderAdapter struct {
	ctx    context.Context
	client LightClient
}

func (a chainReaderAdapter) ReadBlockHeader(id chainmodel.ID) (chainmodel.BlockHeader, error) {
	return a.client.ReadBlockHeader(a.ctx, id)
}

// Verify fetches the chain's accumulator variant from client, builds the
// matching Accumulator, and runs the four-step InnerVerify algorithm
// against headers client supplies. pp is assumed already shared
// out-of-band (spec.md section 6: "public parameters... distributed once,
// out of band").
func Verify(ctx context.Context, client LightClient, pp *field.PublicParams, result vo.OverallResult) (vo.VerifyResult, error) {
	param, err := client.GetParameter(ctx)
	if err != nil {
		return vo.VerifyResult{}, err
	}

	var accumulator acc.Accumulator
	switch param.AccType {
	case params.ACC1:
		accumulator = acc.Acc1{}
	case params.ACC2:
		accumulator = acc.Acc2{}
	default:
		return vo.VerifyResult{}, params.ErrInvalidAccType
	}

	reader := chainReaderAdapter{ctx: ctx, client: client}
	return result.InnerVerify(accumulator, pp, reader), nil
}
