// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vo

import "github.com/luxfi/vqchain/chainmodel"

// VerifyResultKind is the typed verdict the verifier returns (spec.md
// section 7, category 2: "structural violation during verification").
type VerifyResultKind uint8

const (
	// Ok is the only passing verdict.
	Ok VerifyResultKind = iota
	// InvalidSetIdx means an AccProofIdx named a query_exp_sets entry that
	// doesn't exist.
	InvalidSetIdx
	// InvalidAccIdx means an AccProofIdx named an accumulator-entry index
	// that doesn't exist, or a proof was read against the wrong accumulator
	// variant.
	InvalidAccIdx
	// InvalidAccProof means a disjointness proof failed its pairing check.
	InvalidAccProof
	// InvalidMatchObj means a returned object does not actually satisfy the
	// query's BoolExp.
	InvalidMatchObj
	// InvalidQuery means res_vo.vo_acc.query_exp_sets is not a subset of the
	// query's own reduced BoolExp (spec.md section 9, open question: subset,
	// not strict equality).
	InvalidQuery
	// InvalidHash means the folded block-header hash chain does not land on
	// the trusted end_block header.
	InvalidHash
)

func (k VerifyResultKind) String() string {
	switch k {
	case Ok:
		return "Ok"
	case InvalidSetIdx:
		return "InvalidSetIdx"
	case InvalidAccIdx:
		return "InvalidAccIdx"
	case InvalidAccProof:
		return "InvalidAccProof"
	case InvalidMatchObj:
		return "InvalidMatchObj"
	case InvalidQuery:
		return "InvalidQuery"
	case InvalidHash:
		return "InvalidHash"
	default:
		return "Unknown"
	}
}

// VerifyResult is the verifier's outcome: Kind == Ok iff the VO is valid;
// ObjID/BlockID are populated for the variants that name one (spec.md
// section 7).
type VerifyResult struct {
	Kind    VerifyResultKind
	ObjID   chainmodel.ID
	BlockID chainmodel.ID
}

// IsOk reports whether the result is the passing verdict.
func (r VerifyResult) IsOk() bool { return r.Kind == Ok }
