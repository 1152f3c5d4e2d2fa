// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package params defines the chain-wide configuration that drives the
// accumulator variant, the SK/PK computation path, and the authenticated
// block layout (spec.md section 6, "Storage contract (read side)").
package params

import "errors"

// Error variables for parameter validation, following the teacher's
// config.errors.go convention of package-scope sentinel errors.
var (
	ErrNoVBitLen           = errors.New("params: v_bit_len must have at least one dimension")
	ErrBitLenOutOfRange    = errors.New("params: each v_bit_len entry must be in [1,32]")
	ErrInvalidAccType      = errors.New("params: acc_type must be ACC1 or ACC2")
	ErrSkipListLevelTooBig = errors.New("params: skip_list_max_level is unreasonably large")
)

// AccType selects which of the two accumulator algebras (spec.md section
// 4.5) a chain uses.
type AccType uint8

const (
	// ACC1 is the multiplicative-polynomial accumulator.
	ACC1 AccType = iota
	// ACC2 is the additive-exponential accumulator.
	ACC2
)

func (t AccType) String() string {
	switch t {
	case ACC1:
		return "ACC1"
	case ACC2:
		return "ACC2"
	default:
		return "unknown"
	}
}

// Parameter is the chain-wide configuration record every storage backend
// must expose via get_parameter/set_parameter (spec.md section 6).
type Parameter struct {
	VBitLen           []uint8
	AccType           AccType
	UseSK             bool
	IntraIndex        bool
	SkipListMaxLevel  uint8
}

// Default returns a reasonable production configuration: ACC2, PK path,
// intra-index enabled, two skip-list levels.
func Default() Parameter {
	return Parameter{
		VBitLen:          []uint8{32},
		AccType:          ACC2,
		UseSK:            false,
		IntraIndex:       true,
		SkipListMaxLevel: 2,
	}
}

// ForTest returns a small configuration convenient for unit tests: SK path
// (cheap accumulator computation), small v_bit_len, no skip list unless the
// caller opts in.
func ForTest(bitLen []uint8, accType AccType, intraIndex bool, skipListMaxLevel uint8) Parameter {
	return Parameter{
		VBitLen:          bitLen,
		AccType:          accType,
		UseSK:            true,
		IntraIndex:       intraIndex,
		SkipListMaxLevel: skipListMaxLevel,
	}
}

// Valid checks the parameter record for internal consistency.
func (p Parameter) Valid() error {
	if len(p.VBitLen) == 0 {
		return ErrNoVBitLen
	}
	for _, b := range p.VBitLen {
		if b == 0 || b > 32 {
			return ErrBitLenOutOfRange
		}
	}
	if p.AccType != ACC1 && p.AccType != ACC2 {
		return ErrInvalidAccType
	}
	if p.SkipListMaxLevel > 32 {
		return ErrSkipListLevelTooBig
	}
	return nil
}

// SkippedBlocksNum returns the number of blocks a skip-list node at the
// given level aggregates: 2^(level+2) (spec.md section 4.7).
func SkippedBlocksNum(level uint8) uint32 {
	return uint32(1) << (level + 2)
}
