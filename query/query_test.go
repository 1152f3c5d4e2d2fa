// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/setalg"
)

func u32(v uint32) *uint32 { return &v }

// every value in [lo,hi] must be covered by exactly the V elements
// v_data_to_set would produce for that value — i.e. the reduced range set
// and the per-value prefix set must always intersect.
func TestRangeToPrefixSetCoversEveryValueInRange(t *testing.T) {
	bitLen := uint8(4)
	lo, hi := uint32(3), uint32(9)
	rangeSet := setalg.FromSlice(rangeToPrefixSet(0, lo, hi, bitLen))

	for v := lo; v <= hi; v++ {
		valSet := setalg.FromSlice(chainmodel.VDataToSet([]uint32{v}, []uint8{bitLen}))
		require.True(t, setalg.IsIntersectedWith(rangeSet, valSet), "value %d not covered", v)
	}
}

func TestRangeToPrefixSetExcludesOutOfRangeValues(t *testing.T) {
	bitLen := uint8(4)
	lo, hi := uint32(3), uint32(9)
	rangeSet := setalg.FromSlice(rangeToPrefixSet(0, lo, hi, bitLen))

	for _, v := range []uint32{0, 1, 2, 10, 11, 15} {
		valSet := setalg.FromSlice(chainmodel.VDataToSet([]uint32{v}, []uint8{bitLen}))
		require.False(t, setalg.IsIntersectedWith(rangeSet, valSet), "value %d should not be covered", v)
	}
}

func TestBoolExpMismatchIdx(t *testing.T) {
	e := BoolExp{Sets: []setalg.MultiSet[chainmodel.SetElement]{
		setalg.FromSlice([]chainmodel.SetElement{chainmodel.W("a"), chainmodel.W("b")}),
		setalg.FromSlice([]chainmodel.SetElement{chainmodel.W("c")}),
	}}

	objSet := setalg.FromSlice([]chainmodel.SetElement{chainmodel.W("a")})
	idx, mismatch := e.MismatchIdx(objSet)
	require.True(t, mismatch)
	require.Equal(t, 1, idx)

	matchSet := setalg.FromSlice([]chainmodel.SetElement{chainmodel.W("a"), chainmodel.W("c")})
	require.True(t, e.IsMatch(matchSet))
}
