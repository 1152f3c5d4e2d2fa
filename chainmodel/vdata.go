// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chainmodel

// VDataToSet enumerates, for every dimension i and every prefix length
// j in [0, bitLen[i]), the element V{dim: i, val: v & mask, mask: (0xFFFFFFFF
// << j) & lowBits(bitLen[i])}. This is the decomposition that lets any range
// predicate on dimension i reduce to a small union of prefix-sets
// (spec.md section 3, "v_data_to_set").
func VDataToSet(vData []uint32, bitLen []uint8) []SetElement {
	var out []SetElement
	for i, v := range vData {
		bl := bitLen[i]
		low := lowBits(bl)
		for j := uint8(0); j < bl; j++ {
			mask := (^uint32(0) << j) & low
			val := v & mask
			out = append(out, V(uint32(i), val, mask))
		}
	}
	return out
}

// lowBits returns a mask with the low n bits set (n in [0,32]).
func lowBits(n uint8) uint32 {
	if n >= 32 {
		return ^uint32(0)
	}
	return (uint32(1) << n) - 1
}
