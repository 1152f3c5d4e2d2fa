// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package query implements predicate-to-set reduction: turning a range and
// keyword query into the ordered family of set-intersection predicates
// (BoolExp) the query engine and verifier both operate on (spec.md section
// 4.8).
package query

import (
	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/setalg"
)

// Dim is a single dimension's optional range bound: nil disables the bound
// for that dimension (spec.md section 6, "Query input (JSON)").
type Dim struct {
	Lo *uint32
	Hi *uint32
}

// Range is the per-dimension numeric-range predicate.
type Range struct {
	Dims []Dim
}

// Query is the caller-supplied request: a block range plus an optional
// numeric-range predicate and an optional keyword boolean expression
// (spec.md section 6).
type Query struct {
	StartBlock chainmodel.ID
	EndBlock   chainmodel.ID
	Range      *Range
	// Bool is a list of keyword disjunctions: each inner slice is one
	// sub-predicate `{w1, w2, ...}`, satisfied if the object contains any
	// of its words.
	Bool [][]string
}

// BoolExp is the reduced query: a conjunction of sub-predicates, each
// represented as a MultiSet whose intersection with an object's set_data
// must be non-empty for that sub-predicate to be satisfied (spec.md
// section 4.8).
type BoolExp struct {
	Sets []setalg.MultiSet[chainmodel.SetElement]
}

// Reduce turns q into its BoolExp form given the chain's v_bit_len
// configuration.
func Reduce(q Query, vBitLen []uint8) BoolExp {
	var sets []setalg.MultiSet[chainmodel.SetElement]

	if q.Range != nil {
		for i, d := range q.Range.Dims {
			if d.Lo == nil || d.Hi == nil {
				continue
			}
			elems := rangeToPrefixSet(uint32(i), *d.Lo, *d.Hi, vBitLen[i])
			sets = append(sets, setalg.FromSlice(elems))
		}
	}

	for _, disjunction := range q.Bool {
		elems := make([]chainmodel.SetElement, len(disjunction))
		for i, w := range disjunction {
			elems[i] = chainmodel.W(w)
		}
		sets = append(sets, setalg.FromSlice(elems))
	}

	return BoolExp{Sets: sets}
}

// prefixNode is one node of the binary-prefix search over a dimension's
// 32-bit value space: mask's high-order bits are the bits fixed so far,
// prefix holds their values.
type prefixNode struct {
	mask   uint32
	prefix uint32
}

// rangeToPrefixSet breadth-first walks the binary prefix tree of the
// dimension's bitLen-wide value space ([0, 2^bitLen)), emitting the minimal
// set of V{dim,val,mask} prefix-intervals that exactly covers [lo,hi]
// (spec.md section 4.8). This mirrors v_data_to_set's convention that a
// dimension's meaningful bits are its low bitLen bits, MSB-first.
func rangeToPrefixSet(dim, lo, hi uint32, bitLen uint8) []chainmodel.SetElement {
	var out []chainmodel.SetElement
	low := lowBits(bitLen)

	queue := []prefixNode{{mask: 0, prefix: 0}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		rangeLo := n.prefix
		rangeHi := n.prefix | (^n.mask & low)

		switch {
		case rangeLo >= lo && rangeHi <= hi:
			out = append(out, chainmodel.V(dim, n.prefix, n.mask))
		case rangeHi < lo || rangeLo > hi:
			// fully outside [lo,hi]: prune.
		default:
			depth := uint8(popcount32(n.mask))
			if depth >= bitLen {
				// no bits left to split on within this dimension's width;
				// the node straddles [lo,hi] at full precision, which can
				// only happen if lo/hi themselves straddle a value — treat
				// as a leaf match at whatever precision remains.
				out = append(out, chainmodel.V(dim, n.prefix, n.mask))
				continue
			}
			nextBit := uint32(bitLen) - 1 - uint32(depth)
			childMask := n.mask | (uint32(1) << nextBit)
			queue = append(queue,
				prefixNode{mask: childMask, prefix: n.prefix},
				prefixNode{mask: childMask, prefix: n.prefix | (uint32(1) << nextBit)},
			)
		}
	}
	return out
}

func lowBits(n uint8) uint32 {
	if n >= 32 {
		return ^uint32(0)
	}
	return (uint32(1) << n) - 1
}

func popcount32(x uint32) int {
	count := 0
	for x != 0 {
		x &= x - 1
		count++
	}
	return count
}

// MismatchIdx returns the index of the first sub-predicate disjoint from s,
// or false if every sub-predicate intersects s (spec.md section 4.8).
func (e BoolExp) MismatchIdx(s setalg.MultiSet[chainmodel.SetElement]) (int, bool) {
	for i, sub := range e.Sets {
		if !setalg.IsIntersectedWith(sub, s) {
			return i, true
		}
	}
	return 0, false
}

// IsMatch reports whether s satisfies every sub-predicate of e.
func (e BoolExp) IsMatch(s setalg.MultiSet[chainmodel.SetElement]) bool {
	_, mismatch := e.MismatchIdx(s)
	return !mismatch
}
