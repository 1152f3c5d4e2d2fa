// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package setalg implements the MultiSet and DigestSet abstractions and the
// polynomial expansion used by the accumulators: spec.md sections 4.3 and
// 4.4.
package setalg

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

// MultiSet maps an element to its multiplicity. Insertion order is
// irrelevant; only the resulting counts matter.
type MultiSet[T comparable] struct {
	counts map[T]uint32
}

// NewMultiSet returns an empty multiset.
func NewMultiSet[T comparable]() MultiSet[T] {
	return MultiSet[T]{counts: make(map[T]uint32)}
}

// FromSlice builds a multiset from a slice of elements, each counted once
// per occurrence.
func FromSlice[T comparable](elems []T) MultiSet[T] {
	m := NewMultiSet[T]()
	for _, e := range elems {
		m.counts[e]++
	}
	return m
}

// FromMap builds a multiset directly from an element->count map.
func FromMap[T comparable](counts map[T]uint32) MultiSet[T] {
	m := NewMultiSet[T]()
	for e, c := range counts {
		m.counts[e] += c
	}
	return m
}

// Len returns the number of distinct elements (not the total multiplicity).
func (m MultiSet[T]) Len() int {
	return len(m.counts)
}

// Count returns the multiplicity of e (0 if absent).
func (m MultiSet[T]) Count(e T) uint32 {
	return m.counts[e]
}

// Contains reports whether e has nonzero multiplicity.
func (m MultiSet[T]) Contains(e T) bool {
	_, ok := m.counts[e]
	return ok
}

// Range calls f for every (element, count) pair. Iteration order is
// unspecified, matching the underlying Go map.
func (m MultiSet[T]) Range(f func(elem T, count uint32)) {
	for e, c := range m.counts {
		f(e, c)
	}
}

// Equal reports whether m and other have exactly the same elements with
// the same multiplicities.
func (m MultiSet[T]) Equal(other MultiSet[T]) bool {
	if len(m.counts) != len(other.counts) {
		return false
	}
	for e, c := range m.counts {
		if other.counts[e] != c {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (m MultiSet[T]) Clone() MultiSet[T] {
	out := NewMultiSet[T]()
	for e, c := range m.counts {
		out.counts[e] = c
	}
	return out
}

// Sum returns a+b: counts add.
func Sum[T comparable](a, b MultiSet[T]) MultiSet[T] {
	out := a.Clone()
	for e, c := range b.counts {
		out.counts[e] += c
	}
	return out
}

// Union returns a|b: count is 1 if present in either.
func Union[T comparable](a, b MultiSet[T]) MultiSet[T] {
	out := NewMultiSet[T]()
	for e := range a.counts {
		out.counts[e] = 1
	}
	for e := range b.counts {
		out.counts[e] = 1
	}
	return out
}

// Intersect returns a&b: count is 1 if present in both.
func Intersect[T comparable](a, b MultiSet[T]) MultiSet[T] {
	small, large := a, b
	if len(large.counts) < len(small.counts) {
		small, large = large, small
	}
	out := NewMultiSet[T]()
	for e := range small.counts {
		if large.Contains(e) {
			out.counts[e] = 1
		}
	}
	return out
}

// Pair is one (element, multiplicity) entry, the human-readable unit
// spec.md section 4.3 calls for: "Serialization distinguishes
// human-readable (sequence of {obj, cnt})... vs. binary (the underlying
// map)."
type Pair[T comparable] struct {
	Elem  T      `json:"obj" cbor:"obj"`
	Count uint32 `json:"cnt" cbor:"cnt"`
}

// Pairs returns the multiset's contents as an ordered slice of Pair, the
// shape the JSON encoding below is built from.
// Iteration order follows the underlying map and is therefore unspecified
// from one call to the next.
func (m MultiSet[T]) Pairs() []Pair[T] {
	out := make([]Pair[T], 0, len(m.counts))
	for e, c := range m.counts {
		out = append(out, Pair[T]{Elem: e, Count: c})
	}
	return out
}

// FromPairs rebuilds a MultiSet from its Pairs() form.
func FromPairs[T comparable](pairs []Pair[T]) MultiSet[T] {
	m := NewMultiSet[T]()
	for _, p := range pairs {
		m.counts[p.Elem] = p.Count
	}
	return m
}

// MarshalJSON encodes the multiset as its human-readable Pairs() sequence
// (spec.md section 4.3).
func (m MultiSet[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Pairs())
}

// UnmarshalJSON decodes a Pairs() sequence back into the underlying map.
func (m *MultiSet[T]) UnmarshalJSON(data []byte) error {
	var pairs []Pair[T]
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	*m = FromPairs(pairs)
	return nil
}

// MarshalCBOR encodes the multiset as its underlying (element, count) map,
// the binary form spec.md section 4.3 calls for ("binary (the underlying
// map)"), implementing github.com/fxamacker/cbor/v2's Marshaler interface.
func (m MultiSet[T]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(m.counts)
}

// UnmarshalCBOR implements cbor.Unmarshaler, the binary-decode counterpart
// of MarshalCBOR.
func (m *MultiSet[T]) UnmarshalCBOR(data []byte) error {
	var counts map[T]uint32
	if err := cbor.Unmarshal(data, &counts); err != nil {
		return err
	}
	*m = FromMap(counts)
	return nil
}

// IsIntersectedWith reports whether a and b share any element. It iterates
// the smaller set and probes the larger, matching spec.md's stated
// complexity for this check.
func IsIntersectedWith[T comparable](a, b MultiSet[T]) bool {
	small, large := a, b
	if len(large.counts) < len(small.counts) {
		small, large = large, small
	}
	for e := range small.counts {
		if large.Contains(e) {
			return true
		}
	}
	return false
}
