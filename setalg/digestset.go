// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package setalg

import (
	"context"
	"sort"

	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/workerpool"
)

// Keyed is implemented by a MultiSet's element type so it can be mapped into
// the field for accumulator/polynomial use.
type Keyed interface {
	ToDigest() digest.Digest
}

// DigestSetEntry is one (field-element, multiplicity) pair.
type DigestSetEntry struct {
	Key   field.Element
	Count uint32
}

// DigestSet is the field-valued image of a MultiSet under hash-to-field: an
// ordered vector of (F, u32) pairs (spec.md section 4.4).
type DigestSet struct {
	entries []DigestSetEntry
}

var digestSetPool = workerpool.Default()

// NewDigestSet maps every (element, count) pair of m through digest.Sum and
// field.DigestToField, in parallel via the shared worker pool.
func NewDigestSet[T Keyed](m MultiSet[T]) *DigestSet {
	type pair struct {
		elem  T
		count uint32
	}
	pairs := make([]pair, 0, m.Len())
	m.Range(func(e T, c uint32) {
		pairs = append(pairs, pair{elem: e, count: c})
	})

	entries := make([]DigestSetEntry, len(pairs))
	_ = digestSetPool.MapReduce(context.Background(), len(pairs), func(i int) error {
		d := pairs[i].elem.ToDigest()
		entries[i] = DigestSetEntry{
			Key:   field.DigestToField(d),
			Count: pairs[i].count,
		}
		return nil
	})

	// Deterministic ordering: callers (ACC1's polynomial expansion, ACC2's
	// MSM) don't require any particular order, but a stable order makes
	// digest sets reproducible across runs for the same input multiset.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key.Cmp(&entries[j].Key) < 0
	})
	return &DigestSet{entries: entries}
}

// NewDigestSetFromEntries builds a DigestSet directly from already-mapped
// entries, keeping them in the order given.
func NewDigestSetFromEntries(entries []DigestSetEntry) *DigestSet {
	return &DigestSet{entries: entries}
}

// Entries returns the underlying (field-element, multiplicity) pairs.
func (ds *DigestSet) Entries() []DigestSetEntry {
	return ds.entries
}

// Len returns the number of distinct entries.
func (ds *DigestSet) Len() int {
	return len(ds.entries)
}

func (ds *DigestSet) totalMultiplicity() int {
	total := 0
	for _, e := range ds.entries {
		total += int(e.Count)
	}
	return total
}
