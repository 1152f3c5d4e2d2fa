// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package digest provides the 32-byte hash type used to identify and chain
// together every record in the query engine: objects, intra-index nodes,
// skip-list nodes, and block headers.
package digest

import (
	"encoding/binary"

	"github.com/luxfi/ids"
	"github.com/gtank/blake2/blake2b"
)

// Digest is a 32-byte Blake2b-256 hash. It reuses the value semantics
// (equality, hex string form, JSON (un)marshaling) of github.com/luxfi/ids.ID.
type Digest = ids.ID

// Empty is the zero digest.
var Empty = ids.Empty

// Digestible is implemented by anything that folds itself into a hash state.
type Digestible interface {
	ToDigest() Digest
}

// newHash returns a fresh 32-byte Blake2b hash state.
func newHash() *blake2b.Digest {
	h, err := blake2b.NewDigest(nil, nil, nil, 32)
	if err != nil {
		// NewDigest only fails on invalid key/salt/personalization lengths;
		// we pass none, so this can't happen.
		panic(err)
	}
	return h
}

// Sum hashes a single byte string to a Digest.
func Sum(b []byte) Digest {
	h := newHash()
	_, _ = h.Write(b)
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// SumString hashes a UTF-8 string, matching the original's "raw UTF-8 for
// strings" domain-constant (spec.md section 6).
func SumString(s string) Digest {
	return Sum([]byte(s))
}

// LE64 hashes an unsigned 64-bit integer in little-endian form, matching the
// original's "little-endian for numerics" domain constant.
func LE64(v uint64) Digest {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return Sum(buf[:])
}

// LE32 hashes an unsigned 32-bit integer in little-endian form.
func LE32(v uint32) Digest {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return Sum(buf[:])
}

// ConcatDigest feeds the raw bytes of each digest, in order, into one hash
// state and returns the result. This is the "concat_hash" operation used to
// fold child digests into a parent (skip-list roots, intra-index non-leaves,
// block headers).
func ConcatDigest(ds ...Digest) Digest {
	h := newHash()
	for _, d := range ds {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Concat hashes an arbitrary ordered sequence of byte strings into one
// digest, used when a node's preimage mixes digests with raw fields (block
// id, level, etc).
func Concat(parts ...[]byte) Digest {
	h := newHash()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
