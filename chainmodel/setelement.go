// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainmodel defines the data model shared by every layer of the
// query engine: set elements, objects, block data, and block headers
// (spec.md section 3).
package chainmodel

import (
	"encoding/binary"

	"github.com/luxfi/vqchain/digest"
)

// SetElementKind distinguishes the two flavors of SetElement.
type SetElementKind uint8

const (
	// KindV is a numeric-attribute prefix predicate.
	KindV SetElementKind = iota
	// KindW is a keyword.
	KindW
)

// SetElement is one element of an object's (or predicate's) set: either a
// "coordinate dim of v falls into the prefix range described by val/mask"
// predicate, or a keyword. It is comparable, so it can be used directly as
// a Go map key inside setalg.MultiSet.
type SetElement struct {
	Kind SetElementKind
	Dim  uint32
	Val  uint32
	Mask uint32
	W    string
}

// V constructs a numeric-attribute element.
func V(dim, val, mask uint32) SetElement {
	return SetElement{Kind: KindV, Dim: dim, Val: val, Mask: mask}
}

// W constructs a keyword element.
func W(word string) SetElement {
	return SetElement{Kind: KindW, W: word}
}

// ToDigest hashes the element: V elements hash their dim/val/mask as
// little-endian u32s; W elements hash the raw UTF-8 string bytes. This
// matches the domain constants of spec.md section 6.
func (e SetElement) ToDigest() digest.Digest {
	if e.Kind == KindW {
		return digest.SumString(e.W)
	}
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], e.Dim)
	binary.LittleEndian.PutUint32(buf[4:8], e.Val)
	binary.LittleEndian.PutUint32(buf[8:12], e.Mask)
	return digest.Sum(buf[:])
}
