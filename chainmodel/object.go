// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chainmodel

import (
	"encoding/binary"
	"sort"
	"sync/atomic"

	"github.com/luxfi/vqchain/digest"
	"github.com/luxfi/vqchain/field"
	"github.com/luxfi/vqchain/setalg"
)

// ID is the opaque, process-wide-monotonic identifier spec.md section 6
// calls for: "given an opaque id type (u32)".
type ID = uint32

// RawObject is the caller-supplied, unverified shape of an object before it
// is accumulated into the chain.
type RawObject struct {
	BlockID ID
	VData   []uint32
	WData   []string
}

// Object is a fully materialized chain object: its id, containing block,
// raw attributes, the set derived from them, and the accumulator commitment
// of that set (spec.md section 3).
type Object struct {
	ID      ID
	BlockID ID
	VData   []uint32
	WData   []string
	SetData setalg.MultiSet[SetElement]
	AccVal  field.G1
}

var objectIDCounter uint64

// NextObjectID returns the next process-wide object id. Matches the
// original's OBJECT_ID_CNT atomic counter (spec.md section 3, "Lifecycle").
func NextObjectID() ID {
	return ID(atomic.AddUint64(&objectIDCounter, 1))
}

// AccFunc computes ACC(set_data) in G1 for a given accumulator variant; it
// is supplied by the caller (the acc package) to avoid an import cycle
// between chainmodel and acc.
type AccFunc func(setalg.MultiSet[SetElement]) field.G1

// CreateObject builds an Object from raw attributes and bit lengths,
// matching the original's Object::create: set_v = VDataToSet(v_data,
// bit_len), set_w = {W(w) : w in w_data}, set_data = set_v | set_w,
// acc_value = accFn(set_data).
func CreateObject(raw RawObject, bitLen []uint8, accFn AccFunc) Object {
	vElems := VDataToSet(raw.VData, bitLen)
	setV := setalg.FromSlice(vElems)

	wElems := make([]SetElement, len(raw.WData))
	for i, w := range raw.WData {
		wElems[i] = W(w)
	}
	setW := setalg.FromSlice(wElems)

	setData := setalg.Union(setV, setW)

	return Object{
		ID:      NextObjectID(),
		BlockID: raw.BlockID,
		VData:   raw.VData,
		WData:   raw.WData,
		SetData: setData,
		AccVal:  accFn(setData),
	}
}

// ToDigest folds the object's id, block id, v_data and (sorted) w_data into
// a single hash, matching the original's Digestible impl for Object.
func (o Object) ToDigest() digest.Digest {
	parts := make([][]byte, 0, 2+len(o.VData)+1)

	var idBuf, blkBuf [8]byte
	binary.LittleEndian.PutUint64(idBuf[:], uint64(o.ID))
	binary.LittleEndian.PutUint64(blkBuf[:], uint64(o.BlockID))
	parts = append(parts, idBuf[:], blkBuf[:])

	for _, v := range o.VData {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		parts = append(parts, buf[:])
	}

	sorted := append([]string(nil), o.WData...)
	sort.Strings(sorted)
	for _, w := range sorted {
		parts = append(parts, []byte(w))
	}

	return digest.Concat(parts...)
}

// ObjAcc wraps a G1 accumulator value read from an object or VO proof
// table entry.
type ObjAcc = field.G1
