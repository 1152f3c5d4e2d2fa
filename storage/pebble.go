// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/codec"
	"github.com/luxfi/vqchain/intraindex"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/skiplist"
)

// keyspace prefixes, one byte per record category, matching the original's
// "a key->value store keyed by block/object/node id" (spec.md section 1).
const (
	prefixParam byte = iota
	prefixBlockHeader
	prefixBlockData
	prefixIntraNode
	prefixSkipNode
	prefixObject
)

func key(prefix byte, id chainmodel.ID) []byte {
	buf := make([]byte, 5)
	buf[0] = prefix
	binary.BigEndian.PutUint32(buf[1:], id)
	return buf
}

// PebbleDB is the production Database implementation, backed by a
// cockroachdb/pebble key-value store — the teacher's crypto/database
// package abstracts over exactly this kind of engine (DESIGN.md). Every
// record is CBOR-encoded via codec.BinCodec before being written.
type PebbleDB struct {
	db *pebble.DB
}

var _ Database = (*PebbleDB)(nil)

// OpenPebble opens (or creates) a Pebble-backed Database at dir.
func OpenPebble(dir string) (*PebbleDB, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: opening pebble db at %q: %w", dir, err)
	}
	return &PebbleDB{db: db}, nil
}

// Close releases the underlying Pebble handle.
func (p *PebbleDB) Close() error {
	return p.db.Close()
}

func (p *PebbleDB) get(k []byte, v interface{}) error {
	data, closer, err := p.db.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	defer closer.Close()
	_, err = codec.BinCodec.Unmarshal(data, v)
	return err
}

func (p *PebbleDB) set(k []byte, v interface{}) error {
	data, err := codec.BinCodec.Marshal(codec.CurrentVersion, v)
	if err != nil {
		return err
	}
	return p.db.Set(k, data, pebble.Sync)
}

// GetParameter reads the chain's configuration.
func (p *PebbleDB) GetParameter() (params.Parameter, error) {
	var out params.Parameter
	if err := p.get([]byte{prefixParam}, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return params.Parameter{}, ErrParameterNotSet
		}
		return params.Parameter{}, err
	}
	return out, nil
}

// SetParameter persists the chain's configuration.
func (p *PebbleDB) SetParameter(param params.Parameter) error {
	return p.set([]byte{prefixParam}, param)
}

// ReadBlockHeader reads a sealed block's header.
func (p *PebbleDB) ReadBlockHeader(id chainmodel.ID) (chainmodel.BlockHeader, error) {
	var out chainmodel.BlockHeader
	err := p.get(key(prefixBlockHeader, id), &out)
	return out, err
}

// WriteBlockHeader persists a sealed block's header.
func (p *PebbleDB) WriteBlockHeader(h chainmodel.BlockHeader) error {
	return p.set(key(prefixBlockHeader, h.BlockID), h)
}

// ReadBlockData reads a block's payload.
func (p *PebbleDB) ReadBlockData(id chainmodel.ID) (chainmodel.BlockData, error) {
	var out chainmodel.BlockData
	err := p.get(key(prefixBlockData, id), &out)
	return out, err
}

// WriteBlockData persists a block's payload.
func (p *PebbleDB) WriteBlockData(d chainmodel.BlockData) error {
	return p.set(key(prefixBlockData, d.BlockID), d)
}

// intraNodeWire tags which of Leaf/NonLeaf a stored intra-index record is,
// since intraindex.Node is an interface and CBOR needs a concrete shape to
// decode into.
type intraNodeWire struct {
	IsLeaf  bool
	Leaf    *intraindex.Leaf    `cbor:",omitempty"`
	NonLeaf *intraindex.NonLeaf `cbor:",omitempty"`
}

// ReadIntraIndexNode reads an intra-index tree node (leaf or non-leaf).
func (p *PebbleDB) ReadIntraIndexNode(id chainmodel.ID) (intraindex.Node, error) {
	var wire intraNodeWire
	if err := p.get(key(prefixIntraNode, id), &wire); err != nil {
		return nil, err
	}
	if wire.IsLeaf {
		return wire.Leaf, nil
	}
	return wire.NonLeaf, nil
}

// WriteIntraIndexNode persists an intra-index tree node.
func (p *PebbleDB) WriteIntraIndexNode(n intraindex.Node) error {
	var wire intraNodeWire
	switch v := n.(type) {
	case *intraindex.Leaf:
		wire = intraNodeWire{IsLeaf: true, Leaf: v}
	case *intraindex.NonLeaf:
		wire = intraNodeWire{IsLeaf: false, NonLeaf: v}
	default:
		return fmt.Errorf("storage: unknown intra-index node type %T", n)
	}
	return p.set(key(prefixIntraNode, n.ID()), wire)
}

// ReadSkipListNode reads a skip-list node.
func (p *PebbleDB) ReadSkipListNode(id chainmodel.ID) (*skiplist.Node, error) {
	var out skiplist.Node
	if err := p.get(key(prefixSkipNode, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WriteSkipListNode persists a skip-list node.
func (p *PebbleDB) WriteSkipListNode(n *skiplist.Node) error {
	return p.set(key(prefixSkipNode, n.NodeID), *n)
}

// ReadObject reads a materialized object.
func (p *PebbleDB) ReadObject(id chainmodel.ID) (chainmodel.Object, error) {
	var out chainmodel.Object
	err := p.get(key(prefixObject, id), &out)
	return out, err
}

// WriteObject persists a materialized object.
func (p *PebbleDB) WriteObject(o chainmodel.Object) error {
	return p.set(key(prefixObject, o.ID), o)
}
