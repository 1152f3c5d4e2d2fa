// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storage defines the external storage contract spec.md section 6
// names ("Storage contract (read side/write side)") and two
// implementations: an in-memory reference chain for tests and the demo
// driver (memchain.go), and a Pebble-backed production Database
// (pebble.go). Both satisfy the same Reader/Writer pair the block builder,
// query engine, and skip-list attachment depend on.
package storage

import (
	"errors"

	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/intraindex"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/skiplist"
)

// ErrNotFound is returned by any Read* method when the requested id does
// not exist (spec.md section 7, category 3: "storage lookup miss").
var ErrNotFound = errors.New("storage: record not found")

// ErrParameterNotSet is returned by GetParameter before SetParameter has
// ever been called.
var ErrParameterNotSet = errors.New("storage: parameter not set")

// Reader is the read side of the storage contract (spec.md section 6):
// everything the query engine, skip-list builder, and verifier need, and
// nothing else — no serialization format is implied, only these accessors.
type Reader interface {
	GetParameter() (params.Parameter, error)
	ReadBlockHeader(id chainmodel.ID) (chainmodel.BlockHeader, error)
	ReadBlockData(id chainmodel.ID) (chainmodel.BlockData, error)
	ReadIntraIndexNode(id chainmodel.ID) (intraindex.Node, error)
	ReadSkipListNode(id chainmodel.ID) (*skiplist.Node, error)
	ReadObject(id chainmodel.ID) (chainmodel.Object, error)
}

// Writer is the write side of the storage contract: symmetric to Reader,
// one method per record type plus SetParameter. Writes are commit-on-return
// (spec.md section 6): by the time Write* returns, the record is durably
// visible to subsequent Reads.
type Writer interface {
	SetParameter(p params.Parameter) error
	WriteBlockHeader(h chainmodel.BlockHeader) error
	WriteBlockData(d chainmodel.BlockData) error
	WriteIntraIndexNode(n intraindex.Node) error
	WriteSkipListNode(n *skiplist.Node) error
	WriteObject(o chainmodel.Object) error
}

// Database is the full storage contract a chain builder and query engine
// run against.
type Database interface {
	Reader
	Writer
}
