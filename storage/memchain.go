// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"sync"

	"github.com/luxfi/vqchain/chainmodel"
	"github.com/luxfi/vqchain/intraindex"
	"github.com/luxfi/vqchain/params"
	"github.com/luxfi/vqchain/skiplist"
)

// MemChain is an in-memory Database, mirroring the original's
// FakeInMemChain test harness (spec.md's SUPPLEMENTED FEATURES item 4):
// used by this module's own tests and as the default backing store for the
// cmd/vqchain demo driver. Writes take a write lock; reads take a read
// lock, matching spec.md section 5's "single-writer... readers are
// lock-free once a block is sealed" as closely as an in-memory map
// reasonably can without a real MVCC snapshot.
type MemChain struct {
	mu sync.RWMutex

	param    *params.Parameter
	headers  map[chainmodel.ID]chainmodel.BlockHeader
	data     map[chainmodel.ID]chainmodel.BlockData
	intra    map[chainmodel.ID]intraindex.Node
	skip     map[chainmodel.ID]*skiplist.Node
	objects  map[chainmodel.ID]chainmodel.Object
}

// NewMemChain returns an empty in-memory chain.
func NewMemChain() *MemChain {
	return &MemChain{
		headers: make(map[chainmodel.ID]chainmodel.BlockHeader),
		data:    make(map[chainmodel.ID]chainmodel.BlockData),
		intra:   make(map[chainmodel.ID]intraindex.Node),
		skip:    make(map[chainmodel.ID]*skiplist.Node),
		objects: make(map[chainmodel.ID]chainmodel.Object),
	}
}

var _ Database = (*MemChain)(nil)

// GetParameter returns the chain's configuration, set once by SetParameter.
func (c *MemChain) GetParameter() (params.Parameter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.param == nil {
		return params.Parameter{}, ErrParameterNotSet
	}
	return *c.param, nil
}

// SetParameter stores the chain's configuration.
func (c *MemChain) SetParameter(p params.Parameter) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.param = &p
	return nil
}

// ReadBlockHeader looks up a sealed block's header.
func (c *MemChain) ReadBlockHeader(id chainmodel.ID) (chainmodel.BlockHeader, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.headers[id]
	if !ok {
		return chainmodel.BlockHeader{}, ErrNotFound
	}
	return h, nil
}

// WriteBlockHeader persists a sealed block's header.
func (c *MemChain) WriteBlockHeader(h chainmodel.BlockHeader) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[h.BlockID] = h
	return nil
}

// ReadBlockData looks up a block's payload.
func (c *MemChain) ReadBlockData(id chainmodel.ID) (chainmodel.BlockData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.data[id]
	if !ok {
		return chainmodel.BlockData{}, ErrNotFound
	}
	return d, nil
}

// WriteBlockData persists a block's payload.
func (c *MemChain) WriteBlockData(d chainmodel.BlockData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[d.BlockID] = d
	return nil
}

// ReadIntraIndexNode looks up an intra-index tree node (leaf or non-leaf).
func (c *MemChain) ReadIntraIndexNode(id chainmodel.ID) (intraindex.Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.intra[id]
	if !ok {
		return nil, ErrNotFound
	}
	return n, nil
}

// WriteIntraIndexNode persists an intra-index tree node.
func (c *MemChain) WriteIntraIndexNode(n intraindex.Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.intra[n.ID()] = n
	return nil
}

// ReadSkipListNode looks up a skip-list node.
func (c *MemChain) ReadSkipListNode(id chainmodel.ID) (*skiplist.Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.skip[id]
	if !ok {
		return nil, ErrNotFound
	}
	return n, nil
}

// WriteSkipListNode persists a skip-list node.
func (c *MemChain) WriteSkipListNode(n *skiplist.Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skip[n.NodeID] = n
	return nil
}

// ReadObject looks up a materialized object.
func (c *MemChain) ReadObject(id chainmodel.ID) (chainmodel.Object, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.objects[id]
	if !ok {
		return chainmodel.Object{}, ErrNotFound
	}
	return o, nil
}

// WriteObject persists a materialized object.
func (c *MemChain) WriteObject(o chainmodel.Object) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[o.ID] = o
	return nil
}
