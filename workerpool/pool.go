// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package workerpool provides the single "data-parallel map-reduce over an
// indexed range" primitive spec.md section 5/9 calls for: a shared,
// bounded-concurrency pool used by DigestSet construction and the polynomial
// tree-product. Multi-scalar multiplications do not use it; they run through
// gnark-crypto's MultiExp, which parallelizes on its own.
package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool runs tasks with bounded concurrency. It is safe for concurrent use
// and for recursive submission (a running task may submit more tasks to the
// same pool), which is what the polynomial tree-product needs.
type Pool struct {
	limit int
}

// Default returns a pool sized to the number of available CPUs, matching
// the teacher's convention of defaulting concurrency knobs from
// runtime.GOMAXPROCS rather than hardcoding a worker count.
func Default() *Pool {
	return New(runtime.GOMAXPROCS(0))
}

// New returns a pool that runs at most limit tasks concurrently.
func New(limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{limit: limit}
}

// Group starts a new bounded errgroup scoped to this pool's concurrency
// limit; callers Go() tasks onto it and Wait() for them, same as a raw
// errgroup.Group.
func (p *Pool) Group(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	return g, gctx
}

// MapReduce runs fn(i) for every i in [0, n) with bounded concurrency,
// returning the first error encountered (if any). Intended for batched MSM
// preprocessing and DigestSet's per-element digest-to-field mapping.
func (p *Pool) MapReduce(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := p.Group(ctx)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(i)
		})
	}
	return g.Wait()
}
