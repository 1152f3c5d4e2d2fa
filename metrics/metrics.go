// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics wraps github.com/prometheus/client_golang the way the
// teacher's api/metrics package wraps a prometheus.Registerer: a struct of
// counters/histograms, constructed once per process and threaded into the
// query engine and block builder (spec.md section 2's AMBIENT STACK
// entry for metrics).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds every counter/histogram the query engine and block builder
// report against: queries served, proofs generated, VO bytes, and
// skip-jumps taken.
type Metrics struct {
	QueriesServed   prometheus.Counter
	ProofsGenerated prometheus.Counter
	SkipJumpsTaken  prometheus.Counter
	BlocksBuilt     prometheus.Counter
	VOSizeBytes     prometheus.Histogram
	QueryDuration   prometheus.Histogram
}

// New registers and returns a Metrics bound to reg. Passing a
// prometheus.NewRegistry() (or nil, as NoOp does) is safe for tests.
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		QueriesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_served_total",
			Help:      "Number of queries executed against the chain.",
		}),
		ProofsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "acc_proofs_generated_total",
			Help:      "Number of accumulator disjointness proofs generated.",
		}),
		SkipJumpsTaken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skip_jumps_total",
			Help:      "Number of skip-list jumps taken across all queries.",
		}),
		BlocksBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_built_total",
			Help:      "Number of blocks sealed by the builder.",
		}),
		VOSizeBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vo_size_bytes",
			Help:      "Binary-serialized verification object size, in bytes.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Wall-clock time to execute a query and build its VO.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{
		m.QueriesServed, m.ProofsGenerated, m.SkipJumpsTaken,
		m.BlocksBuilt, m.VOSizeBytes, m.QueryDuration,
	} {
		if reg == nil {
			continue
		}
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NoOp returns a Metrics bound to no registry: every observation is a
// cheap no-op collector update, safe to pass when the caller doesn't care
// about metrics (tests, the in-memory demo chain).
func NoOp() *Metrics {
	m, _ := New("vqchain_noop", nil)
	return m
}
