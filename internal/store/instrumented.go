package store

import (
	"sync/atomic"
	"time"

	"github.com/heysubinoy/kvs/pkg/kv"
)

// Metrics holds counters and cumulative latencies for store operations.
type Metrics struct {
	GetCount    atomic.Uint64
	GetHits     atomic.Uint64
	SetCount    atomic.Uint64
	RemoveCount atomic.Uint64

	// Cumulative latencies in nanoseconds
	GetLatencyNs    atomic.Uint64
	SetLatencyNs    atomic.Uint64
	RemoveLatencyNs atomic.Uint64
}

// InstrumentedStore wraps any kv.Store implementation with timing metrics.
// It never changes what the wrapped store returns.
type InstrumentedStore struct {
	store   kv.Store
	metrics *Metrics
}

// Compile-time check to ensure InstrumentedStore implements kv.Store.
var _ kv.Store = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps a store with instrumentation.
func NewInstrumentedStore(store kv.Store) *InstrumentedStore {
	return &InstrumentedStore{
		store:   store,
		metrics: &Metrics{},
	}
}

// Get delegates to the wrapped store and records timing and hit rate.
func (s *InstrumentedStore) Get(key string) (string, bool) {
	start := time.Now()
	value, found := s.store.Get(key)
	elapsed := time.Since(start).Nanoseconds()

	s.metrics.GetCount.Add(1)
	s.metrics.GetLatencyNs.Add(uint64(elapsed))
	if found {
		s.metrics.GetHits.Add(1)
	}

	return value, found
}

// Set delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Set(key, value string) {
	start := time.Now()
	s.store.Set(key, value)
	elapsed := time.Since(start).Nanoseconds()

	s.metrics.SetCount.Add(1)
	s.metrics.SetLatencyNs.Add(uint64(elapsed))
}

// Remove delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Remove(key string) {
	start := time.Now()
	s.store.Remove(key)
	elapsed := time.Since(start).Nanoseconds()

	s.metrics.RemoveCount.Add(1)
	s.metrics.RemoveLatencyNs.Add(uint64(elapsed))
}

// Len is not instrumented.
func (s *InstrumentedStore) Len() int {
	return s.store.Len()
}

// Metrics returns a snapshot of current metrics.
func (s *InstrumentedStore) Metrics() MetricsSnapshot {
	getCount := s.metrics.GetCount.Load()
	getHits := s.metrics.GetHits.Load()
	setCount := s.metrics.SetCount.Load()
	removeCount := s.metrics.RemoveCount.Load()

	return MetricsSnapshot{
		Keys:             s.store.Len(),
		GetCount:         getCount,
		GetHits:          getHits,
		GetMisses:        getCount - getHits,
		SetCount:         setCount,
		RemoveCount:      removeCount,
		GetAvgLatency:    avgLatency(s.metrics.GetLatencyNs.Load(), getCount),
		SetAvgLatency:    avgLatency(s.metrics.SetLatencyNs.Load(), setCount),
		RemoveAvgLatency: avgLatency(s.metrics.RemoveLatencyNs.Load(), removeCount),
	}
}

// ResetMetrics clears all metrics counters. Stored entries are untouched.
func (s *InstrumentedStore) ResetMetrics() {
	s.metrics.GetCount.Store(0)
	s.metrics.GetHits.Store(0)
	s.metrics.SetCount.Store(0)
	s.metrics.RemoveCount.Store(0)
	s.metrics.GetLatencyNs.Store(0)
	s.metrics.SetLatencyNs.Store(0)
	s.metrics.RemoveLatencyNs.Store(0)
}

func avgLatency(totalNs, count uint64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(totalNs / count)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Keys             int
	GetCount         uint64
	GetHits          uint64
	GetMisses        uint64
	SetCount         uint64
	RemoveCount      uint64
	GetAvgLatency    time.Duration
	SetAvgLatency    time.Duration
	RemoveAvgLatency time.Duration
}
