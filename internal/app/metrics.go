package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics tracks operation counts, timings and buffer growth.
// It is safe for concurrent use.
type Metrics struct {
	// Operation timing
	applyCount   atomic.Uint64
	applyTotalNs atomic.Int64
	applyMinNs   atomic.Int64
	applyMaxNs   atomic.Int64
	lastApplyNs  atomic.Int64

	failed    atomic.Uint64
	mutations atomic.Uint64

	// Buffer growth
	grows        atomic.Uint64
	peakCapacity atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so the first sample will be smaller
	m.applyMinNs.Store(1<<63 - 1)
	return m
}

// RecordApply records a successful operation.
func (m *Metrics) RecordApply(duration time.Duration, mutated bool) {
	ns := duration.Nanoseconds()

	m.applyCount.Add(1)
	m.applyTotalNs.Add(ns)
	m.lastApplyNs.Store(ns)
	if mutated {
		m.mutations.Add(1)
	}

	for {
		old := m.applyMinNs.Load()
		if ns >= old || m.applyMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.applyMaxNs.Load()
		if ns <= old || m.applyMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordFailure records a failed operation.
func (m *Metrics) RecordFailure() {
	m.failed.Add(1)
}

// RecordCapacity records the buffer capacity before and after an operation.
// Any increase counts as one grow.
func (m *Metrics) RecordCapacity(before, after int) {
	if after > before {
		m.grows.Add(1)
	}
	c := int64(after)
	for {
		old := m.peakCapacity.Load()
		if c <= old || m.peakCapacity.CompareAndSwap(old, c) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	count := m.applyCount.Load()

	var avgNs int64
	if count > 0 {
		avgNs = m.applyTotalNs.Load() / int64(count)
	}

	minNs := m.applyMinNs.Load()
	if minNs == 1<<63-1 {
		minNs = 0
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Applied:      count,
		Failed:       m.failed.Load(),
		Mutations:    m.mutations.Load(),
		AvgApplyNs:   avgNs,
		MinApplyNs:   minNs,
		MaxApplyNs:   m.applyMaxNs.Load(),
		LastApplyNs:  m.lastApplyNs.Load(),
		Grows:        m.grows.Load(),
		PeakCapacity: int(m.peakCapacity.Load()),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.applyCount.Store(0)
	m.applyTotalNs.Store(0)
	m.applyMinNs.Store(1<<63 - 1)
	m.applyMaxNs.Store(0)
	m.lastApplyNs.Store(0)
	m.failed.Store(0)
	m.mutations.Store(0)
	m.grows.Store(0)
	m.peakCapacity.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Applied      uint64
	Failed       uint64
	Mutations    uint64
	AvgApplyNs   int64
	MinApplyNs   int64
	MaxApplyNs   int64
	LastApplyNs  int64
	Grows        uint64
	PeakCapacity int
}

// FailureRate returns the percentage of operations that failed.
func (s MetricsSnapshot) FailureRate() float64 {
	total := s.Applied + s.Failed
	if total == 0 {
		return 0
	}
	return float64(s.Failed) / float64(total) * 100
}

// String formats the snapshot on one line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("applied=%d failed=%d mutations=%d grows=%d peak_cap=%d avg=%s max=%s",
		s.Applied, s.Failed, s.Mutations, s.Grows, s.PeakCapacity,
		time.Duration(s.AvgApplyNs), time.Duration(s.MaxApplyNs))
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop returns the elapsed time and resets the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}
