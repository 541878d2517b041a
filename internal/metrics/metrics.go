package metrics

import (
	"sync"
	"time"
)

type callStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about roster operations
// and storage writes, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu         sync.Mutex
	operations map[string]*callStats
	persists   map[string]*callStats
	rosterSize int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		operations: make(map[string]*callStats),
		persists:   make(map[string]*callStats),
		otel:       otel,
	}
}

// RecordRosterOperation counts a roster store operation (create, update, ...).
func (r *Recorder) RecordRosterOperation(op string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.record(r.operations, op, duration, err)
	if r.otel != nil {
		r.otel.recordOperation(op, duration, err)
	}
}

// RecordPersist counts a write of the roster slot to the given backend.
func (r *Recorder) RecordPersist(backend string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.record(r.persists, backend, duration, err)
	if r.otel != nil {
		r.otel.recordPersist(backend, duration, err)
	}
}

// SetRosterSize stores the current number of players; exported as a gauge.
func (r *Recorder) SetRosterSize(n int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rosterSize = n
}

// RosterSize returns the last recorded roster size.
func (r *Recorder) RosterSize() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rosterSize
}

// Snapshot is a copy of the counters for one operation or backend.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

// Operation returns the stats recorded for a roster operation.
func (r *Recorder) Operation(op string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.operations, op)
}

// Persist returns the stats recorded for a storage backend.
func (r *Recorder) Persist(backend string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.persists, backend)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

func (r *Recorder) record(bucket map[string]*callStats, name string, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := bucket[name]
	if !ok {
		stats = &callStats{}
		bucket[name] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
}

func (r *Recorder) snapshot(bucket map[string]*callStats, name string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := bucket[name]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:       stats.calls,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}
