// Package profiling measures wall time and heap allocation of an operation.
package profiling

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Report is the outcome of one measurement.
type Report struct {
	Op       string
	Duration time.Duration
	Bytes    uint64 // heap bytes allocated
	Mallocs  uint64
}

// Measure runs fn once and reports how long it took and how much it
// allocated. A GC runs first so earlier garbage does not skew the numbers.
func Measure(op string, fn func()) Report {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()
	fn()
	d := time.Since(start)
	runtime.ReadMemStats(&after)
	return Report{
		Op:       op,
		Duration: d,
		Bytes:    after.TotalAlloc - before.TotalAlloc,
		Mallocs:  after.Mallocs - before.Mallocs,
	}
}

// Fields returns the report as zap fields.
func (r Report) Fields() []zap.Field {
	return []zap.Field{
		zap.String("op", r.Op),
		zap.Duration("elapsed", r.Duration),
		zap.Uint64("alloc_bytes", r.Bytes),
		zap.Uint64("mallocs", r.Mallocs),
	}
}
