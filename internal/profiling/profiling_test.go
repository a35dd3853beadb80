package profiling

import (
	"testing"
	"time"
)

var sink [][]byte

func TestMeasureCountsAllocations(t *testing.T) {
	r := Measure("alloc", func() {
		for i := 0; i < 64; i++ {
			sink = append(sink, make([]byte, 4096))
		}
	})
	sink = nil
	if r.Op != "alloc" {
		t.Errorf("Op = %q", r.Op)
	}
	if r.Bytes < 64*4096 {
		t.Errorf("Bytes = %d, want at least %d", r.Bytes, 64*4096)
	}
	if r.Mallocs < 64 {
		t.Errorf("Mallocs = %d, want at least 64", r.Mallocs)
	}
}

func TestMeasureDuration(t *testing.T) {
	r := Measure("sleep", func() { time.Sleep(5 * time.Millisecond) })
	if r.Duration < 5*time.Millisecond {
		t.Errorf("Duration = %v", r.Duration)
	}
}

func TestReportFields(t *testing.T) {
	r := Report{Op: "greedy", Duration: 1500 * time.Microsecond, Bytes: 2048, Mallocs: 3}
	fields := r.Fields()
	if len(fields) != 4 {
		t.Fatalf("got %d fields", len(fields))
	}
	if fields[0].Key != "op" || fields[0].String != "greedy" {
		t.Errorf("first field = %+v", fields[0])
	}
	if fields[1].Key != "elapsed" || time.Duration(fields[1].Integer) != r.Duration {
		t.Errorf("elapsed field = %+v", fields[1])
	}
	if fields[2].Key != "alloc_bytes" || fields[2].Integer != 2048 {
		t.Errorf("alloc_bytes field = %+v", fields[2])
	}
}
