package metrics

import (
	"testing"
	"time"
)

func TestCollectorRecordAndSnapshot(t *testing.T) {
	c := NewCollector()

	c.Record(OpForecast, 120*time.Millisecond, false)
	c.Record(OpForecast, 80*time.Millisecond, true)
	c.Record(OpIdentify, 200*time.Millisecond, false)

	snap := c.Snapshot()

	f, ok := snap.Operations[OpForecast]
	if !ok {
		t.Fatal("forecast metrics missing")
	}
	if f.Count != 2 || f.Failures != 1 {
		t.Errorf("forecast count=%d failures=%d, want 2 and 1", f.Count, f.Failures)
	}
	if f.MinTimeMs != 80 || f.MaxTimeMs != 120 {
		t.Errorf("forecast min=%d max=%d, want 80 and 120", f.MinTimeMs, f.MaxTimeMs)
	}
	if f.AvgTimeMs != 100 {
		t.Errorf("forecast avg=%v, want 100", f.AvgTimeMs)
	}

	if _, ok := snap.Operations[OpJobMutation]; ok {
		t.Error("unrecorded operation should not appear in snapshot")
	}
}

func TestCollectorEmptySnapshot(t *testing.T) {
	c := NewCollector()
	snap := c.Snapshot()
	if len(snap.Operations) != 0 {
		t.Errorf("expected empty operations map, got %v", snap.Operations)
	}
}
