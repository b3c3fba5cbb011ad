package metrics

import (
	"testing"
	"time"
)

func TestHistogram_Snapshot(t *testing.T) {
	h := NewHistogram(100)
	for i := 1; i <= 5; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}

	s := h.Snapshot()
	if s.Count != 5 {
		t.Errorf("Expected 5 samples, got %d", s.Count)
	}
	if s.Mean != 3 || s.P50 != 3 || s.Min != 1 || s.Max != 5 {
		t.Errorf("Unexpected stats: %+v", s)
	}
	if got := h.Percentile(25); got != 2 {
		t.Errorf("Expected p25 = 2, got %v", got)
	}
	if got := h.Percentile(90); got < 4.5 || got > 4.7 {
		t.Errorf("Expected interpolated p90 near 4.6, got %v", got)
	}
}

func TestHistogram_Wraps(t *testing.T) {
	h := NewHistogram(3)
	for i := 1; i <= 5; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}

	s := h.Snapshot()
	if s.Count != 3 || s.Min != 3 || s.Max != 5 {
		t.Errorf("Expected the last three samples, got %+v", s)
	}

	h.Reset()
	if h.Count() != 0 || h.Percentile(50) != 0 {
		t.Error("Expected Reset to drop every sample")
	}
}

func TestSearchMetrics(t *testing.T) {
	m := NewSearchMetrics()
	m.RecordSearch(2*time.Millisecond, 100, 10)
	m.RecordSearch(4*time.Millisecond, 100, 30)
	m.RecordCanceled()

	stats := m.GetStats()
	if stats.Searches != 2 || stats.CardsScanned != 200 || stats.Matches != 40 || stats.Canceled != 1 {
		t.Errorf("Unexpected counters: %+v", stats)
	}
	if stats.MatchRate != 20 {
		t.Errorf("Expected match rate 20%%, got %v", stats.MatchRate)
	}
	if stats.Latency.Mean != 3 {
		t.Errorf("Expected mean latency 3ms, got %v", stats.Latency.Mean)
	}
}
