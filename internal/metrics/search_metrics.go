package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetrics tracks filter evaluation over the card catalog.
type SearchMetrics struct {
	Latency *Histogram

	Searches     atomic.Uint64
	CardsScanned atomic.Uint64
	Matches      atomic.Uint64
	Canceled     atomic.Uint64

	startTime time.Time
}

// NewSearchMetrics creates a metrics collector.
func NewSearchMetrics() *SearchMetrics {
	return &SearchMetrics{
		Latency:   NewHistogram(10000),
		startTime: time.Now(),
	}
}

// RecordSearch records one completed search.
func (m *SearchMetrics) RecordSearch(d time.Duration, scanned, matched int) {
	m.Latency.Record(d)
	m.Searches.Add(1)
	m.CardsScanned.Add(uint64(scanned))
	m.Matches.Add(uint64(matched))
}

// RecordCanceled counts a search abandoned because its context ended.
func (m *SearchMetrics) RecordCanceled() {
	m.Canceled.Add(1)
}

// SearchStats is a point-in-time view of SearchMetrics.
type SearchStats struct {
	Latency      LatencyStats `json:"latency"`
	Searches     uint64       `json:"searches"`
	CardsScanned uint64       `json:"cards_scanned"`
	Matches      uint64       `json:"matches"`
	Canceled     uint64       `json:"canceled"`
	MatchRate    float64      `json:"match_rate"` // percentage of scanned cards
	Uptime       string       `json:"uptime"`
}

// LatencyStats summarizes a latency histogram in milliseconds.
type LatencyStats struct {
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// GetStats returns a snapshot of the current statistics.
func (m *SearchMetrics) GetStats() *SearchStats {
	scanned := m.CardsScanned.Load()
	matches := m.Matches.Load()

	rate := 0.0
	if scanned > 0 {
		rate = float64(matches) / float64(scanned) * 100
	}

	return &SearchStats{
		Latency:      m.Latency.Snapshot(),
		Searches:     m.Searches.Load(),
		CardsScanned: scanned,
		Matches:      matches,
		Canceled:     m.Canceled.Load(),
		MatchRate:    rate,
		Uptime:       time.Since(m.startTime).Round(time.Second).String(),
	}
}
