package metrics

import (
	"math"
	"slices"
	"sync"
	"time"
)

// Histogram keeps the most recent duration samples in a ring buffer and
// reports percentiles over them.
type Histogram struct {
	mu      sync.RWMutex
	samples []float64 // milliseconds
	next    int
	full    bool
}

// NewHistogram creates a histogram that remembers the last size samples.
func NewHistogram(size int) *Histogram {
	if size <= 0 {
		size = 10000
	}
	return &Histogram{samples: make([]float64, size)}
}

// Record adds a duration sample, overwriting the oldest once the buffer is full.
func (h *Histogram) Record(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples[h.next] = float64(d.Microseconds()) / 1000.0
	h.next++
	if h.next == len(h.samples) {
		h.next = 0
		h.full = true
	}
}

// Count returns the number of retained samples.
func (h *Histogram) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count()
}

func (h *Histogram) count() int {
	if h.full {
		return len(h.samples)
	}
	return h.next
}

// Percentile returns the interpolated value at p (0-100), or 0 without samples.
func (h *Histogram) Percentile(p float64) float64 {
	return percentile(h.sorted(), p)
}

// Snapshot computes every statistic from one sorted copy of the samples.
func (h *Histogram) Snapshot() LatencyStats {
	sorted := h.sorted()
	if len(sorted) == 0 {
		return LatencyStats{}
	}

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return LatencyStats{
		Mean:  sum / float64(len(sorted)),
		P50:   percentile(sorted, 50),
		P95:   percentile(sorted, 95),
		P99:   percentile(sorted, 99),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
}

// Reset drops all samples.
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next = 0
	h.full = false
}

func (h *Histogram) sorted() []float64 {
	h.mu.RLock()
	out := slices.Clone(h.samples[:h.count()])
	h.mu.RUnlock()

	slices.Sort(out)
	return out
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	fraction := index - float64(lower)
	return sorted[lower]*(1-fraction) + sorted[upper]*fraction
}
