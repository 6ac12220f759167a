package slo

import (
	"math"
	"slices"
	"sync"
	"time"
)

// maxSamples caps the latencies kept per window. Once full, further latencies
// are dropped but the request and error counts stay exact.
const maxSamples = 10000

// Window is the SLO summary of one flush interval.
type Window struct {
	Requests     int
	Errors       int
	Availability float64
	ErrorRate    float64
	P95          time.Duration
	P99          time.Duration
}

// Tracker accumulates request outcomes between flushes.
// It is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	requests  int
	errors    int
	latencies []time.Duration
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{latencies: make([]time.Duration, 0, 256)}
}

// Observe records one served request. Status codes of 500 and above count as errors.
func (t *Tracker) Observe(status int, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests++
	if status >= 500 {
		t.errors++
	}
	if len(t.latencies) < maxSamples {
		t.latencies = append(t.latencies, d)
	}
}

// Flush summarizes the window, publishes the SLO gauges and starts a new window.
// An empty window reports full availability and leaves latency gauges at zero.
func (t *Tracker) Flush() Window {
	t.mu.Lock()
	requests, errs, lat := t.requests, t.errors, t.latencies
	t.requests, t.errors = 0, 0
	t.latencies = make([]time.Duration, 0, cap(lat))
	t.mu.Unlock()

	w := Window{Requests: requests, Errors: errs, Availability: 1}
	if requests > 0 {
		w.ErrorRate = float64(errs) / float64(requests)
		w.Availability = 1 - w.ErrorRate
	}
	if len(lat) > 0 {
		slices.Sort(lat)
		w.P95 = percentile(lat, 0.95)
		w.P99 = percentile(lat, 0.99)
	}

	publish(w)
	return w
}

// Meets reports whether the window satisfies every SLO target.
func (w Window) Meets() bool {
	return w.Availability*100 >= AvailabilitySLO &&
		w.ErrorRate <= ErrorRateSLO &&
		w.P95.Seconds() <= LatencyP95SLO &&
		w.P99.Seconds() <= LatencyP99SLO
}

// percentile uses the nearest-rank method on sorted samples.
func percentile(sorted []time.Duration, q float64) time.Duration {
	rank := int(math.Ceil(q*float64(len(sorted)))) - 1
	return sorted[max(rank, 0)]
}
