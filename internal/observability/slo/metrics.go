package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Targets a flushed window is checked against.
const (
	// AvailabilitySLO is the share of non-5xx responses, in percent.
	AvailabilitySLO = 99.9

	// LatencyP95SLO is the 95th percentile latency target in seconds.
	LatencyP95SLO = 0.200

	// LatencyP99SLO is the 99th percentile latency target in seconds.
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the highest acceptable 5xx ratio.
	ErrorRateSLO = 0.001
)

// Gauges describing the last flushed window.
var (
	SLOAvailability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Availability ratio (0-1) of the last window, target: 0.999",
	})

	SLOLatencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "p95 latency in seconds of the last window, target: 0.200",
	})

	SLOLatencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "p99 latency in seconds of the last window, target: 0.500",
	})

	SLOErrorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "5xx ratio (0-1) of the last window, target: 0.001",
	})

	SLOWindowRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_window_requests",
		Help: "Requests served in the last window",
	})

	SLOWindowMet = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_window_met",
		Help: "1 if the last window met every target, 0 otherwise",
	})
)

// publish exposes w on the SLO gauges.
func publish(w Window) {
	SLOAvailability.Set(w.Availability)
	SLOErrorRate.Set(w.ErrorRate)
	SLOLatencyP95.Set(w.P95.Seconds())
	SLOLatencyP99.Set(w.P99.Seconds())
	SLOWindowRequests.Set(float64(w.Requests))
	if w.Meets() {
		SLOWindowMet.Set(1)
	} else {
		SLOWindowMet.Set(0)
	}
}
