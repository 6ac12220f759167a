package jobs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"inkwell/internal/pkg/config"
)

// Metrics tracks background job execution. It embeds the component's
// ConfigMetrics so fallbacks applied to job schedules are reported next to
// the runs they affect.
//
// Metrics generated:
//   - api_config_*: see config.ConfigMetrics
//   - api_job_runs_total: job runs by job and status (success/failure)
//   - api_job_duration_seconds: job duration by job
//   - api_job_last_success_timestamp: Unix timestamp of the last successful run by job
type Metrics struct {
	*config.ConfigMetrics

	RunsTotal            *prometheus.CounterVec
	DurationSeconds      *prometheus.HistogramVec
	LastSuccessTimestamp *prometheus.GaugeVec
}

// NewMetrics registers the job metrics with the default registry.
// It panics if called twice.
func NewMetrics() *Metrics {
	return newMetrics(promauto.With(prometheus.DefaultRegisterer), config.NewConfigMetrics("api"))
}

func newMetrics(factory promauto.Factory, cfg *config.ConfigMetrics) *Metrics {
	return &Metrics{
		ConfigMetrics: cfg,

		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "api_job_runs_total",
			Help: "Total number of background job runs by job and status (success/failure)",
		}, []string{"job", "status"}),

		DurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_job_duration_seconds",
			Help:    "Duration of background job runs in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 30},
		}, []string{"job"}),

		LastSuccessTimestamp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "api_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful background job run",
		}, []string{"job"}),
	}
}

// RecordRun records the outcome of one job run.
func (m *Metrics) RecordRun(job string, d time.Duration, err error) {
	m.DurationSeconds.WithLabelValues(job).Observe(d.Seconds())
	if err != nil {
		m.RunsTotal.WithLabelValues(job, "failure").Inc()
		return
	}
	m.RunsTotal.WithLabelValues(job, "success").Inc()
	m.LastSuccessTimestamp.WithLabelValues(job).SetToCurrentTime()
}
