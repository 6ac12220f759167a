package main

import (
	"context"
	"log/slog"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/infra/jobs"
	"inkwell/internal/observability/logging"
	"inkwell/internal/observability/metrics"
	"inkwell/internal/observability/slo"
)

const jobTimeout = 30 * time.Second

// gaugeRefresher recomputes the post gauges.
type gaugeRefresher interface {
	RefreshGauges(ctx context.Context) error
}

// scheduleJobs registers the periodic background jobs.
func scheduleJobs(s *jobs.Scheduler, cfg config.JobsConfig, posts gaugeRefresher, tracker *slo.Tracker, store *storage) error {
	if err := s.Add("post_gauges", cfg.GaugeRefreshSchedule, jobTimeout, refreshGauges(posts, store)); err != nil {
		return err
	}
	return s.Add("slo_flush", cfg.SLOFlushSchedule, jobTimeout, flushSLO(tracker))
}

func refreshGauges(posts gaugeRefresher, store *storage) jobs.Func {
	return func(ctx context.Context) error {
		if store.DB != nil {
			st := store.DB.Stats()
			metrics.UpdateDBConnectionStats(st.InUse, st.Idle)
		}
		return posts.RefreshGauges(ctx)
	}
}

func flushSLO(tracker *slo.Tracker) jobs.Func {
	return func(ctx context.Context) error {
		w := tracker.Flush()
		if w.Requests > 0 && !w.Meets() {
			logging.FromContext(ctx).Warn("SLO window missed targets",
				slog.Int("requests", w.Requests),
				slog.Int("errors", w.Errors),
				slog.Float64("availability", w.Availability),
				slog.Duration("p95", w.P95),
				slog.Duration("p99", w.P99))
		}
		return nil
	}
}
