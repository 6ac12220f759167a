// Package jobs runs the API's periodic background work on a cron scheduler.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"inkwell/internal/pkg/config"
)

// Func is one run of a job. The context is canceled when the run exceeds its
// timeout or the scheduler stops.
type Func func(ctx context.Context) error

// Scheduler runs named jobs on cron schedules. Panics inside a job are
// recovered and logged; overlapping runs of the same job are skipped.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *Metrics

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler whose specs are parsed with config.CronParser.
func NewScheduler(logger *slog.Logger, metrics *Metrics) *Scheduler {
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(config.CronParser()),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			cron.WithLogger(cl),
		),
		logger:  logger,
		metrics: metrics,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Add schedules fn under name. Each run gets at most timeout.
func (s *Scheduler) Add(name, spec string, timeout time.Duration, fn Func) error {
	if _, err := s.cron.AddFunc(spec, s.wrap(name, timeout, fn)); err != nil {
		return fmt.Errorf("schedule job %s: %w", name, err)
	}
	s.logger.Info("job scheduled", slog.String("job", name), slog.String("schedule", spec))
	return nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels in-flight runs and waits for them to return or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop scheduler: %w", ctx.Err())
	}
}

func (s *Scheduler) wrap(name string, timeout time.Duration, fn Func) func() {
	return func() {
		ctx, cancel := context.WithTimeout(s.ctx, timeout)
		defer cancel()

		start := time.Now()
		err := fn(ctx)
		d := time.Since(start)
		if s.metrics != nil {
			s.metrics.RecordRun(name, d, err)
		}
		if err != nil {
			s.logger.Error("job failed",
				slog.String("job", name),
				slog.Duration("duration", d),
				slog.Any("error", err))
			return
		}
		s.logger.Debug("job finished", slog.String("job", name), slog.Duration("duration", d))
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, slog.Any("error", err))...)
}
