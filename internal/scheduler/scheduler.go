// Package scheduler drives daemon mode: one immediate discovery run, then a
// fresh run on every interval tick.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// RunFunc executes one full discovery pass.
type RunFunc func(ctx context.Context) error

// Scheduler owns the daemon loop.
type Scheduler struct {
	run      RunFunc
	interval time.Duration
	logger   *slog.Logger
}

// New creates a scheduler that calls run at the given interval.
func New(run RunFunc, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		run:      run,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. It runs one immediate pass, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful
// shutdown); a failed pass is logged and the loop keeps going.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := s.run(ctx); err != nil {
		s.logger.Error("discovery run failed", "error", err)
		return
	}
	s.logger.Info("discovery run finished", "took", time.Since(start).Round(time.Second).String())
}
