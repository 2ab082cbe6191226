package discovery

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Source is one job source executed during a discovery phase. Fetch pushes
// every candidate record into the run and returns an error only for failures
// that abort the whole source; partial results stay admitted.
type Source interface {
	Name() string
	Fetch(ctx context.Context, run *Run) error
}

// Orchestrator drives a discovery run through its three phases: the public
// API sources in parallel, the Workday roster sequentially, then the
// browser-driven sources sequentially. A source failure never aborts the
// run; it is logged and the phase moves on.
type Orchestrator struct {
	APISources     []Source
	WorkdaySources []Source
	BrowserSources []Source

	Limiter     *SourceRateLimiter
	Concurrency int
	Logger      *slog.Logger
}

// Run executes all three phases and logs the per-source breakdown.
func (o *Orchestrator) Run(ctx context.Context, run *Run) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	o.runParallel(ctx, run, logger)
	o.runSequential(ctx, run, logger, o.WorkdaySources, "workday")
	o.runSequential(ctx, run, logger, o.BrowserSources, "browser")

	logBreakdown(logger, run, time.Since(start))
}

func (o *Orchestrator) runParallel(ctx context.Context, run *Run, logger *slog.Logger) {
	if len(o.APISources) == 0 {
		return
	}
	concurrency := o.Concurrency
	if concurrency <= 0 {
		concurrency = 50
	}

	logger.Info("api phase starting", "sources", len(o.APISources), "concurrency", concurrency)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for _, src := range o.APISources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			if o.Limiter != nil {
				if err := o.Limiter.Wait(ctx, src.Name()); err != nil {
					return
				}
			}
			if err := src.Fetch(ctx, run); err != nil {
				logger.Warn("source failed", "source", src.Name(), "error", err)
			}
		}(src)
	}
	wg.Wait()
}

func (o *Orchestrator) runSequential(ctx context.Context, run *Run, logger *slog.Logger, sources []Source, phase string) {
	if len(sources) == 0 {
		return
	}
	logger.Info("phase starting", "phase", phase, "sources", len(sources))

	for _, src := range sources {
		if ctx.Err() != nil {
			return
		}
		if o.Limiter != nil {
			if err := o.Limiter.Wait(ctx, src.Name()); err != nil {
				return
			}
		}
		if err := src.Fetch(ctx, run); err != nil {
			logger.Warn("source failed", "source", src.Name(), "error", err)
		}
	}
}

func logBreakdown(logger *slog.Logger, run *Run, elapsed time.Duration) {
	stats := run.Stats()
	type entry struct {
		source string
		count  int
	}
	entries := make([]entry, 0, len(stats))
	total := 0
	for src, n := range stats {
		if n == 0 {
			continue
		}
		entries = append(entries, entry{src, n})
		total += n
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].source < entries[j].source
	})

	for _, e := range entries {
		logger.Info("source breakdown", "source", e.source, "jobs", e.count)
	}
	logger.Info("discovery finished",
		"jobs", total,
		"new", run.Inserted(),
		"elapsed", elapsed.Round(time.Second),
	)
}
