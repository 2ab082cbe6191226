package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobhunter/internal/adapter"
	"github.com/amishk599/jobhunter/internal/browser"
	"github.com/amishk599/jobhunter/internal/config"
	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
	"github.com/amishk599/jobhunter/internal/store"
	"github.com/amishk599/jobhunter/internal/tailor"
)

var (
	runHours         float64
	runSkipApply     bool
	runSkipDiscovery bool
	runMaxTailor     int
	runSingleJob     string
	runWithJobright  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "One full pass: discover, dedupe, persist, tailor",
	Long:  "Runs discovery across all sources, inserts new jobs incrementally, then tailors up to --max-tailor pending applications.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	// The root command defaults to `run`, so it carries the same flags.
	addRunFlags(runCmd)
	addRunFlags(rootCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&runHours, "hours", 0, "freshness window in hours (default: discovery.hours_back, 168)")
	cmd.Flags().BoolVar(&runSkipApply, "skip-apply", false, "generate documents but do not surface the submission queue")
	cmd.Flags().BoolVar(&runSkipDiscovery, "skip-discovery", false, "skip discovery and only process the existing queue")
	cmd.Flags().IntVar(&runMaxTailor, "max-tailor", 20, "max applications to tailor per run")
	cmd.Flags().StringVar(&runSingleJob, "single-job", "", "tailor a single job by its database id")
	cmd.Flags().BoolVar(&runWithJobright, "with-jobright", false, "include the Jobright browser source")
}

// runOptions carries the per-run knobs shared by `run` and the daemon.
type runOptions struct {
	hours         float64
	skipDiscovery bool
	skipApply     bool
	maxTailor     int
	singleJob     string
	withJobright  bool
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		logger.Error("failed to load user profile", "error", err)
		os.Exit(1)
	}

	st, err := store.New(config.DBPath())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	opts := runOptions{
		hours:         runHours,
		skipDiscovery: runSkipDiscovery,
		skipApply:     runSkipApply,
		maxTailor:     runMaxTailor,
		singleJob:     runSingleJob,
		withJobright:  runWithJobright,
	}
	if opts.hours <= 0 {
		opts.hours = cfg.Discovery.HoursBack
	}

	logger.Info("job hunter starting",
		"hours", opts.hours,
		"max_tailor", opts.maxTailor,
		"apply", !opts.skipApply,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runPipeline(ctx, cfg, profile, st, opts, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
	return nil
}

// runPipeline is one full pass: discovery (with incremental persistence),
// notification of first-seen jobs, then tailoring of the pending queue.
func runPipeline(ctx context.Context, cfg *config.Config, profile *config.Profile, st *store.Store, opts runOptions, logger *slog.Logger) error {
	runner := &tailor.Runner{Tailor: tailor.NewNop(), Store: st, Logger: logger}

	// Single-job mode, used when retrying one posting by hand.
	if opts.singleJob != "" {
		app, err := st.GetJobByID(opts.singleJob)
		if err != nil {
			return err
		}
		if app == nil {
			logger.Error("job not found", "id", opts.singleJob)
			return nil
		}
		ready := runner.ProcessBatch(ctx, []model.Application{*app})
		reportReady(ready, opts.skipApply, logger)
		return nil
	}

	if opts.skipDiscovery {
		logger.Info("discovery skipped, processing existing queue")
	} else {
		f := filter.NewEntryLevelFilter(profile.Preferences.Roles)
		run := discovery.NewRun(time.Now(), opts.hours, f, st, logger)

		// Chrome starts lazily on the first browser source; the profile dir
		// keeps LinkedIn and Simplify logins across runs.
		sess := browser.NewSession("browser_profile", logger)
		defer sess.Close()

		client := httpx.NewClient(nil, logger)
		orch := buildOrchestrator(cfg, client, sess, opts, logger)
		orch.Run(ctx, run)

		if len(run.Records()) == 0 {
			logger.Info("no jobs found this run")
			return ctx.Err()
		}
		logger.Info("synced to database", "new", run.Inserted())

		if fresh := run.Fresh(); len(fresh) > 0 {
			n := setupNotifier(cfg, logger)
			if err := n.Notify(fresh); err != nil {
				logger.Warn("notification failed", "error", err)
			}
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	pending, err := st.GetNewApplications()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		logger.Info("no untailored applications, done")
		return nil
	}

	batch := pending
	if opts.maxTailor >= 0 && len(batch) > opts.maxTailor {
		batch = batch[:opts.maxTailor]
	}
	logger.Info("tailoring batch", "batch", len(batch), "pending", len(pending))

	ready := runner.ProcessBatch(ctx, batch)
	reportReady(ready, opts.skipApply, logger)
	return nil
}

func reportReady(ready []model.Application, skipApply bool, logger *slog.Logger) {
	if len(ready) == 0 {
		return
	}
	if skipApply {
		logger.Info("documents generated, submission queue not surfaced", "count", len(ready))
		return
	}
	// Submission stays manual; surface the queue so the user can take over
	// in the browser (or in `jobhunter review`).
	for _, app := range ready {
		logger.Info("ready for manual submission", "company", app.Company, "title", app.Title, "url", app.URL)
	}
}

// buildOrchestrator wires every configured source into its phase. Sources
// whose credentials are missing are skipped, never fatal.
func buildOrchestrator(cfg *config.Config, client *httpx.Client, sess *browser.Session, opts runOptions, logger *slog.Logger) *discovery.Orchestrator {
	var api []discovery.Source
	for _, board := range cfg.Boards.Greenhouse {
		api = append(api, adapter.NewGreenhouse(client, board))
	}
	for _, board := range cfg.Boards.Lever {
		api = append(api, adapter.NewLever(client, board))
	}
	for _, board := range cfg.Boards.Ashby {
		api = append(api, adapter.NewAshby(client, board))
	}
	for _, board := range cfg.Boards.Workable {
		api = append(api, adapter.NewWorkable(client, board))
	}
	for _, board := range cfg.Boards.SmartRecruiters {
		api = append(api, adapter.NewSmartRecruiters(client, board))
	}
	for _, board := range cfg.Boards.BambooHR {
		api = append(api, adapter.NewBambooHR(client, board))
	}
	api = append(api, adapter.NewRemoteOK(client))
	for _, feed := range cfg.Feeds.JSON {
		api = append(api, adapter.NewJSONFeed(client, feed))
	}
	for _, feed := range cfg.Feeds.Markdown {
		api = append(api, adapter.NewMarkdownFeed(client, feed))
	}
	api = append(api, adapter.NewLinkedInGuest(client, cfg.Queries.LinkedInGuest, opts.hours))

	// Env-gated sources are skipped silently when their credentials are absent.
	if appID, appKey, ok := config.AdzunaCredentials(); ok {
		for _, role := range cfg.Queries.Adzuna {
			api = append(api, adapter.NewAdzuna(client, appID, appKey, role))
		}
	}
	if key, ok := config.RapidAPIKey(); ok {
		api = append(api, adapter.NewJSearch(client, key, cfg.Queries.JSearch))
	}

	companies := cfg.Workday
	if cfg.Discovery.WorkdayLimit > 0 && len(companies) > cfg.Discovery.WorkdayLimit {
		companies = companies[:cfg.Discovery.WorkdayLimit]
	}
	// Workday tenants rate-limit aggressively; each company gets its own
	// short-timeout client instead of the shared pool.
	var workday []discovery.Source
	for _, company := range companies {
		wd := httpx.NewClientWithTimeout(nil, 15*time.Second, logger)
		workday = append(workday, adapter.NewWorkday(wd, company, cfg.Queries.WorkdayKeywords))
	}

	browserSources := []discovery.Source{
		browser.NewSimplify(sess, cfg.Queries.Simplify, logger),
		browser.NewLinkedIn(sess, cfg.Queries.LinkedInBrowser, opts.hours, logger),
	}
	if opts.withJobright {
		browserSources = append(browserSources, browser.NewJobright(sess, cfg.Queries.Jobright, logger))
	}

	return &discovery.Orchestrator{
		APISources:     api,
		WorkdaySources: workday,
		BrowserSources: browserSources,
		Limiter:        discovery.NewSourceRateLimiter(cfg.RateLimit),
		Concurrency:    cfg.Discovery.APIConcurrency,
		Logger:         logger,
	}
}
