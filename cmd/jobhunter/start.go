package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobhunter/internal/config"
	"github.com/amishk599/jobhunter/internal/scheduler"
	"github.com/amishk599/jobhunter/internal/store"
)

var startWithJobright bool

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the discovery pipeline on an interval",
	Long:  "Starts the daemon: one immediate pass, then a fresh pass every discovery.interval until SIGINT or SIGTERM.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVar(&startWithJobright, "with-jobright", false, "include the Jobright browser source")
}

func runStart(cmd *cobra.Command, args []string) error {
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

	logger.Info("daemon starting",
		"interval", cfg.Discovery.Interval.String(),
		"hours", cfg.Discovery.HoursBack,
		"workday_companies", len(cfg.Workday),
		"roles", len(profile.Preferences.Roles),
	)

	opts := runOptions{
		hours:        cfg.Discovery.HoursBack,
		maxTailor:    20,
		withJobright: startWithJobright,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(func(ctx context.Context) error {
		return runPipeline(ctx, cfg, profile, st, opts, logger)
	}, cfg.Discovery.Interval, logger)

	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
