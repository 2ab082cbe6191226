package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobhunter/internal/config"
	"github.com/amishk599/jobhunter/internal/model"
	"github.com/amishk599/jobhunter/internal/notifier"
)

var (
	cfgPath     string
	profilePath string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "jobhunter",
	Short: "Entry-level job discovery across twenty sources",
	Long:  "JobHunter sweeps ATS boards, aggregator APIs, GitHub feeds and login-gated job boards, dedupes what it finds and queues new postings for tailoring.",
	// Default to `run` so a bare `jobhunter` in a cron line does a full
	// daily pass.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to sources config (default: JOBHUNTER_CONFIG env var or ./sources.yaml)")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "user_profile.json", "path to the user profile")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBHUNTER_CONFIG env var > "./sources.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBHUNTER_CONFIG"); env != "" {
			path = env
		} else {
			path = "sources.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		httpClient := &http.Client{Timeout: 30 * time.Second}
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}
