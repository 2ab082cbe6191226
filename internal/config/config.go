package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the discovery engine. Every section
// has a built-in default so the engine runs with no config file at all; a
// sources.yaml overrides individual sections wholesale.
type Config struct {
	Boards       BoardConfig
	Workday      []WorkdayCompany
	Feeds        FeedConfig
	Queries      QueryConfig
	RateLimit    RateLimitConfig
	Notification NotificationConfig
	Discovery    DiscoveryConfig
}

// BoardConfig lists the public ATS board slugs polled in the API phase.
type BoardConfig struct {
	Greenhouse      []string `yaml:"greenhouse"`
	Lever           []string `yaml:"lever"`
	Ashby           []string `yaml:"ashby"`
	Workable        []string `yaml:"workable"`
	SmartRecruiters []string `yaml:"smartrecruiters"`
	BambooHR        []string `yaml:"bamboohr"`
}

// WorkdayCompany is one Fortune-500 board hit through the POST search API.
// Entries whose URL is not a myworkdayjobs.com host are listed for coverage
// bookkeeping and skipped by the adapter.
type WorkdayCompany struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FeedSource is a GitHub-hosted feed with a short label used in logs.
type FeedSource struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// FeedConfig lists the GitHub JSON and markdown feeds.
type FeedConfig struct {
	JSON     []FeedSource `yaml:"json"`
	Markdown []FeedSource `yaml:"markdown"`
}

// JobrightSearch is one Jobright query: a role string plus the experience
// level filter it is run under.
type JobrightSearch struct {
	Role       string `yaml:"role"`
	Experience string `yaml:"experience"`
}

// QueryConfig holds the keyword matrices for the search-driven sources.
type QueryConfig struct {
	WorkdayKeywords []string         `yaml:"workday_keywords"`
	LinkedInGuest   []string         `yaml:"linkedin_guest"`
	LinkedInBrowser []string         `yaml:"linkedin_browser"`
	Simplify        []string         `yaml:"simplify"`
	Jobright        []JobrightSearch `yaml:"jobright"`
	Adzuna          []string         `yaml:"adzuna"`
	JSearch         []string         `yaml:"jsearch"`
}

// RateLimitConfig controls source-level request pacing.
type RateLimitConfig struct {
	MinDelay        time.Duration            // minimum gap between requests to the same source
	SourceOverrides map[string]time.Duration // per-source overrides, keyed by source name
}

// MinDelayFor returns the configured delay for the given source, falling
// back to MinDelay.
func (r RateLimitConfig) MinDelayFor(source string) time.Duration {
	if d, ok := r.SourceOverrides[source]; ok {
		return d
	}
	return r.MinDelay
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// DiscoveryConfig holds run-level knobs.
type DiscoveryConfig struct {
	HoursBack       float64       // default freshness window
	WorkdayLimit    int           // how many Workday companies to poll per run
	Interval        time.Duration // daemon mode: gap between runs
	APIConcurrency  int           // parallel adapter slots in the API phase
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Boards       BoardConfig        `yaml:"boards"`
	Workday      []WorkdayCompany   `yaml:"workday"`
	Feeds        FeedConfig         `yaml:"feeds"`
	Queries      QueryConfig        `yaml:"queries"`
	RateLimit    rawRateLimitConfig `yaml:"rate_limit"`
	Notification NotificationConfig `yaml:"notification"`
	Discovery    rawDiscoveryConfig `yaml:"discovery"`
}

type rawRateLimitConfig struct {
	MinDelay        string            `yaml:"min_delay"`
	SourceOverrides map[string]string `yaml:"source_overrides"`
}

type rawDiscoveryConfig struct {
	HoursBack      float64 `yaml:"hours_back"`
	WorkdayLimit   int     `yaml:"workday_limit"`
	Interval       string  `yaml:"interval"`
	APIConcurrency int     `yaml:"api_concurrency"`
}

// Load reads and parses the YAML config at path, layering it over the
// built-in defaults. A missing file is not an error: the defaults run the
// full source set on their own.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	mergeBoards(&cfg.Boards, raw.Boards)
	if len(raw.Workday) > 0 {
		cfg.Workday = raw.Workday
	}
	if len(raw.Feeds.JSON) > 0 {
		cfg.Feeds.JSON = raw.Feeds.JSON
	}
	if len(raw.Feeds.Markdown) > 0 {
		cfg.Feeds.Markdown = raw.Feeds.Markdown
	}
	mergeQueries(&cfg.Queries, raw.Queries)

	if raw.RateLimit.MinDelay != "" {
		d, err := time.ParseDuration(raw.RateLimit.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.min_delay %q: %w", raw.RateLimit.MinDelay, err)
		}
		cfg.RateLimit.MinDelay = d
	}
	for source, rawDelay := range raw.RateLimit.SourceOverrides {
		d, err := time.ParseDuration(rawDelay)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.source_overrides[%q]: %w", source, err)
		}
		cfg.RateLimit.SourceOverrides[source] = d
	}

	if raw.Notification.Type != "" {
		cfg.Notification = raw.Notification
	}

	if raw.Discovery.HoursBack > 0 {
		cfg.Discovery.HoursBack = raw.Discovery.HoursBack
	}
	if raw.Discovery.WorkdayLimit > 0 {
		cfg.Discovery.WorkdayLimit = raw.Discovery.WorkdayLimit
	}
	if raw.Discovery.APIConcurrency > 0 {
		cfg.Discovery.APIConcurrency = raw.Discovery.APIConcurrency
	}
	if raw.Discovery.Interval != "" {
		d, err := time.ParseDuration(raw.Discovery.Interval)
		if err != nil {
			return nil, fmt.Errorf("parse discovery.interval %q: %w", raw.Discovery.Interval, err)
		}
		cfg.Discovery.Interval = d
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func mergeBoards(dst *BoardConfig, src BoardConfig) {
	if len(src.Greenhouse) > 0 {
		dst.Greenhouse = src.Greenhouse
	}
	if len(src.Lever) > 0 {
		dst.Lever = src.Lever
	}
	if len(src.Ashby) > 0 {
		dst.Ashby = src.Ashby
	}
	if len(src.Workable) > 0 {
		dst.Workable = src.Workable
	}
	if len(src.SmartRecruiters) > 0 {
		dst.SmartRecruiters = src.SmartRecruiters
	}
	if len(src.BambooHR) > 0 {
		dst.BambooHR = src.BambooHR
	}
}

func mergeQueries(dst *QueryConfig, src QueryConfig) {
	if len(src.WorkdayKeywords) > 0 {
		dst.WorkdayKeywords = src.WorkdayKeywords
	}
	if len(src.LinkedInGuest) > 0 {
		dst.LinkedInGuest = src.LinkedInGuest
	}
	if len(src.LinkedInBrowser) > 0 {
		dst.LinkedInBrowser = src.LinkedInBrowser
	}
	if len(src.Simplify) > 0 {
		dst.Simplify = src.Simplify
	}
	if len(src.Jobright) > 0 {
		dst.Jobright = src.Jobright
	}
	if len(src.Adzuna) > 0 {
		dst.Adzuna = src.Adzuna
	}
	if len(src.JSearch) > 0 {
		dst.JSearch = src.JSearch
	}
}

func validate(cfg *Config) error {
	total := len(cfg.Boards.Greenhouse) + len(cfg.Boards.Lever) + len(cfg.Boards.Ashby) +
		len(cfg.Boards.Workable) + len(cfg.Boards.SmartRecruiters) + len(cfg.Boards.BambooHR) +
		len(cfg.Workday) + len(cfg.Feeds.JSON) + len(cfg.Feeds.Markdown)
	if total == 0 {
		return fmt.Errorf("no sources configured")
	}
	if cfg.Discovery.WorkdayLimit < 0 {
		return fmt.Errorf("discovery.workday_limit must not be negative, got %d", cfg.Discovery.WorkdayLimit)
	}
	if cfg.Discovery.Interval < 0 {
		return fmt.Errorf("discovery.interval must not be negative, got %v", cfg.Discovery.Interval)
	}
	if cfg.Notification.Type == "slack" {
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		const prefix = "https://hooks.slack.com/"
		if len(cfg.Notification.WebhookURL) < len(prefix) || cfg.Notification.WebhookURL[:len(prefix)] != prefix {
			return fmt.Errorf("notification.webhook_url must start with %s", prefix)
		}
	}
	return nil
}
