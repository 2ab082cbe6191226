package adapter

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/amishk599/jobhunter/internal/config"
	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

// markdownFeedMinDays is the freshness floor for markdown tables, which are
// edited at most daily.
const markdownFeedMinDays = 2

var (
	hrefRe     = regexp.MustCompile(`href=['"]?([^'" >]+)`)
	mdLinkRe   = regexp.MustCompile(`\]\((https?://.*?)\)`)
	dateHintRe = regexp.MustCompile(`(?i)jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec|\d+[dh]|today|new`)
)

var closedMarkers = []string{"\U0001F512", ":lock:", "[closed]", "filled"}

// MarkdownFeed scrapes one community README job table from GitHub. Rows are
// pipe-separated markdown table lines with a link cell, a date cell, and
// free-text company/title/location cells. These lists are fully curated
// new-grad tables, so no role filter is applied.
type MarkdownFeed struct {
	client *httpx.Client
	feed   config.FeedSource
	now    func() time.Time
}

func NewMarkdownFeed(client *httpx.Client, feed config.FeedSource) *MarkdownFeed {
	return &MarkdownFeed{client: client, feed: feed, now: time.Now}
}

func (f *MarkdownFeed) Name() string { return model.SourceGitHubLists }

func (f *MarkdownFeed) Fetch(ctx context.Context, run *discovery.Run) error {
	resp, err := f.client.Do(ctx, http.MethodGet, f.feed.URL, nil, nil)
	if err != nil {
		return fmt.Errorf("markdown feed %s: %w", f.feed.Label, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("markdown feed %s: status %d", f.feed.Label, resp.StatusCode)
	}

	now := f.now().UTC()
	cutoff := filter.FeedCutoff(run.Cutoff, now, markdownFeedMinDays)

	for _, line := range strings.Split(string(resp.Body), "\n") {
		f.admitRow(run, line, cutoff, now)
	}
	return nil
}

func (f *MarkdownFeed) admitRow(run *discovery.Run, line string, cutoff, now time.Time) {
	parts := strings.Split(line, "|")
	if len(parts) < 4 {
		return
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var jobURL string
	for _, p := range parts {
		if m := hrefRe.FindStringSubmatch(p); m != nil {
			jobURL = m[1]
			break
		}
		if m := mdLinkRe.FindStringSubmatch(p); m != nil {
			jobURL = m[1]
			break
		}
	}
	if jobURL == "" {
		return
	}

	// The date cell is usually last; scan from the right.
	var dateStr string
	for i := len(parts) - 1; i >= 0; i-- {
		if dateHintRe.MatchString(parts[i]) {
			dateStr = parts[i]
			break
		}
	}
	// Rows without a parseable date tend to be stale 2023/2024 entries.
	if dateStr == "" {
		return
	}
	posted, ok := filter.ParseDate(dateStr, now)
	if !ok || posted.Before(cutoff) {
		return
	}

	var textCols []string
	for _, p := range parts[1 : len(parts)-1] {
		txt := stripHTML(p)
		txt = strings.NewReplacer("**", "", "__", "").Replace(txt)
		txt = strings.TrimSpace(txt)
		if len(txt) > 1 && !strings.Contains(strings.ToLower(txt), "http") {
			textCols = append(textCols, txt)
		}
	}
	if len(textCols) == 0 {
		return
	}

	company := textCols[0]
	title := "Software Engineer"
	if len(textCols) > 1 {
		title = textCols[1]
	}
	var location string
	if len(textCols) > 2 {
		location = textCols[2]
	}
	if len(title) < 3 {
		title = "Software Engineer (New Grad)"
	}

	if location != "" && !filter.IsUSLocation(location) {
		return
	}
	for _, marker := range closedMarkers {
		if strings.Contains(line, marker) {
			return
		}
	}

	if location == "" {
		location = "US"
	}

	run.Add(model.JobRecord{
		Title:    title,
		Company:  company,
		Location: location,
		URL:      jobURL,
		Source:   model.SourceGitHubLists,
		Description: fmt.Sprintf("Source: %s | Company: %s | Role: %s | Location: %s | Posted: %s",
			f.feed.Label, company, title, location, dateStr),
		Date:        dateStr,
		Sponsorship: filter.ExtractSponsorship(line),
	})
}
