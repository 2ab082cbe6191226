package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amishk599/jobhunter/internal/config"
	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

// jsonFeedMinDays widens the freshness cutoff for GitHub-hosted feeds, which
// update daily rather than hourly.
const jsonFeedMinDays = 7

// feedAcceptRoles is deliberately broader than the main role filter: these
// repos are curated new-grad lists, so a generic "engineer" or "analyst"
// title is trustworthy here.
var feedAcceptRoles = []string{
	"software engineer", "swe", "sde", "developer", "engineer",
	"data engineer", "data analyst", "data scientist", "analytics engineer",
	"analytics analyst", "business analyst", "business intelligence",
	"bi analyst", "bi developer", "bi engineer",
	"quantitative analyst", "operations analyst", "product analyst",
	"research analyst", "market analyst", "financial analyst",
	"machine learning", "ml engineer", "ai engineer", "ai researcher",
	"nlp engineer", "computer vision", "applied scientist",
	"cloud engineer", "devops", "platform engineer", "site reliability",
	"infrastructure engineer", "systems engineer",
	"mobile engineer", "ios engineer", "android engineer",
	"security engineer", "qa engineer", "quality engineer",
	"analyst", "scientist",
}

var feedRejectRoles = []string{
	"senior", "staff ", "principal", "director", "manager", "lead ", "intern", "summer",
}

// JSONFeed pulls one community-maintained positions.json feed from GitHub.
// The schema varies between repos (field names, date encodings, link
// shapes), so the polymorphic fields are decoded loosely.
type JSONFeed struct {
	client *httpx.Client
	feed   config.FeedSource
	now    func() time.Time
}

func NewJSONFeed(client *httpx.Client, feed config.FeedSource) *JSONFeed {
	return &JSONFeed{client: client, feed: feed, now: time.Now}
}

func (f *JSONFeed) Name() string { return model.SourceSimplifyFeeds }

type feedEntry struct {
	Role             string `json:"role"`
	Title            string `json:"title"`
	CompanyName      string `json:"companyName"`
	Company          string `json:"company"`
	DatePosted       any    `json:"datePosted"`
	DatePostedAlt    any    `json:"date_posted"`
	Sponsorship      string `json:"sponsorship"`
	ApplicationLinks any    `json:"applicationLinks"`
	ApplicationLink  any    `json:"applicationLink"`
	URL              string `json:"url"`
	ApplyURL         string `json:"apply_url"`
	ApplyURLAlt      string `json:"applyUrl"`
	Locations        any    `json:"locations"`
	Location         any    `json:"location"`
}

func (f *JSONFeed) Fetch(ctx context.Context, run *discovery.Run) error {
	var entries []feedEntry
	if err := f.client.GetJSON(ctx, f.feed.URL, nil, &entries); err != nil {
		return fmt.Errorf("json feed %s: %w", f.feed.Label, err)
	}

	now := f.now().UTC()
	cutoff := filter.FeedCutoff(run.Cutoff, now, jsonFeedMinDays)

	for _, entry := range entries {
		posted, ok := feedDate(entry)
		if !ok || posted.Before(cutoff) {
			continue
		}

		title := entry.Role
		if title == "" {
			title = entry.Title
		}
		if title == "" {
			continue
		}
		tl := strings.ToLower(title)
		if containsAny(tl, feedRejectRoles) || !containsAny(tl, feedAcceptRoles) {
			continue
		}

		loc := feedLocation(entry)
		if !filter.IsUSLocation(loc) {
			continue
		}

		company := entry.CompanyName
		if company == "" {
			company = entry.Company
		}
		if company == "" {
			company = "Unknown"
		}

		run.Add(model.JobRecord{
			Title:       title,
			Company:     company,
			Location:    loc,
			URL:         feedURL(entry),
			Source:      model.SourceSimplifyFeeds,
			Description: fmt.Sprintf("Sourced from %s GitHub feed.", f.feed.Label),
			Date:        posted.Format("2006-01-02"),
			Sponsorship: feedSponsorship(entry.Sponsorship),
		})
	}
	return nil
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// feedDate handles both Unix timestamps (seconds or milliseconds) and ISO
// strings. Feed entries without a readable date are dropped: these repos
// keep stale postings around for months, so "no date" cannot mean "fresh".
func feedDate(entry feedEntry) (time.Time, bool) {
	raw := entry.DatePosted
	if raw == nil {
		raw = entry.DatePostedAlt
	}
	switch v := raw.(type) {
	case float64:
		if v > 0 {
			return filter.ParseEpoch(int64(v)), true
		}
	case string:
		if t, ok := parseTime(v); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func feedURL(entry feedEntry) string {
	for _, links := range []any{entry.ApplicationLinks, entry.ApplicationLink} {
		switch v := links.(type) {
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok && s != "" {
					return s
				}
			}
		case string:
			if v != "" {
				return v
			}
		}
	}
	if entry.URL != "" {
		return entry.URL
	}
	if entry.ApplyURL != "" {
		return entry.ApplyURL
	}
	return entry.ApplyURLAlt
}

// feedLocation joins up to three locations with " | "; missing data defaults
// to United States since these lists are US-focused.
func feedLocation(entry feedEntry) string {
	raw := entry.Locations
	if raw == nil {
		raw = entry.Location
	}
	var locs []string
	switch v := raw.(type) {
	case string:
		locs = []string{v}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				locs = append(locs, s)
			}
		}
	}
	if len(locs) == 0 {
		return "United States"
	}
	if len(locs) > 3 {
		locs = locs[:3]
	}
	return strings.Join(locs, " | ")
}

func feedSponsorship(raw string) string {
	sp := strings.ToLower(raw)
	switch {
	case strings.Contains(sp, "yes"), strings.Contains(sp, "true"), strings.Contains(sp, "sponsor"):
		return model.SponsorshipLikely
	case strings.Contains(sp, "no"), strings.Contains(sp, "false"):
		return model.SponsorshipNo
	}
	return ""
}
