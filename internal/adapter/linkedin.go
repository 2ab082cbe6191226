package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

const (
	linkedInGuestBase = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"
	linkedInPageSize  = 25
	linkedInStartCap  = 200
	linkedInPagePause = 800 * time.Millisecond
)

// LinkedInGuest walks the public guest JSON endpoint, which serves HTML card
// fragments at 25 jobs per page with no login. One instance runs the whole
// query matrix, deduplicating by job URL across queries before records reach
// the run-level dedup.
type LinkedInGuest struct {
	client  *httpx.Client
	queries []string
	hours   float64
	pause   time.Duration
}

func NewLinkedInGuest(client *httpx.Client, queries []string, hours float64) *LinkedInGuest {
	return &LinkedInGuest{client: client, queries: queries, hours: hours, pause: linkedInPagePause}
}

func (l *LinkedInGuest) Name() string { return model.SourceLinkedIn }

// TPRWindow maps the freshness window onto LinkedIn's f_TPR buckets.
func TPRWindow(hours float64) string {
	switch {
	case hours <= 1:
		return "r3600"
	case hours <= 6:
		return "r21600"
	case hours <= 24:
		return "r86400"
	case hours <= 72:
		return "r259200"
	default:
		return "r604800"
	}
}

func (l *LinkedInGuest) Fetch(ctx context.Context, run *discovery.Run) error {
	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Referer":         "https://www.linkedin.com/",
	}
	tpr := TPRWindow(l.hours)
	seen := make(map[string]struct{})

	for _, query := range l.queries {
		if err := l.runQuery(ctx, run, query, tpr, headers, seen); err != nil {
			if ctx.Err() != nil {
				return err
			}
			// One query failing (often a transient block) doesn't doom the rest.
			continue
		}
	}
	return nil
}

func (l *LinkedInGuest) runQuery(ctx context.Context, run *discovery.Run, query, tpr string, headers map[string]string, seen map[string]struct{}) error {
	for start := 0; start < linkedInStartCap; start += linkedInPageSize {
		endpoint := fmt.Sprintf(
			"%s?keywords=%s&location=United%%20States&f_E=1%%2C2&f_TPR=%s&sortBy=DD&start=%d",
			linkedInGuestBase, url.QueryEscape(query), tpr, start,
		)
		resp, err := l.client.Do(ctx, http.MethodGet, endpoint, headers, nil)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK || len(bytes.TrimSpace(resp.Body)) == 0 {
			return nil
		}

		added, err := l.parsePage(run, resp.Body, query, seen)
		if err != nil {
			return err
		}
		if added == 0 && start > 0 {
			return nil // no new jobs on this page, done paginating this query
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.pause):
		}
	}
	return nil
}

func (l *LinkedInGuest) parsePage(run *discovery.Run, body []byte, query string, seen map[string]struct{}) (int, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	cards := doc.Find("div[class*='base-card']")
	if cards.Length() == 0 {
		// Older response format wraps each job in a bare <li>.
		cards = doc.Find("li")
	}

	added := 0
	cards.Each(func(_ int, card *goquery.Selection) {
		title := cardText(card, "h3[class*='base-search-card__title']", "h3", "h4")
		if len(title) < 3 {
			return
		}

		// A bare h4 can match the location span; only class-based lookups
		// are trusted for the company.
		company := cardText(card, "h4[class*='base-search-card__subtitle']", "a[class*='hidden-nested-link']")
		if company == "" {
			company = "Unknown"
		}

		link := card.Find("a[class*='base-card__full-link']")
		if link.Length() == 0 {
			link = card.Find("a[href*='/jobs/view/']")
		}
		href, _ := link.First().Attr("href")
		jobURL, _, _ := strings.Cut(href, "?") // strip tracking params
		if jobURL == "" {
			return
		}
		if _, dup := seen[jobURL]; dup {
			return
		}
		seen[jobURL] = struct{}{}

		location := cardText(card, "span[class*='job-search-card__location']")
		if location == "" {
			location = "United States"
		}

		dateStr := "today"
		if t := card.Find("time").First(); t.Length() > 0 {
			if dt, ok := t.Attr("datetime"); ok && dt != "" {
				dateStr = dt
			} else if txt := strings.TrimSpace(t.Text()); txt != "" {
				dateStr = txt
			}
		}

		if !run.Filter.MatchTitle(title) {
			return
		}

		if run.Add(model.JobRecord{
			Title:       title,
			Company:     company,
			Location:    location,
			URL:         jobURL,
			Source:      model.SourceLinkedIn,
			Description: "LinkedIn API | " + query,
			Date:        dateStr,
		}) {
			added++
		}
	})
	return added, nil
}

// cardText returns the first non-empty trimmed text among the selectors.
func cardText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if s := strings.TrimSpace(card.Find(sel).First().Text()); s != "" {
			return s
		}
	}
	return ""
}
