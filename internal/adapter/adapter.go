// Package adapter contains one fetcher per job source. Every fetcher
// implements discovery.Source: it pulls a board or search feed, applies the
// role, location, and freshness filters, and pushes survivors into the run.
package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const maxDescription = 2000

// stripHTML flattens an HTML fragment to whitespace-normalized text.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// titleFromSlug turns a board slug like "modern-health" into "Modern Health".
// Used as the company name of last resort.
func titleFromSlug(slug string) string {
	slug = strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	words := strings.Fields(slug)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// parseTime handles the timestamp formats the ATS APIs emit: RFC 3339 with
// or without offset, and bare dates.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// datePrefix reduces an ISO timestamp to its date part for display.
func datePrefix(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}
