package browser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/amishk599/jobhunter/internal/adapter"
	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/model"
)

// linkedInCardJS runs inside one job card (this == the <li>) and pulls out
// everything we need in a single round trip. The selector chains cover both
// the logged-in card markup and the older public markup LinkedIn still
// serves on some pages.
const linkedInCardJS = `() => {
	const pick = (sels) => {
		for (const sel of sels) {
			const el = this.querySelector(sel);
			if (el && el.innerText && el.innerText.trim()) return el.innerText.trim();
		}
		return '';
	};
	const link = this.querySelector("a[href*='/jobs/view/']") || this.querySelector("a[href*='/jobs/collections/']");
	const time = this.querySelector('time');
	return {
		href: link ? (link.getAttribute('href') || '') : '',
		title: pick(["h3.base-search-card__title", "a[href*='/jobs/view/'] span[aria-hidden='true']", ".job-card-list__title", "h3", "h4"]),
		company: pick([".job-card-container__primary-description", ".job-card-container__company-name", ".artdeco-entity-lockup__subtitle", "h4.base-search-card__subtitle", ".job-search-card__company-name"]),
		location: pick(["span.job-search-card__location", ".job-card-container__metadata-wrapper"]),
		date: time ? (time.getAttribute('datetime') || time.innerText.trim()) : '',
	};
}`

var linkedInBlockMarkers = []string{"authwall", "checkpoint", "uas/login", "signup"}

// LinkedIn searches the logged-in job board through the shared Chrome
// session. It reaches cards the guest endpoint never serves, at the cost of
// needing a real login in the browser window.
type LinkedIn struct {
	sess    *Session
	queries []string
	hours   float64
	logger  *slog.Logger
}

func NewLinkedIn(sess *Session, queries []string, hours float64, logger *slog.Logger) *LinkedIn {
	if logger == nil {
		logger = slog.Default()
	}
	return &LinkedIn{sess: sess, queries: queries, hours: hours, logger: logger}
}

func (l *LinkedIn) Name() string { return model.SourceLinkedIn }

func (l *LinkedIn) Fetch(ctx context.Context, run *discovery.Run) error {
	page, err := l.sess.NewPage()
	if err != nil {
		return err
	}
	defer page.Close()

	if !l.login(ctx, page) {
		l.logger.Warn("linkedin login not detected, skipping browser scrape")
		return nil
	}

	tpr := adapter.TPRWindow(l.hours)
	seen := make(map[string]struct{})
	total := 0
	emptyQueries := 0

	for _, query := range l.queries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		added, stop := l.runQuery(ctx, page, run, query, tpr, seen)
		total += added
		if stop {
			break
		}

		// Four dry queries in a row means the window is saturated.
		if added == 0 {
			emptyQueries++
			if emptyQueries >= 4 {
				l.logger.Info("linkedin browser saturated, stopping early", "after", query)
				break
			}
		} else {
			emptyQueries = 0
		}
		sleepRand(ctx, 2*time.Second, 3500*time.Millisecond)
	}

	l.logger.Info("linkedin browser finished", "new", total)
	return nil
}

// runQuery pages through one keyword search. stop reports that the session
// expired mid-run and the whole scrape should end.
func (l *LinkedIn) runQuery(ctx context.Context, page *rod.Page, run *discovery.Run, query, tpr string, seen map[string]struct{}) (added int, stop bool) {
	for _, start := range []int{0, 25, 50, 75, 100} {
		if ctx.Err() != nil {
			return added, true
		}
		searchURL := fmt.Sprintf(
			"https://www.linkedin.com/jobs/search/?keywords=%s&location=United%%20States&f_E=1%%2C2&f_TPR=%s&sortBy=DD&start=%d",
			url.QueryEscape(query), tpr, start,
		)
		if err := navigate(page, searchURL); err != nil {
			continue // timeout, try the next offset
		}
		if start == 0 {
			sleepRand(ctx, 4*time.Second, 6*time.Second)
		} else {
			sleepRand(ctx, 2500*time.Millisecond, 4*time.Second)
		}

		// Soft block: LinkedIn bounced this URL to a wall but the session may
		// still be fine, so skip the offset rather than the run.
		if cur := pageURL(page); urlContainsAny(cur, linkedInBlockMarkers) {
			l.logger.Warn("linkedin soft block", "query", query, "start", start)
			pause(ctx, 3*time.Second)
			continue
		}

		// A login form in the DOM means the session itself expired.
		if has, _, err := page.Has("#session_key"); err == nil && has {
			l.logger.Warn("linkedin session expired mid-run")
			return added, true
		}

		// Scroll in steps so the lazy list actually materializes its cards.
		for i := 0; i < 8; i++ {
			scrollBy(page, 600)
			pause(ctx, 500*time.Millisecond)
			if els, err := page.Elements("li[data-occludable-job-id]"); err == nil && len(els) >= 20 {
				break
			}
		}
		scrollToBottom(page)
		pause(ctx, time.Second)

		cards, err := page.Elements("li[data-occludable-job-id]")
		if err != nil || len(cards) == 0 {
			// Older markup drops the data attribute.
			cards, err = page.Elements(".job-search-card, .jobs-search-results__list-item, .scaffold-layout__list-item")
			if err != nil {
				continue
			}
		}
		if len(cards) == 0 {
			break // truly empty page, stop paginating this query
		}

		pageNew := 0
		for _, card := range cards {
			res, err := card.Eval(linkedInCardJS)
			if err != nil {
				continue
			}
			v := res.Value
			jobURL := cleanJobURL(v.Get("href").Str())
			if jobURL == "" {
				continue
			}
			if _, dup := seen[jobURL]; dup {
				continue
			}
			seen[jobURL] = struct{}{}

			title := strings.TrimSpace(v.Get("title").Str())
			if len(title) < 3 || !run.Filter.MatchTitle(title) {
				continue
			}
			company := strings.TrimSpace(v.Get("company").Str())
			if company == "" {
				company = "Unknown"
			}
			location := strings.TrimSpace(v.Get("location").Str())
			if location == "" {
				location = "United States"
			}
			dateStr := strings.TrimSpace(v.Get("date").Str())
			if dateStr == "" {
				dateStr = "today"
			}

			if run.Add(model.JobRecord{
				Title:       title,
				Company:     company,
				Location:    location,
				URL:         jobURL,
				Source:      model.SourceLinkedIn,
				Description: "LinkedIn browser | " + query,
				Date:        dateStr,
			}) {
				added++
				pageNew++
			}
		}
		l.logger.Debug("linkedin browser page", "query", query, "start", start, "new", pageNew)

		if pageNew == 0 && start > 0 {
			break
		}
		sleepRand(ctx, 1500*time.Millisecond, 3*time.Second)
	}
	return added, false
}

// login confirms an active LinkedIn session, opening the login page and
// waiting for the user when there is none.
func (l *LinkedIn) login(ctx context.Context, page *rod.Page) bool {
	if err := navigate(page, "https://www.linkedin.com/feed/"); err != nil {
		l.logger.Warn("linkedin feed unreachable", "error", err)
		return false
	}
	pause(ctx, 4*time.Second)

	u := pageURL(page)
	if strings.Contains(u, "feed") || strings.Contains(u, "mynetwork") {
		return true
	}

	l.logger.Info("linkedin login required, complete it in the browser window")
	_ = navigate(page, "https://www.linkedin.com/login")
	return waitLogin(ctx, page, func(u string) bool {
		return strings.Contains(u, "feed")
	})
}

// cleanJobURL strips tracking params and resolves relative card links.
func cleanJobURL(raw string) string {
	u, _, _ := strings.Cut(raw, "?")
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "/") {
		u = "https://www.linkedin.com" + u
	}
	return u
}
