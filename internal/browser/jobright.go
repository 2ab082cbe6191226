package browser

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"

	"github.com/amishk599/jobhunter/internal/config"
	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/model"
)

// jobrightCardsJS extracts every job card in one evaluation. Jobright's
// class names are generated, so matching leans on attribute substrings and
// on the text itself; innerText is carried back for the title fallback.
const jobrightCardsJS = `() => {
	const cards = Array.from(document.querySelectorAll('a[href*="/jobs/info/"]'));
	return cards.map(card => {
		const h = card.querySelector('h2, h3');
		const companyEl = card.querySelector('[class*="company"]');
		const timeEl = card.querySelector('[class*="time"]');
		const metaEls = Array.from(card.querySelectorAll('[class*="job-metadata-item"]'));
		const loc = metaEls.map(e => e.innerText ? e.innerText.trim() : '').find(t => t.includes('United States') || t.includes('Remote') || /,\s*[A-Z]{2}$/.test(t)) || 'United States';
		const salary = Array.from(card.querySelectorAll('*')).map(e => e.innerText || '').find(t => t.includes('$') && (t.includes('/yr') || t.includes('K/yr') || t.includes('/year'))) || '';
		return {
			href: card.getAttribute('href') || '',
			title: h && h.innerText ? h.innerText.trim() : '',
			company: companyEl && companyEl.innerText ? companyEl.innerText.trim().split('\n')[0] : 'Unknown',
			location: loc,
			date: timeEl && timeEl.innerText ? timeEl.innerText.trim() : 'today',
			salary: salary.trim().substring(0, 80),
			innerText: card.innerText ? card.innerText.substring(0, 400) : '',
		};
	});
}`

const jobrightCardCountJS = `() => document.querySelectorAll("[data-testid='job-card'], .job-card, article").length`

// jobrightLoadMoreJS clicks the pagination button if one is on the page and
// reports whether it did.
const jobrightLoadMoreJS = `() => {
	const byTest = document.querySelector("[data-testid='load-more']");
	if (byTest) { byTest.click(); return true; }
	const wanted = ['load more', 'show more', 'see more jobs'];
	for (const b of document.querySelectorAll('button')) {
		const t = (b.innerText || '').trim().toLowerCase();
		if (wanted.some(w => t.includes(w))) { b.click(); return true; }
	}
	return false;
}`

var jobrightTimestampWords = map[string]struct{}{
	"ago": {}, "today": {}, "yesterday": {}, "hour": {}, "hours": {},
	"day": {}, "days": {}, "week": {}, "month": {}, "minute": {},
}

// Jobright runs targeted searches on jobright.ai. Search works without a
// login (only recommendations are gated), so this source never waits for
// one.
type Jobright struct {
	sess     *Session
	searches []config.JobrightSearch
	logger   *slog.Logger
}

func NewJobright(sess *Session, searches []config.JobrightSearch, logger *slog.Logger) *Jobright {
	if logger == nil {
		logger = slog.Default()
	}
	return &Jobright{sess: sess, searches: searches, logger: logger}
}

func (j *Jobright) Name() string { return model.SourceJobright }

func (j *Jobright) Fetch(ctx context.Context, run *discovery.Run) error {
	page, err := j.sess.NewPage()
	if err != nil {
		return err
	}
	defer page.Close()

	if err := navigate(page, "https://jobright.ai/"); err != nil {
		return err
	}
	pause(ctx, 3*time.Second)

	seen := make(map[string]struct{})
	total := 0
	for _, search := range j.searches {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		params := url.Values{
			"value":           {search.Role},
			"experienceLevel": {search.Experience},
			"country":         {"US"},
			"daysAgo":         {"1"},
		}
		if err := navigate(page, "https://jobright.ai/jobs/search?"+params.Encode()); err != nil {
			continue
		}
		sleepRand(ctx, 4*time.Second, 6*time.Second)

		j.loadMore(ctx, page)

		added := j.processPage(ctx, page, run, seen)
		total += added
		j.logger.Debug("jobright search", "role", search.Role, "new", added)
		sleepRand(ctx, 1500*time.Millisecond, 3*time.Second)
	}

	j.logger.Info("jobright finished", "new", total)
	return nil
}

// loadMore clicks through the pagination button until it disappears or
// stops producing cards, capped at five rounds.
func (j *Jobright) loadMore(ctx context.Context, page *rod.Page) {
	for attempt := 0; attempt < 5; attempt++ {
		for i := 0; i < 3; i++ {
			scrollToBottom(page)
			pause(ctx, time.Second)
		}
		before := jobrightCardCount(page)

		res, err := page.Eval(jobrightLoadMoreJS)
		if err != nil || !res.Value.Bool() {
			return
		}
		pause(ctx, 2500*time.Millisecond)
		if jobrightCardCount(page) <= before {
			return
		}
	}
}

func jobrightCardCount(page *rod.Page) int {
	res, err := page.Eval(jobrightCardCountJS)
	if err != nil {
		return 0
	}
	return res.Value.Int()
}

func (j *Jobright) processPage(ctx context.Context, page *rod.Page, run *discovery.Run, seen map[string]struct{}) int {
	for i := 0; i < 4; i++ {
		scrollToBottom(page)
		pause(ctx, 1200*time.Millisecond)
	}

	res, err := page.Eval(jobrightCardsJS)
	if err != nil {
		j.logger.Warn("jobright extraction failed", "error", err)
		return 0
	}

	added := 0
	for _, item := range res.Value.Arr() {
		if j.addCard(run, item, seen) {
			added++
		}
	}
	return added
}

// addCard converts one extracted card into a record. Returns true when the
// run accepted it as new.
func (j *Jobright) addCard(run *discovery.Run, item gson.JSON, seen map[string]struct{}) bool {
	href := item.Get("href").Str()
	if href == "" {
		return false
	}
	fullURL := href
	if strings.HasPrefix(href, "/") {
		fullURL = "https://jobright.ai" + href
	}
	// Dedup on the bare URL but keep the full one: the query string
	// carries the token Jobright needs to resolve the posting.
	baseURL, _, _ := strings.Cut(fullURL, "?")
	if _, dup := seen[baseURL]; dup {
		return false
	}
	seen[baseURL] = struct{}{}

	inner := item.Get("innerText").Str()
	title := jobrightTitle(item.Get("title").Str(), inner)
	if len(title) < 3 {
		return false
	}
	location := strings.TrimSpace(item.Get("location").Str())
	if location == "" {
		location = "United States"
	}
	if !run.Filter.MatchTitle(title) || !filter.IsUSLocation(location) {
		return false
	}

	company := strings.TrimSpace(item.Get("company").Str())
	if company == "" {
		company = "Unknown"
	}
	dateStr := strings.TrimSpace(item.Get("date").Str())
	if dateStr == "" {
		dateStr = "today"
	}

	return run.Add(model.JobRecord{
		Title:       title,
		Company:     company,
		Location:    location,
		URL:         fullURL,
		Source:      model.SourceJobright,
		Description: "JobRight AI: " + title + " at " + company + " | " + location,
		Date:        dateStr,
		Salary:      strings.TrimSpace(item.Get("salary").Str()),
		Sponsorship: filter.ExtractSponsorship(inner),
	})
}

// jobrightTitle falls back to scanning the card text when the heading is
// missing or turned out to be the posting timestamp. Returns the original
// title when no plausible line exists; short leftovers are rejected by the
// caller.
func jobrightTitle(title, innerText string) string {
	title = strings.TrimSpace(title)

	suspect := len(title) < 3
	if !suspect {
		lower := strings.ToLower(title)
		for _, w := range []string{"ago", "today", "hour", "day", "week", "month"} {
			if strings.Contains(lower, w) {
				suspect = true
				break
			}
		}
	}
	if !suspect {
		return title
	}

	for _, line := range strings.Split(innerText, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 5 || strings.HasPrefix(line, "http") || strings.ContainsAny(line, "/|$") {
			continue
		}
		if hasTimestampWord(line) {
			continue
		}
		return line
	}
	return title
}

func hasTimestampWord(line string) bool {
	for _, w := range strings.Fields(strings.ToLower(line)) {
		if _, ok := jobrightTimestampWords[w]; ok {
			return true
		}
	}
	return false
}
