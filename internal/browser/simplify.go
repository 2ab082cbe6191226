package browser

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/model"
)

// Simplify's frontend talks to a typesense search backend; instead of
// scraping the rendered cards we capture those search responses off the
// wire, which carry the full document for every hit.
const simplifySearchHost = "js-ha.simplify.jobs"

// Filter fragments lifted from a real browser session. points is the North
// America bounding box that pairs with state=North America.
const (
	simplifyPoints     = "83%3B-170%3B7%3B-52"
	simplifyExperience = "Entry%20Level%2FNew%20Grad%3BJunior"
	simplifyCategory   = "Software%20Engineering%3BData%20%26%20Analytics%3BAI%20%26%20Machine%20Learning"
)

const simplifyLoggedInSel = `[data-testid="user-avatar"], a[href*="/applications"], [aria-label="Profile menu"], a[href*="/profile"]`

const simplifyHourlyPeriod = 1

type simplifySearchResponse struct {
	Results []struct {
		Hits []simplifyHit `json:"hits"`
	} `json:"results"`
	Hits []simplifyHit `json:"hits"`
}

type simplifyHit struct {
	Document simplifyDoc `json:"document"`
}

// simplifyDoc is the slice of the search document we use. travel_requirements
// flips between a string and a list depending on the posting, hence any.
type simplifyDoc struct {
	ID           string  `json:"id"`
	JobID        string  `json:"job_id"`
	Title        string  `json:"title"`
	CompanyName  string  `json:"company_name"`
	StartDate    float64 `json:"start_date"`
	UpdatedDate  float64 `json:"updated_date"`
	Locations    []any   `json:"locations"`
	Travel       any     `json:"travel_requirements"`
	MinSalary    float64 `json:"min_salary"`
	MaxSalary    float64 `json:"max_salary"`
	SalaryPeriod int     `json:"salary_period"`
}

// docCapture collects search documents from the response listener. drain
// hands out everything gathered so far and resets, so each query only
// processes its own responses.
type docCapture struct {
	mu   sync.Mutex
	docs []simplifyDoc
}

func (c *docCapture) add(body string, base64Encoded bool) {
	raw := []byte(body)
	if base64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return
		}
		raw = decoded
	}
	// Preflights and error pages land here too; anything that isn't a
	// search response simply fails to decode.
	var resp simplifySearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, res := range resp.Results {
		for _, hit := range res.Hits {
			c.docs = append(c.docs, hit.Document)
		}
	}
	for _, hit := range resp.Hits {
		c.docs = append(c.docs, hit.Document)
	}
}

func (c *docCapture) drain() []simplifyDoc {
	c.mu.Lock()
	defer c.mu.Unlock()
	docs := c.docs
	c.docs = nil
	return docs
}

// Simplify runs the query matrix against simplify.jobs in the shared Chrome
// session. Results come back without a login too, just fewer of them, so a
// missed login degrades the source instead of disabling it.
type Simplify struct {
	sess    *Session
	queries []string
	logger  *slog.Logger
}

func NewSimplify(sess *Session, queries []string, logger *slog.Logger) *Simplify {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simplify{sess: sess, queries: queries, logger: logger}
}

func (s *Simplify) Name() string { return model.SourceSimplify }

func (s *Simplify) Fetch(ctx context.Context, run *discovery.Run) error {
	page, err := s.sess.NewPage()
	if err != nil {
		return err
	}
	defer page.Close()

	capture := &docCapture{}
	go page.EachEvent(func(e *proto.NetworkResponseReceived) {
		u := e.Response.URL
		if !strings.Contains(u, simplifySearchHost) || !strings.Contains(u, "search") {
			return
		}
		body, err := proto.NetworkGetResponseBody{RequestID: e.RequestID}.Call(page)
		if err != nil {
			return
		}
		capture.add(body.Body, body.Base64Encoded)
	})()

	s.login(ctx, page)

	seen := make(map[string]struct{})
	total := 0
	for _, query := range s.queries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		capture.drain() // discard leftovers from the previous query

		if err := navigate(page, simplifySearchURL(query)); err != nil {
			continue
		}
		pause(ctx, 5*time.Second) // let the search responses land
		scrollToBottom(page)      // trigger the next result page, if any
		pause(ctx, 2*time.Second)

		docs := capture.drain()
		added := s.process(run, docs, query, seen)
		total += added
		s.logger.Debug("simplify browser query", "query", query, "fetched", len(docs), "new", added)
	}

	s.logger.Info("simplify browser finished", "new", total)
	return nil
}

// login is best effort: guest sessions still get search results.
func (s *Simplify) login(ctx context.Context, page *rod.Page) {
	if err := navigate(page, "https://simplify.jobs/"); err != nil {
		s.logger.Warn("simplify unreachable", "error", err)
		return
	}
	pause(ctx, 3500*time.Millisecond)

	if has, _, err := page.Has(simplifyLoggedInSel); err == nil && has {
		return
	}

	s.logger.Info("simplify login page open, complete it in the browser window or wait to continue as guest")
	_ = navigate(page, "https://simplify.jobs/auth/login")
	if !waitLogin(ctx, page, func(u string) bool {
		return urlContainsAny(u, []string{"/jobs", "/home", "/applications"})
	}) {
		s.logger.Info("simplify continuing as guest")
	}
}

func (s *Simplify) process(run *discovery.Run, docs []simplifyDoc, query string, seen map[string]struct{}) int {
	added := 0
	for _, doc := range docs {
		title := strings.TrimSpace(doc.Title)
		if len(title) < 3 {
			continue
		}
		// Simplify's own categories lean broad; besides the user's roles,
		// accept anything engineer- or analyst-shaped and let the seniority
		// gate sort out the rest.
		lower := strings.ToLower(title)
		if !run.Filter.MatchTitle(title) && !strings.Contains(lower, "engineer") && !strings.Contains(lower, "analyst") {
			continue
		}

		id := doc.ID
		if id == "" {
			id = doc.JobID
		}
		if id == "" {
			continue
		}
		jobURL := "https://simplify.jobs/p/" + id
		if _, dup := seen[jobURL]; dup {
			continue
		}
		seen[jobURL] = struct{}{}

		company := strings.TrimSpace(doc.CompanyName)
		if company == "" {
			company = "Unknown"
		}

		if run.Add(model.JobRecord{
			Title:       title,
			Company:     company,
			Location:    simplifyLocation(doc.Locations, doc.Travel),
			URL:         jobURL,
			Source:      model.SourceSimplify,
			Description: "Simplify browser | " + query,
			Date:        simplifyDate(doc.StartDate, doc.UpdatedDate),
			Salary:      simplifySalary(doc.MinSalary, doc.MaxSalary, doc.SalaryPeriod),
		}) {
			added++
		}
	}
	return added
}

func simplifySearchURL(query string) string {
	return "https://simplify.jobs/jobs?query=" + url.QueryEscape(query) +
		"&state=North%20America" +
		"&points=" + simplifyPoints +
		"&experience=" + simplifyExperience +
		"&category=" + simplifyCategory +
		"&h1b=true" +
		"&jobType=Full-Time%3BContract" +
		"&workArrangement=Remote%3BHybrid%3BIn%20Person"
}

// simplifyDate renders the posting epoch as a date, preferring start_date
// over updated_date. Documents with neither are treated as fresh.
func simplifyDate(startDate, updatedDate float64) string {
	epoch := startDate
	if epoch == 0 {
		epoch = updatedDate
	}
	if epoch == 0 {
		return "today"
	}
	return filter.ParseEpoch(int64(epoch)).Format("2006-01-02")
}

func simplifyLocation(locations []any, travel any) string {
	loc := "United States"
	if len(locations) > 0 {
		switch v := locations[0].(type) {
		case map[string]any:
			if s, ok := v["value"].(string); ok && s != "" {
				loc = s
			}
		case string:
			if v != "" {
				loc = v
			}
		}
	}
	if travel != nil && strings.Contains(fmt.Sprint(travel), "Remote") {
		loc += " (Remote)"
	}
	return loc
}

func simplifySalary(minSalary, maxSalary float64, period int) string {
	if minSalary <= 0 || maxSalary <= 0 {
		return ""
	}
	s := "$" + humanize.Comma(int64(math.Round(minSalary))) + " - $" + humanize.Comma(int64(math.Round(maxSalary)))
	if period == simplifyHourlyPeriod {
		s += "/hr"
	}
	return s
}
