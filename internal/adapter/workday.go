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

const (
	workdayPageSize  = 50
	workdayOffsetCap = 200
)

// Workday searches one Fortune-500 board through the POST JSON search API,
// one request per keyword with offset pagination. Workday backends are slow,
// so the caller passes a client with a tighter total timeout than the shared
// API-phase client.
type Workday struct {
	client   *httpx.Client
	company  config.WorkdayCompany
	keywords []string
}

func NewWorkday(client *httpx.Client, company config.WorkdayCompany, keywords []string) *Workday {
	return &Workday{client: client, company: company, keywords: keywords}
}

func (w *Workday) Name() string { return model.SourceWorkday }

type workdaySearchRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type workdaySearchResponse struct {
	Total       int          `json:"total"`
	JobPostings []workdayJob `json:"jobPostings"`
}

type workdayJob struct {
	Title          string   `json:"title"`
	LocationsText  string   `json:"locationsText"`
	PostedOn       string   `json:"postedOn"`
	StartDate      string   `json:"startDate"`
	ExternalPath   string   `json:"externalPath"`
	BulletFields   []string `json:"bulletFields"`
	JobDescription string   `json:"jobDescription"`
}

func (w *Workday) Fetch(ctx context.Context, run *discovery.Run) error {
	// Entries hosted on other platforms are covered by their own adapters.
	if !strings.Contains(w.company.URL, "myworkdayjobs.com") {
		return nil
	}
	searchURL := strings.TrimRight(w.company.URL, "/") + "/jobs"

	for _, kw := range w.keywords {
		if err := w.searchKeyword(ctx, run, searchURL, kw); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workday) searchKeyword(ctx context.Context, run *discovery.Run, searchURL, keyword string) error {
	for offset := 0; ; offset += workdayPageSize {
		req := workdaySearchRequest{
			AppliedFacets: map[string]any{},
			Limit:         workdayPageSize,
			Offset:        offset,
			SearchText:    keyword,
		}
		var resp workdaySearchResponse
		headers := map[string]string{"Accept": "application/json"}
		if err := w.client.PostJSON(ctx, searchURL, headers, req, &resp); err != nil {
			if httpx.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("workday %s: %w", w.company.Name, err)
		}
		if len(resp.JobPostings) == 0 {
			return nil
		}

		accepted := 0
		for _, job := range resp.JobPostings {
			if w.admit(run, job) {
				accepted++
			}
		}

		// A page with zero accepted jobs means results have drifted off topic.
		limit := resp.Total
		if limit > workdayOffsetCap {
			limit = workdayOffsetCap
		}
		if offset+workdayPageSize >= limit || accepted == 0 {
			return nil
		}
	}
}

func (w *Workday) admit(run *discovery.Run, job workdayJob) bool {
	if !run.Filter.MatchTitle(job.Title) {
		return false
	}
	if !filter.IsUSLocation(job.LocationsText) {
		return false
	}

	raw := job.PostedOn
	if raw == "" {
		raw = job.StartDate
	}
	if posted, ok := parseTime(raw); ok && posted.Before(run.Cutoff) {
		return false
	}

	extID := job.ExternalPath
	if extID == "" && len(job.BulletFields) > 0 {
		extID = job.BulletFields[0]
	}
	if !strings.HasPrefix(extID, "/") {
		extID = "/" + extID
	}

	date := datePrefix(raw)
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	return run.Add(model.JobRecord{
		Title:       job.Title,
		Company:     w.company.Name,
		Location:    job.LocationsText,
		URL:         strings.TrimRight(w.company.URL, "/") + extID,
		Source:      model.SourceWorkday,
		Description: truncate(job.JobDescription, maxDescription),
		Date:        date,
	})
}
