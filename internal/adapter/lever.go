package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

const leverPageCap = 10

// Lever polls one public Lever postings board.
// Endpoint: GET https://api.lever.co/v0/postings/{board}?mode=json&limit=100
// The v0 API returns a bare array; v1 wraps it in {data, next} with an
// offset token. Both shapes are handled.
type Lever struct {
	client  *httpx.Client
	board   string
	baseURL string
}

func NewLever(client *httpx.Client, board string) *Lever {
	return &Lever{
		client:  client,
		board:   board,
		baseURL: fmt.Sprintf("https://api.lever.co/v0/postings/%s?mode=json&limit=100", board),
	}
}

func (l *Lever) Name() string { return model.SourceLever }

type leverJob struct {
	Text       string `json:"text"`
	HostedURL  string `json:"hostedUrl"`
	Company    string `json:"company"`
	CreatedAt  int64  `json:"createdAt"` // Unix milliseconds
	Categories struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Department string `json:"department"`
	} `json:"categories"`
	SalaryRange struct {
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
		Currency string  `json:"currency"`
	} `json:"salaryRange"`
	DescriptionPlain string `json:"descriptionPlain"`
	Description      string `json:"description"`
}

type leverPage struct {
	Data []leverJob `json:"data"`
	Next string     `json:"next"`
}

func (l *Lever) Fetch(ctx context.Context, run *discovery.Run) error {
	offset := ""
	for page := 0; page < leverPageCap; page++ {
		url := l.baseURL
		if offset != "" {
			url += "&offset=" + offset
		}
		resp, err := l.client.Do(ctx, http.MethodGet, url, nil, nil)
		if err != nil {
			return fmt.Errorf("lever %s: %w", l.board, err)
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("lever %s: status %d", l.board, resp.StatusCode)
		}

		var jobs []leverJob
		if err := json.Unmarshal(resp.Body, &jobs); err != nil {
			// v1 shape
			var wrapped leverPage
			if err := json.Unmarshal(resp.Body, &wrapped); err != nil {
				return fmt.Errorf("lever %s: decode: %w", l.board, err)
			}
			jobs = wrapped.Data
			offset = wrapped.Next
		} else {
			offset = "" // v0 has no pagination
		}

		if len(jobs) == 0 {
			return nil
		}
		for _, job := range jobs {
			l.admit(run, job)
		}
		if offset == "" {
			return nil
		}
	}
	return nil
}

func (l *Lever) admit(run *discovery.Run, job leverJob) {
	created := time.Now().UTC()
	if job.CreatedAt > 0 {
		created = filter.ParseEpoch(job.CreatedAt)
	}
	if created.Before(run.Cutoff) {
		return
	}

	loc := job.Categories.Location
	if loc == "" {
		loc = "Remote"
	}
	if !filter.IsUSLocation(loc) {
		return
	}
	if !run.Filter.MatchTitle(job.Text) {
		return
	}

	company := job.Company
	if company == "" {
		company = job.Categories.Team
	}
	if company == "" {
		company = titleFromSlug(l.board)
	}

	var salary string
	mn, mx := int(job.SalaryRange.Min), int(job.SalaryRange.Max)
	cur := job.SalaryRange.Currency
	if cur == "" {
		cur = "USD"
	}
	switch {
	case mn > 0 && mx > 0:
		salary = fmt.Sprintf("%s $%d-$%d", cur, mn, mx)
	case mn > 0:
		salary = fmt.Sprintf("%s $%d", cur, mn)
	case mx > 0:
		salary = fmt.Sprintf("%s $%d", cur, mx)
	}

	desc := job.DescriptionPlain
	if desc == "" {
		desc = stripHTML(job.Description)
	}

	run.Add(model.JobRecord{
		Title:       job.Text,
		Company:     company,
		Location:    loc,
		URL:         job.HostedURL,
		Source:      model.SourceLever,
		Description: truncate(desc, maxDescription),
		Date:        created.Format("2006-01-02"),
		Salary:      salary,
		Department:  job.Categories.Department,
		Sponsorship: filter.ExtractSponsorship(desc),
	})
}
