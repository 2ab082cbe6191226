package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

const greenhousePageCap = 20

// Greenhouse polls one public Greenhouse board.
// Endpoint: GET https://boards-api.greenhouse.io/v1/boards/{board}/jobs?content=true
// Pagination follows the Link: <url>; rel="next" response header.
type Greenhouse struct {
	client  *httpx.Client
	board   string
	baseURL string
}

func NewGreenhouse(client *httpx.Client, board string) *Greenhouse {
	return &Greenhouse{
		client:  client,
		board:   board,
		baseURL: fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs?content=true", board),
	}
}

func (g *Greenhouse) Name() string { return model.SourceGreenhouse }

type greenhouseResponse struct {
	Jobs    []greenhouseJob `json:"jobs"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
}

type greenhouseJob struct {
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	Content     string `json:"content"`
	CompanyName string `json:"company_name"`
	PostedAt    string `json:"posted_at"`
	UpdatedAt   string `json:"updated_at"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
	Metadata []struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	} `json:"metadata"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
}

func (g *Greenhouse) Fetch(ctx context.Context, run *discovery.Run) error {
	url := g.baseURL
	for page := 0; url != "" && page < greenhousePageCap; page++ {
		resp, err := g.client.Do(ctx, http.MethodGet, url, nil, nil)
		if err != nil {
			return fmt.Errorf("greenhouse %s: %w", g.board, err)
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil // board does not exist
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("greenhouse %s: status %d", g.board, resp.StatusCode)
		}

		var data greenhouseResponse
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return fmt.Errorf("greenhouse %s: decode: %w", g.board, err)
		}

		for _, job := range data.Jobs {
			g.admit(run, job, data.Company.Name)
		}

		url = nextLink(resp.Header.Get("Link"))
	}
	return nil
}

func (g *Greenhouse) admit(run *discovery.Run, job greenhouseJob, boardCompany string) {
	// posted_at is the real post date; updated_at can reflect edits to old jobs.
	raw := job.PostedAt
	if raw == "" {
		raw = job.UpdatedAt
	}
	posted, ok := parseTime(raw)
	if !ok {
		posted = time.Now().UTC()
	}
	if posted.Before(run.Cutoff) {
		return
	}
	if !run.Filter.MatchTitle(job.Title) {
		return
	}

	loc := job.Location.Name
	if loc == "" {
		loc = "Remote"
	}
	if !filter.IsUSLocation(loc) {
		return
	}

	desc := stripHTML(job.Content)

	company := job.CompanyName
	if company == "" {
		company = boardCompany
	}
	if company == "" {
		company = titleFromSlug(g.board)
	}

	var salary string
	for _, meta := range job.Metadata {
		nm := strings.ToLower(meta.Name)
		if strings.Contains(nm, "salary") || strings.Contains(nm, "compensation") || strings.Contains(nm, "pay") {
			salary = stringify(meta.Value)
			break
		}
	}

	var department string
	if len(job.Departments) > 0 {
		department = job.Departments[0].Name
	}

	run.Add(model.JobRecord{
		Title:       job.Title,
		Company:     company,
		Location:    loc,
		URL:         job.AbsoluteURL,
		Source:      model.SourceGreenhouse,
		Description: truncate(desc, maxDescription),
		Date:        posted.Format("2006-01-02"),
		Salary:      salary,
		Department:  department,
		Sponsorship: filter.ExtractSponsorship(desc),
	})
}

// nextLink extracts the rel="next" target from a Link response header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		open := strings.Index(part, "<")
		if open < 0 {
			continue
		}
		end := strings.Index(part[open:], ">")
		if end <= 0 {
			continue
		}
		return part[open+1 : open+end]
	}
	return ""
}
