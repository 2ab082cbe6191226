package adapter

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

// Adzuna runs one role query against the Adzuna US search API. Credentials
// come from the environment; the source is not constructed at all when they
// are missing.
type Adzuna struct {
	client *httpx.Client
	appID  string
	appKey string
	role   string
}

func NewAdzuna(client *httpx.Client, appID, appKey, role string) *Adzuna {
	return &Adzuna{client: client, appID: appID, appKey: appKey, role: role}
}

func (a *Adzuna) Name() string { return model.SourceAdzuna }

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	Title       string  `json:"title"`
	RedirectURL string  `json:"redirect_url"`
	Description string  `json:"description"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Location    struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
}

func (a *Adzuna) Fetch(ctx context.Context, run *discovery.Run) error {
	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("what", a.role)
	params.Set("max_days_old", "7")
	params.Set("results_per_page", "50")
	endpoint := "https://api.adzuna.com/v1/api/jobs/us/search/1?" + params.Encode()

	var data adzunaResponse
	if err := a.client.GetJSON(ctx, endpoint, nil, &data); err != nil {
		return fmt.Errorf("adzuna %q: %w", a.role, err)
	}

	for _, job := range data.Results {
		loc := job.Location.DisplayName
		if loc == "" {
			loc = "US"
		}
		if !filter.IsUSLocation(loc) {
			continue
		}
		if !run.Filter.MatchTitle(job.Title) {
			continue
		}

		company := job.Company.DisplayName
		if company == "" {
			company = "Unknown"
		}

		var salary string
		if job.SalaryMin > 0 {
			salary = fmt.Sprintf("$%d-$%d", int(job.SalaryMin), int(job.SalaryMax))
		}

		run.Add(model.JobRecord{
			Title:       job.Title,
			Company:     company,
			Location:    loc,
			URL:         job.RedirectURL,
			Source:      model.SourceAdzuna,
			Description: truncate(job.Description, maxDescription),
			Date:        time.Now().UTC().Format("2006-01-02"),
			Salary:      salary,
		})
	}
	return nil
}
