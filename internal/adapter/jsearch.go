package adapter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

// JSearch runs a query set against the JSearch aggregator on RapidAPI.
// Constructed only when a RAPIDAPI_KEY is present.
type JSearch struct {
	client  *httpx.Client
	apiKey  string
	queries []string
}

func NewJSearch(client *httpx.Client, apiKey string, queries []string) *JSearch {
	return &JSearch{client: client, apiKey: apiKey, queries: queries}
}

func (j *JSearch) Name() string { return model.SourceJSearch }

type jsearchResponse struct {
	Data []jsearchJob `json:"data"`
}

type jsearchJob struct {
	Title       string  `json:"job_title"`
	Employer    string  `json:"employer_name"`
	City        string  `json:"job_city"`
	State       string  `json:"job_state"`
	Country     string  `json:"job_country"`
	ApplyLink   string  `json:"job_apply_link"`
	Description string  `json:"job_description"`
	PostedAt    string  `json:"job_posted_at_datetime_utc"`
	MinSalary   float64 `json:"job_min_salary"`
	MaxSalary   float64 `json:"job_max_salary"`
}

func (j *JSearch) Fetch(ctx context.Context, run *discovery.Run) error {
	headers := map[string]string{
		"X-RapidAPI-Key":  j.apiKey,
		"X-RapidAPI-Host": "jsearch.p.rapidapi.com",
	}

	for _, q := range j.queries {
		params := url.Values{}
		params.Set("query", q)
		params.Set("page", "1")
		params.Set("num_pages", "3")
		params.Set("date_posted", "3days")
		endpoint := "https://jsearch.p.rapidapi.com/search?" + params.Encode()

		var data jsearchResponse
		if err := j.client.GetJSON(ctx, endpoint, headers, &data); err != nil {
			return fmt.Errorf("jsearch %q: %w", q, err)
		}

		for _, job := range data.Data {
			if !filter.IsUSLocation(job.Country + job.State) {
				continue
			}
			if !run.Filter.MatchTitle(job.Title) {
				continue
			}

			var salary string
			if job.MinSalary > 0 || job.MaxSalary > 0 {
				salary = fmt.Sprintf("$%d-$%d", int(job.MinSalary), int(job.MaxSalary))
			}

			run.Add(model.JobRecord{
				Title:       job.Title,
				Company:     job.Employer,
				Location:    job.City + ", " + job.State,
				URL:         job.ApplyLink,
				Source:      model.SourceJSearch,
				Description: truncate(job.Description, maxDescription),
				Date:        datePrefix(job.PostedAt),
				Salary:      salary,
			})
		}
	}
	return nil
}
