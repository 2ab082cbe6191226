package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

// Ashby polls one public Ashby job board. No auth, no pagination: the whole
// board comes back in one call.
// Endpoint: GET https://api.ashbyhq.com/posting-api/job-board/{slug}?includeCompensation=true
type Ashby struct {
	client *httpx.Client
	slug   string
}

func NewAshby(client *httpx.Client, slug string) *Ashby {
	return &Ashby{client: client, slug: slug}
}

func (a *Ashby) Name() string { return model.SourceAshby }

type ashbyResponse struct {
	Jobs []ashbyJob `json:"jobs"`
}

type ashbyJob struct {
	Title              string `json:"title"`
	Location           string `json:"location"`
	SecondaryLocations []struct {
		Location string `json:"location"`
	} `json:"secondaryLocations"`
	PublishedAt  string `json:"publishedAt"`
	JobURL       string `json:"jobUrl"`
	ApplyURL     string `json:"applyUrl"`
	Department   string `json:"department"`
	Compensation struct {
		CompensationTierSummary             string `json:"compensationTierSummary"`
		ScrapeableCompensationSalarySummary string `json:"scrapeableCompensationSalarySummary"`
	} `json:"compensation"`
	DescriptionPlain string `json:"descriptionPlain"`
	DescriptionHTML  string `json:"descriptionHtml"`
}

func (a *Ashby) Fetch(ctx context.Context, run *discovery.Run) error {
	url := fmt.Sprintf("https://api.ashbyhq.com/posting-api/job-board/%s?includeCompensation=true", a.slug)
	var data ashbyResponse
	if err := a.client.GetJSON(ctx, url, nil, &data); err != nil {
		// Most slugs in the roster do not run Ashby; skip quietly.
		if httpx.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("ashby %s: %w", a.slug, err)
	}

	for _, job := range data.Jobs {
		if pub, ok := parseTime(job.PublishedAt); ok && pub.Before(run.Cutoff) {
			continue
		}
		if !run.Filter.MatchTitle(job.Title) {
			continue
		}

		loc := job.Location
		if len(job.SecondaryLocations) > 0 {
			parts := []string{loc}
			for _, s := range job.SecondaryLocations {
				if s.Location != "" {
					parts = append(parts, s.Location)
				}
			}
			loc = strings.Join(parts, " | ")
		}
		if !filter.IsUSLocation(loc) {
			continue
		}
		if loc == "" {
			loc = "Remote"
		}

		salary := job.Compensation.CompensationTierSummary
		if salary == "" {
			salary = job.Compensation.ScrapeableCompensationSalarySummary
		}

		desc := job.DescriptionPlain
		if desc == "" {
			desc = stripHTML(job.DescriptionHTML)
		}

		url := job.JobURL
		if url == "" {
			url = job.ApplyURL
		}

		date := datePrefix(job.PublishedAt)
		if date == "" {
			date = time.Now().UTC().Format("2006-01-02")
		}

		run.Add(model.JobRecord{
			Title:       job.Title,
			Company:     titleFromSlug(a.slug),
			Location:    loc,
			URL:         url,
			Source:      model.SourceAshby,
			Description: truncate(desc, maxDescription),
			Date:        date,
			Salary:      salary,
			Department:  job.Department,
		})
	}
	return nil
}
