package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

const (
	smartRecruitersPageSize  = 100
	smartRecruitersOffsetCap = 500
)

// SmartRecruiters polls one company through the public postings API.
// Endpoint: GET https://api.smartrecruiters.com/v1/companies/{id}/postings
// Pagination via limit/offset up to totalFound, hard-capped at 500.
type SmartRecruiters struct {
	client    *httpx.Client
	companyID string
}

func NewSmartRecruiters(client *httpx.Client, companyID string) *SmartRecruiters {
	return &SmartRecruiters{client: client, companyID: companyID}
}

func (s *SmartRecruiters) Name() string { return model.SourceSmartRecruiters }

type smartRecruitersPage struct {
	Content    []smartRecruitersJob `json:"content"`
	TotalFound int                  `json:"totalFound"`
}

type smartRecruitersJob struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ReleasedDate string `json:"releasedDate"`
	Location     struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
		Remote  bool   `json:"remote"`
	} `json:"location"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
	Department struct {
		Label string `json:"label"`
	} `json:"department"`
	JobDescription struct {
		Text string `json:"text"`
	} `json:"jobDescription"`
}

func (s *SmartRecruiters) Fetch(ctx context.Context, run *discovery.Run) error {
	base := fmt.Sprintf("https://api.smartrecruiters.com/v1/companies/%s/postings", s.companyID)
	offset := 0
	for {
		url := fmt.Sprintf("%s?limit=%d&offset=%d", base, smartRecruitersPageSize, offset)
		var page smartRecruitersPage
		if err := s.client.GetJSON(ctx, url, nil, &page); err != nil {
			if httpx.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("smartrecruiters %s: %w", s.companyID, err)
		}
		if len(page.Content) == 0 {
			return nil
		}

		for _, job := range page.Content {
			s.admit(run, job)
		}

		offset += smartRecruitersPageSize
		if offset >= page.TotalFound || offset >= smartRecruitersOffsetCap {
			return nil
		}
	}
}

func (s *SmartRecruiters) admit(run *discovery.Run, job smartRecruitersJob) {
	if !run.Filter.MatchTitle(job.Name) {
		return
	}

	var loc string
	switch {
	case job.Location.Remote:
		loc = "Remote"
	case job.Location.City != "":
		loc = job.Location.City + ", " + job.Location.Region
	default:
		loc = job.Location.Country
	}
	if !filter.IsUSLocation(loc + " " + job.Location.Country) {
		return
	}

	if posted, ok := parseTime(job.ReleasedDate); ok && posted.Before(run.Cutoff) {
		return
	}

	company := job.Company.Name
	if company == "" {
		company = titleFromSlug(s.companyID)
	}

	desc := job.JobDescription.Text

	run.Add(model.JobRecord{
		Title:       job.Name,
		Company:     company,
		Location:    strings.Trim(loc, ", "),
		URL:         fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", s.companyID, job.ID),
		Source:      model.SourceSmartRecruiters,
		Description: truncate(desc, maxDescription),
		Date:        datePrefix(job.ReleasedDate),
		Department:  job.Department.Label,
		Sponsorship: filter.ExtractSponsorship(desc),
	})
}
