package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

// BambooHR polls one company careers list. The endpoint serves HTML unless
// asked for JSON via the Accept header.
// Endpoint: GET https://{domain}.bamboohr.com/careers/list
type BambooHR struct {
	client *httpx.Client
	domain string
}

func NewBambooHR(client *httpx.Client, domain string) *BambooHR {
	return &BambooHR{client: client, domain: domain}
}

func (b *BambooHR) Name() string { return model.SourceBambooHR }

type bambooHRResponse struct {
	Result []bambooHRJob `json:"result"`
}

type bambooHRJob struct {
	ID             any    `json:"id"` // string or number depending on tenant
	JobOpeningName string `json:"jobOpeningName"`
	Location       any    `json:"location"`
	DatePosted     string `json:"datePosted"`
	CreatedDate    string `json:"createdDate"`
	Summary        string `json:"description"`
	Department     string `json:"departmentLabel"`
	CompanyName    string `json:"companyName"`
}

func (b *BambooHR) Fetch(ctx context.Context, run *discovery.Run) error {
	url := fmt.Sprintf("https://%s.bamboohr.com/careers/list", b.domain)
	var data bambooHRResponse
	headers := map[string]string{"Accept": "application/json"}
	if err := b.client.GetJSON(ctx, url, headers, &data); err != nil {
		if httpx.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("bamboohr %s: %w", b.domain, err)
	}

	for _, job := range data.Result {
		if !run.Filter.MatchTitle(job.JobOpeningName) {
			continue
		}
		loc := bambooLocation(job.Location)
		if !filter.IsUSLocation(loc) {
			continue
		}

		raw := job.DatePosted
		if raw == "" {
			raw = job.CreatedDate
		}
		// Unparseable dates include the job rather than dropping it.
		if posted, ok := parseTime(datePrefix(raw)); ok && posted.Before(run.Cutoff) {
			continue
		}
		id := stringify(job.ID)
		if id == "" {
			continue
		}

		date := datePrefix(raw)
		if date == "" {
			date = time.Now().UTC().Format("2006-01-02")
		}

		company := job.CompanyName
		if company == "" {
			company = titleFromSlug(b.domain)
		}

		desc := stripHTML(job.Summary)

		run.Add(model.JobRecord{
			Title:       job.JobOpeningName,
			Company:     company,
			Location:    loc,
			URL:         fmt.Sprintf("https://%s.bamboohr.com/careers/%s", b.domain, id),
			Source:      model.SourceBambooHR,
			Description: truncate(desc, maxDescription),
			Date:        date,
			Department:  job.Department,
			Sponsorship: filter.ExtractSponsorship(desc),
		})
	}
	return nil
}

// bambooLocation tolerates both the string and object shapes the API emits.
func bambooLocation(v any) string {
	switch loc := v.(type) {
	case string:
		return loc
	case map[string]any:
		city, _ := loc["city"].(string)
		state, _ := loc["state"].(string)
		if city != "" && state != "" {
			return city + ", " + state
		}
		return city + state
	default:
		return ""
	}
}
