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

// Workable polls one public Workable widget board.
// Endpoint: GET https://apply.workable.com/api/v1/widget/accounts/{slug}/jobs
type Workable struct {
	client *httpx.Client
	slug   string
}

func NewWorkable(client *httpx.Client, slug string) *Workable {
	return &Workable{client: client, slug: slug}
}

func (w *Workable) Name() string { return model.SourceWorkable }

type workableResponse struct {
	Results []workableJob `json:"results"`
}

type workableJob struct {
	Title       string `json:"title"`
	Shortcode   string `json:"shortcode"`
	PublishedOn string `json:"published_on"`
	Description string `json:"description"`
	Location    struct {
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"location"`
}

func (w *Workable) Fetch(ctx context.Context, run *discovery.Run) error {
	url := fmt.Sprintf("https://apply.workable.com/api/v1/widget/accounts/%s/jobs", w.slug)
	var data workableResponse
	if err := w.client.GetJSON(ctx, url, nil, &data); err != nil {
		if httpx.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("workable %s: %w", w.slug, err)
	}

	for _, job := range data.Results {
		if !run.Filter.MatchTitle(job.Title) {
			continue
		}
		loc := strings.Trim(strings.TrimSpace(job.Location.City+", "+job.Location.Country), ",")
		if !filter.IsUSLocation(loc) {
			continue
		}
		if pub, ok := parseTime(job.PublishedOn); ok && pub.Before(run.Cutoff) {
			continue
		}
		if job.Shortcode == "" {
			continue
		}

		run.Add(model.JobRecord{
			Title:       job.Title,
			Company:     titleFromSlug(w.slug),
			Location:    loc,
			URL:         fmt.Sprintf("https://apply.workable.com/%s/j/%s/", w.slug, job.Shortcode),
			Source:      model.SourceWorkable,
			Description: truncate(stripHTML(job.Description), maxDescription),
			Date:        datePrefix(job.PublishedOn),
		})
	}
	return nil
}
