package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
	"github.com/amishk599/jobhunter/internal/model"
)

// RemoteOK pulls the public https://remoteok.com/api feed. The first array
// element is legal metadata, not a job.
type RemoteOK struct {
	client *httpx.Client
}

func NewRemoteOK(client *httpx.Client) *RemoteOK {
	return &RemoteOK{client: client}
}

func (r *RemoteOK) Name() string { return model.SourceRemoteOK }

type remoteOKJob struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Salary      string `json:"salary"`
}

func (r *RemoteOK) Fetch(ctx context.Context, run *discovery.Run) error {
	resp, err := r.client.Do(ctx, http.MethodGet, "https://remoteok.com/api", nil, nil)
	if err != nil {
		return fmt.Errorf("remoteok: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remoteok: status %d", resp.StatusCode)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return fmt.Errorf("remoteok: decode: %w", err)
	}
	if len(raw) < 2 {
		return nil
	}

	for _, item := range raw[1:] {
		var job remoteOKJob
		if err := json.Unmarshal(item, &job); err != nil {
			continue
		}
		if posted, ok := parseTime(job.Date); ok && posted.Before(run.Cutoff) {
			continue
		}
		if !run.Filter.MatchTitle(job.Position) {
			continue
		}
		loc := job.Location
		if loc == "" {
			loc = "Remote"
		}
		if !filter.IsUSLocation(loc) {
			continue
		}

		run.Add(model.JobRecord{
			Title:       job.Position,
			Company:     job.Company,
			Location:    loc,
			URL:         job.URL,
			Source:      model.SourceRemoteOK,
			Description: truncate(stripHTML(job.Description), maxDescription),
			Date:        datePrefix(job.Date),
			Salary:      job.Salary,
		})
	}
	return nil
}
