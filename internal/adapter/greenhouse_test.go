package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func greenhouseJobJSON(title, url, posted string) string {
	return fmt.Sprintf(`{
		"title": %q,
		"absolute_url": %q,
		"posted_at": %q,
		"location": {"name": "San Francisco, CA"},
		"content": "<p>Build distributed systems.</p>",
		"departments": [{"name": "Engineering"}],
		"metadata": [{"name": "Salary Range", "value": "$120k-$150k"}]
	}`, title, url, posted)
}

func TestGreenhouse_Fetch(t *testing.T) {
	posted := time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"company": {"name": "Acme Corp"}, "jobs": [` +
			greenhouseJobJSON("Software Engineer", "https://boards.greenhouse.io/acme/jobs/1", posted) + `,` +
			greenhouseJobJSON("Senior Software Engineer", "https://boards.greenhouse.io/acme/jobs/2", posted) +
			`]}`))
	}))
	defer srv.Close()

	run := testRun(24)
	if err := NewGreenhouse(testClient(srv), "acme").Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	recs := run.Records()
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1 (senior filtered)", len(recs))
	}
	got := recs[0]
	if got.Company != "Acme Corp" {
		t.Errorf("Company = %q, want board-level Acme Corp", got.Company)
	}
	if got.Salary != "$120k-$150k" {
		t.Errorf("Salary = %q", got.Salary)
	}
	if got.Department != "Engineering" {
		t.Errorf("Department = %q", got.Department)
	}
	if got.Description != "Build distributed systems." {
		t.Errorf("Description = %q, want HTML stripped", got.Description)
	}
}

func TestGreenhouse_FollowsLinkPagination(t *testing.T) {
	posted := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.Write([]byte(`{"jobs": [` + greenhouseJobJSON("Data Engineer", "https://boards.greenhouse.io/acme/jobs/2", posted) + `]}`))
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<http://%s/v1/boards/acme/jobs?page=2>; rel="next"`, srv.Listener.Addr()))
		w.Write([]byte(`{"jobs": [` + greenhouseJobJSON("Software Engineer", "https://boards.greenhouse.io/acme/jobs/1", posted) + `]}`))
	}))
	defer srv.Close()

	run := testRun(24)
	if err := NewGreenhouse(testClient(srv), "acme").Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := len(run.Records()); got != 2 {
		t.Errorf("records = %d, want 2 across pages", got)
	}
}

func TestGreenhouse_StaleJobsSkipped(t *testing.T) {
	posted := time.Now().UTC().Add(-80 * time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs": [` + greenhouseJobJSON("Software Engineer", "https://x/1", posted) + `]}`))
	}))
	defer srv.Close()

	run := testRun(24)
	if err := NewGreenhouse(testClient(srv), "acme").Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := len(run.Records()); got != 0 {
		t.Errorf("records = %d, want 0 for stale postings", got)
	}
}

func TestGreenhouse_MissingBoardIsQuiet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if err := NewGreenhouse(testClient(srv), "ghost").Fetch(context.Background(), testRun(24)); err != nil {
		t.Errorf("404 board should not error, got %v", err)
	}
}
