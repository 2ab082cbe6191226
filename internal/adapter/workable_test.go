package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWorkable_Fetch(t *testing.T) {
	published := time.Now().UTC().Add(-3 * time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/widget/accounts/acme-corp/jobs" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprintf(w, `{"results": [
			{"title": "Software Engineer", "shortcode": "AB12CD",
			 "published_on": %q, "description": "<p>Ship features.</p>",
			 "location": {"city": "Austin", "country": "United States"}},
			{"title": "Software Engineer II", "shortcode": "XY99ZZ",
			 "published_on": %q,
			 "location": {"city": "London", "country": "United Kingdom"}},
			{"title": "Junior Developer", "shortcode": "",
			 "published_on": %q,
			 "location": {"city": "Austin", "country": "United States"}}
		]}`, published, published, published)
	}))
	defer srv.Close()

	run := testRun(24)
	if err := NewWorkable(testClient(srv), "acme-corp").Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	recs := run.Records()
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1 (non-US and missing shortcode skipped)", len(recs))
	}
	got := recs[0]
	if got.URL != "https://apply.workable.com/acme-corp/j/AB12CD/" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.Company != "Acme Corp" {
		t.Errorf("Company = %q, want slug-derived Acme Corp", got.Company)
	}
	if got.Location != "Austin, United States" {
		t.Errorf("Location = %q", got.Location)
	}
	if got.Description != "Ship features." {
		t.Errorf("Description = %q", got.Description)
	}
}

func TestWorkable_StaleJobsSkipped(t *testing.T) {
	old := time.Now().UTC().Add(-80 * time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"results": [
			{"title": "Software Engineer", "shortcode": "OLD001",
			 "published_on": %q,
			 "location": {"city": "Austin", "country": "United States"}}
		]}`, old)
	}))
	defer srv.Close()

	run := testRun(24)
	if err := NewWorkable(testClient(srv), "acme-corp").Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := len(run.Records()); got != 0 {
		t.Errorf("records = %d, want 0 for jobs older than the window", got)
	}
}

func TestWorkable_MissingBoardIsQuiet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if err := NewWorkable(testClient(srv), "ghost").Fetch(context.Background(), testRun(24)); err != nil {
		t.Errorf("404 board should not error, got %v", err)
	}
}
