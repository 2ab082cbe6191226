package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSearch_Fetch(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-RapidAPI-Key") != "k123" {
			t.Error("X-RapidAPI-Key header missing")
		}
		if r.Header.Get("X-RapidAPI-Host") != "jsearch.p.rapidapi.com" {
			t.Error("X-RapidAPI-Host header missing")
		}
		queries = append(queries, r.URL.Query().Get("query"))
		w.Write([]byte(`{"data": [
			{"job_title": "Software Engineer, New Grad", "employer_name": "Initech",
			 "job_city": "Austin", "job_state": "TX", "job_country": "US",
			 "job_apply_link": "https://example.com/apply/1",
			 "job_posted_at_datetime_utc": "2026-02-10T09:00:00.000Z",
			 "job_min_salary": 95000, "job_max_salary": 120000},
			{"job_title": "Software Engineer", "employer_name": "GmbH",
			 "job_city": "Berlin", "job_country": "DE",
			 "job_apply_link": "https://example.com/apply/2"}
		]}`))
	}))
	defer srv.Close()

	run := testRun(168)
	src := NewJSearch(testClient(srv), "k123", []string{"software engineer new grad", "entry level data analyst"})
	if err := src.Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(queries) != 2 {
		t.Errorf("requests = %d, want one per query", len(queries))
	}
	recs := run.Records()
	// Both queries return the same payload; URL dedup collapses them.
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	got := recs[0]
	if got.Location != "Austin, TX" {
		t.Errorf("Location = %q", got.Location)
	}
	if got.Salary != "$95000-$120000" {
		t.Errorf("Salary = %q", got.Salary)
	}
	if got.Date != "Feb 10" {
		t.Errorf("Date = %q, want Feb 10", got.Date)
	}
}
