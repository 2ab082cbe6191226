package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAshby_Fetch(t *testing.T) {
	published := time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("includeCompensation") != "true" {
			t.Error("includeCompensation param missing")
		}
		w.Write([]byte(fmt.Sprintf(`{"jobs": [
			{"title": "Software Engineer", "location": "San Francisco, CA",
			 "secondaryLocations": [{"location": "New York, NY"}],
			 "publishedAt": %q, "jobUrl": "https://jobs.ashbyhq.com/acme/1",
			 "department": "Engineering",
			 "compensation": {"compensationTierSummary": "$130k - $160k"},
			 "descriptionPlain": "Build the platform."}
		]}`, published)))
	}))
	defer srv.Close()

	run := testRun(24)
	if err := NewAshby(testClient(srv), "modern-health").Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	recs := run.Records()
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	got := recs[0]
	if got.Company != "Modern Health" {
		t.Errorf("Company = %q, want slug-derived Modern Health", got.Company)
	}
	if got.Location != "San Francisco, CA | New York, NY" {
		t.Errorf("Location = %q", got.Location)
	}
	if got.Salary != "$130k - $160k" {
		t.Errorf("Salary = %q", got.Salary)
	}
}

func TestAshby_MissingBoardIsQuiet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if err := NewAshby(testClient(srv), "ghost").Fetch(context.Background(), testRun(24)); err != nil {
		t.Errorf("404 board should not error, got %v", err)
	}
}
