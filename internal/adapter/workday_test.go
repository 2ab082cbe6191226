package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amishk599/jobhunter/internal/config"
)

// The adapter requires a myworkdayjobs.com host; the test transport
// rewrites it to the local server.
func testWorkdayCompany() config.WorkdayCompany {
	return config.WorkdayCompany{Name: "Acme", URL: "https://acme.wd5.myworkdayjobs.com/External"}
}

func TestWorkday_SkipsOffPlatformEntries(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	wd := NewWorkday(testClient(srv), config.WorkdayCompany{Name: "Netflix", URL: "https://jobs.lever.co/netflix"}, []string{"Software Engineer"})
	if err := wd.Fetch(context.Background(), testRun(24)); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if called {
		t.Error("off-platform entry must not be fetched")
	}
}

func TestWorkday_SearchAndPagination(t *testing.T) {
	posted := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	var requests []workdaySearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req workdaySearchRequest
		json.NewDecoder(r.Body).Decode(&req)
		requests = append(requests, req)

		if req.Offset >= 50 {
			// Second page: nothing relevant, ends pagination via zero accepts.
			w.Write([]byte(`{"total": 120, "jobPostings": [
				{"title": "Account Executive", "locationsText": "Austin, TX", "postedOn": "` + posted + `", "externalPath": "/job/ae-1"}
			]}`))
			return
		}
		w.Write([]byte(fmt.Sprintf(`{"total": 120, "jobPostings": [
			{"title": "Software Engineer %d", "locationsText": "Austin, TX", "postedOn": %q, "externalPath": "/job/swe-%d"}
		]}`, req.Offset, posted, req.Offset)))
	}))
	defer srv.Close()

	wd := NewWorkday(testClient(srv), testWorkdayCompany(), []string{"Software Engineer"})
	run := testRun(24)
	if err := wd.Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("requests = %d, want 2 (zero-accept page stops pagination)", len(requests))
	}
	if requests[0].SearchText != "Software Engineer" || requests[0].Limit != 50 {
		t.Errorf("first request = %+v", requests[0])
	}
	recs := run.Records()
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	if recs[0].URL != "https://acme.wd5.myworkdayjobs.com/External/job/swe-0" {
		t.Errorf("URL = %q", recs[0].URL)
	}
	if recs[0].Company != "Acme" {
		t.Errorf("Company = %q", recs[0].Company)
	}
}

func TestWorkday_OneRequestPerKeyword(t *testing.T) {
	var keywords []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req workdaySearchRequest
		json.NewDecoder(r.Body).Decode(&req)
		keywords = append(keywords, req.SearchText)
		w.Write([]byte(`{"total": 0, "jobPostings": []}`))
	}))
	defer srv.Close()

	wd := NewWorkday(testClient(srv), testWorkdayCompany(), []string{"Software Engineer", "Data Analyst"})
	if err := wd.Fetch(context.Background(), testRun(24)); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(keywords) != 2 || keywords[0] != "Software Engineer" || keywords[1] != "Data Analyst" {
		t.Errorf("keywords = %v", keywords)
	}
}
