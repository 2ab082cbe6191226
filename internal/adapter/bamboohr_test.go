package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amishk599/jobhunter/internal/model"
)

func TestBambooHR_Fetch(t *testing.T) {
	posted := time.Now().UTC().Add(-6 * time.Hour).Format("2006-01-02 15:04:05")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Error("Accept: application/json header missing, endpoint would serve HTML")
		}
		if r.URL.Path != "/careers/list" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprintf(w, `{"result": [
			{"id": 412, "jobOpeningName": "Junior Software Engineer",
			 "location": {"city": "Denver", "state": "CO"},
			 "datePosted": %q,
			 "description": "<p>No visa sponsorship available.</p>",
			 "departmentLabel": "Engineering", "companyName": ""},
			{"id": "413", "jobOpeningName": "Data Analyst",
			 "location": "Remote - United States",
			 "datePosted": %q, "companyName": "Acme Inc"}
		]}`, posted, posted)
	}))
	defer srv.Close()

	// 72h window: datePosted is truncated to a bare date before the cutoff
	// comparison, so a tight window would flake near midnight.
	run := testRun(72)
	if err := NewBambooHR(testClient(srv), "acme").Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	recs := run.Records()
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}

	first := recs[0]
	if first.URL != "https://acme.bamboohr.com/careers/412" {
		t.Errorf("URL = %q, want numeric id in path", first.URL)
	}
	if first.Company != "Acme" {
		t.Errorf("Company = %q, want domain fallback Acme", first.Company)
	}
	if first.Location != "Denver, CO" {
		t.Errorf("Location = %q", first.Location)
	}
	if first.Sponsorship != model.SponsorshipNo {
		t.Errorf("Sponsorship = %q, want %q", first.Sponsorship, model.SponsorshipNo)
	}

	second := recs[1]
	if second.URL != "https://acme.bamboohr.com/careers/413" {
		t.Errorf("URL = %q, want string id in path", second.URL)
	}
	if second.Company != "Acme Inc" {
		t.Errorf("Company = %q", second.Company)
	}
}

func TestBambooLocationShapes(t *testing.T) {
	if got := bambooLocation("Austin, TX"); got != "Austin, TX" {
		t.Errorf("string shape = %q", got)
	}
	if got := bambooLocation(map[string]any{"city": "Denver", "state": "CO"}); got != "Denver, CO" {
		t.Errorf("object shape = %q", got)
	}
	if got := bambooLocation(map[string]any{"city": "Denver"}); got != "Denver" {
		t.Errorf("city-only shape = %q", got)
	}
	if got := bambooLocation(nil); got != "" {
		t.Errorf("nil shape = %q", got)
	}
}

func TestBambooHR_MissingBoardIsQuiet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if err := NewBambooHR(testClient(srv), "ghost").Fetch(context.Background(), testRun(24)); err != nil {
		t.Errorf("404 board should not error, got %v", err)
	}
}
