package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amishk599/jobhunter/internal/config"
)

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
}

func newJSONFeed(srv *httptest.Server) *JSONFeed {
	return NewJSONFeed(testClient(srv), config.FeedSource{Label: "test-feed", URL: "https://raw.githubusercontent.com/x/y/main/src/data/positions.json"})
}

func TestJSONFeed_Fetch(t *testing.T) {
	fresh := time.Now().UTC().Add(-24 * time.Hour).Unix()
	body := fmt.Sprintf(`[
		{"role": "Software Engineer", "companyName": "Acme", "datePosted": %d,
		 "applicationLinks": ["https://acme.example/apply"], "locations": ["New York, NY"],
		 "sponsorship": "Offers Sponsorship"},
		{"role": "Senior Software Engineer", "companyName": "Acme", "datePosted": %d,
		 "url": "https://acme.example/senior", "locations": ["New York, NY"]},
		{"role": "Marketing Coordinator", "companyName": "Acme", "datePosted": %d,
		 "url": "https://acme.example/mktg", "locations": ["New York, NY"]}
	]`, fresh, fresh, fresh)
	srv := feedServer(t, body)
	defer srv.Close()

	run := testRun(168)
	if err := newJSONFeed(srv).Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	recs := run.Records()
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1 (senior and off-topic rejected)", len(recs))
	}
	got := recs[0]
	if got.URL != "https://acme.example/apply" {
		t.Errorf("URL = %q, want applicationLinks[0]", got.URL)
	}
	if got.Sponsorship != "Likely" {
		t.Errorf("Sponsorship = %q, want Likely", got.Sponsorship)
	}
}

func TestJSONFeed_MillisecondDates(t *testing.T) {
	fresh := time.Now().UTC().Add(-24 * time.Hour).UnixMilli()
	body := fmt.Sprintf(`[{"title": "Data Engineer", "company": "Beta", "date_posted": %d,
		"applicationLink": "https://beta.example/apply", "location": "Remote"}]`, fresh)
	srv := feedServer(t, body)
	defer srv.Close()

	run := testRun(168)
	if err := newJSONFeed(srv).Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := len(run.Records()); got != 1 {
		t.Fatalf("records = %d, want 1 (epoch ms with alternate field names)", got)
	}
}

func TestJSONFeed_MinimumSevenDayWindow(t *testing.T) {
	// Posted 5 days ago: outside a 24h run window but inside the feed's
	// 7-day floor, so it stays.
	fiveDays := time.Now().UTC().Add(-5 * 24 * time.Hour).Unix()
	tenDays := time.Now().UTC().Add(-10 * 24 * time.Hour).Unix()
	body := fmt.Sprintf(`[
		{"role": "Software Engineer", "companyName": "Acme", "datePosted": %d, "url": "https://a/1", "locations": ["NY"]},
		{"role": "Data Engineer", "companyName": "Acme", "datePosted": %d, "url": "https://a/2", "locations": ["NY"]}
	]`, fiveDays, tenDays)
	srv := feedServer(t, body)
	defer srv.Close()

	run := testRun(24)
	if err := newJSONFeed(srv).Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	recs := run.Records()
	if len(recs) != 1 || recs[0].Title != "Software Engineer" {
		t.Errorf("records = %+v, want only the 5-day-old entry", recs)
	}
}

func TestJSONFeed_UnreadableDateRejected(t *testing.T) {
	body := `[
		{"role": "Software Engineer", "companyName": "Acme", "datePosted": "whenever",
		 "url": "https://a/1", "locations": ["NY"]},
		{"role": "Data Engineer", "companyName": "Acme",
		 "url": "https://a/2", "locations": ["NY"]}
	]`
	srv := feedServer(t, body)
	defer srv.Close()

	run := testRun(168)
	if err := newJSONFeed(srv).Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := len(run.Records()); got != 0 {
		t.Errorf("records = %d, want 0 (undated feed entries dropped)", got)
	}
}

func TestJSONFeed_NonUSLocationRejected(t *testing.T) {
	fresh := time.Now().UTC().Unix()
	body := fmt.Sprintf(`[{"role": "Software Engineer", "companyName": "Acme",
		"datePosted": %d, "url": "https://a/1", "locations": ["London, UK"]}]`, fresh)
	srv := feedServer(t, body)
	defer srv.Close()

	run := testRun(168)
	if err := newJSONFeed(srv).Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := len(run.Records()); got != 0 {
		t.Errorf("records = %d, want 0", got)
	}
}
