package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const linkedInCards = `
<li>
  <div class="base-card relative w-full">
    <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/12345?refId=abc&trackingId=def"></a>
    <h3 class="base-search-card__title">Software Engineer, New Grad</h3>
    <h4 class="base-search-card__subtitle"><a>Acme Corp</a></h4>
    <span class="job-search-card__location">New York, NY</span>
    <time datetime="2026-03-09">1 day ago</time>
  </div>
</li>
<li>
  <div class="base-card relative w-full">
    <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/67890"></a>
    <h3 class="base-search-card__title">Senior Staff Engineer</h3>
    <h4 class="base-search-card__subtitle"><a>Beta Inc</a></h4>
    <span class="job-search-card__location">Austin, TX</span>
    <time datetime="2026-03-09">1 day ago</time>
  </div>
</li>
`

func newGuest(srv *httptest.Server, queries []string, hours float64) *LinkedInGuest {
	g := NewLinkedInGuest(testClient(srv), queries, hours)
	g.pause = 0
	return g
}

func TestLinkedInGuest_ParsesCards(t *testing.T) {
	var pages atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pages.Add(1) == 1 {
			w.Write([]byte(linkedInCards))
			return
		}
		// Later pages repeat the same cards; zero new jobs ends the query.
		w.Write([]byte(linkedInCards))
	}))
	defer srv.Close()

	run := testRun(24)
	if err := newGuest(srv, []string{"new grad software engineer"}, 24).Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	recs := run.Records()
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1 (senior card rejected)", len(recs))
	}
	got := recs[0]
	if got.URL != "https://www.linkedin.com/jobs/view/12345" {
		t.Errorf("URL = %q, want tracking params stripped", got.URL)
	}
	if got.Company != "Acme Corp" {
		t.Errorf("Company = %q", got.Company)
	}
	if got.Location != "New York, NY" {
		t.Errorf("Location = %q", got.Location)
	}
	if pages.Load() != 2 {
		t.Errorf("pages = %d, want 2 (repeat page stops pagination)", pages.Load())
	}
}

func TestLinkedInGuest_QueryParams(t *testing.T) {
	var gotQuery, gotTPR string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("keywords")
		gotTPR = r.URL.Query().Get("f_TPR")
		w.Write([]byte("")) // empty body ends the query
	}))
	defer srv.Close()

	run := testRun(24)
	if err := newGuest(srv, []string{"SDE 1"}, 24).Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotQuery != "SDE 1" {
		t.Errorf("keywords = %q", gotQuery)
	}
	if gotTPR != "r86400" {
		t.Errorf("f_TPR = %q, want r86400 for 24h", gotTPR)
	}
}

func TestTPRWindow(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{1, "r3600"},
		{6, "r21600"},
		{24, "r86400"},
		{72, "r259200"},
		{168, "r604800"},
	}
	for _, tt := range tests {
		if got := TPRWindow(tt.hours); got != tt.want {
			t.Errorf("TPRWindow(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestLinkedInGuest_DedupAcrossQueries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") != "0" {
			w.Write([]byte(""))
			return
		}
		w.Write([]byte(linkedInCards))
	}))
	defer srv.Close()

	run := testRun(24)
	g := newGuest(srv, []string{"query one", "query two"}, 24)
	if err := g.Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := len(run.Records()); got != 1 {
		t.Errorf("records = %d, want 1 across overlapping queries", got)
	}
}
