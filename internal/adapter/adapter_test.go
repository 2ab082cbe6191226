package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amishk599/jobhunter/internal/discovery"
	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/httpx"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// testClient rewrites every request to hit the test server, keeping the
// adapters' real URL building code in the loop.
func testClient(srv *httptest.Server) *httpx.Client {
	c := httpx.NewClient(nil, nil)
	c.SetTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		req.URL.Scheme = "http"
		req.URL.Host = srv.Listener.Addr().String()
		return http.DefaultTransport.RoundTrip(req)
	}))
	return c
}

func testRun(hours float64) *discovery.Run {
	return discovery.NewRun(time.Now().UTC(), hours, filter.NewEntryLevelFilter(nil), nil, nil)
}

func TestTitleFromSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"modern-health", "Modern Health"},
		{"acme", "Acme"},
		{"dbt_labs", "Dbt Labs"},
	}
	for _, tt := range tests {
		if got := titleFromSlug(tt.in); got != tt.want {
			t.Errorf("titleFromSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	in := `<div><p>We build <b>things</b>.</p>   <p>Join us.</p></div>`
	want := "We build things. Join us."
	if got := stripHTML(in); got != want {
		t.Errorf("stripHTML = %q, want %q", got, want)
	}
	if got := stripHTML("plain  text"); got != "plain text" {
		t.Errorf("plain text = %q", got)
	}
}

func TestNextLink(t *testing.T) {
	header := `<https://boards-api.greenhouse.io/v1/boards/acme/jobs?page=2>; rel="next", <https://x>; rel="last"`
	if got := nextLink(header); got != "https://boards-api.greenhouse.io/v1/boards/acme/jobs?page=2" {
		t.Errorf("nextLink = %q", got)
	}
	if got := nextLink(`<https://x>; rel="prev"`); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	if got := nextLink(""); got != "" {
		t.Errorf("expected empty for no header, got %q", got)
	}
}

func TestParseTime(t *testing.T) {
	if _, ok := parseTime("2026-02-10T09:00:00Z"); !ok {
		t.Error("RFC3339 should parse")
	}
	if _, ok := parseTime("2026-02-10"); !ok {
		t.Error("bare date should parse")
	}
	if _, ok := parseTime("yesterday"); ok {
		t.Error("junk should not parse")
	}
}
