package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRemoteOK_SkipsLeadingMetadata(t *testing.T) {
	posted := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fmt.Sprintf(`[
			{"legal": "API terms of service apply"},
			{"position": "Backend Engineer", "company": "Acme", "location": "Remote US",
			 "url": "https://remoteok.com/jobs/1", "date": %q,
			 "description": "<p>Go services</p>", "salary": "$100k"}
		]`, posted)))
	}))
	defer srv.Close()

	run := testRun(24)
	if err := NewRemoteOK(testClient(srv)).Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	recs := run.Records()
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1 (metadata element skipped)", len(recs))
	}
	if recs[0].Description != "Go services" {
		t.Errorf("Description = %q", recs[0].Description)
	}
	if recs[0].Salary != "$100k" {
		t.Errorf("Salary = %q", recs[0].Salary)
	}
}

func TestRemoteOK_NonUSRemoteRejected(t *testing.T) {
	posted := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fmt.Sprintf(`[
			{"legal": "terms"},
			{"position": "Backend Engineer", "company": "Acme", "location": "Remote EMEA",
			 "url": "https://remoteok.com/jobs/2", "date": %q}
		]`, posted)))
	}))
	defer srv.Close()

	run := testRun(24)
	if err := NewRemoteOK(testClient(srv)).Fetch(context.Background(), run); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := len(run.Records()); got != 0 {
		t.Errorf("records = %d, want 0", got)
	}
}
