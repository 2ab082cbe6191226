package discovery

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/model"
	"github.com/amishk599/jobhunter/internal/store"
)

var runNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeSink struct {
	mu      sync.Mutex
	inserts []model.JobRecord
	dupFrom int // inserts at or past this index report wasNew=false
	err     error
}

func (s *fakeSink) InsertRawJob(rec model.JobRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	s.inserts = append(s.inserts, rec)
	if s.dupFrom > 0 && len(s.inserts) > s.dupFrom {
		return false, nil
	}
	return true, nil
}

func newTestRun(sink model.RecordSink) *Run {
	return NewRun(runNow, 168, filter.NewEntryLevelFilter(nil), sink, nil)
}

func rec(title, company, url string) model.JobRecord {
	return model.JobRecord{
		Title: title, Company: company, URL: url,
		Source: model.SourceGreenhouse, Location: "Remote",
	}
}

func TestAdd_RejectsSeniorBeforeDedup(t *testing.T) {
	r := newTestRun(nil)
	if r.Add(rec("Senior Software Engineer", "Acme", "https://a.example/1")) {
		t.Fatal("senior title admitted")
	}
	// The blocked record must not have claimed the URL or signature.
	if !r.Add(rec("Software Engineer", "Acme", "https://a.example/1")) {
		t.Fatal("url should still be free after a blocked record")
	}
}

func TestAdd_URLDedup(t *testing.T) {
	r := newTestRun(nil)
	if !r.Add(rec("Software Engineer", "Acme", "https://a.example/jobs/1")) {
		t.Fatal("first add rejected")
	}
	// Same URL with trailing slash and whitespace is the same job.
	if r.Add(rec("Software Engineer II", "Other", "  https://a.example/jobs/1/ ")) {
		t.Error("normalized duplicate URL admitted")
	}
}

func TestAdd_SignatureDedup(t *testing.T) {
	r := newTestRun(nil)
	if !r.Add(rec("Software Engineer", "Acme", "https://a.example/1")) {
		t.Fatal("first add rejected")
	}
	// Same company::title on a different board is a duplicate.
	if r.Add(rec("software engineer", "ACME ", "https://b.example/2")) {
		t.Error("signature duplicate admitted")
	}
	if got := len(r.Records()); got != 1 {
		t.Errorf("records = %d, want 1", got)
	}
}

func TestAdd_EmptyURLSkipsURLDedup(t *testing.T) {
	r := newTestRun(nil)
	if !r.Add(rec("Software Engineer", "Acme", "")) {
		t.Fatal("record without URL rejected")
	}
	if !r.Add(rec("Data Engineer", "Acme", "")) {
		t.Error("second URL-less record blocked by url dedup")
	}
}

func TestAdd_StampsAndCounts(t *testing.T) {
	sink := &fakeSink{}
	r := newTestRun(sink)

	in := rec("Software Engineer", "Acme", "https://a.example/1")
	in.Date = "2d"
	if !r.Add(in) {
		t.Fatal("add rejected")
	}

	got := r.Records()[0]
	if got.Date != "Mar 08" {
		t.Errorf("Date = %q, want standardized Mar 08", got.Date)
	}
	if got.LastUpdated == "" {
		t.Error("LastUpdated not stamped")
	}
	if r.Stats()[model.SourceGreenhouse] != 1 {
		t.Errorf("stats = %v", r.Stats())
	}
	if len(sink.inserts) != 1 || r.Inserted() != 1 {
		t.Errorf("sink inserts = %d, counted = %d", len(sink.inserts), r.Inserted())
	}
}

func TestAdd_SinkDuplicateNotCountedAsNew(t *testing.T) {
	sink := &fakeSink{dupFrom: 1}
	r := newTestRun(sink)

	r.Add(rec("Software Engineer", "Acme", "https://a.example/1"))
	r.Add(rec("Data Engineer", "Beta", "https://b.example/2"))

	if r.Inserted() != 1 {
		t.Errorf("Inserted = %d, want 1", r.Inserted())
	}
	fresh := r.Fresh()
	if len(fresh) != 1 || fresh[0].Title != "Software Engineer" {
		t.Errorf("Fresh = %+v, want only the first record", fresh)
	}
}

func TestAdd_SinkErrorStillAdmits(t *testing.T) {
	sink := &fakeSink{err: errors.New("disk full")}
	r := newTestRun(sink)

	if !r.Add(rec("Software Engineer", "Acme", "https://a.example/1")) {
		t.Fatal("persist failure must not reject the record")
	}
	if r.Inserted() != 0 {
		t.Errorf("Inserted = %d, want 0", r.Inserted())
	}
}

func TestAdd_ConcurrentSafe(t *testing.T) {
	r := newTestRun(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// All goroutines race on the same record.
			r.Add(rec("Software Engineer", "Acme", "https://a.example/1"))
		}()
	}
	wg.Wait()
	if got := len(r.Records()); got != 1 {
		t.Errorf("records = %d, want exactly 1 under concurrency", got)
	}
}

func TestAdd_ConcurrentFlushPersistsEveryRecord(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "run.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer s.Close()

	r := newTestRun(s)
	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			title := fmt.Sprintf("Software Engineer %d", i)
			url := fmt.Sprintf("https://a.example/jobs/%d", i)
			if !r.Add(rec(title, "Acme", url)) {
				t.Errorf("distinct record %d rejected", i)
			}
		}(i)
	}
	wg.Wait()

	if got := r.Inserted(); got != n {
		t.Errorf("Inserted = %d, want %d", got, n)
	}
	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[model.StatusNew] != n {
		t.Errorf("sink holds %d records, want %d (every admitted record must be durable)", stats[model.StatusNew], n)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{" https://a.example/x/ ", "https://a.example/x"},
		{"https://a.example/x///", "https://a.example/x"},
		{"https://a.example/x?utm=1", "https://a.example/x?utm=1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSignature(t *testing.T) {
	if Signature(" Acme ", "Software Engineer") != "acme::software engineer" {
		t.Errorf("got %q", Signature(" Acme ", "Software Engineer"))
	}
}
