package discovery

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amishk599/jobhunter/internal/filter"
	"github.com/amishk599/jobhunter/internal/model"
)

// Run accumulates the records of a single discovery run. Adapters from all
// three phases feed it through Add; it owns the seniority gate, both dedup
// levels, and incremental persistence to the sink. Add is safe for
// concurrent use.
type Run struct {
	Cutoff time.Time
	Filter *filter.EntryLevelFilter

	now    time.Time
	sink   model.RecordSink
	logger *slog.Logger

	mu       sync.Mutex
	seenURLs map[string]struct{}
	seenSigs map[string]struct{}
	records  []model.JobRecord
	fresh    []model.JobRecord
	stats    map[string]int
	inserted int
}

// NewRun creates the shared per-run state. sink may be nil, in which case
// records are only accumulated in memory.
func NewRun(now time.Time, hoursBack float64, f *filter.EntryLevelFilter, sink model.RecordSink, logger *slog.Logger) *Run {
	if logger == nil {
		logger = slog.Default()
	}
	return &Run{
		Cutoff:   filter.Cutoff(now, hoursBack),
		Filter:   f,
		now:      now.UTC(),
		sink:     sink,
		logger:   logger,
		seenURLs: make(map[string]struct{}),
		seenSigs: make(map[string]struct{}),
		stats:    make(map[string]int),
	}
}

// NormalizeURL trims whitespace and trailing slashes. Query strings are kept:
// adapters that need query stripping (LinkedIn tracking params) do it before
// calling Add.
func NormalizeURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// Signature is the second-level dedup key, catching the same job posted on
// different boards.
func Signature(company, title string) string {
	return strings.ToLower(strings.TrimSpace(company)) + "::" + strings.ToLower(title)
}

// Add admits one record: the seniority gate runs before any dedup check, so
// a blocked title never consumes a dedup slot. Returns true when the record
// was new and accepted.
func (r *Run) Add(rec model.JobRecord) bool {
	if filter.IsSenior(rec.Title) {
		return false
	}

	rec.Date = filter.StandardizeDate(rec.Date, r.now)
	url := NormalizeURL(rec.URL)
	sig := Signature(rec.Company, rec.Title)

	r.mu.Lock()
	if url != "" {
		if _, dup := r.seenURLs[url]; dup {
			r.mu.Unlock()
			return false
		}
		r.seenURLs[url] = struct{}{}
	}
	if _, dup := r.seenSigs[sig]; dup {
		r.mu.Unlock()
		return false
	}
	r.seenSigs[sig] = struct{}{}

	rec.URL = url
	rec.LastUpdated = r.now.Format("2006-01-02 15:04:05")
	r.records = append(r.records, rec)
	r.stats[rec.Source]++

	// The sink call stays under the lock: admitting a record and flushing it
	// are one step, so concurrent adapters never race on the database.
	if r.sink != nil {
		wasNew, err := r.sink.InsertRawJob(rec)
		if err != nil {
			r.logger.Warn("persist failed", "source", rec.Source, "url", rec.URL, "error", err)
		} else if wasNew {
			r.inserted++
			r.fresh = append(r.fresh, rec)
		}
	}
	r.mu.Unlock()
	return true
}

// Records returns a copy of everything admitted so far.
func (r *Run) Records() []model.JobRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.JobRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Stats returns per-source admission counts.
func (r *Run) Stats() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int, len(r.stats))
	for k, v := range r.stats {
		out[k] = v
	}
	return out
}

// Inserted reports how many admitted records were new to the sink.
func (r *Run) Inserted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inserted
}

// Fresh returns the records the sink had never seen before, in admission
// order. These are the ones worth notifying about.
func (r *Run) Fresh() []model.JobRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.JobRecord, len(r.fresh))
	copy(out, r.fresh)
	return out
}
