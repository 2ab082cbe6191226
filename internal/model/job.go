package model

import "context"

// Source names. Every record carries exactly one of these; the discovery run
// keys its per-source counters on them.
const (
	SourceGreenhouse      = "Greenhouse"
	SourceLever           = "Lever"
	SourceAshby           = "Ashby"
	SourceWorkable        = "Workable"
	SourceSmartRecruiters = "SmartRecruiters"
	SourceBambooHR        = "BambooHR"
	SourceWorkday         = "Workday"
	SourceAdzuna          = "Adzuna"
	SourceRemoteOK        = "RemoteOK"
	SourceJSearch         = "JSearch"
	SourceSimplifyFeeds   = "SimplifyJobs"
	SourceGitHubLists     = "GitHub Lists"
	SourceLinkedIn        = "LinkedIn"
	SourceSimplify        = "Simplify"
	SourceJobright        = "JobRight AI"
)

// KnownSources lists every adapter name in a stable order, used for the
// end-of-run breakdown.
var KnownSources = []string{
	SourceGreenhouse, SourceLever, SourceAshby, SourceWorkable,
	SourceSmartRecruiters, SourceBambooHR, SourceWorkday, SourceAdzuna,
	SourceRemoteOK, SourceJSearch, SourceSimplifyFeeds, SourceGitHubLists,
	SourceLinkedIn, SourceSimplify, SourceJobright,
}

// Sponsorship signal values extracted from job descriptions.
const (
	SponsorshipLikely = "Likely"
	SponsorshipNo     = "No"
)

// Application workflow statuses. Discovery only ever writes StatusNew;
// everything else belongs to the tailoring/submission side.
const (
	StatusNew          = "NEW"
	StatusApplied      = "APPLIED"
	StatusInterview    = "INTERVIEW"
	StatusOffer        = "OFFER"
	StatusRejected     = "REJECTED"
	StatusManualNeeded = "MANUAL_NEEDED"
	StatusSkipped      = "SKIPPED"
)

// JobRecord is the canonical shape every adapter emits. Optional fields are
// empty strings, matching the store's DEFAULT '' columns.
type JobRecord struct {
	Title         string
	Company       string // fallback "Unknown"
	Location      string // free form; may encode remote
	Source        string // one of the Source constants
	URL           string // primary dedup key once normalized
	Description   string // truncated to 2000 chars
	Date          string // original posting date as text
	Salary        string
	Sponsorship   string // "Likely", "No", or ""
	Department    string
	HiringManager string
	LastUpdated   string // stamped on admission
}

// Collector is the single admission point adapters push candidate records
// through. Add returns true when the record survived the seniority gate and
// both dedup checks.
type Collector interface {
	Add(rec JobRecord) bool
}

// RecordSink persists admitted records. InsertRawJob returns true when the
// insert created a new row (false on URL conflict).
type RecordSink interface {
	InsertRawJob(rec JobRecord) (bool, error)
}

// Notifier announces jobs that were inserted for the first time.
type Notifier interface {
	Notify(recs []JobRecord) error
}

// Application is a jobs row joined with its applications row, as handed to
// the tailoring side and the review TUI.
type Application struct {
	JobID              string
	Company            string
	Title              string
	Location           string
	Source             string
	URL                string
	Description        string
	DatePosted         string
	ScrapedDate        string
	Salary             string
	Sponsorship        string
	Status             string
	ATSScore           float64
	ResumePDFPath      string
	CoverLetterPDFPath string
	Notes              string
}

// Tailor is the seam to the external resume/cover-letter subsystem. The
// discovery engine only calls it; it never implements the LLM side.
type Tailor interface {
	TailorApplication(ctx context.Context, app Application) (resumePath, coverLetterPath string, atsScore float64, err error)
}
