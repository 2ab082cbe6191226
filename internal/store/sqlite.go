// Package store persists discovered jobs and their application lifecycle in
// a local SQLite database. The jobs table holds one row per unique URL; the
// applications table tracks what happened to each job afterwards.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/amishk599/jobhunter/internal/model"
)

// Store wraps the SQLite connection. It implements model.RecordSink so the
// discovery run can flush each admitted record as it arrives instead of
// batching at the end; an interrupted run keeps everything inserted so far.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ model.RecordSink = (*Store)(nil)

// New opens (or creates) the database at dbPath and ensures the schema is
// current.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// sqlite allows one writer at a time; a single pooled connection keeps
	// concurrent InsertRawJob callers from tripping SQLITE_BUSY on each other.
	db.SetMaxOpenConns(1)

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func initSchema(db *sql.DB) error {
	createJobs := `CREATE TABLE IF NOT EXISTS jobs (
		id             TEXT PRIMARY KEY,
		company        TEXT,
		title          TEXT,
		location       TEXT,
		source         TEXT,
		url            TEXT UNIQUE,
		description    TEXT,
		date_posted    TEXT,
		scraped_date   TEXT,
		hiring_manager TEXT,
		salary         TEXT DEFAULT '',
		department     TEXT DEFAULT '',
		sponsorship    TEXT DEFAULT ''
	)`
	if _, err := db.Exec(createJobs); err != nil {
		return fmt.Errorf("creating jobs table: %w", err)
	}

	createApplications := `CREATE TABLE IF NOT EXISTS applications (
		job_id                TEXT PRIMARY KEY REFERENCES jobs(id),
		status                TEXT DEFAULT 'NEW',
		ats_score             REAL,
		resume_pdf_path       TEXT DEFAULT '',
		cover_letter_pdf_path TEXT DEFAULT '',
		applied_date          TEXT,
		notes                 TEXT DEFAULT ''
	)`
	if _, err := db.Exec(createApplications); err != nil {
		return fmt.Errorf("creating applications table: %w", err)
	}

	// Columns added after the first release. SQLite has no ADD COLUMN IF NOT
	// EXISTS, so a duplicate-column error just means the database is current.
	alters := []string{
		"ALTER TABLE jobs ADD COLUMN salary TEXT DEFAULT ''",
		"ALTER TABLE jobs ADD COLUMN department TEXT DEFAULT ''",
		"ALTER TABLE jobs ADD COLUMN sponsorship TEXT DEFAULT ''",
		"ALTER TABLE applications ADD COLUMN cover_letter_pdf_path TEXT DEFAULT ''",
	}
	for _, stmt := range alters {
		if _, err := db.Exec(stmt); err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}

// InsertRawJob stores one discovered job plus a NEW application row. Returns
// true for a brand-new insert, false when the URL was already tracked from
// an earlier run.
func (s *Store) InsertRawJob(rec model.JobRecord) (bool, error) {
	jobID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning job insert: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT OR IGNORE INTO jobs
		(id, company, title, location, source, url, description,
		 date_posted, scraped_date, hiring_manager, salary, department, sponsorship)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		jobID, rec.Company, rec.Title, rec.Location, rec.Source, rec.URL,
		rec.Description, rec.Date, s.now().UTC().Format("2006-01-02 15:04:05"),
		rec.HiringManager, rec.Salary, rec.Department, rec.Sponsorship,
	)
	if err != nil {
		return false, fmt.Errorf("inserting job %q: %w", rec.URL, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking job insert: %w", err)
	}
	if n == 0 {
		// URL already in the DB.
		return false, nil
	}

	if _, err := tx.Exec(
		"INSERT INTO applications (job_id, status) VALUES (?, ?)",
		jobID, model.StatusNew,
	); err != nil {
		return false, fmt.Errorf("creating application row for %s: %w", jobID, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing job insert: %w", err)
	}
	return true, nil
}

const applicationColumns = `
	j.id, j.company, j.title, j.location, j.source, j.url,
	j.description, j.date_posted, j.scraped_date, j.salary, j.sponsorship,
	a.status, a.ats_score, a.resume_pdf_path, a.cover_letter_pdf_path, a.notes`

// GetNewApplications returns the jobs still waiting for a tailored resume:
// status NEW, no resume PDF yet, and a non-empty URL to apply at. Filtering
// on resume_pdf_path is what keeps re-runs from tailoring the same job twice.
func (s *Store) GetNewApplications() ([]model.Application, error) {
	rows, err := s.db.Query(`SELECT ` + applicationColumns + `
		FROM jobs j
		JOIN applications a ON j.id = a.job_id
		WHERE a.status = 'NEW'
		  AND (a.resume_pdf_path IS NULL OR a.resume_pdf_path = '')
		  AND j.url != ''
		ORDER BY j.scraped_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying new applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading new applications: %w", err)
	}
	return apps, nil
}

// GetPendingApplications returns every application still in the NEW queue,
// with or without documents attached. The review TUI splits these into its
// pending and ready panes.
func (s *Store) GetPendingApplications() ([]model.Application, error) {
	rows, err := s.db.Query(`SELECT ` + applicationColumns + `
		FROM jobs j
		JOIN applications a ON j.id = a.job_id
		WHERE a.status = 'NEW'
		  AND j.url != ''
		ORDER BY j.scraped_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying pending applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading pending applications: %w", err)
	}
	return apps, nil
}

// GetJobByID fetches a single job with its application state, or nil if the
// row does not exist.
func (s *Store) GetJobByID(jobID string) (*model.Application, error) {
	row := s.db.QueryRow(`SELECT `+applicationColumns+`
		FROM jobs j
		LEFT JOIN applications a ON j.id = a.job_id
		WHERE j.id = ?`, jobID)

	app, err := scanApplication(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching job %s: %w", jobID, err)
	}
	return &app, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (model.Application, error) {
	var app model.Application
	var status, resume, cover, notes sql.NullString
	var ats sql.NullFloat64
	err := row.Scan(
		&app.JobID, &app.Company, &app.Title, &app.Location, &app.Source,
		&app.URL, &app.Description, &app.DatePosted, &app.ScrapedDate,
		&app.Salary, &app.Sponsorship,
		&status, &ats, &resume, &cover, &notes,
	)
	if err != nil {
		return model.Application{}, err
	}
	app.Status = status.String
	app.ATSScore = ats.Float64
	app.ResumePDFPath = resume.String
	app.CoverLetterPDFPath = cover.String
	app.Notes = notes.String
	return app, nil
}

// ApplicationUpdate carries the optional fields of a partial applications
// update. Nil fields are left untouched.
type ApplicationUpdate struct {
	Status          *string
	ResumePath      *string
	CoverLetterPath *string
	ATSScore        *float64
	Notes           *string
}

// UpdateApplication applies a partial update to one application row. Setting
// status to APPLIED also stamps applied_date. If the row is missing (jobs
// inserted by older versions) it is created first, then updated.
func (s *Store) UpdateApplication(jobID string, upd ApplicationUpdate) error {
	var fields []string
	var values []any

	if upd.Status != nil {
		fields = append(fields, "status = ?")
		values = append(values, *upd.Status)
		if *upd.Status == model.StatusApplied {
			fields = append(fields, "applied_date = ?")
			values = append(values, s.now().UTC().Format("2006-01-02 15:04:05"))
		}
	}
	if upd.ResumePath != nil {
		fields = append(fields, "resume_pdf_path = ?")
		values = append(values, *upd.ResumePath)
	}
	if upd.CoverLetterPath != nil {
		fields = append(fields, "cover_letter_pdf_path = ?")
		values = append(values, *upd.CoverLetterPath)
	}
	if upd.ATSScore != nil {
		fields = append(fields, "ats_score = ?")
		values = append(values, *upd.ATSScore)
	}
	if upd.Notes != nil {
		fields = append(fields, "notes = ?")
		values = append(values, *upd.Notes)
	}
	if len(fields) == 0 {
		return nil
	}

	query := "UPDATE applications SET " + strings.Join(fields, ", ") + " WHERE job_id = ?"
	values = append(values, jobID)

	res, err := s.db.Exec(query, values...)
	if err != nil {
		return fmt.Errorf("updating application %s: %w", jobID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking application update: %w", err)
	}
	if n == 0 {
		// Row missing — create it, then retry the same update.
		if _, err := s.db.Exec(
			"INSERT OR IGNORE INTO applications (job_id, status) VALUES (?, ?)",
			jobID, model.StatusNew,
		); err != nil {
			return fmt.Errorf("creating application row for %s: %w", jobID, err)
		}
		if _, err := s.db.Exec(query, values...); err != nil {
			return fmt.Errorf("updating application %s after insert: %w", jobID, err)
		}
	}
	return nil
}

// Stats returns application counts grouped by status.
func (s *Store) Stats() (map[string]int, error) {
	rows, err := s.db.Query("SELECT status, COUNT(*) FROM applications GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		stats[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}
	return stats, nil
}

// ClearAll wipes both tables. Used by `jobhunter stats --reset` and tests.
func (s *Store) ClearAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning clear: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM applications"); err != nil {
		return fmt.Errorf("clearing applications: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM jobs"); err != nil {
		return fmt.Errorf("clearing jobs: %w", err)
	}
	return tx.Commit()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
