package tailor

import (
	"context"
	"log/slog"
	"os"

	"github.com/amishk599/jobhunter/internal/model"
	"github.com/amishk599/jobhunter/internal/store"
)

// ApplicationStore is the slice of the store the batch loop needs.
type ApplicationStore interface {
	UpdateApplication(jobID string, upd store.ApplicationUpdate) error
}

// Runner processes a batch of pending applications through the Tailor and
// records the resulting document paths.
type Runner struct {
	Tailor model.Tailor
	Store  ApplicationStore
	Logger *slog.Logger
}

// ProcessBatch tailors each application in turn and returns the ones that
// now carry a resume, ready for submission. Jobs whose resume PDF already
// exists on disk are passed through without regenerating; that guard is what
// stops --single-job reruns from producing duplicate PDFs.
func (r *Runner) ProcessBatch(ctx context.Context, apps []model.Application) []model.Application {
	var ready []model.Application
	for _, app := range apps {
		if ctx.Err() != nil {
			r.Logger.Warn("tailoring interrupted", "remaining", len(apps)-len(ready))
			break
		}

		if app.ResumePDFPath != "" && fileExists(app.ResumePDFPath) {
			r.Logger.Info("already tailored", "company", app.Company, "title", app.Title)
			ready = append(ready, app)
			continue
		}

		resumePath, coverPath, score, err := r.Tailor.TailorApplication(ctx, app)
		if err != nil {
			// Leave the row as-is so the next run retries it.
			r.Logger.Error("tailoring failed", "company", app.Company, "title", app.Title, "error", err)
			continue
		}
		if resumePath == "" {
			continue
		}

		if err := r.Store.UpdateApplication(app.JobID, store.ApplicationUpdate{
			ResumePath:      &resumePath,
			CoverLetterPath: &coverPath,
			ATSScore:        &score,
		}); err != nil {
			r.Logger.Error("recording tailored documents failed", "job_id", app.JobID, "error", err)
			continue
		}

		app.ResumePDFPath = resumePath
		app.CoverLetterPDFPath = coverPath
		app.ATSScore = score
		r.Logger.Info("tailored", "company", app.Company, "title", app.Title, "ats_score", score)
		ready = append(ready, app)
	}
	return ready
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
