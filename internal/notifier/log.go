package notifier

import (
	"log/slog"

	"github.com/amishk599/jobhunter/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes newly inserted jobs to the given logger as structured
// messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each job via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each job with company, title, location, source, and URL.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(recs []model.JobRecord) error {
	for _, rec := range recs {
		args := []any{"company", rec.Company, "title", rec.Title, "location", rec.Location, "source", rec.Source, "url", rec.URL}
		if rec.Date != "" {
			args = append(args, "posted", rec.Date)
		}
		if rec.Salary != "" {
			args = append(args, "salary", rec.Salary)
		}
		n.logger.Info("new job", args...)
	}
	return nil
}
