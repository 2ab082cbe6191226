package tailor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/amishk599/jobhunter/internal/model"
	"github.com/amishk599/jobhunter/internal/store"
)

type stubTailor struct {
	resume string
	cover  string
	score  float64
	err    error
	calls  int
}

func (s *stubTailor) TailorApplication(_ context.Context, _ model.Application) (string, string, float64, error) {
	s.calls++
	return s.resume, s.cover, s.score, s.err
}

type fakeStore struct {
	updates map[string]store.ApplicationUpdate
	err     error
}

func (f *fakeStore) UpdateApplication(jobID string, upd store.ApplicationUpdate) error {
	if f.err != nil {
		return f.err
	}
	if f.updates == nil {
		f.updates = make(map[string]store.ApplicationUpdate)
	}
	f.updates[jobID] = upd
	return nil
}

func newRunner(tl model.Tailor, st ApplicationStore) *Runner {
	return &Runner{
		Tailor: tl,
		Store:  st,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func pendingApp(id string) model.Application {
	return model.Application{
		JobID:   id,
		Company: "Acme",
		Title:   "Software Engineer",
		URL:     "https://acme.example/jobs/" + id,
		Status:  model.StatusNew,
	}
}

func TestProcessBatch_RecordsDocuments(t *testing.T) {
	tl := &stubTailor{resume: "/tmp/r.pdf", cover: "/tmp/c.pdf", score: 8.5}
	st := &fakeStore{}

	ready := newRunner(tl, st).ProcessBatch(context.Background(), []model.Application{pendingApp("j1")})

	if len(ready) != 1 {
		t.Fatalf("ready = %d, want 1", len(ready))
	}
	if ready[0].ResumePDFPath != "/tmp/r.pdf" || ready[0].ATSScore != 8.5 {
		t.Errorf("ready[0] = %+v, want tailored paths attached", ready[0])
	}
	upd, ok := st.updates["j1"]
	if !ok {
		t.Fatal("expected an UpdateApplication call for j1")
	}
	if upd.ResumePath == nil || *upd.ResumePath != "/tmp/r.pdf" {
		t.Errorf("persisted resume path = %v", upd.ResumePath)
	}
	if upd.Status != nil {
		t.Error("status must stay NEW until submission")
	}
}

func TestProcessBatch_NopLeavesQueueEmpty(t *testing.T) {
	st := &fakeStore{}
	ready := newRunner(NewNop(), st).ProcessBatch(context.Background(), []model.Application{pendingApp("j1")})

	if len(ready) != 0 {
		t.Errorf("ready = %d, want 0 with the nop tailor", len(ready))
	}
	if len(st.updates) != 0 {
		t.Errorf("updates = %v, want none", st.updates)
	}
}

func TestProcessBatch_ErrorSkipsJobAndContinues(t *testing.T) {
	tl := &stubTailor{err: errors.New("llm down")}
	st := &fakeStore{}

	apps := []model.Application{pendingApp("j1"), pendingApp("j2")}
	ready := newRunner(tl, st).ProcessBatch(context.Background(), apps)

	if len(ready) != 0 {
		t.Errorf("ready = %d, want 0", len(ready))
	}
	if tl.calls != 2 {
		t.Errorf("tailor calls = %d, want 2 (second job still attempted)", tl.calls)
	}
	if len(st.updates) != 0 {
		t.Errorf("failed jobs must not be updated, got %v", st.updates)
	}
}

func TestProcessBatch_AlreadyTailoredSkipsRegeneration(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(existing, []byte("pdf"), 0o644); err != nil {
		t.Fatalf("writing stub pdf: %v", err)
	}

	tl := &stubTailor{resume: "/tmp/new.pdf"}
	st := &fakeStore{}

	app := pendingApp("j1")
	app.ResumePDFPath = existing
	ready := newRunner(tl, st).ProcessBatch(context.Background(), []model.Application{app})

	if tl.calls != 0 {
		t.Errorf("tailor calls = %d, want 0 for an already-tailored job", tl.calls)
	}
	if len(ready) != 1 || ready[0].ResumePDFPath != existing {
		t.Errorf("ready = %+v, want passthrough with the existing path", ready)
	}
}

func TestProcessBatch_StaleResumePathRegenerates(t *testing.T) {
	tl := &stubTailor{resume: "/tmp/new.pdf", cover: "/tmp/new-cl.pdf", score: 7}
	st := &fakeStore{}

	app := pendingApp("j1")
	app.ResumePDFPath = "/does/not/exist.pdf"
	ready := newRunner(tl, st).ProcessBatch(context.Background(), []model.Application{app})

	if tl.calls != 1 {
		t.Errorf("tailor calls = %d, want 1 (missing file is regenerated)", tl.calls)
	}
	if len(ready) != 1 || ready[0].ResumePDFPath != "/tmp/new.pdf" {
		t.Errorf("ready = %+v", ready)
	}
}

func TestProcessBatch_ContextCancelStopsEarly(t *testing.T) {
	tl := &stubTailor{resume: "/tmp/r.pdf"}
	st := &fakeStore{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	apps := []model.Application{pendingApp("j1"), pendingApp("j2")}
	ready := newRunner(tl, st).ProcessBatch(ctx, apps)

	if tl.calls != 0 || len(ready) != 0 {
		t.Errorf("calls = %d ready = %d, want the batch abandoned", tl.calls, len(ready))
	}
}
