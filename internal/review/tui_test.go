package review

import (
	"testing"

	"github.com/amishk599/jobhunter/internal/model"
)

func TestSplitQueue(t *testing.T) {
	apps := []model.Application{
		{JobID: "a", ResumePDFPath: ""},
		{JobID: "b", ResumePDFPath: "/tmp/resume_b.pdf"},
		{JobID: "c", ResumePDFPath: ""},
	}

	pending, ready := SplitQueue(apps)
	if len(pending) != 2 || pending[0].JobID != "a" || pending[1].JobID != "c" {
		t.Errorf("pending = %+v, want a and c", pending)
	}
	if len(ready) != 1 || ready[0].JobID != "b" {
		t.Errorf("ready = %+v, want b", ready)
	}
}

func TestRemoveByID(t *testing.T) {
	apps := []model.Application{{JobID: "a"}, {JobID: "b"}, {JobID: "c"}}

	apps = removeByID(apps, "b")
	if len(apps) != 2 || apps[0].JobID != "a" || apps[1].JobID != "c" {
		t.Errorf("after remove = %+v", apps)
	}

	apps = removeByID(apps, "missing")
	if len(apps) != 2 {
		t.Errorf("removing a missing id changed the slice: %+v", apps)
	}
}

func TestSortApplicationsNewestFirst(t *testing.T) {
	apps := []model.Application{
		{JobID: "old", ScrapedDate: "2025-08-20 09:00:00"},
		{JobID: "new", ScrapedDate: "2025-08-24 09:00:00"},
		{JobID: "tie-b", Company: "Beta", ScrapedDate: "2025-08-22 09:00:00"},
		{JobID: "tie-a", Company: "Acme", ScrapedDate: "2025-08-22 09:00:00"},
	}

	sortApplications(apps)
	got := []string{apps[0].JobID, apps[1].JobID, apps[2].JobID, apps[3].JobID}
	want := []string{"new", "tie-a", "tie-b", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
