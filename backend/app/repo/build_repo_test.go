package repo

import (
	"testing"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/models"
)

func seedBuild(t *testing.T, r *BuildRepository, name, version, uploadTime string) *models.Build {
	t.Helper()
	b := &models.Build{
		Name:        name,
		Version:     version,
		UploadTime:  uploadTime,
		FilePath:    "uploads/" + name + ".zip",
		PrinterType: "Prime",
		SubType:     "5K",
		Make:        "MK2",
	}
	if err := r.Create(b); err != nil {
		t.Fatalf("create build: %v", err)
	}
	return b
}

func TestResolve_SingleMatch(t *testing.T) {
	r := NewBuildRepository(openTestDB(t))
	want := seedBuild(t, r, "fw-1", "1.0.3", "2025-01-10 09:00:00")

	got, err := r.Resolve("Prime", "5K", "MK2", "1.0.3")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got == nil || got.ID != want.ID {
		t.Fatalf("expected build %d, got %+v", want.ID, got)
	}
}

func TestResolve_LatestWins(t *testing.T) {
	r := NewBuildRepository(openTestDB(t))
	seedBuild(t, r, "fw-old", "1.0.3", "2025-01-10 09:00:00")
	newest := seedBuild(t, r, "fw-new", "1.0.3", "2025-03-02 17:30:00")
	seedBuild(t, r, "fw-mid", "1.0.3", "2025-02-01 12:00:00")

	got, err := r.Resolve("Prime", "5K", "MK2", "1.0.3")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got == nil || got.ID != newest.ID {
		t.Fatalf("expected newest build %d, got %+v", newest.ID, got)
	}
}

func TestResolve_SameSecondTieBreaksOnID(t *testing.T) {
	r := NewBuildRepository(openTestDB(t))
	seedBuild(t, r, "fw-a", "2.0", "2025-05-05 10:00:00")
	second := seedBuild(t, r, "fw-b", "2.0", "2025-05-05 10:00:00")

	got, err := r.Resolve("Prime", "5K", "MK2", "2.0")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got == nil || got.ID != second.ID {
		t.Fatalf("expected later insert %d to win, got %+v", second.ID, got)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	r := NewBuildRepository(openTestDB(t))
	seedBuild(t, r, "fw-1", "1.0.3", "2025-01-10 09:00:00")

	got, err := r.Resolve("Prime", "5K", "MK2", "9.9.9")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestResolve_ExactStringVersionMatch(t *testing.T) {
	r := NewBuildRepository(openTestDB(t))
	seedBuild(t, r, "fw-1", "1.0", "2025-01-10 09:00:00")

	// "1.0.0" is not "1.0"; version is a build-number string, not semver.
	got, err := r.Resolve("Prime", "5K", "MK2", "1.0.0")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("expected exact string match only, got %+v", got)
	}
}

func TestFindByTarget_NewestFirst(t *testing.T) {
	r := NewBuildRepository(openTestDB(t))
	seedBuild(t, r, "fw-old", "1.0", "2025-01-10 09:00:00")
	seedBuild(t, r, "fw-new", "2.0", "2025-03-02 17:30:00")
	seedBuild(t, r, "fw-mid", "1.5", "2025-02-01 12:00:00")

	builds, err := r.FindByTarget("Prime", "5K", "MK2")
	if err != nil {
		t.Fatalf("FindByTarget: %v", err)
	}
	if len(builds) != 3 {
		t.Fatalf("expected 3 builds, got %d", len(builds))
	}
	if builds[0].Name != "fw-new" || builds[1].Name != "fw-mid" || builds[2].Name != "fw-old" {
		t.Fatalf("wrong order: %s, %s, %s", builds[0].Name, builds[1].Name, builds[2].Name)
	}
}

func TestDeleteByID_Twice(t *testing.T) {
	r := NewBuildRepository(openTestDB(t))
	b := seedBuild(t, r, "fw-1", "1.0", "2025-01-10 09:00:00")

	deleted, err := r.DeleteByID(b.ID)
	if err != nil || !deleted {
		t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = r.DeleteByID(b.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Fatalf("second delete of same id must report not found")
	}
}

func TestListAll_NewestFirst(t *testing.T) {
	r := NewBuildRepository(openTestDB(t))
	seedBuild(t, r, "fw-old", "1.0", "2025-01-10 09:00:00")
	seedBuild(t, r, "fw-new", "2.0", "2025-03-02 17:30:00")

	builds, err := r.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(builds) != 2 || builds[0].Name != "fw-new" {
		t.Fatalf("expected fw-new first, got %+v", builds)
	}
}
