package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sgoyal/zindagi/internal/models"
)

func setupTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	return store
}

func TestJSONInitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("expected error initializing twice, got nil")
	}
}

func TestJSONLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading uninitialized storage, got nil")
	}
}

func TestJSONProfileLifecycle(t *testing.T) {
	store := setupTestJSONStore(t)

	profile := models.Profile{Name: "Default", CustomItems: []string{"Workout"}}
	if err := store.CreateProfile(testUser, profile); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if err := store.CreateProfile(testUser, profile); err == nil {
		t.Error("expected error creating duplicate profile, got nil")
	}

	got, err := store.GetProfile(testUser, "Default")
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if got.NotificationTime != "20:00" {
		t.Errorf("expected default notification time 20:00, got %q", got.NotificationTime)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped on create")
	}

	if _, err := store.GetProfile(testUser, "Missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := store.CreateProfile(testUser, models.Profile{Name: "Default", CustomItems: []string{"Workout"}}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if err := store.MergeDailyEntry(testUser, "Default", "2025-08-01", map[string]bool{"Workout": true}); err != nil {
		t.Fatalf("failed to merge entry: %v", err)
	}

	// A fresh store handle reads the same data back.
	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}

	entry, err := reopened.GetDailyEntry(testUser, "Default", "2025-08-01")
	if err != nil {
		t.Fatalf("failed to get entry after reload: %v", err)
	}
	if !entry.Values["Workout"] {
		t.Error("expected Workout=true to survive reload")
	}
}

func TestJSONMergeDailyEntry(t *testing.T) {
	store := setupTestJSONStore(t)

	if err := store.MergeDailyEntry(testUser, "Default", "2025-08-01", map[string]bool{"A": true, "B": false}); err != nil {
		t.Fatalf("failed to merge entry: %v", err)
	}
	if err := store.MergeDailyEntry(testUser, "Default", "2025-08-01", map[string]bool{"B": true}); err != nil {
		t.Fatalf("failed to merge entry: %v", err)
	}

	entry, err := store.GetDailyEntry(testUser, "Default", "2025-08-01")
	if err != nil {
		t.Fatalf("failed to get entry: %v", err)
	}
	if v, ok := entry.Values["A"]; !ok || !v {
		t.Errorf("expected A untouched by partial update, got %v (present=%v)", v, ok)
	}
	if !entry.Values["B"] {
		t.Error("expected B overwritten to true")
	}
}

func TestJSONTouchLastActiveCreatesProfile(t *testing.T) {
	store := setupTestJSONStore(t)

	if err := store.TouchLastActive(testUser, "Fresh", "2025-08-01"); err != nil {
		t.Fatalf("failed to touch last active: %v", err)
	}

	got, err := store.GetProfile(testUser, "Fresh")
	if err != nil {
		t.Fatalf("failed to get implicitly created profile: %v", err)
	}
	if got.LastActiveDate != "2025-08-01" {
		t.Errorf("expected last active 2025-08-01, got %q", got.LastActiveDate)
	}
}

func TestJSONDeleteProfileCascades(t *testing.T) {
	store := setupTestJSONStore(t)

	if err := store.CreateProfile(testUser, models.Profile{Name: "Default"}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if err := store.MergeDailyEntry(testUser, "Default", "2025-08-01", map[string]bool{"A": true}); err != nil {
		t.Fatalf("failed to merge entry: %v", err)
	}

	if err := store.DeleteProfile(testUser, "Default"); err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}

	entries, err := store.ListDailyEntries(testUser, "Default")
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected entries removed with profile, got %d", len(entries))
	}
}

func TestJSONListDailyEntriesOrder(t *testing.T) {
	store := setupTestJSONStore(t)

	for _, date := range []string{"2025-08-01", "2025-08-10", "2025-08-02"} {
		if err := store.MergeDailyEntry(testUser, "Default", date, map[string]bool{"A": true}); err != nil {
			t.Fatalf("failed to merge entry for %s: %v", date, err)
		}
	}

	entries, err := store.ListDailyEntries(testUser, "Default")
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}

	want := []string{"2025-08-10", "2025-08-02", "2025-08-01"}
	for i, date := range want {
		if entries[i].Date != date {
			t.Errorf("entry %d: expected date %s, got %s", i, date, entries[i].Date)
		}
	}
}

func TestJSONUsersAreIsolated(t *testing.T) {
	store := setupTestJSONStore(t)

	if err := store.CreateProfile("user-a", models.Profile{Name: "Default"}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	profiles, err := store.ListProfiles("user-b")
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected no profiles for other user, got %d", len(profiles))
	}
}
