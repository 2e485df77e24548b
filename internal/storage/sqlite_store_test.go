package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sgoyal/zindagi/internal/models"
)

const testUser = "user-1"

func setupTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteProfileLifecycle(t *testing.T) {
	store := setupTestSQLiteStore(t)

	profile := models.Profile{
		Name:        "Default",
		CustomItems: []string{"Workout", "Medicines", "Happy"},
	}
	if err := store.CreateProfile(testUser, profile); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	got, err := store.GetProfile(testUser, "Default")
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if len(got.CustomItems) != 3 || got.CustomItems[0] != "Workout" {
		t.Errorf("unexpected custom items: %v", got.CustomItems)
	}
	if got.NotificationTime != "20:00" {
		t.Errorf("expected default notification time 20:00, got %q", got.NotificationTime)
	}
	if got.NotificationEnabled {
		t.Error("notifications should be disabled by default")
	}

	// Duplicate names are rejected.
	if err := store.CreateProfile(testUser, profile); err == nil {
		t.Error("expected error creating duplicate profile, got nil")
	}

	// Another user does not see this profile.
	if _, err := store.GetProfile("user-2", "Default"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestSQLiteUpdateCustomItems(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if err := store.CreateProfile(testUser, models.Profile{Name: "Default", CustomItems: []string{"Workout"}}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	if err := store.UpdateCustomItems(testUser, "Default", []string{"Workout", "Reading"}); err != nil {
		t.Fatalf("failed to update items: %v", err)
	}

	got, err := store.GetProfile(testUser, "Default")
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if len(got.CustomItems) != 2 || got.CustomItems[1] != "Reading" {
		t.Errorf("unexpected custom items: %v", got.CustomItems)
	}

	if err := store.UpdateCustomItems(testUser, "Missing", []string{"X"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing profile, got %v", err)
	}
}

func TestSQLiteNotificationSettings(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if err := store.CreateProfile(testUser, models.Profile{Name: "Default"}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	if err := store.UpdateNotificationSettings(testUser, "Default", true, "07:30"); err != nil {
		t.Fatalf("failed to update notification settings: %v", err)
	}

	got, err := store.GetProfile(testUser, "Default")
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if !got.NotificationEnabled || got.NotificationTime != "07:30" {
		t.Errorf("unexpected settings: enabled=%v time=%q", got.NotificationEnabled, got.NotificationTime)
	}
}

func TestSQLiteTouchLastActiveCreatesProfile(t *testing.T) {
	store := setupTestSQLiteStore(t)

	// First write on an unknown profile creates the record implicitly.
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

	// A later touch only moves the marker.
	if err := store.TouchLastActive(testUser, "Fresh", "2025-08-02"); err != nil {
		t.Fatalf("failed to touch last active again: %v", err)
	}
	got, _ = store.GetProfile(testUser, "Fresh")
	if got.LastActiveDate != "2025-08-02" {
		t.Errorf("expected last active 2025-08-02, got %q", got.LastActiveDate)
	}
}

func TestSQLiteMergeDailyEntry(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if err := store.MergeDailyEntry(testUser, "Default", "2025-08-01", map[string]bool{"A": true, "B": false}); err != nil {
		t.Fatalf("failed to merge entry: %v", err)
	}

	// A second write touching only B must keep A.
	if err := store.MergeDailyEntry(testUser, "Default", "2025-08-01", map[string]bool{"B": true}); err != nil {
		t.Fatalf("failed to merge entry: %v", err)
	}

	entry, err := store.GetDailyEntry(testUser, "Default", "2025-08-01")
	if err != nil {
		t.Fatalf("failed to get entry: %v", err)
	}
	if v, ok := entry.Values["A"]; !ok || !v {
		t.Errorf("expected A to stay true, got %v (present=%v)", v, ok)
	}
	if v := entry.Values["B"]; !v {
		t.Errorf("expected B overwritten to true, got %v", v)
	}

	// Empty updates never touch the store.
	if err := store.MergeDailyEntry(testUser, "Default", "2025-08-01", nil); err != nil {
		t.Fatalf("empty merge should be a no-op, got %v", err)
	}
}

func TestSQLiteHasDailyEntry(t *testing.T) {
	store := setupTestSQLiteStore(t)

	exists, err := store.HasDailyEntry(testUser, "Default", "2025-08-01")
	if err != nil {
		t.Fatalf("failed to check entry: %v", err)
	}
	if exists {
		t.Error("expected no entry before any write")
	}

	if err := store.MergeDailyEntry(testUser, "Default", "2025-08-01", map[string]bool{"A": false}); err != nil {
		t.Fatalf("failed to merge entry: %v", err)
	}

	exists, err = store.HasDailyEntry(testUser, "Default", "2025-08-01")
	if err != nil {
		t.Fatalf("failed to check entry: %v", err)
	}
	if !exists {
		t.Error("expected entry to exist after write")
	}
}

func TestSQLiteListDailyEntriesOrder(t *testing.T) {
	store := setupTestSQLiteStore(t)

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
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, date := range want {
		if entries[i].Date != date {
			t.Errorf("entry %d: expected date %s, got %s", i, date, entries[i].Date)
		}
	}
}

func TestSQLiteDeleteProfileCascades(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if err := store.CreateProfile(testUser, models.Profile{Name: "Default"}); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if err := store.MergeDailyEntry(testUser, "Default", "2025-08-01", map[string]bool{"A": true}); err != nil {
		t.Fatalf("failed to merge entry: %v", err)
	}

	if err := store.DeleteProfile(testUser, "Default"); err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}

	if _, err := store.GetProfile(testUser, "Default"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	entries, err := store.ListDailyEntries(testUser, "Default")
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected entries removed with profile, got %d", len(entries))
	}

	if err := store.DeleteProfile(testUser, "Default"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestSQLiteListProfilesSorted(t *testing.T) {
	store := setupTestSQLiteStore(t)

	for _, name := range []string{"Travel", "Default", "Gym"} {
		if err := store.CreateProfile(testUser, models.Profile{Name: name}); err != nil {
			t.Fatalf("failed to create profile %s: %v", name, err)
		}
	}

	profiles, err := store.ListProfiles(testUser)
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}

	want := []string{"Default", "Gym", "Travel"}
	if len(profiles) != len(want) {
		t.Fatalf("expected %d profiles, got %d", len(want), len(profiles))
	}
	for i, name := range want {
		if profiles[i].Name != name {
			t.Errorf("profile %d: expected %s, got %s", i, name, profiles[i].Name)
		}
	}
}
