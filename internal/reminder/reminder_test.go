package reminder

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/storage"
)

const (
	testUser    = "user-1"
	testProfile = "Default"
)

type fakeSessions struct {
	id  string
	err error
}

func (f *fakeSessions) CurrentUserID() (string, error) {
	return f.id, f.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (f *fakeNotifier) Notify(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeNotifier) delivered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

type failingEntryStore struct {
	storage.Provider
}

func (failingEntryStore) HasDailyEntry(userID, profile, date string) (bool, error) {
	return false, errors.New("backend unavailable")
}

func setupTestChecker(t *testing.T) (*Checker, storage.Provider, *fakeNotifier) {
	t.Helper()

	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "test.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	if err := store.CreateProfile(testUser, models.Profile{Name: testProfile, CustomItems: []string{"Workout"}}); err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}

	notifier := &fakeNotifier{}
	checker := &Checker{
		Store:    store,
		Sessions: &fakeSessions{id: testUser},
		Notifier: notifier,
		Now: func() time.Time {
			return time.Date(2025, 8, 1, 20, 0, 0, 0, time.UTC)
		},
	}

	return checker, store, notifier
}

func TestCheckNotifiesWhenNoEntry(t *testing.T) {
	checker, _, notifier := setupTestChecker(t)

	if err := checker.Check(testUser, testProfile); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	delivered := notifier.delivered()
	if len(delivered) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(delivered))
	}
	want := "Don't forget to log your entries for 'Default' today!"
	if delivered[0] != want {
		t.Errorf("expected %q, got %q", want, delivered[0])
	}
}

func TestCheckSuppressedWhenEntryExists(t *testing.T) {
	checker, store, notifier := setupTestChecker(t)

	if err := store.MergeDailyEntry(testUser, testProfile, "2025-08-01", map[string]bool{"Workout": true}); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}

	if err := checker.Check(testUser, testProfile); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(notifier.delivered()) != 0 {
		t.Error("expected no notification when today's entry exists")
	}
}

func TestCheckSkipsOnSessionMismatch(t *testing.T) {
	checker, _, notifier := setupTestChecker(t)
	checker.Sessions = &fakeSessions{id: "someone-else"}

	if err := checker.Check(testUser, testProfile); err != nil {
		t.Fatalf("check should skip silently on mismatch, got %v", err)
	}
	if len(notifier.delivered()) != 0 {
		t.Error("expected no notification for a stale trigger")
	}
}

func TestCheckSkipsOnSessionError(t *testing.T) {
	checker, _, notifier := setupTestChecker(t)
	checker.Sessions = &fakeSessions{err: errors.New("keyring locked")}

	if err := checker.Check(testUser, testProfile); err != nil {
		t.Fatalf("check should skip silently on session error, got %v", err)
	}
	if len(notifier.delivered()) != 0 {
		t.Error("expected no notification when the session is unknown")
	}
}

func TestCheckNotifiesWhenExistenceCheckFails(t *testing.T) {
	checker, store, notifier := setupTestChecker(t)
	checker.Store = failingEntryStore{Provider: store}

	if err := checker.Check(testUser, testProfile); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	// A redundant reminder beats a missed one.
	if len(notifier.delivered()) != 1 {
		t.Errorf("expected 1 notification despite the failed check, got %d", len(notifier.delivered()))
	}
}

func TestCheckSurfacesDeliveryFailure(t *testing.T) {
	checker, _, notifier := setupTestChecker(t)
	notifier.err = errors.New("tray not running")

	if err := checker.Check(testUser, testProfile); err == nil {
		t.Error("expected delivery failure to surface, got nil")
	}
}

func TestNextFire(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 8, 1, 19, 30, 0, 0, loc)

	// Still ahead today.
	fire := NextFire(now, 20, 0)
	if want := time.Date(2025, 8, 1, 20, 0, 0, 0, loc); !fire.Equal(want) {
		t.Errorf("expected %v, got %v", want, fire)
	}

	// Already passed: tomorrow.
	fire = NextFire(now, 19, 0)
	if want := time.Date(2025, 8, 2, 19, 0, 0, 0, loc); !fire.Equal(want) {
		t.Errorf("expected %v, got %v", want, fire)
	}

	// Exactly now counts as passed.
	fire = NextFire(now, 19, 30)
	if want := time.Date(2025, 8, 2, 19, 30, 0, 0, loc); !fire.Equal(want) {
		t.Errorf("expected %v, got %v", want, fire)
	}
}
