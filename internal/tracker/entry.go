// Package tracker holds the per-profile daily-entry state model and its
// synchronization contract with the backing store.
package tracker

import (
	"errors"
	"fmt"

	"github.com/sgoyal/zindagi/internal/logger"
	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/storage"
)

// ErrNothingToSubmit is returned by SaveDay when every item is unset. The
// store is not touched in that case.
var ErrNothingToSubmit = errors.New("nothing to submit")

// EntryState is the in-memory tri-state of each tracked item for one
// profile on one date.
type EntryState struct {
	UserID  string
	Profile string
	Date    string
	Items   []string // display order, the profile's current item list
	States  map[string]models.TriState
}

// NewEntryState returns a state with every item unset.
func NewEntryState(userID, profile, date string, items []string) *EntryState {
	s := &EntryState{
		UserID:  userID,
		Profile: profile,
		Date:    date,
		Items:   items,
		States:  make(map[string]models.TriState, len(items)),
	}
	for _, item := range items {
		s.States[item] = models.Unset
	}
	return s
}

// LoadDay reconciles the stored record with the profile's current item
// list: stored value if the key is present, unset otherwise. A missing
// record resolves everything to unset. On a read failure the returned
// state is still usable (all unset) and the error is surfaced alongside.
func LoadDay(store storage.Provider, userID, profileName, date string) (*EntryState, error) {
	profile, err := store.GetProfile(userID, profileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	state := NewEntryState(userID, profileName, date, profile.CustomItems)

	entry, err := store.GetDailyEntry(userID, profileName, date)
	if err != nil {
		return state, fmt.Errorf("failed to load entry for %s: %w", date, err)
	}

	for _, item := range state.Items {
		if value, ok := entry.Values[item]; ok {
			state.States[item] = models.FromBool(value)
		}
	}

	return state, nil
}

// Toggle advances the named item along the tri-state cycle.
func (s *EntryState) Toggle(item string) {
	s.States[item] = s.States[item].Next()
}

// Reset sets every item back to unset.
func (s *EntryState) Reset() {
	for _, item := range s.Items {
		s.States[item] = models.Unset
	}
}

// Changes builds the partial update for a save: only yes/no items appear.
// An item toggled back to unset after a previous save is simply omitted,
// so its stored value is left as it was: neutral never clears a key.
func (s *EntryState) Changes() map[string]bool {
	changes := make(map[string]bool)
	for _, item := range s.Items {
		if value, ok := s.States[item].Bool(); ok {
			changes[item] = value
		}
	}
	return changes
}

// SaveDay merge-writes the current non-neutral state and stamps the
// profile's last-active date. Keys absent from the update keep their
// stored values; the record is never replaced wholesale.
func SaveDay(store storage.Provider, s *EntryState) error {
	changes := s.Changes()
	if len(changes) == 0 {
		return ErrNothingToSubmit
	}

	if err := store.MergeDailyEntry(s.UserID, s.Profile, s.Date, changes); err != nil {
		return fmt.Errorf("failed to save entry for %s: %w", s.Date, err)
	}

	// The last-active marker is best-effort: the entry itself is saved.
	if err := store.TouchLastActive(s.UserID, s.Profile, s.Date); err != nil {
		logger.Warn("failed to update last active date", "profile", s.Profile, "error", err)
	}

	return nil
}
