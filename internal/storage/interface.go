package storage

import (
	"errors"

	"github.com/sgoyal/zindagi/internal/models"
)

// ErrNotFound is returned when a requested profile does not exist.
var ErrNotFound = errors.New("not found")

// Provider is the document store behind the tracker. Profiles live under
// (userID, name); daily entries under (userID, profile, date). All entry
// writes are merge-style: only the supplied item keys are touched.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profiles
	CreateProfile(userID string, p models.Profile) error
	GetProfile(userID, name string) (models.Profile, error)
	ListProfiles(userID string) ([]models.Profile, error)
	UpdateCustomItems(userID, name string, items []string) error
	UpdateNotificationSettings(userID, name string, enabled bool, timeHHMM string) error
	TouchLastActive(userID, name, date string) error
	DeleteProfile(userID, name string) error

	// Daily entries
	MergeDailyEntry(userID, profile, date string, values map[string]bool) error
	GetDailyEntry(userID, profile, date string) (models.DailyEntry, error)
	HasDailyEntry(userID, profile, date string) (bool, error)
	ListDailyEntries(userID, profile string) ([]models.DailyEntry, error)

	// Utils
	GetConfigPath() string
}
