package models

import "time"

// DateFormat is the canonical key format for daily entries. Zero-padded ISO
// dates sort lexicographically in chronological order, which the history
// listing relies on.
const DateFormat = "2006-01-02"

// TimeFormat is the wall-clock format for notification times.
const TimeFormat = "15:04"

// DefaultItems seeds a freshly created profile.
var DefaultItems = []string{"Workout", "Medicines", "Happy"}

// Profile is a named tracking context owned by a user. The name is unique
// per user and doubles as the record key.
type Profile struct {
	Name                string    `json:"name"`
	CustomItems         []string  `json:"custom_items"`
	NotificationEnabled bool      `json:"notification_enabled"`
	NotificationTime    string    `json:"notification_time"` // HH:MM
	LastActiveDate      string    `json:"last_active_date,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// HasItem reports whether the profile currently tracks the named item.
func (p Profile) HasItem(name string) bool {
	for _, it := range p.CustomItems {
		if it == name {
			return true
		}
	}
	return false
}

// DailyEntry is the stored record for one profile on one calendar date.
// Values only holds keys that were submitted as yes or no; an absent key
// means unset.
type DailyEntry struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Values map[string]bool `json:"values"`
}
