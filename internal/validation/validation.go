package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Default reminder time used whenever a stored notification_time cannot be
// parsed.
const (
	DefaultHour   = 20
	DefaultMinute = 0
)

var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ProfileName validates a user-chosen profile name.
func ProfileName(name string) error {
	return validation.Validate(strings.TrimSpace(name),
		validation.Required.Error("profile name cannot be empty"),
		validation.Length(1, 64),
	)
}

// ItemName validates a single tracked-item name.
func ItemName(name string) error {
	return validation.Validate(strings.TrimSpace(name),
		validation.Required.Error("item name cannot be empty"),
		validation.Length(1, 64),
	)
}

// Items validates a profile's full item list: every name valid, no
// duplicates (names are case-sensitive).
func Items(items []string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if err := ItemName(item); err != nil {
			return err
		}
		if seen[item] {
			return fmt.Errorf("duplicate item %q", item)
		}
		seen[item] = true
	}
	return nil
}

// NotificationTime validates an HH:MM wall-clock string.
func NotificationTime(s string) error {
	return validation.Validate(s,
		validation.Required.Error("notification time cannot be empty"),
		validation.Match(timePattern).Error("notification time must be HH:MM"),
	)
}

// ParseNotificationTime parses a stored HH:MM string. Malformed values
// recover to the 20:00 default rather than failing the caller.
func ParseNotificationTime(s string) (hour, minute int) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return DefaultHour, DefaultMinute
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return DefaultHour, DefaultMinute
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return DefaultHour, DefaultMinute
	}
	return h, m
}

// FormatNotificationTime renders an (hour, minute) pair as HH:MM.
func FormatNotificationTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
