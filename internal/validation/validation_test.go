package validation

import (
	"strings"
	"testing"
)

func TestProfileName(t *testing.T) {
	if err := ProfileName("Default"); err != nil {
		t.Errorf("expected valid name, got %v", err)
	}
	if err := ProfileName(""); err == nil {
		t.Error("expected error for empty name")
	}
	if err := ProfileName("   "); err == nil {
		t.Error("expected error for whitespace-only name")
	}
	if err := ProfileName(strings.Repeat("x", 65)); err == nil {
		t.Error("expected error for overlong name")
	}
}

func TestItems(t *testing.T) {
	if err := Items([]string{"Workout", "Medicines", "Happy"}); err != nil {
		t.Errorf("expected valid items, got %v", err)
	}
	if err := Items([]string{"Workout", "Workout"}); err == nil {
		t.Error("expected error for duplicate items")
	}
	if err := Items([]string{"Workout", ""}); err == nil {
		t.Error("expected error for empty item name")
	}
	// Names are case-sensitive, so these are distinct.
	if err := Items([]string{"Workout", "workout"}); err != nil {
		t.Errorf("expected case-distinct items to be valid, got %v", err)
	}
}

func TestNotificationTime(t *testing.T) {
	valid := []string{"00:00", "07:30", "9:05", "23:59"}
	for _, s := range valid {
		if err := NotificationTime(s); err != nil {
			t.Errorf("expected %q valid, got %v", s, err)
		}
	}

	invalid := []string{"", "24:00", "12:60", "noon", "12", "12:3"}
	for _, s := range invalid {
		if err := NotificationTime(s); err == nil {
			t.Errorf("expected %q invalid", s)
		}
	}
}

func TestParseNotificationTime(t *testing.T) {
	if h, m := ParseNotificationTime("07:30"); h != 7 || m != 30 {
		t.Errorf("expected 7:30, got %d:%d", h, m)
	}
	if h, m := ParseNotificationTime("23:59"); h != 23 || m != 59 {
		t.Errorf("expected 23:59, got %d:%d", h, m)
	}

	// Malformed values recover to the default instead of failing.
	fallbacks := []string{"", "nope", "25:00", "12:75", "12", "a:b"}
	for _, s := range fallbacks {
		if h, m := ParseNotificationTime(s); h != DefaultHour || m != DefaultMinute {
			t.Errorf("expected %q to fall back to %02d:%02d, got %d:%d", s, DefaultHour, DefaultMinute, h, m)
		}
	}
}

func TestFormatNotificationTime(t *testing.T) {
	if got := FormatNotificationTime(7, 5); got != "07:05" {
		t.Errorf("expected 07:05, got %q", got)
	}
	if got := FormatNotificationTime(DefaultHour, DefaultMinute); got != "20:00" {
		t.Errorf("expected 20:00, got %q", got)
	}
}
