package cli

import (
	"testing"
	"time"

	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/prefs"
)

func TestParseDate(t *testing.T) {
	today := time.Now().Format(models.DateFormat)

	if got, err := parseDate("today"); err != nil || got != today {
		t.Errorf("parseDate(today) = (%q, %v), expected (%q, nil)", got, err, today)
	}
	if got, err := parseDate(""); err != nil || got != today {
		t.Errorf("parseDate(\"\") = (%q, %v), expected (%q, nil)", got, err, today)
	}
	if got, err := parseDate("2025-08-01"); err != nil || got != "2025-08-01" {
		t.Errorf("parseDate(2025-08-01) = (%q, %v)", got, err)
	}

	for _, s := range []string{"08-01-2025", "2025/08/01", "yesterday", "2025-13-01"} {
		if _, err := parseDate(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestResolveProfile(t *testing.T) {
	ctx := &Context{Prefs: prefs.NewStore(t.TempDir())}

	// The explicit flag wins.
	if got, err := resolveProfile(ctx, "Explicit"); err != nil || got != "Explicit" {
		t.Errorf("resolveProfile(flag) = (%q, %v)", got, err)
	}

	// Nothing remembered yet: usage error.
	if _, err := resolveProfile(ctx, ""); err == nil {
		t.Error("expected error with no profile available")
	}

	if err := ctx.Prefs.SetLastProfile("Remembered"); err != nil {
		t.Fatalf("failed to set last profile: %v", err)
	}
	if got, err := resolveProfile(ctx, ""); err != nil || got != "Remembered" {
		t.Errorf("resolveProfile(remembered) = (%q, %v)", got, err)
	}
	if got, err := resolveProfile(ctx, "Explicit"); err != nil || got != "Explicit" {
		t.Errorf("flag should still win over remembered, got (%q, %v)", got, err)
	}
}
