// Package reminder decides, once per day per profile, whether to raise a
// local notification, and keeps the per-profile timers that trigger the
// decision.
package reminder

import (
	"fmt"
	"time"

	"github.com/sgoyal/zindagi/internal/logger"
	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/storage"
)

// Notifier delivers a local notification to the user.
type Notifier interface {
	Notify(text string) error
}

// SessionSource reports the currently authenticated user id.
type SessionSource interface {
	CurrentUserID() (string, error)
}

// NextFire returns the next wall-clock occurrence of hour:minute after
// now: today if still ahead, otherwise tomorrow.
func NextFire(now time.Time, hour, minute int) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !fire.After(now) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}

// Checker runs the per-profile reminder decision.
type Checker struct {
	Store    storage.Provider
	Sessions SessionSource
	Notifier Notifier
	Now      func() time.Time // defaults to time.Now
}

func (c *Checker) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Check re-validates the session against the trigger payload, then emits a
// notification unless an entry already exists for today. A failed
// existence check still notifies: a redundant reminder beats a missed one.
func (c *Checker) Check(userID, profileName string) error {
	current, err := c.Sessions.CurrentUserID()
	if err != nil || current != userID {
		logger.Warn("session mismatch, skipping reminder", "profile", profileName, "error", err)
		return nil
	}

	today := c.now().Format(models.DateFormat)

	exists, err := c.Store.HasDailyEntry(userID, profileName, today)
	if err != nil {
		logger.Error("entry check failed, notifying anyway", "profile", profileName, "error", err)
		return c.notify(profileName)
	}
	if exists {
		logger.Debug("entry exists today, suppressing reminder", "profile", profileName, "date", today)
		return nil
	}

	return c.notify(profileName)
}

func (c *Checker) notify(profileName string) error {
	text := fmt.Sprintf("Don't forget to log your entries for '%s' today!", profileName)
	if err := c.Notifier.Notify(text); err != nil {
		return fmt.Errorf("failed to deliver reminder for %q: %w", profileName, err)
	}
	logger.Info("reminder delivered", "profile", profileName)
	return nil
}
