package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sgoyal/zindagi/internal/logger"
	"github.com/sgoyal/zindagi/internal/notifier"
	"github.com/sgoyal/zindagi/internal/reminder"
	"github.com/sgoyal/zindagi/internal/validation"
)

type RemindSetCmd struct {
	Profile string `help:"Profile to configure (defaults to the last-used one)."`
	Time    string `help:"Daily reminder time as HH:MM." default:"20:00"`
	Off     bool   `help:"Disable the daily reminder instead."`
}

func (c *RemindSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	profileName, err := resolveProfile(ctx, c.Profile)
	if err != nil {
		return err
	}

	if c.Off {
		profile, err := ctx.Store.GetProfile(userID, profileName)
		if err != nil {
			return err
		}
		if err := ctx.Store.UpdateNotificationSettings(userID, profileName, false, profile.NotificationTime); err != nil {
			return err
		}
		fmt.Printf("Daily reminder disabled for %q.\n", profileName)
		return nil
	}

	if err := validation.NotificationTime(c.Time); err != nil {
		return err
	}
	if err := ctx.Store.UpdateNotificationSettings(userID, profileName, true, c.Time); err != nil {
		return err
	}

	fmt.Printf("Daily reminder for %q set to %s. Run 'zindagi remind daemon' to deliver it.\n", profileName, c.Time)
	return nil
}

type RemindCheckCmd struct {
	Profile string `help:"Only check this profile (default: all with reminders enabled)."`
}

// Run performs the one-shot reminder decision. This is the entry point a
// system timer (cron, systemd) invokes; it must return quickly.
func (c *RemindCheckCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	checker := &reminder.Checker{
		Store:    ctx.Store,
		Sessions: ctx.Sessions,
		Notifier: notifier.New(),
	}

	if c.Profile != "" {
		return checker.Check(userID, c.Profile)
	}

	profiles, err := ctx.Store.ListProfiles(userID)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if !p.NotificationEnabled {
			continue
		}
		if err := checker.Check(userID, p.Name); err != nil {
			return err
		}
	}
	return nil
}

type RemindDaemonCmd struct {
	SyncEvery time.Duration `help:"How often to re-read reminder settings." default:"1m"`
}

// Run re-registers every enabled profile's trigger and keeps the process
// alive to fire them. Pending triggers do not survive a restart, so this
// startup pass is the re-registration path. While running, settings are
// re-read periodically so changes made from the TUI or another shell take
// effect without restarting the daemon.
func (c *RemindDaemonCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	checker := &reminder.Checker{
		Store:    ctx.Store,
		Sessions: ctx.Sessions,
		Notifier: notifier.New(),
	}
	registry := reminder.NewRegistry(checker)

	count, err := registry.RescheduleAll(userID)
	if err != nil {
		return err
	}
	fmt.Printf("Scheduled %d reminder(s). Press Ctrl+C to stop.\n", count)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(c.SyncEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Re-read the backing file so edits from another process are
			// visible (no-op for the SQLite store).
			if err := ctx.Store.Load(); err != nil {
				logger.Error("failed to reload storage", "error", err)
				continue
			}
			if _, err := registry.Sync(userID); err != nil {
				logger.Error("failed to sync reminder settings", "error", err)
			}
		case <-sig:
			registry.CancelAll()
			return nil
		}
	}
}
