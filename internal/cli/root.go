package cli

import (
	"fmt"
	"time"

	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/prefs"
	"github.com/sgoyal/zindagi/internal/session"
	"github.com/sgoyal/zindagi/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Sessions *session.Manager
	Prefs    *prefs.Store
}

// requireUser establishes an identity, creating an anonymous one on first
// use. Every store path is keyed under it.
func requireUser(ctx *Context) (string, error) {
	userID, err := ctx.Sessions.SignInAnonymously()
	if err != nil {
		return "", fmt.Errorf("failed to establish a session: %w", err)
	}
	return userID, nil
}

// resolveProfile picks the profile to operate on: the explicit flag wins,
// then the remembered last-used profile. No profile at all is a usage
// error, the caller cannot proceed without one.
func resolveProfile(ctx *Context, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	p, err := ctx.Prefs.Load()
	if err == nil && p.LastProfile != "" {
		return p.LastProfile, nil
	}

	return "", fmt.Errorf("no profile specified: pass --profile or select one with 'zindagi profile'")
}

// parseDate accepts "today" or a YYYY-MM-DD string and returns the
// canonical date key.
func parseDate(s string) (string, error) {
	if s == "" || s == "today" {
		return time.Now().Format(models.DateFormat), nil
	}
	t, err := time.Parse(models.DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return t.Format(models.DateFormat), nil
}
