package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/tracker"
)

type LogCmd struct {
	Profile string   `help:"Profile to log against (defaults to the last-used one)."`
	Date    string   `help:"Date to log (YYYY-MM-DD or 'today')." default:"today"`
	Set     []string `arg:"" help:"Item states as ITEM=yes|no|unset."`
}

func (c *LogCmd) Run(ctx *Context) error {
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
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	state, err := tracker.LoadDay(ctx.Store, userID, profileName, date)
	if err != nil && state == nil {
		return err
	}
	if err != nil {
		// The stored record could not be read; log from a clean slate.
		fmt.Printf("Warning: %v (starting from unset)\n", err)
	}

	for _, assignment := range c.Set {
		item, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q, expected ITEM=yes|no|unset", assignment)
		}

		profile, err := ctx.Store.GetProfile(userID, profileName)
		if err != nil {
			return err
		}
		if !profile.HasItem(item) {
			return fmt.Errorf("profile %q does not track %q", profileName, item)
		}

		switch strings.ToLower(value) {
		case "yes", "y", "true":
			state.States[item] = models.Yes
		case "no", "n", "false":
			state.States[item] = models.No
		case "unset", "-":
			state.States[item] = models.Unset
		default:
			return fmt.Errorf("invalid state %q for %q, expected yes, no or unset", value, item)
		}
	}

	if err := tracker.SaveDay(ctx.Store, state); err != nil {
		if errors.Is(err, tracker.ErrNothingToSubmit) {
			fmt.Println("No data to submit for the selected date.")
			return nil
		}
		return err
	}

	fmt.Printf("Entry for %s submitted for %q.\n", date, profileName)
	return nil
}

type DayCmd struct {
	Profile string `help:"Profile to show (defaults to the last-used one)."`
	Date    string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
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
	date, err := parseDate(c.Date)
	if err != nil {
		return err
	}

	state, err := tracker.LoadDay(ctx.Store, userID, profileName, date)
	if err != nil && state == nil {
		return err
	}
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	fmt.Printf("%s / %s\n\n", profileName, date)
	if len(state.Items) == 0 {
		fmt.Println("  No items tracked on this profile.")
		return nil
	}
	for _, item := range state.Items {
		fmt.Printf("  %-24s %s\n", item, state.States[item])
	}
	return nil
}
