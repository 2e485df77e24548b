package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/validation"
)

type ProfileAddCmd struct {
	Name string `arg:"" help:"Name of the new profile."`
}

func (c *ProfileAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if err := validation.ProfileName(name); err != nil {
		return err
	}

	profile := models.Profile{
		Name:             name,
		CustomItems:      append([]string(nil), models.DefaultItems...),
		NotificationTime: validation.FormatNotificationTime(validation.DefaultHour, validation.DefaultMinute),
	}
	if err := ctx.Store.CreateProfile(userID, profile); err != nil {
		return err
	}

	if err := ctx.Prefs.SetLastProfile(name); err != nil {
		return err
	}

	fmt.Printf("Profile %q created with default items: %s\n", name, strings.Join(profile.CustomItems, ", "))
	return nil
}

type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	profiles, err := ctx.Store.ListProfiles(userID)
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles yet. Add one with 'zindagi profile add <name>'.")
		return nil
	}

	for _, p := range profiles {
		reminderStr := "off"
		if p.NotificationEnabled {
			reminderStr = "daily at " + p.NotificationTime
		}
		lastActive := p.LastActiveDate
		if lastActive == "" {
			lastActive = "never"
		}
		fmt.Printf("%-20s  %d items  reminder: %-16s  last active: %s\n",
			p.Name, len(p.CustomItems), reminderStr, lastActive)
	}

	return nil
}

type ProfileDeleteCmd struct {
	Name string `arg:"" help:"Profile to delete."`
	Yes  bool   `help:"Skip the confirmation prompt."`
}

func (c *ProfileDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Delete profile %q and ALL its daily entries? [y/N] ", c.Name)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.DeleteProfile(userID, c.Name); err != nil {
		return err
	}

	// Forget the deleted profile if it was the remembered one.
	if p, err := ctx.Prefs.Load(); err == nil && p.LastProfile == c.Name {
		if err := ctx.Prefs.ClearLastProfile(); err != nil {
			return err
		}
	}

	fmt.Printf("Profile %q and its entries deleted.\n", c.Name)
	return nil
}

type ProfileSelectCmd struct {
	Name string `arg:"" help:"Profile to use by default."`
}

func (c *ProfileSelectCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	if _, err := ctx.Store.GetProfile(userID, c.Name); err != nil {
		return err
	}
	if err := ctx.Prefs.SetLastProfile(c.Name); err != nil {
		return err
	}

	fmt.Printf("Now tracking %q by default.\n", c.Name)
	return nil
}
