package cli

import (
	"fmt"
	"strings"

	"github.com/sgoyal/zindagi/internal/validation"
)

type ItemAddCmd struct {
	Profile string `help:"Profile to modify (defaults to the last-used one)."`
	Name    string `arg:"" help:"Name of the item to start tracking."`
}

func (c *ItemAddCmd) Run(ctx *Context) error {
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

	name := strings.TrimSpace(c.Name)
	if err := validation.ItemName(name); err != nil {
		return err
	}

	profile, err := ctx.Store.GetProfile(userID, profileName)
	if err != nil {
		return err
	}
	if profile.HasItem(name) {
		return fmt.Errorf("item %q already exists on profile %q", name, profileName)
	}

	items := append(append([]string(nil), profile.CustomItems...), name)
	if err := ctx.Store.UpdateCustomItems(userID, profileName, items); err != nil {
		return err
	}

	fmt.Printf("Now tracking %q on profile %q.\n", name, profileName)
	return nil
}

type ItemRemoveCmd struct {
	Profile string `help:"Profile to modify (defaults to the last-used one)."`
	Name    string `arg:"" help:"Item to stop tracking."`
}

func (c *ItemRemoveCmd) Run(ctx *Context) error {
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

	profile, err := ctx.Store.GetProfile(userID, profileName)
	if err != nil {
		return err
	}

	items := make([]string, 0, len(profile.CustomItems))
	found := false
	for _, item := range profile.CustomItems {
		if item == c.Name {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return fmt.Errorf("item %q not found on profile %q", c.Name, profileName)
	}

	// Historical entries keep their stored values for this item; history
	// just stops showing the column.
	if err := ctx.Store.UpdateCustomItems(userID, profileName, items); err != nil {
		return err
	}

	fmt.Printf("Stopped tracking %q on profile %q.\n", c.Name, profileName)
	return nil
}

type ItemListCmd struct {
	Profile string `help:"Profile to inspect (defaults to the last-used one)."`
}

func (c *ItemListCmd) Run(ctx *Context) error {
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

	profile, err := ctx.Store.GetProfile(userID, profileName)
	if err != nil {
		return err
	}

	if len(profile.CustomItems) == 0 {
		fmt.Printf("Profile %q tracks no items.\n", profileName)
		return nil
	}
	for _, item := range profile.CustomItems {
		fmt.Println(item)
	}
	return nil
}
