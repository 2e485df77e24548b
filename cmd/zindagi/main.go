package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/sgoyal/zindagi/internal/apperr"
	"github.com/sgoyal/zindagi/internal/cli"
	"github.com/sgoyal/zindagi/internal/logger"
	"github.com/sgoyal/zindagi/internal/prefs"
	"github.com/sgoyal/zindagi/internal/session"
	"github.com/sgoyal/zindagi/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/zindagi/zindagi.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init    cli.InitCmd `cmd:"" help:"Initialize zindagi storage."`
	Tui     cli.TuiCmd  `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Profile struct {
		Add    cli.ProfileAddCmd    `cmd:"" help:"Create a new profile."`
		List   cli.ProfileListCmd   `cmd:"" help:"List all profiles."`
		Select cli.ProfileSelectCmd `cmd:"" help:"Choose the default profile."`
		Delete cli.ProfileDeleteCmd `cmd:"" help:"Delete a profile and all its entries."`
	} `cmd:"" help:"Manage profiles."`
	Item struct {
		Add    cli.ItemAddCmd    `cmd:"" help:"Start tracking an item."`
		Remove cli.ItemRemoveCmd `cmd:"" help:"Stop tracking an item."`
		List   cli.ItemListCmd   `cmd:"" help:"List tracked items."`
	} `cmd:"" help:"Manage a profile's tracked items."`
	Log     cli.LogCmd     `cmd:"" help:"Record item states for a date."`
	Day     cli.DayCmd     `cmd:"" help:"Show one day's entry."`
	History cli.HistoryCmd `cmd:"" help:"Show past entries."`
	Remind  struct {
		Set    cli.RemindSetCmd    `cmd:"" help:"Configure the daily reminder."`
		Check  cli.RemindCheckCmd  `cmd:"" help:"Run the reminder decision once."`
		Daemon cli.RemindDaemonCmd `cmd:"" help:"Keep reminder triggers armed."`
	} `cmd:"" help:"Daily reminders."`
	Logout cli.LogoutCmd `cmd:"" help:"Discard the stored identity."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("zindagi"),
		kong.Description("Personal daily-habit tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	configDir := filepath.Dir(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", apperr.Formatf("failed to initialize logging: %v", err))
		os.Exit(1)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:    store,
		Sessions: session.NewManager(configDir),
		Prefs:    prefs.NewStore(configDir),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		apperr.Fatal(err)
	}
}
