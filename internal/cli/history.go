package cli

import (
	"fmt"

	"github.com/sgoyal/zindagi/internal/tracker"
)

type HistoryCmd struct {
	Profile string `help:"Profile to show history for (defaults to the last-used one)."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
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

	history, err := tracker.LoadHistory(ctx.Store, userID, profileName)
	if err != nil {
		return err
	}

	if len(history.Rows) == 0 {
		fmt.Printf("No past entries yet for %q.\n", profileName)
		return nil
	}

	fmt.Printf("%-12s", "Date")
	for _, col := range history.Columns {
		fmt.Printf("  %-12s", col)
	}
	fmt.Println()

	for _, row := range history.Rows {
		fmt.Printf("%-12s", row.Date)
		for _, cell := range row.Cells {
			fmt.Printf("  %-12s", cell)
		}
		fmt.Println()
	}

	return nil
}
