package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgoyal/zindagi/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	m := tui.NewModel(ctx.Store, ctx.Prefs, userID)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
