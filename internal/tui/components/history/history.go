package history

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sgoyal/zindagi/internal/tracker"
)

var errStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196"))

type Model struct {
	table  table.Model
	loaded bool
	empty  bool
	err    error
	width  int
	height int
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns([]table.Column{{Title: "Date", Width: 12}}),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return Model{table: t, width: width, height: height}
}

// SetHistory rebuilds the table. Columns follow the profile's current item
// list, so they can change between updates.
func (m *Model) SetHistory(h tracker.History) {
	m.loaded = true
	m.err = nil
	m.empty = len(h.Rows) == 0

	columns := make([]table.Column, 0, len(h.Columns)+1)
	columns = append(columns, table.Column{Title: "Date", Width: 12})
	for _, col := range h.Columns {
		width := len(col)
		if width < 8 {
			width = 8
		}
		columns = append(columns, table.Column{Title: col, Width: width})
	}

	rows := make([]table.Row, len(h.Rows))
	for i, r := range h.Rows {
		row := make(table.Row, 0, len(r.Cells)+1)
		row = append(row, r.Date)
		for _, cell := range r.Cells {
			row = append(row, cell.String())
		}
		rows[i] = row
	}

	// Rows must be cleared before columns shrink, or the table indexes
	// stale cells.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
}

func (m *Model) SetError(err error) {
	m.loaded = true
	m.err = err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return errStyle.Render("Could not load history: " + m.err.Error())
	}
	if !m.loaded {
		return "\n  Loading history..."
	}
	if m.empty {
		return "\n  No past entries yet.\n  Submit a day to see it here."
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}
