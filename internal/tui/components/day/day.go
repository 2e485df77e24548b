package day

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/tracker"
)

type SubmitMsg struct{}

type ShiftDateMsg struct {
	Days int
}

var (
	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	yesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	noStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	unsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Submit  key.Binding
	Reset   key.Binding
	PrevDay key.Binding
	NextDay key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "cycle yes/no/unset"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "submit"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "clear all"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next day"),
		),
	}
}

type Model struct {
	entry  *tracker.EntryState
	cursor int
	keys   KeyMap
	width  int
	height int
}

func New(width, height int) Model {
	return Model{keys: DefaultKeyMap(), width: width, height: height}
}

func (m *Model) SetEntry(e *tracker.EntryState) {
	m.entry = e
	if m.cursor >= len(e.Items) {
		m.cursor = 0
	}
}

func (m Model) Entry() *tracker.EntryState {
	return m.entry
}

func (m Model) HelpKeys() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Submit, m.keys.Reset, m.keys.PrevDay, m.keys.NextDay}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.entry == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entry.Items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if m.cursor < len(m.entry.Items) {
				m.entry.Toggle(m.entry.Items[m.cursor])
			}
		case key.Matches(msg, m.keys.Reset):
			m.entry.Reset()
		case key.Matches(msg, m.keys.Submit):
			return m, func() tea.Msg { return SubmitMsg{} }
		case key.Matches(msg, m.keys.PrevDay):
			return m, func() tea.Msg { return ShiftDateMsg{Days: -1} }
		case key.Matches(msg, m.keys.NextDay):
			return m, func() tea.Msg { return ShiftDateMsg{Days: 1} }
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.entry == nil {
		return "\n  No profile selected."
	}

	var b strings.Builder
	b.WriteString(dateStyle.Render("← "+m.entry.Date+" →") + "\n\n")

	if len(m.entry.Items) == 0 {
		b.WriteString("  This profile tracks no items.\n  Switch to the Items tab to add some.")
		return b.String()
	}

	for i, item := range m.entry.Items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(cursor + padRight(item, 24) + renderState(m.entry.States[item]) + "\n")
	}

	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func renderState(s models.TriState) string {
	switch s {
	case models.Yes:
		return yesStyle.Render("[Yes]")
	case models.No:
		return noStyle.Render("[No]")
	default:
		return unsetStyle.Render("[ - ]")
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
