package manage

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sgoyal/zindagi/internal/models"
)

type AddItemMsg struct{}

type RemoveItemMsg struct {
	Name string
}

type EditReminderMsg struct{}

var reminderStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241")).
	MarginTop(1)

type Item struct {
	Name string
}

func (i Item) Title() string       { return i.Name }
func (i Item) Description() string { return "tracked daily" }
func (i Item) FilterValue() string { return i.Name }

type KeyMap struct {
	Add      key.Binding
	Remove   key.Binding
	Reminder key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add item"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove item"),
		),
		Reminder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "reminder settings"),
		),
	}
}

type Model struct {
	list    list.Model
	keys    KeyMap
	profile models.Profile
}

func New(p models.Profile, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Items"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Remove, keys.Reminder}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Remove, keys.Reminder}
	}

	m := Model{list: l, keys: keys}
	m.SetProfile(p)
	return m
}

func (m *Model) SetProfile(p models.Profile) {
	m.profile = p
	items := make([]list.Item, len(p.CustomItems))
	for i, name := range p.CustomItems {
		items[i] = Item{Name: name}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddItemMsg{} }
		case key.Matches(msg, m.keys.Remove):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RemoveItemMsg{Name: i.Name} }
			}
		case key.Matches(msg, m.keys.Reminder):
			return m, func() tea.Msg { return EditReminderMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	reminder := "Reminder: off"
	if m.profile.NotificationEnabled {
		reminder = "Reminder: daily at " + m.profile.NotificationTime
	}

	body := m.list.View()
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		body = "\n  No items tracked.\n  Press 'a' to add one."
	}

	return body + "\n" + reminderStyle.Render(reminder+"  (press 'n' to change)")
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height-2)
}
