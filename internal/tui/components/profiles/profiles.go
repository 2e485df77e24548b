package profiles

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgoyal/zindagi/internal/models"
)

type SelectProfileMsg struct {
	Name string
}

type AddProfileMsg struct{}

type DeleteProfileMsg struct {
	Name string
}

type Item struct {
	Profile models.Profile
}

func (i Item) Title() string { return i.Profile.Name }
func (i Item) Description() string {
	desc := fmt.Sprintf("%d items", len(i.Profile.CustomItems))
	if i.Profile.NotificationEnabled {
		desc += " | reminder " + i.Profile.NotificationTime
	} else {
		desc += " | reminder off"
	}
	if i.Profile.LastActiveDate != "" {
		desc += " | last logged " + i.Profile.LastActiveDate
	}
	return desc
}
func (i Item) FilterValue() string { return i.Profile.Name }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add profile"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete profile"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(all []models.Profile, width, height int) Model {
	items := make([]list.Item, len(all))
	for i, p := range all {
		items[i] = Item{Profile: p}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Profiles"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetProfiles(all []models.Profile) {
	items := make([]list.Item, len(all))
	for i, p := range all {
		items[i] = Item{Profile: p}
	}
	m.list.SetItems(items)
}

// Select moves the cursor to the named profile if it is in the list.
func (m *Model) Select(name string) {
	for i, it := range m.list.Items() {
		if p, ok := it.(Item); ok && p.Profile.Name == name {
			m.list.Select(i)
			return
		}
	}
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
			return m, func() tea.Msg { return AddProfileMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteProfileMsg{Name: i.Profile.Name} }
			}
		case msg.String() == "enter":
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return SelectProfileMsg{Name: i.Profile.Name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No profiles yet.\n  Press 'a' to create one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
