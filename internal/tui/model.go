package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/prefs"
	"github.com/sgoyal/zindagi/internal/storage"
	"github.com/sgoyal/zindagi/internal/tracker"
	"github.com/sgoyal/zindagi/internal/tui/components/day"
	"github.com/sgoyal/zindagi/internal/tui/components/history"
	"github.com/sgoyal/zindagi/internal/tui/components/manage"
	"github.com/sgoyal/zindagi/internal/tui/components/profiles"
)

type SessionState int

const (
	StateProfiles SessionState = iota
	StateDay
	StateHistory
	StateManage
	StateNewProfile
	StateNewItem
	StateEditReminder
	StateConfirmDelete
)

// historyPollInterval is how often the history view re-reads the store
// while it is on screen.
const historyPollInterval = 2 * time.Second

type historyUpdateMsg struct {
	history tracker.History
	err     error
}

type ProfileFormModel struct {
	Name string
}

type ItemFormModel struct {
	Name string
}

type ReminderFormModel struct {
	Enabled bool
	Time    string
}

type Model struct {
	store  storage.Provider
	prefs  *prefs.Store
	userID string

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	profilesModel profiles.Model
	dayModel      day.Model
	historyModel  history.Model
	manageModel   manage.Model

	form         *huh.Form
	profileForm  *ProfileFormModel
	itemForm     *ItemFormModel
	reminderForm *ReminderFormModel

	activeProfile   string
	profileToDelete string

	watcher   *tracker.Watcher
	historyCh chan historyUpdateMsg

	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, prefsStore *prefs.Store, userID string) Model {
	all, err := store.ListProfiles(userID)
	if err != nil {
		all = nil
	}

	m := Model{
		store:         store,
		prefs:         prefsStore,
		userID:        userID,
		state:         StateProfiles,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		profilesModel: profiles.New(all, 0, 0),
		dayModel:      day.New(0, 0),
		historyModel:  history.New(0, 0),
		manageModel:   manage.New(models.Profile{}, 0, 0),
	}

	// Put the cursor on the profile used last time.
	if p, err := prefsStore.Load(); err == nil && p.LastProfile != "" {
		m.profilesModel.Select(p.LastProfile)
	}

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDay, StateHistory, StateManage:
		keys = append(keys, m.keys.Tab, m.keys.Back)
	}
	if m.state == StateDay {
		keys = append(keys, m.dayModel.HelpKeys()...)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Back, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	if m.state == StateDay {
		actions = m.dayModel.HelpKeys()
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// inProfileScope reports whether a profile tab view is on screen.
func (m Model) inProfileScope() bool {
	switch m.state {
	case StateDay, StateHistory, StateManage:
		return true
	}
	return false
}
