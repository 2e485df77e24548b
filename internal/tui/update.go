package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sgoyal/zindagi/internal/logger"
	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/tracker"
	"github.com/sgoyal/zindagi/internal/tui/components/day"
	"github.com/sgoyal/zindagi/internal/tui/components/manage"
	"github.com/sgoyal/zindagi/internal/tui/components/profiles"
	"github.com/sgoyal/zindagi/internal/validation"
)

var profileTabs = []SessionState{StateDay, StateHistory, StateManage}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w, h := m.contentSize()
		m.profilesModel.SetSize(w, h)
		m.dayModel.SetSize(w, h)
		m.historyModel.SetSize(w, h)
		m.manageModel.SetSize(w, h)
		return m, nil

	case historyUpdateMsg:
		if msg.err != nil {
			m.historyModel.SetError(msg.err)
		} else {
			m.historyModel.SetHistory(msg.history)
		}
		if m.historyCh != nil {
			return m, waitForHistory(m.historyCh)
		}
		return m, nil

	case profiles.SelectProfileMsg:
		return m.openProfile(msg.Name)

	case profiles.AddProfileMsg:
		return m.startProfileForm()

	case profiles.DeleteProfileMsg:
		m.profileToDelete = msg.Name
		m.state = StateConfirmDelete
		return m, nil

	case day.SubmitMsg:
		return m.submitDay()

	case day.ShiftDateMsg:
		return m.shiftDate(msg.Days)

	case manage.AddItemMsg:
		return m.startItemForm()

	case manage.RemoveItemMsg:
		return m.removeItem(msg.Name)

	case manage.EditReminderMsg:
		return m.startReminderForm()
	}

	switch m.state {
	case StateNewProfile, StateNewItem, StateEditReminder:
		return m.updateForm(msg)
	case StateConfirmDelete:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "y", "Y":
				return m.deleteProfile()
			case "n", "N", "esc":
				m.profileToDelete = ""
				m.state = StateProfiles
			}
		}
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			m.stopWatcher()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(k, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(k, m.keys.Back) && m.inProfileScope():
			m.stopWatcher()
			m.refreshProfiles()
			m.status = ""
			m.state = StateProfiles
			return m, nil
		case key.Matches(k, m.keys.Tab) && m.inProfileScope():
			return m, m.cycleTab(1)
		case key.Matches(k, m.keys.ShiftTab) && m.inProfileScope():
			return m, m.cycleTab(-1)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateProfiles:
		m.profilesModel, cmd = m.profilesModel.Update(msg)
	case StateDay:
		m.dayModel, cmd = m.dayModel.Update(msg)
	case StateHistory:
		m.historyModel, cmd = m.historyModel.Update(msg)
	case StateManage:
		m.manageModel, cmd = m.manageModel.Update(msg)
	}
	return m, cmd
}

func (m Model) contentSize() (int, int) {
	w := m.width - 4
	h := m.height - 6
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

func (m *Model) refreshProfiles() {
	all, err := m.store.ListProfiles(m.userID)
	if err != nil {
		m.status = "Could not list profiles: " + err.Error()
		return
	}
	m.profilesModel.SetProfiles(all)
}

func (m Model) openProfile(name string) (tea.Model, tea.Cmd) {
	today := time.Now().Format(models.DateFormat)
	entry, err := tracker.LoadDay(m.store, m.userID, name, today)
	if entry == nil {
		m.status = err.Error()
		return m, nil
	}
	if err != nil {
		m.status = "Stored entry could not be read; starting blank."
	} else {
		m.status = ""
	}

	if err := m.prefs.SetLastProfile(name); err != nil {
		logger.Warn("failed to remember profile", "profile", name, "error", err)
	}

	m.activeProfile = name
	m.dayModel.SetEntry(entry)
	m.state = StateDay
	return m, nil
}

// cycleTab moves between the Today, History, and Items tabs.
func (m *Model) cycleTab(delta int) tea.Cmd {
	idx := 0
	for i, s := range profileTabs {
		if s == m.state {
			idx = i
		}
	}
	next := profileTabs[(idx+delta+len(profileTabs))%len(profileTabs)]
	return m.switchTab(next)
}

func (m *Model) switchTab(s SessionState) tea.Cmd {
	if m.state == StateHistory && s != StateHistory {
		m.stopWatcher()
	}

	var cmd tea.Cmd
	switch s {
	case StateHistory:
		if m.watcher == nil {
			cmd = m.startWatcher()
		}
	case StateManage:
		p, err := m.store.GetProfile(m.userID, m.activeProfile)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		w, h := m.contentSize()
		m.manageModel = manage.New(p, w, h)
	}

	m.status = ""
	m.state = s
	return cmd
}

// startWatcher begins polling history for the active profile. The callback
// must not block: Stop waits for the poll goroutine, and the channel is
// only drained while the history view is on screen.
func (m *Model) startWatcher() tea.Cmd {
	ch := make(chan historyUpdateMsg, 1)
	m.historyCh = ch
	m.watcher = tracker.Watch(m.store, m.userID, m.activeProfile, historyPollInterval,
		func(h tracker.History, err error) {
			select {
			case ch <- historyUpdateMsg{history: h, err: err}:
			default:
			}
		})
	return waitForHistory(ch)
}

func (m *Model) stopWatcher() {
	if m.watcher == nil {
		return
	}
	m.watcher.Stop()
	m.watcher = nil
	m.historyCh = nil
}

func waitForHistory(ch chan historyUpdateMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func (m Model) submitDay() (tea.Model, tea.Cmd) {
	entry := m.dayModel.Entry()
	if entry == nil {
		return m, nil
	}

	err := tracker.SaveDay(m.store, entry)
	switch {
	case errors.Is(err, tracker.ErrNothingToSubmit):
		m.status = "No data to submit for the selected date."
	case err != nil:
		m.status = "Save failed: " + err.Error()
	default:
		m.status = "Saved " + entry.Date + "."
	}
	return m, nil
}

func (m Model) shiftDate(days int) (tea.Model, tea.Cmd) {
	cur := m.dayModel.Entry()
	if cur == nil {
		return m, nil
	}
	t, err := time.Parse(models.DateFormat, cur.Date)
	if err != nil {
		return m, nil
	}
	date := t.AddDate(0, 0, days).Format(models.DateFormat)

	entry, err := tracker.LoadDay(m.store, m.userID, m.activeProfile, date)
	if entry == nil {
		m.status = err.Error()
		return m, nil
	}
	if err != nil {
		m.status = "Stored entry could not be read; starting blank."
	} else {
		m.status = ""
	}
	m.dayModel.SetEntry(entry)
	return m, nil
}

func (m Model) startProfileForm() (tea.Model, tea.Cmd) {
	pf := &ProfileFormModel{}
	m.profileForm = pf
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Value(&pf.Name).
				Validate(func(s string) error {
					return validation.ProfileName(strings.TrimSpace(s))
				}),
		),
	)
	m.previousState = m.state
	m.state = StateNewProfile
	return m, m.form.Init()
}

func (m Model) startItemForm() (tea.Model, tea.Cmd) {
	f := &ItemFormModel{}
	m.itemForm = f
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Item name").
				Value(&f.Name).
				Validate(func(s string) error {
					return validation.ItemName(strings.TrimSpace(s))
				}),
		),
	)
	m.previousState = m.state
	m.state = StateNewItem
	return m, m.form.Init()
}

func (m Model) startReminderForm() (tea.Model, tea.Cmd) {
	p, err := m.store.GetProfile(m.userID, m.activeProfile)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	rf := &ReminderFormModel{
		Enabled: p.NotificationEnabled,
		Time:    p.NotificationTime,
	}
	if rf.Time == "" {
		rf.Time = validation.FormatNotificationTime(validation.DefaultHour, validation.DefaultMinute)
	}
	m.reminderForm = rf
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Daily reminder").
				Affirmative("On").
				Negative("Off").
				Value(&rf.Enabled),
			huh.NewInput().
				Title("Reminder time (HH:MM)").
				Value(&rf.Time).
				Validate(validation.NotificationTime),
		),
	)
	m.previousState = m.state
	m.state = StateEditReminder
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.applyForm()
	case huh.StateAborted:
		m.form = nil
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) applyForm() (tea.Model, tea.Cmd) {
	state := m.state
	m.form = nil
	m.state = m.previousState

	switch state {
	case StateNewProfile:
		name := strings.TrimSpace(m.profileForm.Name)
		profile := models.Profile{
			Name:             name,
			CustomItems:      append([]string(nil), models.DefaultItems...),
			NotificationTime: validation.FormatNotificationTime(validation.DefaultHour, validation.DefaultMinute),
		}
		if err := m.store.CreateProfile(m.userID, profile); err != nil {
			m.status = "Could not create profile: " + err.Error()
			return m, nil
		}
		if err := m.prefs.SetLastProfile(name); err != nil {
			logger.Warn("failed to remember profile", "profile", name, "error", err)
		}
		m.refreshProfiles()
		m.profilesModel.Select(name)
		m.status = fmt.Sprintf("Profile %q created.", name)

	case StateNewItem:
		name := strings.TrimSpace(m.itemForm.Name)
		p, err := m.store.GetProfile(m.userID, m.activeProfile)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		if p.HasItem(name) {
			m.status = fmt.Sprintf("Item %q is already tracked.", name)
			return m, nil
		}
		items := append(append([]string(nil), p.CustomItems...), name)
		if err := m.store.UpdateCustomItems(m.userID, m.activeProfile, items); err != nil {
			m.status = "Could not add item: " + err.Error()
			return m, nil
		}
		return m, m.reloadAfterItemChange(fmt.Sprintf("Now tracking %q.", name))

	case StateEditReminder:
		rf := m.reminderForm
		if err := m.store.UpdateNotificationSettings(m.userID, m.activeProfile, rf.Enabled, rf.Time); err != nil {
			m.status = "Could not update reminder: " + err.Error()
			return m, nil
		}
		status := "Daily reminder disabled."
		if rf.Enabled {
			status = "Daily reminder set to " + rf.Time + "."
		}
		return m, m.reloadAfterItemChange(status)
	}

	return m, nil
}

// reloadAfterItemChange rebuilds the manage and day views from the store
// after the profile record changed. Unsaved toggles on the day view are
// reset to what is stored.
func (m *Model) reloadAfterItemChange(status string) tea.Cmd {
	p, err := m.store.GetProfile(m.userID, m.activeProfile)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	w, h := m.contentSize()
	m.manageModel = manage.New(p, w, h)

	date := time.Now().Format(models.DateFormat)
	if cur := m.dayModel.Entry(); cur != nil {
		date = cur.Date
	}
	if entry, _ := tracker.LoadDay(m.store, m.userID, m.activeProfile, date); entry != nil {
		m.dayModel.SetEntry(entry)
	}

	m.status = status
	return nil
}

func (m Model) removeItem(name string) (tea.Model, tea.Cmd) {
	p, err := m.store.GetProfile(m.userID, m.activeProfile)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	items := make([]string, 0, len(p.CustomItems))
	for _, item := range p.CustomItems {
		if item == name {
			continue
		}
		items = append(items, item)
	}
	if len(items) == len(p.CustomItems) {
		return m, nil
	}

	if err := m.store.UpdateCustomItems(m.userID, m.activeProfile, items); err != nil {
		m.status = "Could not remove item: " + err.Error()
		return m, nil
	}
	return m, m.reloadAfterItemChange(fmt.Sprintf("Stopped tracking %q.", name))
}

func (m Model) deleteProfile() (tea.Model, tea.Cmd) {
	name := m.profileToDelete
	m.profileToDelete = ""
	m.state = StateProfiles

	if err := m.store.DeleteProfile(m.userID, name); err != nil {
		m.status = "Could not delete profile: " + err.Error()
		return m, nil
	}

	// Forget the deleted profile if it was the remembered one.
	if p, err := m.prefs.Load(); err == nil && p.LastProfile == name {
		if err := m.prefs.ClearLastProfile(); err != nil {
			logger.Warn("failed to clear remembered profile", "error", err)
		}
	}

	m.refreshProfiles()
	m.status = fmt.Sprintf("Profile %q and its entries deleted.", name)
	return m, nil
}
