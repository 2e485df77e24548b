package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateProfiles:
		content = m.profilesModel.View()
	case StateDay:
		content = m.dayModel.View()
	case StateHistory:
		content = m.historyModel.View()
	case StateManage:
		content = m.manageModel.View()
	case StateNewProfile, StateNewItem, StateEditReminder:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		docStyle.Render(content),
		statusStyle.Render(m.status),
		m.help.View(m),
	)

	return ui
}

func (m Model) viewHeader() string {
	if !m.inProfileScope() {
		return headerStyle.Render("zindagi")
	}

	var tabs []string
	tabs = append(tabs, headerStyle.Render(m.activeProfile+":"))
	for i, title := range []string{"Today", "History", "Items"} {
		if m.state == profileTabs[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete profile '"+m.profileToDelete+"' and ALL its daily entries?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
