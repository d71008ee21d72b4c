package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/constants"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string

	switch m.State {
	case constants.StateClients:
		content = m.viewClients()
	case constants.StateDetail:
		content = m.viewDetail()
	case constants.StateSessions:
		content = m.viewSessions()
	case constants.StateConflicts:
		content = m.viewConflicts()
	case constants.StateSettings:
		content = m.viewSettings()
	case constants.StateAdding, constants.StateEditing, constants.StateEditSettings:
		content = m.viewForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateConfirmRestore:
		content = m.viewConfirmRestore()
	}

	var banner string
	if len(m.RosterConflicts) > 0 && (m.State == constants.StateClients || m.State == constants.StateConflicts) {
		banner = m.viewConflictBanner()
	}

	var status string
	if m.StatusMessage != "" && m.State == constants.StateClients {
		status = statusStyle.Render(m.StatusMessage)
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		status,
		m.Help.View(m),
	)

	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Clients", "Sessions", "Conflicts", "Settings"}
	tabStates := []constants.SessionState{
		constants.StateClients,
		constants.StateSessions,
		constants.StateConflicts,
		constants.StateSettings,
	}
	for i, title := range tabTitles {
		active := m.State == tabStates[i]
		if tabStates[i] == constants.StateClients && m.State == constants.StateDetail {
			active = true
		}
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewClients() string {
	return docStyle.Render(m.ClientList.View())
}

func (m Model) viewSessions() string {
	return docStyle.Render(m.SessionsModel.View())
}

func (m Model) viewConflicts() string {
	return docStyle.Render(m.ConflictsModel.View())
}

func (m Model) viewSettings() string {
	return docStyle.Render(m.SettingsModel.View())
}

func (m Model) viewForm() string {
	view := m.Form.View()
	if m.FormError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.FormError))
	}
	return docStyle.Render(view)
}

func (m Model) viewDetail() string {
	if m.SelectedClient == nil {
		return ""
	}
	c := *m.SelectedClient

	title := c.Name
	if c.IsDeleted() {
		title += " (deleted)"
	}

	rows := []string{
		detailTitleStyle.Render(title),
		fmt.Sprintf("%s %s", detailLabelStyle.Render("ID:"), detailValueStyle.Render(cli.ShortID(c.ID))),
		fmt.Sprintf("%s %s", detailLabelStyle.Render("Phone:"), detailValueStyle.Render(c.Phone)),
	}
	if c.Location != "" {
		rows = append(rows, fmt.Sprintf("%s %s", detailLabelStyle.Render("Location:"), detailValueStyle.Render(c.Location)))
	}
	if c.Goals != "" {
		rows = append(rows, fmt.Sprintf("%s %s", detailLabelStyle.Render("Goals:"), detailValueStyle.Render(c.Goals)))
	}
	if c.MedicalHistory != "" {
		rows = append(rows, fmt.Sprintf("%s %s", detailLabelStyle.Render("Medical History:"), detailValueStyle.Render(c.MedicalHistory)))
	}
	if len(c.Tags) > 0 {
		rows = append(rows, fmt.Sprintf("%s %s", detailLabelStyle.Render("Tags:"), detailValueStyle.Render(fmt.Sprintf("%v", c.Tags))))
	}

	if len(c.RecurringSchedules) > 0 {
		rows = append(rows, "", detailLabelStyle.Render("Recurring:"))
		for _, s := range c.RecurringSchedules {
			rows = append(rows, detailValueStyle.Render("  - "+s.String()))
		}
	}
	if len(c.OneTimeSchedules) > 0 {
		rows = append(rows, "", detailLabelStyle.Render("One-Time:"))
		for _, s := range c.OneTimeSchedules {
			rows = append(rows, detailValueStyle.Render("  - "+s.String()))
		}
	}

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(2).
		Render("Press 'e' to edit, esc to go back")
	rows = append(rows, hint)

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.Width, m.Height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this client?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConfirmRestore() string {
	return lipgloss.Place(m.Width, m.Height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			warningStyle.Render(fmt.Sprintf("Restore deleted client %s?", cli.ShortID(m.ClientToRestoreID))),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewConflictBanner() string {
	if m.ConflictWarning == "" {
		return ""
	}

	var bannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214")).
		Bold(true).
		Padding(0, 1)

	return bannerStyle.Render(m.ConflictWarning)
}
