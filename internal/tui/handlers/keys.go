package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/tui/state"
)

// HandleGlobalKeys handles global key presses
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Quitting = true
		return true, tea.Quit
	case "tab", "l":
		// Cycle through main views
		switch m.State {
		case constants.StateClients:
			m.State = constants.StateSessions
			m.RefreshSessions()
		case constants.StateSessions:
			m.State = constants.StateConflicts
			m.UpdateConflictStatus()
		case constants.StateConflicts:
			m.State = constants.StateSettings
		case constants.StateSettings:
			m.State = constants.StateClients
		default:
			// If in a sub-state (like a form), don't switch views with tab
		}
		return true, nil
	case "shift+tab", "h":
		// Cycle backwards through main views
		switch m.State {
		case constants.StateClients:
			m.State = constants.StateSettings
		case constants.StateSessions:
			m.State = constants.StateClients
		case constants.StateConflicts:
			m.State = constants.StateSessions
			m.RefreshSessions()
		case constants.StateSettings:
			m.State = constants.StateConflicts
			m.UpdateConflictStatus()
		default:
			// If in a sub-state, don't switch
		}
		return true, nil
	}
	return false, nil
}
