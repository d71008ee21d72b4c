package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/tui/state"
)

// HandleConfirmDeleteState handles the delete confirmation state
func HandleConfirmDeleteState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.ClientToDeleteID != "" {
				if err := m.Store.DeleteClient(m.ClientToDeleteID); err == nil {
					roster, _ := m.Store.GetAllClientsIncludingDeleted()
					m.ClientList.SetClients(roster)
					m.UpdateConflictStatus()
				}
				m.ClientToDeleteID = ""
			}
			m.State = constants.StateClients
		case "n", "N", "esc":
			m.ClientToDeleteID = ""
			m.State = constants.StateClients
		}
	}
	return nil
}

// HandleConfirmRestoreState handles the restore confirmation state
func HandleConfirmRestoreState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if m.ClientToRestoreID != "" {
				if err := m.Store.RestoreClient(m.ClientToRestoreID); err == nil {
					roster, _ := m.Store.GetAllClientsIncludingDeleted()
					m.ClientList.SetClients(roster)
					m.UpdateConflictStatus()
				}
				m.ClientToRestoreID = ""
			}
			m.State = constants.StateClients
		case "n", "N", "esc":
			m.ClientToRestoreID = ""
			m.State = constants.StateClients
		}
	}
	return nil
}
