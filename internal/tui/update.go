package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/tui/components/clients"
	"github.com/CloudKai/fitflow/internal/tui/components/settings"
	"github.com/CloudKai/fitflow/internal/tui/handlers"
	"github.com/CloudKai/fitflow/internal/tui/state"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Add/Edit Client State
	if m.State == constants.StateAdding || m.State == constants.StateEditing {
		return m, handlers.HandleClientFormState(&m.Model, msg)
	}

	// Handle Edit Settings State
	if m.State == constants.StateEditSettings {
		return m, handlers.HandleSettingsFormState(&m.Model, msg)
	}

	// Handle Confirm Delete State
	if m.State == constants.StateConfirmDelete {
		return m, handlers.HandleConfirmDeleteState(&m.Model, msg)
	}

	// Handle Confirm Restore State
	if m.State == constants.StateConfirmRestore {
		return m, handlers.HandleConfirmRestoreState(&m.Model, msg)
	}

	// Handle Detail State
	if m.State == constants.StateDetail {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "ctrl+c":
				m.Quitting = true
				return m, tea.Quit
			case "esc", "q", "backspace":
				m.SelectedClient = nil
				m.State = constants.StateClients
			case "e":
				if m.SelectedClient != nil {
					client := *m.SelectedClient
					return m, func() tea.Msg { return clients.EditClientMsg{Client: client} }
				}
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		// Adjust height for tabs and help
		listHeight := msg.Height - 4

		h, v := docStyle.GetFrameSize()
		m.ClientList.SetSize(msg.Width-h, listHeight-v)
		m.SessionsModel.SetSize(msg.Width-h, listHeight-v)
		m.ConflictsModel.SetSize(msg.Width-h, listHeight-v)
		m.SettingsModel.SetSize(msg.Width-h, listHeight-v)

	case clients.AddClientMsg:
		m.StatusMessage = ""
		m.EditingClient = nil
		m.ClientForm = &state.ClientFormModel{}
		m.Form = handlers.NewClientForm(m.ClientForm)
		m.State = constants.StateAdding
		return m, m.Form.Init()

	case clients.EditClientMsg:
		client := msg.Client
		m.StatusMessage = ""
		m.SelectedClient = nil
		m.EditingClient = &client
		m.ClientForm = &state.ClientFormModel{
			Name:           client.Name,
			Phone:          client.Phone,
			Location:       client.Location,
			Goals:          client.Goals,
			MedicalHistory: client.MedicalHistory,
			Tags:           strings.Join(client.Tags, " "),
			Recurring:      handlers.RecurringText(client.RecurringSchedules),
			OneTime:        handlers.OneTimeText(client.OneTimeSchedules),
		}
		m.Form = handlers.NewClientForm(m.ClientForm)
		m.State = constants.StateEditing
		return m, m.Form.Init()

	case clients.DeleteClientMsg:
		m.StatusMessage = ""
		m.ClientToDeleteID = msg.ID
		m.State = constants.StateConfirmDelete
		return m, nil

	case clients.RestoreClientMsg:
		m.StatusMessage = ""
		m.ClientToRestoreID = msg.ID
		m.State = constants.StateConfirmRestore
		return m, nil

	case clients.ViewClientMsg:
		client := msg.Client
		m.SelectedClient = &client
		m.State = constants.StateDetail
		return m, nil

	case settings.EditSettingsMsg:
		currentSettings, _ := m.Store.GetSettings()
		m.SettingsForm = &state.SettingsFormModel{
			Timezone:        currentSettings.Timezone,
			AutoBackup:      currentSettings.AutoBackup,
			ReminderLeadMin: strconv.Itoa(currentSettings.ReminderLeadMin),
			ReminderCron:    currentSettings.ReminderCron,
		}
		m.Form = handlers.NewSettingsForm(m.SettingsForm)
		m.State = constants.StateEditSettings
		return m, m.Form.Init()

	case tea.KeyMsg:
		// Leave keys alone while the client list filter is capturing input
		if m.State == constants.StateClients && m.ClientList.Filtering() {
			break
		}

		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.Keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Help):
			m.Help.ShowAll = !m.Help.ShowAll
			return m, nil
		case key.Matches(msg, m.Keys.Back):
			if m.StatusMessage != "" {
				m.StatusMessage = ""
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateClients:
		m.ClientList, cmd = m.ClientList.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateSessions:
		m.SessionsModel, cmd = m.SessionsModel.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateConflicts:
		m.ConflictsModel, cmd = m.ConflictsModel.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateSettings:
		m.SettingsModel, cmd = m.SettingsModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
