package handlers

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/tui/state"
)

// HandleSettingsFormState drives the settings form.
func HandleSettingsFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = "" // Clear error on cancel
		m.State = constants.StateSettings
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		settings, err := m.Store.GetSettings()
		if err != nil {
			m.FormError = fmt.Sprintf("Failed to load settings: %v", err)
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}

		settings.Timezone = m.SettingsForm.Timezone
		settings.AutoBackup = m.SettingsForm.AutoBackup

		leadMin, err := strconv.Atoi(m.SettingsForm.ReminderLeadMin)
		if err != nil {
			// Stay in form state on conversion error
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		settings.ReminderLeadMin = leadMin
		settings.ReminderCron = m.SettingsForm.ReminderCron

		if err := m.Store.SaveSettings(settings); err != nil {
			m.FormError = fmt.Sprintf("Failed to save settings: %v", err)
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}

		// Refresh settings view only after successful save
		m.SettingsModel.SetSettings(settings)
		m.FormError = ""
		m.State = constants.StateSettings
	case huh.StateAborted:
		m.FormError = "" // Clear error on abort
		m.State = constants.StateSettings
	}
	return tea.Batch(cmds...)
}
