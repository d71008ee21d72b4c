package handlers

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/tui/state"
)

// SplitScheduleLines turns the free-text schedule field into one entry per
// non-blank line.
func SplitScheduleLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// RecurringText renders recurring schedules back into the form's line format.
func RecurringText(schedules []models.RecurringSchedule) string {
	lines := make([]string, len(schedules))
	for i, s := range schedules {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// OneTimeText renders one-time schedules back into the form's line format.
func OneTimeText(schedules []models.OneTimeSchedule) string {
	lines := make([]string, len(schedules))
	for i, s := range schedules {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// BuildClient converts the completed form into a client record. For edits the
// existing record supplies the ID and creation timestamp.
func BuildClient(fm *state.ClientFormModel, existing *models.Client) (models.Client, error) {
	recurring, err := cli.ParseRecurringFlags(SplitScheduleLines(fm.Recurring))
	if err != nil {
		return models.Client{}, err
	}
	oneTime, err := cli.ParseOneTimeFlags(SplitScheduleLines(fm.OneTime))
	if err != nil {
		return models.Client{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var client models.Client
	if existing != nil {
		client = *existing
	} else {
		client.ID = uuid.New().String()
		client.CreatedAt = now
	}
	client.Name = strings.TrimSpace(fm.Name)
	client.Phone = strings.TrimSpace(fm.Phone)
	client.Location = strings.TrimSpace(fm.Location)
	client.Goals = strings.TrimSpace(fm.Goals)
	client.MedicalHistory = strings.TrimSpace(fm.MedicalHistory)
	client.UpdatedAt = now
	client.SetTags(strings.Fields(fm.Tags))
	client.SetRecurringSchedules(recurring)
	client.SetOneTimeSchedules(oneTime)

	if err := client.Validate(); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// SaveClient commits a client built from the form. Duplicates abort the save;
// schedule conflicts are advisory and land in the status message.
func SaveClient(m *state.Model, client models.Client) error {
	roster, err := m.Store.GetAllClients()
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}

	isEdit := m.EditingClient != nil
	excludeID := ""
	if isEdit {
		excludeID = client.ID
	}

	if err := cli.CheckDuplicates(roster, excludeID, client); err != nil {
		return err
	}

	conflicts := m.Detector.FindAllConflicts(roster, excludeID, client)

	if isEdit {
		err = m.Store.UpdateClient(client)
	} else {
		err = m.Store.AddClient(client)
	}
	if err != nil {
		return err
	}

	// Refresh the list only after a successful save
	all, err := m.Store.GetAllClientsIncludingDeleted()
	if err == nil {
		m.ClientList.SetClients(all)
	}
	m.UpdateConflictStatus()

	header := constants.MessageScheduleConflictAdded
	success := fmt.Sprintf(constants.MessageAddSuccess, client.Name)
	if isEdit {
		header = constants.MessageScheduleConflictEdited
		success = fmt.Sprintf(constants.MessageEditSuccess, client.Name)
	}
	m.StatusMessage = cli.FormatConflictNotice(header, conflicts, success)
	return nil
}

// HandleClientFormState drives the add/edit client form.
func HandleClientFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = "" // Clear error on cancel
		m.EditingClient = nil
		m.State = constants.StateClients
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		client, err := BuildClient(m.ClientForm, m.EditingClient)
		if err != nil {
			// Stay in form state on error to allow retry
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		if err := SaveClient(m, client); err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.FormError = "" // Clear any previous errors
		m.EditingClient = nil
		m.State = constants.StateClients
	case huh.StateAborted:
		m.FormError = "" // Clear error on abort
		m.EditingClient = nil
		m.State = constants.StateClients
	}
	return tea.Batch(cmds...)
}
