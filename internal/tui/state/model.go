package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/CloudKai/fitflow/internal/conflict"
	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/storage"
	"github.com/CloudKai/fitflow/internal/tui/components/clients"
	"github.com/CloudKai/fitflow/internal/tui/components/conflicts"
	"github.com/CloudKai/fitflow/internal/tui/components/sessions"
	"github.com/CloudKai/fitflow/internal/tui/components/settings"
)

// ClientFormModel represents the form model for adding and editing clients.
// Schedules are entered as free text, one schedule per line: "DAY HHmm HHmm"
// for recurring, "DD/MM[/YY] HHmm HHmm" for one-time.
type ClientFormModel struct {
	Name           string
	Phone          string
	Location       string
	Goals          string
	MedicalHistory string
	Tags           string
	Recurring      string
	OneTime        string
}

// SettingsFormModel represents the form model for settings
type SettingsFormModel struct {
	Timezone        string
	AutoBackup      bool
	ReminderLeadMin string
	ReminderCron    string
}

// Model represents the shared state for the TUI
type Model struct {
	Store             storage.Provider
	Detector          *conflict.Detector
	State             constants.SessionState
	PreviousState     constants.SessionState
	Keys              KeyMap
	Help              help.Model
	ClientList        clients.Model
	SessionsModel     sessions.Model
	ConflictsModel    conflicts.Model
	SettingsModel     settings.Model
	Form              *huh.Form
	ClientForm        *ClientFormModel
	SettingsForm      *SettingsFormModel
	EditingClient     *models.Client
	SelectedClient    *models.Client
	Quitting          bool
	Width             int
	Height            int
	ClientToDeleteID  string
	ClientToRestoreID string
	ConflictWarning   string   // banner text shown while the roster has conflicts
	RosterConflicts   []string // conflict lines from the latest roster scan
	StatusMessage     string   // advisory text shown after a save
	FormError         string   // error message to display for form operations
}

// New creates a new state Model
func New(store storage.Provider, detector *conflict.Detector) Model {
	roster, err := store.GetAllClientsIncludingDeleted()
	if err != nil {
		// Initialize with an empty roster on error
		roster = []models.Client{}
	}

	currentSettings, _ := store.GetSettings()

	return Model{
		Store:          store,
		Detector:       detector,
		State:          constants.StateClients,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		ClientList:     clients.New(roster, 0, 0),
		SessionsModel:  sessions.New(nil, constants.DefaultSessionsWindow, 0, 0),
		ConflictsModel: conflicts.New(conflict.Report{}, 0, 0),
		SettingsModel:  settings.New(currentSettings, 0, 0),
	}
}
