package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CloudKai/fitflow/internal/conflict"
	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/storage"
	"github.com/CloudKai/fitflow/internal/tui/state"
)

// Model wires the shared TUI state into the bubbletea loop.
type Model struct {
	state.Model
}

func NewModel(store storage.Provider, detector *conflict.Detector) Model {
	m := Model{Model: state.New(store, detector)}

	// Run the roster scan and build the agenda on startup
	m.UpdateConflictStatus()
	m.RefreshSessions()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.Keys.Tab, m.Keys.Quit, m.Keys.Help}
	switch m.State {
	case constants.StateClients:
		keys = append(keys, m.Keys.Add, m.Keys.Edit, m.Keys.Delete, m.Keys.Enter)
	case constants.StateDetail:
		keys = append(keys, m.Keys.Edit, m.Keys.Back)
	case constants.StateSettings:
		keys = append(keys, m.Keys.Edit)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Quit, m.Keys.Help}
	navigation := []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Left, m.Keys.Right, m.Keys.Enter, m.Keys.Back}

	var actions []key.Binding
	switch m.State {
	case constants.StateClients:
		actions = []key.Binding{m.Keys.Add, m.Keys.Edit, m.Keys.Delete, m.Keys.Restore}
	case constants.StateDetail, constants.StateSettings:
		actions = []key.Binding{m.Keys.Edit}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
