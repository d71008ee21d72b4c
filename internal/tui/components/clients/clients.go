package clients

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CloudKai/fitflow/internal/models"
)

type AddClientMsg struct{}

type DeleteClientMsg struct {
	ID string
}

type EditClientMsg struct {
	Client models.Client
}

type RestoreClientMsg struct {
	ID string
}

type ViewClientMsg struct {
	Client models.Client
}

type Item struct {
	Client models.Client
}

func (i Item) Title() string {
	if i.Client.DeletedAt != nil {
		return "👻 " + i.Client.Name + " (deleted)"
	}
	return i.Client.Name
}
func (i Item) Description() string {
	scheduled := len(i.Client.RecurringSchedules) + len(i.Client.OneTimeSchedules)
	desc := fmt.Sprintf("%s | %d schedule(s)", i.Client.Phone, scheduled)
	if i.Client.DeletedAt != nil {
		desc += " | can restore with 'r'"
	}
	return desc
}
func (i Item) FilterValue() string { return i.Client.Name }

type KeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Restore key.Binding
	View    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		View: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(clients []models.Client, width, height int) Model {
	items := make([]list.Item, len(clients))
	for i, c := range clients {
		items[i] = Item{Client: c}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Clients"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	// Add custom keys to list additional short help
	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Restore, keys.View}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Restore, keys.View}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetClients(clients []models.Client) {
	items := make([]list.Item, len(clients))
	for i, c := range clients {
		items[i] = Item{Client: c}
	}
	m.list.SetItems(items)
}

// Filtering reports whether the list's filter input is capturing keys, so
// the main model can keep global bindings out of the way.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddClientMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditClientMsg(i) }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteClientMsg{ID: i.Client.ID} }
			}
		case key.Matches(msg, m.keys.Restore):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Client.DeletedAt != nil {
					return m, func() tea.Msg { return RestoreClientMsg{ID: i.Client.ID} }
				}
			}
		case key.Matches(msg, m.keys.View):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ViewClientMsg(i) }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No clients yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
