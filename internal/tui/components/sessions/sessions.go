package sessions

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CloudKai/fitflow/internal/agenda"
)

type Model struct {
	sessions []agenda.Session
	days     int
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

func New(sessions []agenda.Session, days, width, height int) Model {
	return Model{
		sessions: sessions,
		days:     days,
		width:    width,
		height:   height,
	}
}

func (m *Model) SetSessions(sessions []agenda.Session) {
	m.sessions = sessions
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	title := titleStyle.Render(fmt.Sprintf("Sessions for the next %d day(s)", m.days))

	var body string
	if len(m.sessions) == 0 {
		body = emptyStyle.Render("No upcoming sessions.")
	} else {
		lines := make([]string, len(m.sessions))
		for i, s := range m.sessions {
			lines[i] = lineStyle.Render(s.Label())
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(2, 4).Render(content),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
