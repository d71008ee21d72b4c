package conflicts

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CloudKai/fitflow/internal/conflict"
)

type Model struct {
	report conflict.Report
	width  int
	height int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	conflictStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))
)

func New(report conflict.Report, width, height int) Model {
	return Model{
		report: report,
		width:  width,
		height: height,
	}
}

func (m *Model) SetReport(report conflict.Report) {
	m.report = report
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

	title := titleStyle.Render("Schedule Conflicts")

	var body string
	if !m.report.HasConflicts() {
		body = okStyle.Render("No schedule conflicts detected.")
	} else {
		lines := make([]string, len(m.report.Conflicts))
		for i, c := range m.report.Conflicts {
			lines[i] = conflictStyle.Render("- " + c)
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
