package state

import (
	"time"

	"github.com/CloudKai/fitflow/internal/agenda"
	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/utils"
)

// RefreshSessions rebuilds the upcoming-sessions agenda from the store.
// Errors leave the previous agenda in place; the sessions tab is a
// convenience view and must not take the whole TUI down.
func (m *Model) RefreshSessions() {
	settings, err := m.Store.GetSettings()
	if err != nil {
		return
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		loc = time.Local
	}

	roster, err := m.Store.GetAllClients()
	if err != nil {
		return
	}

	from, err := utils.TodayInTimezone(settings.Timezone)
	if err != nil {
		from = time.Now().In(loc)
	}

	upcoming, err := agenda.NewBuilder(loc).Upcoming(roster, from, constants.DefaultSessionsWindow)
	if err != nil {
		return
	}
	m.SessionsModel.SetSessions(upcoming)
}
