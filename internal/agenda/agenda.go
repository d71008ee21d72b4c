// Package agenda expands client schedules into concrete dated sessions.
// Recurring schedules become weekly recurrence rules; one-time schedules are
// placed on their calendar day. The CLI session listing, the ICS export, and
// the reminder scanner all read from the same expansion so they agree on
// when a session happens.
package agenda

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/utils"
)

// maxOccurrencesPerSchedule caps a single rule's expansion so a malformed
// window cannot produce an unbounded agenda.
const maxOccurrencesPerSchedule = 1000

// Session is one concrete training appointment on the calendar.
type Session struct {
	ClientID   string
	ClientName string
	Category   constants.ScheduleCategory
	Start      time.Time
	End        time.Time
}

// Label renders the session for listings.
func (s Session) Label() string {
	return fmt.Sprintf("%s %s-%s  %s (%s)",
		s.Start.Format("Mon 02/01/06"),
		s.Start.Format(constants.ClockFormat),
		s.End.Format(constants.ClockFormat),
		s.ClientName,
		s.Category)
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// Builder expands schedules in a fixed timezone.
type Builder struct {
	loc *time.Location
}

func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{loc: loc}
}

// Upcoming expands every schedule of every client into sessions inside
// [from, from+days). Sessions come back sorted by start time, then client
// name, so repeated runs print identically.
func (b *Builder) Upcoming(clients []models.Client, from time.Time, days int) ([]Session, error) {
	if days <= 0 {
		return nil, fmt.Errorf("day window must be positive, got %d", days)
	}
	until := from.AddDate(0, 0, days)

	var sessions []Session
	for _, client := range clients {
		expanded, err := b.expandClient(client, from, until)
		if err != nil {
			return nil, fmt.Errorf("failed to expand schedules for %s: %w", client.Name, err)
		}
		sessions = append(sessions, expanded...)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].Start.Equal(sessions[j].Start) {
			return sessions[i].Start.Before(sessions[j].Start)
		}
		if sessions[i].ClientName != sessions[j].ClientName {
			return sessions[i].ClientName < sessions[j].ClientName
		}
		return sessions[i].Category < sessions[j].Category
	})

	return sessions, nil
}

func (b *Builder) expandClient(client models.Client, from, until time.Time) ([]Session, error) {
	var sessions []Session

	for _, rs := range client.RecurringSchedules {
		starts, err := b.recurringStarts(rs, from, until)
		if err != nil {
			return nil, err
		}
		duration, err := windowDuration(rs.TimeRange)
		if err != nil {
			return nil, err
		}
		for _, start := range starts {
			sessions = append(sessions, Session{
				ClientID:   client.ID,
				ClientName: client.Name,
				Category:   constants.CategoryRecurring,
				Start:      start,
				End:        start.Add(duration),
			})
		}
	}

	for _, ots := range client.OneTimeSchedules {
		day, err := ots.DateValue()
		if err != nil {
			return nil, fmt.Errorf("invalid one-time schedule date %q: %w", ots.Date, err)
		}
		start, end, err := utils.SessionWindow(day, ots.TimeRange, b.loc)
		if err != nil {
			return nil, err
		}
		if start.Before(from) || !start.Before(until) {
			continue
		}
		sessions = append(sessions, Session{
			ClientID:   client.ID,
			ClientName: client.Name,
			Category:   constants.CategoryOneTime,
			Start:      start,
			End:        end,
		})
	}

	return sessions, nil
}

// recurringStarts expands one weekly schedule into concrete start instants
// inside [from, until).
func (b *Builder) recurringStarts(rs models.RecurringSchedule, from, until time.Time) ([]time.Time, error) {
	// Anchor the rule on the first occurrence at or after the window
	// start so Between() walks forward from inside the window.
	anchorDay := utils.NextWeekday(from.In(b.loc), rs.Day)
	anchor, err := utils.CombineDateAndClock(anchorDay, rs.Start, b.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid recurring schedule %s: %w", rs, err)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[rs.Day]},
		Dtstart:   anchor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule for %s: %w", rs, err)
	}

	starts := rule.Between(from.In(b.loc), until.In(b.loc), true)
	if len(starts) > maxOccurrencesPerSchedule {
		starts = starts[:maxOccurrencesPerSchedule]
	}

	// Between treats the range as inclusive on both ends; the agenda
	// window is half-open.
	out := starts[:0]
	for _, s := range starts {
		if s.Before(until) {
			out = append(out, s)
		}
	}
	return out, nil
}

func windowDuration(window models.TimeRange) (time.Duration, error) {
	startMin, err := utils.ClockToMinutes(window.Start)
	if err != nil {
		return 0, err
	}
	endMin, err := utils.ClockToMinutes(window.End)
	if err != nil {
		return 0, err
	}
	return time.Duration(endMin-startMin) * time.Minute, nil
}
