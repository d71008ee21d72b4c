package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/utils"
)

// rruleDays maps Go weekdays onto iCalendar BYDAY codes.
var rruleDays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// CalendarICS renders the roster as an iCalendar document. Each recurring
// schedule becomes one weekly RRULE event anchored on its first occurrence
// on or after from and bounded by the day window; each one-time schedule
// inside the window becomes a plain event. Calendar apps expand the rules
// themselves, so the feed stays small no matter how long the window is.
func CalendarICS(clients []models.Client, from time.Time, days int, loc *time.Location) (string, error) {
	if days <= 0 {
		return "", fmt.Errorf("day window must be positive, got %d", days)
	}
	if loc == nil {
		loc = time.Local
	}
	until := from.AddDate(0, 0, days)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//" + constants.AppName + "//EN")

	stamp := time.Now().UTC()
	for _, client := range clients {
		for _, rs := range client.RecurringSchedules {
			anchor := utils.NextWeekday(from.In(loc), rs.Day)
			start, end, err := utils.SessionWindow(anchor, rs.TimeRange, loc)
			if err != nil {
				return "", fmt.Errorf("client %s: %w", client.Name, err)
			}

			opt := rrule.ROption{
				Freq:      rrule.WEEKLY,
				Byweekday: []rrule.Weekday{rruleDays[rs.Day]},
				Dtstart:   start,
				Until:     until.In(loc),
			}
			if _, err := rrule.NewRRule(opt); err != nil {
				return "", fmt.Errorf("client %s: %w", client.Name, err)
			}

			ev := cal.AddEvent(eventUID(client.ID, start))
			ev.SetDtStampTime(stamp)
			ev.SetStartAt(start)
			ev.SetEndAt(end)
			ev.SetSummary("Training: " + client.Name)
			ev.SetDescription(string(constants.CategoryRecurring) + " session")
			ev.SetProperty(ical.ComponentPropertyRrule, opt.RRuleString())
		}

		for _, ots := range client.OneTimeSchedules {
			day, err := ots.DateValue()
			if err != nil {
				return "", fmt.Errorf("client %s: %w", client.Name, err)
			}
			start, end, err := utils.SessionWindow(day, ots.TimeRange, loc)
			if err != nil {
				return "", fmt.Errorf("client %s: %w", client.Name, err)
			}
			if start.Before(from) || !start.Before(until) {
				continue
			}

			ev := cal.AddEvent(eventUID(client.ID, start))
			ev.SetDtStampTime(stamp)
			ev.SetStartAt(start)
			ev.SetEndAt(end)
			ev.SetSummary("Training: " + client.Name)
			ev.SetDescription(string(constants.CategoryOneTime) + " session")
		}
	}

	return cal.Serialize(), nil
}

// eventUID keeps UIDs stable across exports: client id plus start instant.
func eventUID(clientID string, start time.Time) string {
	return fmt.Sprintf("%s-%d@%s", clientID, start.Unix(), constants.AppName)
}
