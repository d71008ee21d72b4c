package conflict

import (
	"fmt"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
)

// Result is the outcome of checking one candidate schedule against one
// existing client. Schedule is the conflicting booking on the existing
// client's side, nil when nothing overlaps.
type Result struct {
	Schedule models.Schedule
	Category constants.ScheduleCategory
	With     string // existing client's display name
}

// HasConflict reports whether a conflicting schedule was found.
func (r Result) HasConflict() bool {
	return r.Schedule != nil
}

// Description renders the single-sided conflict line, e.g.
// "Recurring schedule conflict between Monday with John Doe".
// Callers split this text on the literal " between " token, so the wording
// around it must not change.
func (r Result) Description() string {
	if !r.HasConflict() {
		return ""
	}
	return fmt.Sprintf("%s schedule conflict between %s with %s", r.Category, r.Schedule.When(), r.With)
}

// DescribeAgainst renders the two-sided form used in cross-client reports:
// both time windows with their owners' names, e.g.
// "Recurring schedule conflict between 1400-1500 with John Doe and 1430-1530 with Jane Smith".
func (r Result) DescribeAgainst(candidate models.Schedule, candidateName string) string {
	existing := r.Schedule.Window()
	cand := candidate.Window()
	return fmt.Sprintf("%s schedule conflict between %s-%s with %s and %s-%s with %s",
		r.Category, existing.Start, existing.End, r.With, cand.Start, cand.End, candidateName)
}

// Detector finds overlaps between client schedules. It holds no state; all
// inputs are read-only and every call builds a fresh result, so concurrent
// use is safe.
type Detector struct{}

// New creates a new Detector
func New() *Detector {
	return &Detector{}
}

// CheckScheduleConflict checks one candidate schedule against an existing
// client. The existing client's recurring schedules are scanned first in
// stored order, then the one-time schedules; the first overlap wins, so the
// reported booking is stable when several of them overlap the candidate.
func (d *Detector) CheckScheduleConflict(existing models.Client, candidate models.Schedule) Result {
	for _, rs := range existing.RecurringSchedules {
		if schedulesConflict(rs, candidate) {
			return Result{Schedule: rs, Category: constants.CategoryRecurring, With: existing.Name}
		}
	}
	for _, ots := range existing.OneTimeSchedules {
		if schedulesConflict(ots, candidate) {
			return Result{Schedule: ots, Category: constants.CategoryOneTime, With: existing.Name}
		}
	}
	return Result{}
}

// CheckInternalScheduleConflicts compares every unordered pair of the
// candidate's own schedules and returns one description per conflicting
// pair. Enumeration order is fixed: recurring pairs, then recurring against
// one-time, then one-time pairs, each by stored position, so repeated runs
// emit the same list.
func (d *Detector) CheckInternalScheduleConflicts(candidate models.Client) []string {
	var conflicts []string

	rec := candidate.RecurringSchedules
	once := candidate.OneTimeSchedules

	for i := 0; i < len(rec); i++ {
		for j := i + 1; j < len(rec); j++ {
			if schedulesConflict(rec[i], rec[j]) {
				conflicts = append(conflicts, internalDescription(rec[i], rec[j]))
			}
		}
	}
	for i := 0; i < len(rec); i++ {
		for j := 0; j < len(once); j++ {
			if schedulesConflict(rec[i], once[j]) {
				conflicts = append(conflicts, internalDescription(rec[i], once[j]))
			}
		}
	}
	for i := 0; i < len(once); i++ {
		for j := i + 1; j < len(once); j++ {
			if schedulesConflict(once[i], once[j]) {
				conflicts = append(conflicts, internalDescription(once[i], once[j]))
			}
		}
	}
	return conflicts
}

// FindAllConflicts runs the full advisory pass for a candidate record:
// conflicts among the candidate's own schedules first, then conflicts
// against every other client in roster order. excludeID names the record
// the candidate replaces (the client being edited); pass "" when adding.
// The result is advisory only and never blocks a save.
func (d *Detector) FindAllConflicts(roster []models.Client, excludeID string, candidate models.Client) []string {
	all := d.CheckInternalScheduleConflicts(candidate)
	for _, existing := range roster {
		if excludeID != "" && existing.ID == excludeID {
			continue
		}
		all = append(all, d.checkAgainstClient(existing, candidate)...)
	}
	return all
}

// checkAgainstClient reports every conflict between the candidate's
// schedules and one existing client: candidate recurring schedules first,
// then one-time. Each candidate schedule contributes at most one line (the
// existing client's first overlapping booking).
func (d *Detector) checkAgainstClient(existing, candidate models.Client) []string {
	var conflicts []string
	for _, rs := range candidate.RecurringSchedules {
		if result := d.CheckScheduleConflict(existing, rs); result.HasConflict() {
			conflicts = append(conflicts, result.DescribeAgainst(rs, candidate.Name))
		}
	}
	for _, ots := range candidate.OneTimeSchedules {
		if result := d.CheckScheduleConflict(existing, ots); result.HasConflict() {
			conflicts = append(conflicts, result.DescribeAgainst(ots, candidate.Name))
		}
	}
	return conflicts
}

// schedulesConflict applies the pairwise rules: recurring schedules clash on
// the same weekday, one-time schedules on the same date, and a mixed pair
// clashes when the dated session falls on the recurring weekday. In every
// case the time windows must also overlap.
func schedulesConflict(a, b models.Schedule) bool {
	if !a.Window().Overlaps(b.Window()) {
		return false
	}
	switch x := a.(type) {
	case models.RecurringSchedule:
		switch y := b.(type) {
		case models.RecurringSchedule:
			return x.Day == y.Day
		case models.OneTimeSchedule:
			return y.Weekday() == x.Day
		}
	case models.OneTimeSchedule:
		switch y := b.(type) {
		case models.RecurringSchedule:
			return x.Weekday() == y.Day
		case models.OneTimeSchedule:
			return x.Date == y.Date
		}
	}
	return false
}

// internalDescription renders a same-client pair, e.g.
// "Recurring schedule conflict between Monday 0900-1100 and Monday 1000-1200".
func internalDescription(a, b models.Schedule) string {
	label := string(a.Category())
	if a.Category() != b.Category() {
		label = fmt.Sprintf("%s/%s", a.Category(), b.Category())
	}
	aw, bw := a.Window(), b.Window()
	return fmt.Sprintf("%s schedule conflict between %s %s-%s and %s %s-%s",
		label, a.When(), aw.Start, aw.End, b.When(), bw.Start, bw.End)
}
