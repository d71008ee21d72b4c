package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CloudKai/fitflow/internal/constants"
)

// TimeRange is a start/end pair on the 24h clock, held in compact HHmm form
// (e.g. "0930"). Values are validated at construction and treated as
// immutable afterwards.
type TimeRange struct {
	Start string `json:"start" yaml:"start"` // HHmm
	End   string `json:"end" yaml:"end"`     // HHmm
}

// NewTimeRange builds a TimeRange from two HHmm strings. Zero-length and
// inverted ranges are rejected.
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := clockMinutes(start)
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	e, err := clockMinutes(end)
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid end time %q: %w", end, err)
	}
	if s >= e {
		return TimeRange{}, fmt.Errorf("start time %s must be before end time %s", start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether the two ranges share any instant. The comparison
// is half-open: a range that ends exactly when another begins does not
// overlap, so back-to-back sessions are allowed.
func (t TimeRange) Overlaps(other TimeRange) bool {
	s1, _ := clockMinutes(t.Start)
	e1, _ := clockMinutes(t.End)
	s2, _ := clockMinutes(other.Start)
	e2, _ := clockMinutes(other.End)
	return s1 < e2 && s2 < e1
}

// Validate re-checks a range that did not come through NewTimeRange, e.g.
// one decoded from storage or an import file.
func (t TimeRange) Validate() error {
	_, err := NewTimeRange(t.Start, t.End)
	return err
}

func (t TimeRange) String() string {
	return t.Start + "-" + t.End
}

// clockMinutes converts an HHmm string to minutes from midnight.
func clockMinutes(s string) (int, error) {
	t, err := time.Parse(constants.ClockFormat, s)
	if err != nil {
		return 0, fmt.Errorf("expected HHmm 24h time: %w", err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Schedule is the read-only view shared by RecurringSchedule and
// OneTimeSchedule: a time window plus the day or date it applies to.
type Schedule interface {
	Window() TimeRange
	When() string
	Category() constants.ScheduleCategory
	String() string
}

// RecurringSchedule is a weekly repeating commitment on a fixed weekday.
// Equality is by (day, range).
type RecurringSchedule struct {
	Day time.Weekday `json:"day" yaml:"day"`
	TimeRange        `yaml:",inline"`
}

// NewRecurringSchedule builds a validated RecurringSchedule.
func NewRecurringSchedule(day time.Weekday, start, end string) (RecurringSchedule, error) {
	tr, err := NewTimeRange(start, end)
	if err != nil {
		return RecurringSchedule{}, err
	}
	if day < time.Sunday || day > time.Saturday {
		return RecurringSchedule{}, fmt.Errorf("invalid weekday: %d", day)
	}
	return RecurringSchedule{Day: day, TimeRange: tr}, nil
}

func (r RecurringSchedule) Window() TimeRange { return r.TimeRange }

// When returns the weekday name used in conflict descriptions.
func (r RecurringSchedule) When() string { return r.Day.String() }

func (r RecurringSchedule) Category() constants.ScheduleCategory {
	return constants.CategoryRecurring
}

func (r RecurringSchedule) String() string {
	return fmt.Sprintf("%s %s %s", r.Day, r.Start, r.End)
}

// Validate re-checks a schedule that did not come through the constructor.
func (r RecurringSchedule) Validate() error {
	_, err := NewRecurringSchedule(r.Day, r.Start, r.End)
	return err
}

// OneTimeSchedule is a single dated session. The date is canonical DD/MM/YY;
// year-less input resolves against a reference year at parse time. Equality
// is by (date, range).
type OneTimeSchedule struct {
	Date      string `json:"date" yaml:"date"` // DD/MM/YY
	TimeRange `yaml:",inline"`
}

// NewOneTimeSchedule builds a validated OneTimeSchedule from a concrete date.
func NewOneTimeSchedule(date time.Time, start, end string) (OneTimeSchedule, error) {
	tr, err := NewTimeRange(start, end)
	if err != nil {
		return OneTimeSchedule{}, err
	}
	return OneTimeSchedule{Date: date.Format(constants.ScheduleDateFormat), TimeRange: tr}, nil
}

func (o OneTimeSchedule) Window() TimeRange { return o.TimeRange }

// When returns the date string used in conflict descriptions.
func (o OneTimeSchedule) When() string { return o.Date }

func (o OneTimeSchedule) Category() constants.ScheduleCategory {
	return constants.CategoryOneTime
}

func (o OneTimeSchedule) String() string {
	return fmt.Sprintf("%s %s %s", o.Date, o.Start, o.End)
}

// DateValue parses the canonical date back into a concrete day.
func (o OneTimeSchedule) DateValue() (time.Time, error) {
	return time.Parse(constants.ScheduleDateFormat, o.Date)
}

// Weekday returns the day of week the session falls on. A value that never
// went through a constructor may hold a garbage date; Weekday then reports
// Sunday, and Validate is the place to catch it.
func (o OneTimeSchedule) Weekday() time.Weekday {
	d, err := o.DateValue()
	if err != nil {
		return time.Sunday
	}
	return d.Weekday()
}

// Validate re-checks a schedule that did not come through the parser.
func (o OneTimeSchedule) Validate() error {
	if _, err := o.DateValue(); err != nil {
		return fmt.Errorf("invalid date %q: expected DD/MM/YY", o.Date)
	}
	return o.TimeRange.Validate()
}

// weekdayNames accepts full names and three-letter abbreviations.
var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday parses a weekday name, case-insensitive, full or abbreviated.
func ParseWeekday(s string) (time.Weekday, error) {
	if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return wd, nil
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %s", s)
}

// ParseRecurringSchedule parses schedule text in the form "DAY HHmm HHmm".
func ParseRecurringSchedule(text string) (RecurringSchedule, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return RecurringSchedule{}, fmt.Errorf("invalid recurring schedule %q: expected DAY HHmm HHmm", text)
	}
	day, err := ParseWeekday(fields[0])
	if err != nil {
		return RecurringSchedule{}, err
	}
	return NewRecurringSchedule(day, fields[1], fields[2])
}

// ParseOneTimeSchedule parses schedule text in the form "DD/MM[/YY] HHmm HHmm",
// resolving year-less dates against the current year.
func ParseOneTimeSchedule(text string) (OneTimeSchedule, error) {
	return ParseOneTimeScheduleAt(text, time.Now())
}

// ParseOneTimeScheduleAt is ParseOneTimeSchedule with an explicit reference
// time supplying the default year for year-less dates.
func ParseOneTimeScheduleAt(text string, ref time.Time) (OneTimeSchedule, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return OneTimeSchedule{}, fmt.Errorf("invalid one-time schedule %q: expected DD/MM[/YY] HHmm HHmm", text)
	}
	date, err := parseScheduleDate(fields[0], ref.Year())
	if err != nil {
		return OneTimeSchedule{}, err
	}
	return NewOneTimeSchedule(date, fields[1], fields[2])
}

// parseScheduleDate parses DD/MM or DD/MM/YY, defaulting the year when absent.
// Two-digit years map to 2000-2099.
func parseScheduleDate(s string, defaultYear int) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 && len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q: expected DD/MM[/YY]", s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in date %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in date %q", s)
	}

	year := defaultYear
	if len(parts) == 3 {
		yy, err := strconv.Atoi(parts[2])
		if err != nil || len(parts[2]) != 2 {
			return time.Time{}, fmt.Errorf("invalid year in date %q: expected two digits", s)
		}
		year = 2000 + yy
	}

	// time.Date normalizes out-of-range components, so round-trip the parts
	// to reject dates like 31/02 or 29/02 outside a leap year.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	return d, nil
}
