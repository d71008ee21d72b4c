package utils

import (
	"fmt"
	"time"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// "Local" or the empty string means the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns today's date at midnight in the configured
// timezone, so "today" follows the user's settings rather than the host.
func TodayInTimezone(timezone string) (time.Time, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// ParseClock parses a compact HHmm clock string.
func ParseClock(clock string) (time.Time, error) {
	return time.Parse(constants.ClockFormat, clock)
}

// ClockToMinutes converts an HHmm clock string to minutes from midnight.
func ClockToMinutes(clock string) (int, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CombineDateAndClock pins an HHmm clock string onto a calendar day in the
// given timezone, producing the concrete instant a session starts or ends.
func CombineDateAndClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// SessionWindow resolves a schedule's time range on a concrete day into
// start and end instants in the given timezone.
func SessionWindow(day time.Time, window models.TimeRange, loc *time.Location) (time.Time, time.Time, error) {
	start, err := CombineDateAndClock(day, window.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := CombineDateAndClock(day, window.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// NextWeekday returns the first date on or after from that falls on the
// given weekday.
func NextWeekday(from time.Time, weekday time.Weekday) time.Time {
	days := (int(weekday) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, days)
}

// FormatDuration renders a duration as a compact human string, largest unit
// first, for listings and notifications.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	if d < time.Minute {
		return "less than a minute"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
}
