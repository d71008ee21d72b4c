package models

import (
	"fmt"
	"strings"
)

// Client is one training client: contact details, training notes, and the
// recurring and one-time schedule sets used for conflict detection. Schedule
// sets keep insertion order with duplicates collapsed by value, so conflict
// enumeration is reproducible run to run.
type Client struct {
	ID                 string              `json:"id" yaml:"id"`
	Name               string              `json:"name" yaml:"name"`
	Phone              string              `json:"phone" yaml:"phone"`
	Location           string              `json:"location,omitempty" yaml:"location,omitempty"`
	Goals              string              `json:"goals,omitempty" yaml:"goals,omitempty"`
	MedicalHistory     string              `json:"medical_history,omitempty" yaml:"medical_history,omitempty"`
	Tags               []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	RecurringSchedules []RecurringSchedule `json:"recurring_schedules,omitempty" yaml:"recurring_schedules,omitempty"`
	OneTimeSchedules   []OneTimeSchedule   `json:"one_time_schedules,omitempty" yaml:"one_time_schedules,omitempty"`
	CreatedAt          string              `json:"created_at,omitempty" yaml:"created_at,omitempty"` // RFC3339 timestamp
	UpdatedAt          string              `json:"updated_at,omitempty" yaml:"updated_at,omitempty"` // RFC3339 timestamp
	DeletedAt          *string             `json:"deleted_at,omitempty" yaml:"deleted_at,omitempty"` // RFC3339 timestamp
}

// Validate checks the client's fields, including every schedule, so records
// decoded from storage or import files get the same guarantees as ones built
// through the parsers.
func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name must not be blank")
	}
	if err := validatePhone(c.Phone); err != nil {
		return err
	}
	for _, tag := range c.Tags {
		if !isAlphanumeric(tag) {
			return fmt.Errorf("invalid tag %q: tags must be single alphanumeric words", tag)
		}
	}
	for _, rs := range c.RecurringSchedules {
		if err := rs.Validate(); err != nil {
			return fmt.Errorf("recurring schedule %s: %w", rs, err)
		}
	}
	for _, ots := range c.OneTimeSchedules {
		if err := ots.Validate(); err != nil {
			return fmt.Errorf("one-time schedule %s: %w", ots, err)
		}
	}
	return nil
}

// SameName reports whether two clients are the same person for duplicate
// checks: names compared case-insensitively after trimming.
func (c Client) SameName(other Client) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(other.Name))
}

// SamePhone reports whether two clients share a phone number.
func (c Client) SamePhone(other Client) bool {
	return c.Phone != "" && c.Phone == other.Phone
}

// IsDeleted reports whether the client has been soft-deleted.
func (c Client) IsDeleted() bool {
	return c.DeletedAt != nil
}

// SetRecurringSchedules replaces the recurring set, collapsing duplicates
// while keeping first-seen order.
func (c *Client) SetRecurringSchedules(schedules []RecurringSchedule) {
	seen := make(map[RecurringSchedule]bool, len(schedules))
	out := make([]RecurringSchedule, 0, len(schedules))
	for _, s := range schedules {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	c.RecurringSchedules = out
}

// SetOneTimeSchedules replaces the one-time set, collapsing duplicates while
// keeping first-seen order.
func (c *Client) SetOneTimeSchedules(schedules []OneTimeSchedule) {
	seen := make(map[OneTimeSchedule]bool, len(schedules))
	out := make([]OneTimeSchedule, 0, len(schedules))
	for _, s := range schedules {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	c.OneTimeSchedules = out
}

// SetTags replaces the tag set, collapsing duplicates case-sensitively while
// keeping first-seen order.
func (c *Client) SetTags(tags []string) {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	c.Tags = out
}

func validatePhone(phone string) error {
	if len(phone) < 3 {
		return fmt.Errorf("phone must be at least 3 digits long")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone must contain only digits")
		}
	}
	return nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
