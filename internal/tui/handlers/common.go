package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/reminder"
	"github.com/CloudKai/fitflow/internal/tui/state"
	"github.com/CloudKai/fitflow/internal/utils"
)

// NewClientForm creates a new form for adding and editing clients
func NewClientForm(fm *state.ClientFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Phone").
				Value(&fm.Phone).
				Validate(func(s string) error {
					p := strings.TrimSpace(s)
					if len(p) < 3 {
						return fmt.Errorf("phone must be at least 3 digits long")
					}
					for _, r := range p {
						if r < '0' || r > '9' {
							return fmt.Errorf("phone must contain only digits")
						}
					}
					return nil
				}),
			huh.NewInput().
				Title("Location").
				Value(&fm.Location),
			huh.NewInput().
				Title("Goals").
				Value(&fm.Goals),
			huh.NewText().
				Title("Medical History").
				Value(&fm.MedicalHistory),
			huh.NewInput().
				Title("Tags").
				Description("Space-separated alphanumeric words").
				Value(&fm.Tags).
				Validate(func(s string) error {
					for _, tag := range strings.Fields(s) {
						if !isTagWord(tag) {
							return fmt.Errorf("invalid tag %q: tags must be single alphanumeric words", tag)
						}
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Recurring Schedules").
				Description("One per line: DAY HHmm HHmm (e.g. Monday 1400 1600)").
				Value(&fm.Recurring).
				Validate(func(s string) error {
					_, err := cli.ParseRecurringFlags(SplitScheduleLines(s))
					return err
				}),
			huh.NewText().
				Title("One-Time Schedules").
				Description("One per line: DD/MM[/YY] HHmm HHmm (e.g. 15/03/25 1000 1200)").
				Value(&fm.OneTime).
				Validate(func(s string) error {
					_, err := cli.ParseOneTimeFlags(SplitScheduleLines(s))
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSettingsForm creates a new form for editing settings
func NewSettingsForm(fm *state.SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone (IANA name or 'Local')").
				Description("Examples: Local, UTC, America/New_York, Europe/London, Asia/Tokyo").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(s) {
						return fmt.Errorf("invalid timezone name")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Auto Backup").
				Value(&fm.AutoBackup),
			huh.NewInput().
				Title("Reminder Lead (minutes)").
				Value(&fm.ReminderLeadMin).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 0 {
						return fmt.Errorf("must be a non-negative number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Reminder Schedule (cron)").
				Description("Standard five-field cron, e.g. */15 * * * *").
				Value(&fm.ReminderCron).
				Validate(reminder.ValidateCron),
		),
	).WithTheme(huh.ThemeDracula())
}

func isTagWord(s string) bool {
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
