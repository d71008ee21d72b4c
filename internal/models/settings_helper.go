package models

import (
	"fmt"

	"github.com/CloudKai/fitflow/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingAutoBackup:
			settings.AutoBackup = value == "true"
		case constants.SettingReminderLeadMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.ReminderLeadMin); err != nil {
				return Settings{}, fmt.Errorf("parsing reminder_lead_min: %w", err)
			}
		case constants.SettingReminderCron:
			settings.ReminderCron = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:        settings.Timezone,
		constants.SettingAutoBackup:      fmt.Sprintf("%v", settings.AutoBackup),
		constants.SettingReminderLeadMin: fmt.Sprintf("%d", settings.ReminderLeadMin),
		constants.SettingReminderCron:    settings.ReminderCron,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.ReminderLeadMin == 0 {
		settings.ReminderLeadMin = constants.DefaultReminderLead
	}
	if settings.ReminderCron == "" {
		settings.ReminderCron = constants.DefaultReminderCron
	}
}
