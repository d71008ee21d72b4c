package constants

const (
	// General Settings
	SettingTimezone   = "timezone"
	SettingAutoBackup = "auto_backup"

	// Reminder Settings
	SettingReminderLeadMin = "reminder_lead_min"
	SettingReminderCron    = "reminder_cron"

	// Default Settings Values
	DefaultTimezone       = "Local" // Use system local timezone by default
	DefaultAutoBackup     = true
	DefaultReminderLead   = 30
	DefaultReminderCron   = "*/15 * * * *"
	DefaultSessionsWindow = 7 // days shown by the sessions agenda
)
