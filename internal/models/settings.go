package models

// Settings represents application-wide settings
type Settings struct {
	Timezone        string `json:"timezone"`          // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	AutoBackup      bool   `json:"auto_backup"`       // whether mutating commands create an automatic backup
	ReminderLeadMin int    `json:"reminder_lead_min"` // how many minutes before a session the reminder fires
	ReminderCron    string `json:"reminder_cron"`     // cron spec driving the reminder watch loop
}
