package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ClockFormat is the compact 24h clock format used by schedule text (HHmm)
	ClockFormat = "1504"

	// ScheduleDateFormat is the canonical rendering of one-time schedule dates (DD/MM/YY)
	ScheduleDateFormat = "02/01/06"
)
