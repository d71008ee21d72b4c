package constants

import "time"

// ScheduleCategory labels which kind of schedule produced a conflict
type ScheduleCategory string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "fitflow"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/fitflow/fitflow.db"
	Version            = "v0.3.0"

	// EnvDBConnection is the environment variable consulted for a PostgreSQL
	// connection string when none is given on the command line.
	EnvDBConnection = "FITFLOW_DB_CONNECTION"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "fitflow-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.cloudkai.fitflow"

	// Schedule Categories
	CategoryRecurring ScheduleCategory = "Recurring"
	CategoryOneTime   ScheduleCategory = "One-Time"
)

const (
	StateClients SessionState = iota
	StateDetail
	StateSessions
	StateConflicts
	StateSettings
	StateAdding
	StateEditing
	StateEditSettings
	StateConfirmDelete
	StateConfirmRestore
)
