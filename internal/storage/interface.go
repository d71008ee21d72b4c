package storage

import "github.com/CloudKai/fitflow/internal/models"

// Provider is the persistence contract shared by the JSON, SQLite, and
// PostgreSQL stores. Deleted clients stay on disk; GetAllClients hides
// them and RestoreClient brings them back.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Clients
	AddClient(models.Client) error
	GetClient(id string) (models.Client, error)
	GetAllClients() ([]models.Client, error)
	GetAllClientsIncludingDeleted() ([]models.Client, error)
	UpdateClient(models.Client) error
	DeleteClient(id string) error
	RestoreClient(id string) error

	// Utils
	GetConfigPath() string
}
