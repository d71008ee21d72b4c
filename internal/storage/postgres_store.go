package storage

import (
	"database/sql"
	"errors"

	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/storage/postgres"
)

// PostgresStore adapts the postgres package to the Provider interface.
type PostgresStore struct {
	store *postgres.Store
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		store: postgres.New(connStr),
	}
}

// ValidatePostgresConnString reports whether connStr is a usable PostgreSQL
// connection string without an embedded password.
func ValidatePostgresConnString(connStr string) (bool, error) {
	return postgres.ValidateConnString(connStr)
}

// HasEmbeddedCredentials reports whether connStr carries an inline password,
// which fitflow refuses to accept on the command line.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := postgres.ValidateConnString(connStr)
	return errors.Is(err, postgres.ErrEmbeddedCredentials)
}

func (s *PostgresStore) Init() error {
	return s.store.Init()
}

func (s *PostgresStore) Load() error {
	return s.store.Load()
}

func (s *PostgresStore) Close() error {
	return s.store.Close()
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
	return s.store.GetSettings()
}

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	return s.store.SaveSettings(settings)
}

func (s *PostgresStore) AddClient(client models.Client) error {
	return s.store.AddClient(client)
}

func (s *PostgresStore) GetClient(id string) (models.Client, error) {
	return s.store.GetClient(id)
}

func (s *PostgresStore) GetAllClients() ([]models.Client, error) {
	return s.store.GetAllClients()
}

func (s *PostgresStore) GetAllClientsIncludingDeleted() ([]models.Client, error) {
	return s.store.GetAllClientsIncludingDeleted()
}

func (s *PostgresStore) UpdateClient(client models.Client) error {
	return s.store.UpdateClient(client)
}

func (s *PostgresStore) DeleteClient(id string) error {
	return s.store.DeleteClient(id)
}

func (s *PostgresStore) RestoreClient(id string) error {
	return s.store.RestoreClient(id)
}

func (s *PostgresStore) GetConfigPath() string {
	return s.store.GetConfigPath()
}

// GetDB exposes the underlying handle for migrations and diagnostics.
func (s *PostgresStore) GetDB() *sql.DB {
	return s.store.GetDB()
}
