package storage

import (
	"database/sql"

	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/storage/sqlite"
)

// SQLiteStore adapts the sqlite package to the Provider interface.
type SQLiteStore struct {
	store *sqlite.Store
	db    *sql.DB
}

func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		store: sqlite.NewStore(dbPath),
	}
}

func (s *SQLiteStore) Init() error {
	if err := s.store.Init(); err != nil {
		return err
	}
	s.db = s.store.GetDB()
	return nil
}

func (s *SQLiteStore) Load() error {
	if err := s.store.Load(); err != nil {
		return err
	}
	s.db = s.store.GetDB()
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.store.Close()
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	return s.store.GetSettings()
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	return s.store.SaveSettings(settings)
}

func (s *SQLiteStore) AddClient(client models.Client) error {
	return s.store.AddClient(client)
}

func (s *SQLiteStore) GetClient(id string) (models.Client, error) {
	return s.store.GetClient(id)
}

func (s *SQLiteStore) GetAllClients() ([]models.Client, error) {
	return s.store.GetAllClients()
}

func (s *SQLiteStore) GetAllClientsIncludingDeleted() ([]models.Client, error) {
	return s.store.GetAllClientsIncludingDeleted()
}

func (s *SQLiteStore) UpdateClient(client models.Client) error {
	return s.store.UpdateClient(client)
}

func (s *SQLiteStore) DeleteClient(id string) error {
	return s.store.DeleteClient(id)
}

func (s *SQLiteStore) RestoreClient(id string) error {
	return s.store.RestoreClient(id)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.store.GetConfigPath()
}

// GetDB exposes the underlying handle for backup operations.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
