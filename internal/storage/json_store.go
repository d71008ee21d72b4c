package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
)

type Store struct {
	Version  int                      `json:"version"`
	Settings models.Settings          `json:"settings"`
	Clients  map[string]models.Client `json:"clients"`
}

// JSONStore keeps the whole roster in one pretty-printed JSON file. It is
// the portable fallback for people who want a file they can read and sync.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Settings: models.Settings{
			Timezone:        constants.DefaultTimezone,
			AutoBackup:      constants.DefaultAutoBackup,
			ReminderLeadMin: constants.DefaultReminderLead,
			ReminderCron:    constants.DefaultReminderCron,
		},
		Clients: make(map[string]models.Client),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'fitflow init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Clients == nil {
		s.store.Clients = make(map[string]models.Client)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddClient(client models.Client) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Clients[client.ID] = client
	return s.save()
}

func (s *JSONStore) GetClient(id string) (models.Client, error) {
	if s.store == nil {
		return models.Client{}, fmt.Errorf("storage not loaded")
	}

	client, ok := s.store.Clients[id]
	if !ok || client.DeletedAt != nil {
		return models.Client{}, fmt.Errorf("client not found: %s", id)
	}

	return client, nil
}

func (s *JSONStore) GetAllClients() ([]models.Client, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	clients := make([]models.Client, 0, len(s.store.Clients))
	for _, client := range s.store.Clients {
		if client.DeletedAt == nil {
			clients = append(clients, client)
		}
	}
	sortClients(clients)

	return clients, nil
}

func (s *JSONStore) GetAllClientsIncludingDeleted() ([]models.Client, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	clients := make([]models.Client, 0, len(s.store.Clients))
	for _, client := range s.store.Clients {
		clients = append(clients, client)
	}
	sortClients(clients)

	return clients, nil
}

// sortClients orders the roster by creation time, then ID. Every store
// returns the same order so listings and conflict reports are stable.
func sortClients(clients []models.Client) {
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].CreatedAt != clients[j].CreatedAt {
			return clients[i].CreatedAt < clients[j].CreatedAt
		}
		return clients[i].ID < clients[j].ID
	})
}

func (s *JSONStore) UpdateClient(client models.Client) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Clients[client.ID]; !ok {
		return fmt.Errorf("client not found: %s", client.ID)
	}

	s.store.Clients[client.ID] = client
	return s.save()
}

func (s *JSONStore) DeleteClient(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	client, ok := s.store.Clients[id]
	if !ok {
		return fmt.Errorf("client not found: %s", id)
	}

	if client.DeletedAt != nil {
		return fmt.Errorf("client with id %s is already deleted", id)
	}

	// Soft delete: set deleted_at timestamp
	now := time.Now().UTC().Format(time.RFC3339)
	client.DeletedAt = &now
	s.store.Clients[id] = client
	return s.save()
}

func (s *JSONStore) RestoreClient(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	client, ok := s.store.Clients[id]
	if !ok {
		return fmt.Errorf("client not found: %s", id)
	}

	if client.DeletedAt == nil {
		return fmt.Errorf("cannot restore a client that is not deleted: %s", id)
	}

	client.DeletedAt = nil
	s.store.Clients[id] = client
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
