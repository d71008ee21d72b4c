package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/CloudKai/fitflow/internal/models"
)

const clientColumns = `id, name, phone, location, goals, medical_history, tags,
       recurring_schedules, one_time_schedules, created_at, updated_at, deleted_at`

func (s *Store) AddClient(client models.Client) error {
	return s.UpdateClient(client)
}

func (s *Store) GetClient(id string) (models.Client, error) {
	row := s.db.QueryRow(`
		SELECT `+clientColumns+`
		FROM clients WHERE id = ? AND deleted_at IS NULL`, id)

	client, err := scanClient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Client{}, fmt.Errorf("client not found: %s", id)
		}
		return models.Client{}, err
	}
	return client, nil
}

func (s *Store) GetAllClients() ([]models.Client, error) {
	return s.queryClients(`
		SELECT ` + clientColumns + `
		FROM clients WHERE deleted_at IS NULL
		ORDER BY created_at, id`)
}

func (s *Store) GetAllClientsIncludingDeleted() ([]models.Client, error) {
	return s.queryClients(`
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY created_at, id`)
}

func (s *Store) queryClients(query string) ([]models.Client, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func (s *Store) UpdateClient(client models.Client) error {
	tags, recurring, oneTime, err := encodeClientLists(client)
	if err != nil {
		return err
	}

	var deletedAt sql.NullString
	if client.DeletedAt != nil {
		deletedAt = sql.NullString{String: *client.DeletedAt, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO clients (
			id, name, phone, location, goals, medical_history, tags,
			recurring_schedules, one_time_schedules, created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		client.ID, client.Name, client.Phone, client.Location, client.Goals, client.MedicalHistory, tags,
		recurring, oneTime, client.CreatedAt, client.UpdatedAt, deletedAt,
	)
	return err
}

func (s *Store) DeleteClient(id string) error {
	// Soft delete: set deleted_at timestamp instead of removing the record
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM clients WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("client with id %s not found", id)
		}
		return fmt.Errorf("failed to check client existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("client with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE clients SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *Store) RestoreClient(id string) error {
	// Restore a soft-deleted client by clearing deleted_at
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM clients WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("client with id %s not found", id)
		}
		return fmt.Errorf("failed to check client existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a client that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE clients SET deleted_at = NULL WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (models.Client, error) {
	var c models.Client
	var tags, recurring, oneTime string
	var deletedAt sql.NullString

	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Location, &c.Goals, &c.MedicalHistory, &tags,
		&recurring, &oneTime, &c.CreatedAt, &c.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return models.Client{}, err
	}

	if deletedAt.Valid {
		c.DeletedAt = &deletedAt.String
	}

	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		return models.Client{}, fmt.Errorf("failed to decode tags for client %s: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(recurring), &c.RecurringSchedules); err != nil {
		return models.Client{}, fmt.Errorf("failed to decode recurring schedules for client %s: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(oneTime), &c.OneTimeSchedules); err != nil {
		return models.Client{}, fmt.Errorf("failed to decode one-time schedules for client %s: %w", c.ID, err)
	}

	return c, nil
}

// encodeClientLists JSON-encodes the list-valued client fields for TEXT columns.
func encodeClientLists(client models.Client) (tags, recurring, oneTime string, err error) {
	tagsJSON, err := json.Marshal(client.Tags)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode tags: %w", err)
	}
	recurringJSON, err := json.Marshal(client.RecurringSchedules)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode recurring schedules: %w", err)
	}
	oneTimeJSON, err := json.Marshal(client.OneTimeSchedules)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode one-time schedules: %w", err)
	}
	return string(tagsJSON), string(recurringJSON), string(oneTimeJSON), nil
}
