package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/CloudKai/fitflow/internal/models"
)

const clientColumns = "id, name, phone, location, goals, medical_history, tags, recurring_schedules, one_time_schedules, created_at, updated_at, deleted_at"

func (s *Store) AddClient(client models.Client) error {
	return s.UpdateClient(client)
}

func (s *Store) GetClient(id string) (models.Client, error) {
	row := s.db.QueryRow("SELECT "+clientColumns+" FROM clients WHERE id = $1 AND deleted_at IS NULL", id)
	client, err := scanClient(row)
	if err == sql.ErrNoRows {
		return models.Client{}, fmt.Errorf("client not found: %s", id)
	}
	if err != nil {
		return models.Client{}, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *Store) GetAllClients() ([]models.Client, error) {
	return s.queryClients("SELECT " + clientColumns + " FROM clients WHERE deleted_at IS NULL ORDER BY created_at, id")
}

func (s *Store) GetAllClientsIncludingDeleted() ([]models.Client, error) {
	return s.queryClients("SELECT " + clientColumns + " FROM clients ORDER BY created_at, id")
}

func (s *Store) queryClients(query string) ([]models.Client, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
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
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			goals = EXCLUDED.goals,
			medical_history = EXCLUDED.medical_history,
			tags = EXCLUDED.tags,
			recurring_schedules = EXCLUDED.recurring_schedules,
			one_time_schedules = EXCLUDED.one_time_schedules,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at,
			deleted_at = EXCLUDED.deleted_at`,
		client.ID, client.Name, client.Phone, client.Location, client.Goals,
		client.MedicalHistory, tags, recurring, oneTime,
		client.CreatedAt, client.UpdatedAt, deletedAt)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (s *Store) DeleteClient(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM clients WHERE id = $1", id).Scan(&deletedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("client with id %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to check client existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("client with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE clients SET deleted_at = $1, updated_at = $2 WHERE id = $3", now, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *Store) RestoreClient(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM clients WHERE id = $1", id).Scan(&deletedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("client with id %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to check client existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore a client that is not deleted: %s", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE clients SET deleted_at = NULL, updated_at = $1 WHERE id = $2", now, id)
	if err != nil {
		return fmt.Errorf("failed to restore client: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (models.Client, error) {
	var client models.Client
	var tags, recurring, oneTime string
	var deletedAt sql.NullString

	err := row.Scan(&client.ID, &client.Name, &client.Phone, &client.Location,
		&client.Goals, &client.MedicalHistory, &tags, &recurring, &oneTime,
		&client.CreatedAt, &client.UpdatedAt, &deletedAt)
	if err != nil {
		return models.Client{}, err
	}

	if deletedAt.Valid {
		client.DeletedAt = &deletedAt.String
	}

	if err := json.Unmarshal([]byte(tags), &client.Tags); err != nil {
		return models.Client{}, fmt.Errorf("failed to decode tags for client %s: %w", client.ID, err)
	}
	if err := json.Unmarshal([]byte(recurring), &client.RecurringSchedules); err != nil {
		return models.Client{}, fmt.Errorf("failed to decode recurring schedules for client %s: %w", client.ID, err)
	}
	if err := json.Unmarshal([]byte(oneTime), &client.OneTimeSchedules); err != nil {
		return models.Client{}, fmt.Errorf("failed to decode one-time schedules for client %s: %w", client.ID, err)
	}

	return client, nil
}

func encodeClientLists(client models.Client) (string, string, string, error) {
	tags, err := json.Marshal(client.Tags)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode tags: %w", err)
	}
	recurring, err := json.Marshal(client.RecurringSchedules)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode recurring schedules: %w", err)
	}
	oneTime, err := json.Marshal(client.OneTimeSchedules)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode one-time schedules: %w", err)
	}
	return string(tags), string(recurring), string(oneTime), nil
}
