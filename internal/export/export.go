// Package export turns the roster and the agenda into portable formats:
// YAML for moving client records between machines, ICS for feeding sessions
// into an external calendar.
package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/CloudKai/fitflow/internal/models"
)

// rosterVersion marks the YAML document layout. Bump it when the client
// shape changes incompatibly.
const rosterVersion = 1

// Roster is the YAML document wrapping exported clients.
type Roster struct {
	Version    int             `yaml:"version"`
	ExportedAt string          `yaml:"exported_at"`
	Clients    []models.Client `yaml:"clients"`
}

// RosterYAML serializes clients into a versioned YAML document.
func RosterYAML(clients []models.Client) ([]byte, error) {
	doc := Roster{
		Version:    rosterVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Clients:    clients,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize roster: %w", err)
	}
	return data, nil
}

// ParseRosterYAML reads a roster document back into validated clients.
// Entries without an id get a fresh one so hand-written files import
// cleanly.
func ParseRosterYAML(data []byte) ([]models.Client, error) {
	var doc Roster
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	if doc.Version > rosterVersion {
		return nil, fmt.Errorf("roster file version %d is newer than supported version %d", doc.Version, rosterVersion)
	}

	seen := make(map[string]bool, len(doc.Clients))
	for i := range doc.Clients {
		client := &doc.Clients[i]
		if client.ID == "" {
			client.ID = uuid.New().String()
		}
		if seen[client.ID] {
			return nil, fmt.Errorf("duplicate client id %q in roster file", client.ID)
		}
		seen[client.ID] = true

		if err := client.Validate(); err != nil {
			return nil, fmt.Errorf("invalid client %q: %w", client.Name, err)
		}
	}

	return doc.Clients, nil
}
