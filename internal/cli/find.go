package cli

import (
	"fmt"
	"strings"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
)

type FindCmd struct {
	Keywords []string `arg:"" help:"Keywords matched against client names (case-insensitive, whole words)."`
	ShowIDs  bool     `help:"Show client IDs." name:"show-ids"`
}

func (c *FindCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	clients, err := ctx.Store.GetAllClients()
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}

	matches := FilterByName(clients, c.Keywords)
	for _, client := range matches {
		fmt.Printf("  %s\n", FormatClientLine(client, c.ShowIDs))
	}
	fmt.Printf(constants.MessageClientsListed+"\n", len(matches))

	return nil
}

// FilterByName returns the clients whose name contains any of the keywords as
// a whole word, compared case-insensitively. Roster order is preserved.
func FilterByName(clients []models.Client, keywords []string) []models.Client {
	var matches []models.Client
	for _, client := range clients {
		if nameMatchesAny(client.Name, keywords) {
			matches = append(matches, client)
		}
	}
	return matches
}

func nameMatchesAny(name string, keywords []string) bool {
	words := strings.Fields(strings.ToLower(name))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for _, w := range words {
			if w == kw {
				return true
			}
		}
	}
	return false
}
