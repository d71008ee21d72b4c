package exports

import (
	"fmt"
	"os"
	"time"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/export"
)

type ImportCmd struct {
	Format  string `arg:"" enum:"yaml" help:"Import format (yaml)."`
	File    string `short:"f" help:"Roster file to import." required:""`
	Replace bool   `help:"Update clients whose IDs already exist instead of skipping them."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	incoming, err := export.ParseRosterYAML(data)
	if err != nil {
		return err
	}
	if len(incoming) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}

	added, replaced, skipped := 0, 0, 0
	for _, client := range incoming {
		// Re-read the roster each round so earlier imports count toward the
		// duplicate checks.
		roster, err := ctx.Store.GetAllClients()
		if err != nil {
			return fmt.Errorf("failed to get clients: %w", err)
		}

		existing, getErr := ctx.Store.GetClient(client.ID)
		exists := getErr == nil

		if exists && !c.Replace {
			fmt.Printf("  Skipped %s: id already exists (use --replace to update)\n", client.Name)
			skipped++
			continue
		}

		excludeID := ""
		if exists {
			excludeID = existing.ID
		}
		if err := cli.CheckDuplicates(roster, excludeID, client); err != nil {
			fmt.Printf("  Skipped %s: %v\n", client.Name, err)
			skipped++
			continue
		}

		conflicts := ctx.Detector.FindAllConflicts(roster, excludeID, client)

		now := time.Now().UTC().Format(time.RFC3339)
		if exists {
			client.CreatedAt = existing.CreatedAt
			client.UpdatedAt = now
			if err := ctx.Store.UpdateClient(client); err != nil {
				return fmt.Errorf("failed to update client %s: %w", client.Name, err)
			}
			fmt.Printf("  Replaced %s\n", client.Name)
			replaced++
		} else {
			if client.CreatedAt == "" {
				client.CreatedAt = now
			}
			client.UpdatedAt = now
			if err := ctx.Store.AddClient(client); err != nil {
				return fmt.Errorf("failed to add client %s: %w", client.Name, err)
			}
			fmt.Printf("  Added %s\n", client.Name)
			added++
		}

		for _, conflict := range conflicts {
			fmt.Printf("    Conflict: %s\n", conflict)
		}
	}

	ctx.PerformAutomaticBackup()

	fmt.Printf("Import complete: %d added, %d replaced, %d skipped.\n", added, replaced, skipped)
	return nil
}
