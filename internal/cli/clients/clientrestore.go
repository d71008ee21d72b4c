package clients

import (
	"fmt"

	"github.com/CloudKai/fitflow/internal/cli"
)

type ClientRestoreCmd struct {
	ID string `arg:"" help:"Client ID or unique prefix."`
}

func (c *ClientRestoreCmd) Run(ctx *cli.Context) error {
	client, err := ctx.ResolveClientID(c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.RestoreClient(client.ID); err != nil {
		return fmt.Errorf("failed to restore client: %w", err)
	}

	ctx.PerformAutomaticBackup()

	fmt.Printf("Restored client: %s (ID: %s)\n", client.Name, cli.ShortID(client.ID))
	return nil
}
