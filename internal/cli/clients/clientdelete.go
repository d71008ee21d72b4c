package clients

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/CloudKai/fitflow/internal/cli"
)

type ClientDeleteCmd struct {
	ID  string `arg:"" help:"Client ID or unique prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClientDeleteCmd) Run(ctx *cli.Context) error {
	client, err := ctx.ResolveClientID(c.ID)
	if err != nil {
		return err
	}
	if client.IsDeleted() {
		return fmt.Errorf("client %s is already deleted", cli.ShortID(client.ID))
	}

	if !c.Yes {
		fmt.Printf("Delete client %s (%s)? [y/N]: ", client.Name, cli.ShortID(client.ID))

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))

		if response != "y" && response != "yes" {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteClient(client.ID); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	ctx.PerformAutomaticBackup()

	fmt.Printf("Deleted client: %s (ID: %s)\n", client.Name, cli.ShortID(client.ID))
	return nil
}
