package cli

import (
	"fmt"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
)

type ListCmd struct {
	Deleted bool `help:"Include soft-deleted clients."`
	ShowIDs bool `help:"Show client IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var clients []models.Client
	var err error
	if c.Deleted {
		clients, err = ctx.Store.GetAllClientsIncludingDeleted()
	} else {
		clients, err = ctx.Store.GetAllClients()
	}
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}
	if len(clients) == 0 {
		fmt.Println(constants.MessageListEmpty)
		return nil
	}

	fmt.Println("Clients:")
	for _, client := range clients {
		line := FormatClientLine(client, c.ShowIDs)
		if client.IsDeleted() {
			line += "  (deleted)"
		}
		fmt.Printf("  %s\n", line)

		for _, rs := range client.RecurringSchedules {
			fmt.Printf("      Recurring: %s %s-%s\n", rs.Day, rs.Start, rs.End)
		}
		for _, ots := range client.OneTimeSchedules {
			fmt.Printf("      One-Time: %s %s-%s\n", ots.Date, ots.Start, ots.End)
		}
	}
	fmt.Println(constants.MessageListSuccess)

	return nil
}
