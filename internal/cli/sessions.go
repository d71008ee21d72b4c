package cli

import (
	"fmt"

	"github.com/CloudKai/fitflow/internal/agenda"
	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/utils"
)

type SessionsCmd struct {
	Days   int    `help:"Number of days to look ahead." default:"7"`
	Client string `help:"Limit to one client (ID or unique prefix)."`
}

func (c *SessionsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone in settings: %w", err)
	}

	clients, err := ctx.Store.GetAllClients()
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}

	if c.Client != "" {
		client, err := MatchClientID(clients, c.Client)
		if err != nil {
			return err
		}
		clients = []models.Client{client}
	}

	from, err := utils.TodayInTimezone(settings.Timezone)
	if err != nil {
		return err
	}

	sessions, err := agenda.NewBuilder(loc).Upcoming(clients, from, c.Days)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Printf("No sessions in the next %d day(s).\n", c.Days)
		return nil
	}

	fmt.Printf("Sessions for the next %d day(s):\n", c.Days)
	for _, s := range sessions {
		fmt.Printf("  %s\n", s.Label())
	}

	return nil
}
