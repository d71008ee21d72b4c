package exports

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/export"
	"github.com/CloudKai/fitflow/internal/utils"
)

type ExportCmd struct {
	Format string `arg:"" enum:"ics,yaml,json" help:"Output format: ics, yaml, or json."`
	Out    string `short:"o" help:"Write to a file instead of stdout."`
	Days   int    `help:"Day window for the ICS calendar." default:"90"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	clients, err := ctx.Store.GetAllClients()
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}

	var data []byte
	switch c.Format {
	case "yaml":
		data, err = export.RosterYAML(clients)
		if err != nil {
			return err
		}
	case "json":
		data, err = json.MarshalIndent(clients, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode roster: %w", err)
		}
		data = append(data, '\n')
	case "ics":
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		loc, err := utils.LoadLocation(settings.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone in settings: %w", err)
		}
		from, err := utils.TodayInTimezone(settings.Timezone)
		if err != nil {
			return err
		}
		text, err := export.CalendarICS(clients, from, c.Days, loc)
		if err != nil {
			return err
		}
		data = []byte(text)
	}

	if c.Out == "" {
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(c.Out, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Out, err)
	}
	fmt.Printf("Exported %d client(s) to %s\n", len(clients), c.Out)

	return nil
}
