package cli

import (
	"fmt"
	"strings"
)

type ViewCmd struct {
	ID string `arg:"" help:"Client ID or unique prefix."`
}

func (c *ViewCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	client, err := ctx.ResolveClientID(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Name:            %s\n", client.Name)
	fmt.Printf("ID:              %s\n", client.ID)
	fmt.Printf("Phone:           %s\n", client.Phone)
	if client.Location != "" {
		fmt.Printf("Location:        %s\n", client.Location)
	}
	if client.Goals != "" {
		fmt.Printf("Goals:           %s\n", client.Goals)
	}
	if client.MedicalHistory != "" {
		fmt.Printf("Medical History: %s\n", client.MedicalHistory)
	}
	if len(client.Tags) > 0 {
		fmt.Printf("Tags:            %s\n", strings.Join(client.Tags, ", "))
	}

	if len(client.RecurringSchedules) > 0 {
		fmt.Println("Recurring Schedules:")
		for _, rs := range client.RecurringSchedules {
			fmt.Printf("  %s %s-%s\n", rs.Day, rs.Start, rs.End)
		}
	}
	if len(client.OneTimeSchedules) > 0 {
		fmt.Println("One-Time Schedules:")
		for _, ots := range client.OneTimeSchedules {
			fmt.Printf("  %s %s-%s\n", ots.Date, ots.Start, ots.End)
		}
	}

	if client.CreatedAt != "" {
		fmt.Printf("Created:         %s\n", client.CreatedAt)
	}
	if client.UpdatedAt != "" {
		fmt.Printf("Updated:         %s\n", client.UpdatedAt)
	}
	if client.DeletedAt != nil {
		fmt.Printf("Deleted:         %s\n", *client.DeletedAt)
	}

	return nil
}
