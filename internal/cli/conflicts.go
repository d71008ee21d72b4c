package cli

import (
	"fmt"
)

type ConflictsCmd struct{}

func (c *ConflictsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	clients, err := ctx.Store.GetAllClients()
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}

	report := ctx.Detector.ScanRoster(clients)
	if !report.HasConflicts() {
		fmt.Println(report.Format())
		return nil
	}

	fmt.Print(report.Format())
	fmt.Printf("\n%d conflict(s) across %d client(s).\n", len(report.Conflicts), len(clients))

	return nil
}
