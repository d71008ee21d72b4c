package system

import (
	"fmt"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/notifier"
)

// NotifyCmd sends a one-off desktop notification through the tray app.
// Hidden; exists for scripting and for testing the tray wiring.
type NotifyCmd struct {
	Text string `arg:"" help:"Notification text to send."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := notifier.New().Notify(c.Text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	fmt.Println("✓ Notification sent")
	return nil
}
