package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/notifier"
	"github.com/CloudKai/fitflow/internal/reminder"
	"github.com/CloudKai/fitflow/internal/utils"
)

// RemindWatchCmd runs the reminder loop in the foreground until interrupted.
type RemindWatchCmd struct {
	Cron string `help:"Override the scan schedule (cron expression)."`
}

func (c *RemindWatchCmd) Run(ctx *cli.Context) error {
	svc, settings, err := buildReminderService(ctx, c.Cron)
	if err != nil {
		return err
	}

	schedule := settings.ReminderCron
	if c.Cron != "" {
		schedule = c.Cron
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching for upcoming sessions (schedule %q, lead %d min). Press Ctrl+C to stop.\n",
		schedule, settings.ReminderLeadMin)

	err = svc.Run(runCtx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("Reminder watch stopped.")
	return nil
}

// RemindOnceCmd runs a single reminder scan, for cron jobs that prefer to own
// the cadence themselves.
type RemindOnceCmd struct{}

func (c *RemindOnceCmd) Run(ctx *cli.Context) error {
	svc, settings, err := buildReminderService(ctx, "")
	if err != nil {
		return err
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}

	count, err := svc.ScanOnce(time.Now().In(loc))
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Println("No sessions due within the reminder window.")
	} else {
		fmt.Printf("Sent %d reminder(s).\n", count)
	}
	return nil
}

func buildReminderService(ctx *cli.Context, cronOverride string) (*reminder.Service, models.Settings, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, models.Settings{}, err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return nil, models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, models.Settings{}, err
	}

	schedule := settings.ReminderCron
	if cronOverride != "" {
		schedule = cronOverride
	}
	if err := reminder.ValidateCron(schedule); err != nil {
		return nil, models.Settings{}, err
	}

	scanner := reminder.NewScanner(loc, settings.ReminderLeadMin)
	svc := reminder.NewService(scanner, notifier.New(), ctx.Store.GetAllClients, schedule)
	return svc, settings, nil
}
