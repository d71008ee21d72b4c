package clients

import (
	"errors"
	"fmt"
	"time"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/constants"
)

type ClientEditCmd struct {
	ID             string   `arg:"" help:"Client ID or unique prefix."`
	Name           *string  `short:"n" help:"New client name."`
	Phone          *string  `short:"p" help:"New phone number (digits only, min 3)."`
	Location       *string  `short:"l" help:"New training location."`
	Goals          *string  `short:"g" help:"New training goals."`
	MedicalHistory *string  `help:"New medical history notes."`
	Tag            []string `short:"t" help:"Replacement tag set. Repeatable."`
	Recurring      []string `short:"r" help:"Replacement recurring schedule set (\"DAY HHmm HHmm\"). Repeatable."`
	OneTime        []string `short:"o" help:"Replacement one-time schedule set (\"DD/MM[/YY] HHmm HHmm\"). Repeatable."`
	ClearSchedules bool     `help:"Remove every schedule from the client."`
}

func (c *ClientEditCmd) anyFieldProvided() bool {
	return c.Name != nil || c.Phone != nil || c.Location != nil || c.Goals != nil ||
		c.MedicalHistory != nil || c.Tag != nil || c.Recurring != nil || c.OneTime != nil ||
		c.ClearSchedules
}

func (c *ClientEditCmd) Run(ctx *cli.Context) error {
	if !c.anyFieldProvided() {
		return errors.New("at least one field to edit must be provided")
	}

	existing, err := ctx.ResolveClientID(c.ID)
	if err != nil {
		return err
	}
	if existing.IsDeleted() {
		return fmt.Errorf("client %s is deleted, restore it first", cli.ShortID(existing.ID))
	}

	// Unprovided fields keep their current values.
	edited := existing
	if c.Name != nil {
		edited.Name = *c.Name
	}
	if c.Phone != nil {
		edited.Phone = *c.Phone
	}
	if c.Location != nil {
		edited.Location = *c.Location
	}
	if c.Goals != nil {
		edited.Goals = *c.Goals
	}
	if c.MedicalHistory != nil {
		edited.MedicalHistory = *c.MedicalHistory
	}
	if c.Tag != nil {
		edited.SetTags(c.Tag)
	}
	if c.ClearSchedules {
		edited.SetRecurringSchedules(nil)
		edited.SetOneTimeSchedules(nil)
	} else {
		if c.Recurring != nil {
			recurring, err := cli.ParseRecurringFlags(c.Recurring)
			if err != nil {
				return err
			}
			edited.SetRecurringSchedules(recurring)
		}
		if c.OneTime != nil {
			oneTime, err := cli.ParseOneTimeFlags(c.OneTime)
			if err != nil {
				return err
			}
			edited.SetOneTimeSchedules(oneTime)
		}
	}
	edited.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := edited.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}

	roster, err := ctx.Store.GetAllClients()
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}

	// Duplicates abort; schedule conflicts are advisory and never block.
	if err := cli.CheckDuplicates(roster, existing.ID, edited); err != nil {
		return err
	}
	conflicts := ctx.Detector.FindAllConflicts(roster, existing.ID, edited)

	if err := ctx.Store.UpdateClient(edited); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	ctx.PerformAutomaticBackup()

	success := fmt.Sprintf(constants.MessageEditSuccess, edited.Name)
	fmt.Println(cli.FormatConflictNotice(constants.MessageScheduleConflictEdited, conflicts, success))

	return nil
}
