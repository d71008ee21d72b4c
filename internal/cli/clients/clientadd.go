package clients

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
)

type ClientAddCmd struct {
	Name           string   `short:"n" help:"Client name." required:""`
	Phone          string   `short:"p" help:"Phone number (digits only, min 3)." required:""`
	Location       string   `short:"l" help:"Usual training location."`
	Goals          string   `short:"g" help:"Training goals."`
	MedicalHistory string   `help:"Medical history notes."`
	Tag            []string `short:"t" help:"Tag (single alphanumeric word). Repeatable."`
	Recurring      []string `short:"r" help:"Recurring schedule (\"DAY HHmm HHmm\"). Repeatable."`
	OneTime        []string `short:"o" help:"One-time schedule (\"DD/MM[/YY] HHmm HHmm\"). Repeatable."`
}

func (c *ClientAddCmd) Run(ctx *cli.Context) error {
	recurring, err := cli.ParseRecurringFlags(c.Recurring)
	if err != nil {
		return err
	}
	oneTime, err := cli.ParseOneTimeFlags(c.OneTime)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	client := models.Client{
		ID:             uuid.New().String(),
		Name:           c.Name,
		Phone:          c.Phone,
		Location:       c.Location,
		Goals:          c.Goals,
		MedicalHistory: c.MedicalHistory,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	client.SetTags(c.Tag)
	client.SetRecurringSchedules(recurring)
	client.SetOneTimeSchedules(oneTime)

	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}

	roster, err := ctx.Store.GetAllClients()
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}

	// Duplicates abort; schedule conflicts are advisory and never block.
	if err := cli.CheckDuplicates(roster, "", client); err != nil {
		return err
	}
	conflicts := ctx.Detector.FindAllConflicts(roster, "", client)

	if err := ctx.Store.AddClient(client); err != nil {
		return fmt.Errorf("failed to add client: %w", err)
	}

	ctx.PerformAutomaticBackup()

	success := fmt.Sprintf(constants.MessageAddSuccess, client.Name)
	fmt.Println(cli.FormatConflictNotice(constants.MessageScheduleConflictAdded, conflicts, success))
	fmt.Printf("ID: %s\n", client.ID)

	return nil
}
