package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/CloudKai/fitflow/internal/backup"
	"github.com/CloudKai/fitflow/internal/conflict"
	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/logger"
	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/storage"
)

type Context struct {
	Store    storage.Provider
	Detector *conflict.Detector
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Honors the auto_backup setting; server-backed stores have no local file to
// snapshot and are skipped.
func (c *Context) PerformAutomaticBackup() {
	settings, err := c.Store.GetSettings()
	if err == nil && !settings.AutoBackup {
		return
	}

	storePath := c.Store.GetConfigPath()
	if _, err := os.Stat(storePath); err != nil {
		return
	}

	mgr := backup.NewManager(storePath)
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveClientID resolves a full client ID or an unambiguous prefix against
// the whole roster. Soft-deleted clients are included so restore can address
// them.
func (c *Context) ResolveClientID(idOrPrefix string) (models.Client, error) {
	clients, err := c.Store.GetAllClientsIncludingDeleted()
	if err != nil {
		return models.Client{}, err
	}
	return MatchClientID(clients, idOrPrefix)
}

// MatchClientID finds the client whose ID equals idOrPrefix, or uniquely
// starts with it. An ambiguous prefix errors with the candidate list.
func MatchClientID(clients []models.Client, idOrPrefix string) (models.Client, error) {
	if idOrPrefix == "" {
		return models.Client{}, fmt.Errorf("client id must not be empty")
	}

	var matches []models.Client
	for _, client := range clients {
		if client.ID == idOrPrefix {
			return client, nil
		}
		if strings.HasPrefix(client.ID, idOrPrefix) {
			matches = append(matches, client)
		}
	}

	switch len(matches) {
	case 0:
		return models.Client{}, fmt.Errorf("no client found with id %s", idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		labels := make([]string, len(matches))
		for i, m := range matches {
			labels[i] = fmt.Sprintf("%s (%s)", ShortID(m.ID), m.Name)
		}
		return models.Client{}, fmt.Errorf("ambiguous client id %s matches: %s", idOrPrefix, strings.Join(labels, ", "))
	}
}

// ShortID abbreviates a UUID for display, leaving short IDs untouched.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// CheckDuplicates enforces the duplicate-person and duplicate-phone rules
// against the active roster. excludeID names the record being replaced; pass
// "" when adding. Unlike schedule conflicts, a duplicate aborts the save.
func CheckDuplicates(roster []models.Client, excludeID string, candidate models.Client) error {
	for _, existing := range roster {
		if excludeID != "" && existing.ID == excludeID {
			continue
		}
		if existing.SameName(candidate) {
			return errors.New(constants.MessageDuplicateClient)
		}
		if existing.SamePhone(candidate) {
			return errors.New(constants.MessageDuplicatePhone)
		}
	}
	return nil
}

// FormatConflictNotice renders the advisory block printed after a save that
// produced schedule conflicts: note header, each conflict followed by a blank
// line, then the success message. With no conflicts only the success message
// is returned.
func FormatConflictNotice(header string, conflicts []string, success string) string {
	if len(conflicts) == 0 {
		return success
	}
	var b strings.Builder
	b.WriteString(header)
	for _, c := range conflicts {
		b.WriteString(c)
		b.WriteString("\n\n")
	}
	b.WriteString(success)
	return b.String()
}

// ParseRecurringFlags parses repeated --recurring values ("DAY HHmm HHmm").
func ParseRecurringFlags(values []string) ([]models.RecurringSchedule, error) {
	var schedules []models.RecurringSchedule
	for _, v := range values {
		s, err := models.ParseRecurringSchedule(v)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

// ParseOneTimeFlags parses repeated --one-time values ("DD/MM[/YY] HHmm HHmm").
func ParseOneTimeFlags(values []string) ([]models.OneTimeSchedule, error) {
	var schedules []models.OneTimeSchedule
	for _, v := range values {
		s, err := models.ParseOneTimeSchedule(v)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

// FormatClientLine renders the one-line roster entry used by list and find.
func FormatClientLine(client models.Client, showID bool) string {
	idStr := ""
	if showID {
		idStr = fmt.Sprintf(" (ID: %s)", ShortID(client.ID))
	}

	var extras []string
	if client.Location != "" {
		extras = append(extras, client.Location)
	}
	if len(client.Tags) > 0 {
		extras = append(extras, strings.Join(client.Tags, ","))
	}
	extraStr := ""
	if len(extras) > 0 {
		extraStr = fmt.Sprintf("  [%s]", strings.Join(extras, " | "))
	}

	return fmt.Sprintf("%s%s - %s%s", client.Name, idStr, client.Phone, extraStr)
}
