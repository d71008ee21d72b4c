// Package reminder watches the agenda and raises a desktop notification
// shortly before each session starts. The scan cadence is a cron expression
// from settings, so users can trade battery for punctuality.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/CloudKai/fitflow/internal/agenda"
	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/logger"
	"github.com/CloudKai/fitflow/internal/models"
	"github.com/CloudKai/fitflow/internal/utils"
)

// Notifier delivers one reminder text. *notifier.Notifier satisfies it.
type Notifier interface {
	Notify(text string) error
}

// Scanner finds sessions whose start falls inside the lead window.
type Scanner struct {
	builder *agenda.Builder
	lead    time.Duration
}

func NewScanner(loc *time.Location, leadMinutes int) *Scanner {
	if leadMinutes <= 0 {
		leadMinutes = constants.DefaultReminderLead
	}
	return &Scanner{
		builder: agenda.NewBuilder(loc),
		lead:    time.Duration(leadMinutes) * time.Minute,
	}
}

// DueSessions returns sessions starting in [now, now+lead], soonest first.
func (s *Scanner) DueSessions(clients []models.Client, now time.Time) ([]agenda.Session, error) {
	// The agenda window is counted in days; cover the lead plus a margin.
	days := 2 + int(s.lead.Hours())/24
	sessions, err := s.builder.Upcoming(clients, now, days)
	if err != nil {
		return nil, err
	}

	deadline := now.Add(s.lead)
	var due []agenda.Session
	for _, session := range sessions {
		if session.Start.After(deadline) {
			break
		}
		due = append(due, session)
	}
	return due, nil
}

// Message renders the reminder text for one session.
func Message(session agenda.Session, now time.Time) string {
	return fmt.Sprintf("Session with %s at %s (in %s)",
		session.ClientName,
		session.Start.Format(constants.ClockFormat),
		utils.FormatDuration(session.Start.Sub(now)))
}

// ValidateCron checks a cron expression the way the reminder service will
// parse it. Descriptors like @hourly are accepted.
func ValidateCron(expr string) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// Service runs reminder scans on a cron schedule and remembers which
// session instances it already announced, so a tight scan cadence never
// double-notifies.
type Service struct {
	scanner     *Scanner
	notifier    Notifier
	loadClients func() ([]models.Client, error)
	schedule    string

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewService(scanner *Scanner, n Notifier, loadClients func() ([]models.Client, error), schedule string) *Service {
	if schedule == "" {
		schedule = constants.DefaultReminderCron
	}
	return &Service{
		scanner:     scanner,
		notifier:    n,
		loadClients: loadClients,
		schedule:    schedule,
		seen:        make(map[string]time.Time),
	}
}

// Run scans once immediately, then on every cron tick until the context is
// cancelled.
func (svc *Service) Run(ctx context.Context) error {
	if err := ValidateCron(svc.schedule); err != nil {
		return err
	}

	scan := func() {
		count, err := svc.ScanOnce(time.Now())
		if err != nil {
			logger.Error("Reminder scan failed", "error", err)
			return
		}
		if count > 0 {
			logger.Info("Sent session reminders", "count", count)
		}
	}

	scan()

	c := cron.New()
	if _, err := c.AddFunc(svc.schedule, scan); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", svc.schedule, err)
	}
	c.Start()
	defer c.Stop()

	<-ctx.Done()
	return ctx.Err()
}

// ScanOnce notifies every due session not yet announced and reports how
// many notifications went out.
func (svc *Service) ScanOnce(now time.Time) (int, error) {
	clients, err := svc.loadClients()
	if err != nil {
		return 0, fmt.Errorf("failed to load clients: %w", err)
	}

	due, err := svc.scanner.DueSessions(clients, now)
	if err != nil {
		return 0, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.pruneSeen(now)

	count := 0
	for _, session := range due {
		key := session.ClientID + "|" + session.Start.Format(time.RFC3339)
		if _, ok := svc.seen[key]; ok {
			continue
		}
		if err := svc.notifier.Notify(Message(session, now)); err != nil {
			return count, fmt.Errorf("failed to deliver reminder: %w", err)
		}
		svc.seen[key] = session.Start
		count++
	}

	return count, nil
}

// pruneSeen drops announcements for sessions long started, keeping the
// dedupe map bounded on a long-running daemon.
func (svc *Service) pruneSeen(now time.Time) {
	cutoff := now.Add(-24 * time.Hour)
	for key, start := range svc.seen {
		if start.Before(cutoff) {
			delete(svc.seen, key)
		}
	}
}
