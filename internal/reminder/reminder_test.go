package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/CloudKai/fitflow/internal/models"
)

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(text string) error {
	r.messages = append(r.messages, text)
	return nil
}

func fixtureClients(t *testing.T) []models.Client {
	t.Helper()
	monday, err := models.NewRecurringSchedule(time.Monday, "0900", "1000")
	if err != nil {
		t.Fatalf("NewRecurringSchedule() failed: %v", err)
	}
	session, err := models.NewOneTimeSchedule(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), "1400", "1500")
	if err != nil {
		t.Fatalf("NewOneTimeSchedule() failed: %v", err)
	}
	return []models.Client{
		{
			ID:                 "c1",
			Name:               "John Doe",
			RecurringSchedules: []models.RecurringSchedule{monday},
		},
		{
			ID:               "c2",
			Name:             "Jane Smith",
			OneTimeSchedules: []models.OneTimeSchedule{session},
		},
	}
}

func TestDueSessions(t *testing.T) {
	clients := fixtureClients(t)

	tests := []struct {
		name        string
		now         time.Time
		leadMinutes int
		wantNames   []string
	}{
		{
			name:        "session inside lead window",
			now:         time.Date(2025, 12, 1, 8, 30, 0, 0, time.UTC),
			leadMinutes: 30,
			wantNames:   []string{"John Doe"},
		},
		{
			name:        "session beyond lead window",
			now:         time.Date(2025, 12, 1, 8, 30, 0, 0, time.UTC),
			leadMinutes: 15,
			wantNames:   nil,
		},
		{
			name:        "both sessions with a wide window",
			now:         time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC),
			leadMinutes: 6 * 60,
			wantNames:   []string{"John Doe", "Jane Smith"},
		},
		{
			name:        "nothing due on a quiet afternoon",
			now:         time.Date(2025, 12, 1, 16, 0, 0, 0, time.UTC),
			leadMinutes: 30,
			wantNames:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(time.UTC, tt.leadMinutes)
			due, err := s.DueSessions(clients, tt.now)
			if err != nil {
				t.Fatalf("DueSessions() failed: %v", err)
			}
			if len(due) != len(tt.wantNames) {
				t.Fatalf("DueSessions() returned %d sessions, want %d", len(due), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if due[i].ClientName != want {
					t.Errorf("session %d is for %q, want %q", i, due[i].ClientName, want)
				}
			}
		})
	}
}

func TestMessage(t *testing.T) {
	s := NewScanner(time.UTC, 30)
	now := time.Date(2025, 12, 1, 8, 30, 0, 0, time.UTC)

	due, err := s.DueSessions(fixtureClients(t), now)
	if err != nil {
		t.Fatalf("DueSessions() failed: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("DueSessions() returned %d sessions, want 1", len(due))
	}

	got := Message(due[0], now)
	want := "Session with John Doe at 0900 (in 30m)"
	if got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestValidateCron(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"*/5 * * * *", false},
		{"0 9 * * 1-5", false},
		{"@hourly", false},
		{"not a schedule", true},
		{"* * * *", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			err := ValidateCron(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCron(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
		})
	}
}

func TestScanOnceDeduplicates(t *testing.T) {
	clients := fixtureClients(t)
	rec := &recordingNotifier{}
	svc := NewService(
		NewScanner(time.UTC, 30),
		rec,
		func() ([]models.Client, error) { return clients, nil },
		"*/5 * * * *",
	)

	now := time.Date(2025, 12, 1, 8, 30, 0, 0, time.UTC)

	count, err := svc.ScanOnce(now)
	if err != nil {
		t.Fatalf("first ScanOnce() failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("first ScanOnce() sent %d reminders, want 1", count)
	}

	count, err = svc.ScanOnce(now.Add(5 * time.Minute))
	if err != nil {
		t.Fatalf("second ScanOnce() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("second ScanOnce() sent %d reminders, want 0", count)
	}

	if len(rec.messages) != 1 {
		t.Fatalf("notifier received %d messages, want 1", len(rec.messages))
	}
	if !strings.Contains(rec.messages[0], "John Doe") {
		t.Errorf("unexpected reminder text: %q", rec.messages[0])
	}
}

func TestScanOnceAnnouncesNextOccurrence(t *testing.T) {
	clients := fixtureClients(t)
	rec := &recordingNotifier{}
	svc := NewService(
		NewScanner(time.UTC, 30),
		rec,
		func() ([]models.Client, error) { return clients, nil },
		"*/5 * * * *",
	)

	monday := time.Date(2025, 12, 1, 8, 45, 0, 0, time.UTC)
	if _, err := svc.ScanOnce(monday); err != nil {
		t.Fatalf("ScanOnce() failed: %v", err)
	}

	// A week later the same weekly schedule is a new instance and must be
	// announced again.
	nextMonday := monday.AddDate(0, 0, 7)
	count, err := svc.ScanOnce(nextMonday)
	if err != nil {
		t.Fatalf("ScanOnce() a week later failed: %v", err)
	}
	if count != 1 {
		t.Errorf("ScanOnce() a week later sent %d reminders, want 1", count)
	}
}
