package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/CloudKai/fitflow/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fitflow.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestSQLiteStoreInit(t *testing.T) {
	store := newTestSQLiteStore(t)

	if store.GetDB() == nil {
		t.Fatal("expected GetDB() to return a live handle after Init()")
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.Timezone == "" {
		t.Error("expected default settings to be written during Init()")
	}
}

func TestSQLiteStoreLoadBeforeInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "fitflow.db"))
	err := store.Load()
	if err == nil {
		t.Fatal("expected error loading uninitialized storage, got nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSQLiteStoreClientRoundtrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	wednesday, err := models.NewRecurringSchedule(time.Wednesday, "1400", "1500")
	if err != nil {
		t.Fatalf("NewRecurringSchedule() failed: %v", err)
	}
	session, err := models.NewOneTimeSchedule(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "1445", "1545")
	if err != nil {
		t.Fatalf("NewOneTimeSchedule() failed: %v", err)
	}

	client := models.Client{
		ID:                 "c1",
		Name:               "John Doe",
		Phone:              "91234567",
		Location:           "Downtown Gym",
		Goals:              "strength",
		MedicalHistory:     "none",
		Tags:               []string{"premium", "morning"},
		RecurringSchedules: []models.RecurringSchedule{wednesday},
		OneTimeSchedules:   []models.OneTimeSchedule{session},
		CreatedAt:          "2025-06-01T10:00:00Z",
		UpdatedAt:          "2025-06-01T10:00:00Z",
	}
	if err := store.AddClient(client); err != nil {
		t.Fatalf("AddClient() failed: %v", err)
	}

	got, err := store.GetClient("c1")
	if err != nil {
		t.Fatalf("GetClient() failed: %v", err)
	}
	if got.Name != client.Name || got.Phone != client.Phone || got.Location != client.Location {
		t.Errorf("client fields mismatch: got %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "premium" {
		t.Errorf("tags did not survive the roundtrip: %v", got.Tags)
	}
	if len(got.RecurringSchedules) != 1 || got.RecurringSchedules[0].Day != time.Wednesday {
		t.Errorf("recurring schedules did not survive the roundtrip: %+v", got.RecurringSchedules)
	}
	if len(got.OneTimeSchedules) != 1 || got.OneTimeSchedules[0].Date != "31/12/25" {
		t.Errorf("one-time schedules did not survive the roundtrip: %+v", got.OneTimeSchedules)
	}

	got.Goals = "hypertrophy"
	if err := store.UpdateClient(got); err != nil {
		t.Fatalf("UpdateClient() failed: %v", err)
	}
	updated, err := store.GetClient("c1")
	if err != nil {
		t.Fatalf("GetClient() after update failed: %v", err)
	}
	if updated.Goals != "hypertrophy" {
		t.Errorf("Goals = %q, want %q", updated.Goals, "hypertrophy")
	}

	if _, err := store.GetClient("missing"); err == nil {
		t.Error("expected error for unknown client id, got nil")
	}
}

func TestSQLiteStoreSoftDeleteAndRestore(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.AddClient(testClient("c1", "Jane Smith", "98765432", "2025-06-01T10:00:00Z")); err != nil {
		t.Fatalf("AddClient() failed: %v", err)
	}

	if err := store.DeleteClient("c1"); err != nil {
		t.Fatalf("DeleteClient() failed: %v", err)
	}
	if _, err := store.GetClient("c1"); err == nil {
		t.Error("expected deleted client to be hidden from GetClient")
	}

	visible, err := store.GetAllClients()
	if err != nil {
		t.Fatalf("GetAllClients() failed: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("GetAllClients() returned %d clients, want 0", len(visible))
	}

	all, err := store.GetAllClientsIncludingDeleted()
	if err != nil {
		t.Fatalf("GetAllClientsIncludingDeleted() failed: %v", err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Fatalf("expected one soft-deleted client, got %+v", all)
	}

	if err := store.DeleteClient("c1"); err == nil {
		t.Error("expected error deleting an already-deleted client")
	}
	if err := store.DeleteClient("missing"); err == nil {
		t.Error("expected error deleting an unknown client")
	}

	if err := store.RestoreClient("c1"); err != nil {
		t.Fatalf("RestoreClient() failed: %v", err)
	}
	restored, err := store.GetClient("c1")
	if err != nil {
		t.Fatalf("GetClient() after restore failed: %v", err)
	}
	if restored.DeletedAt != nil {
		t.Error("expected DeletedAt to be cleared after restore")
	}
	if err := store.RestoreClient("c1"); err == nil {
		t.Error("expected error restoring a client that is not deleted")
	}
}

func TestSQLiteStoreStableOrdering(t *testing.T) {
	store := newTestSQLiteStore(t)

	clients := []models.Client{
		testClient("b2", "Charlie", "33333333", "2025-06-03T10:00:00Z"),
		testClient("a1", "Alice", "11111111", "2025-06-01T10:00:00Z"),
		testClient("a2", "Bob", "22222222", "2025-06-01T10:00:00Z"),
	}
	for _, c := range clients {
		if err := store.AddClient(c); err != nil {
			t.Fatalf("AddClient(%s) failed: %v", c.ID, err)
		}
	}

	got, err := store.GetAllClients()
	if err != nil {
		t.Fatalf("GetAllClients() failed: %v", err)
	}
	wantIDs := []string{"a1", "a2", "b2"}
	if len(got) != len(wantIDs) {
		t.Fatalf("GetAllClients() returned %d clients, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("client %d has id %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestSQLiteStoreSettingsRoundtrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}

	settings.Timezone = "Asia/Singapore"
	settings.ReminderLeadMin = 45
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() after save failed: %v", err)
	}
	if got.Timezone != "Asia/Singapore" {
		t.Errorf("Timezone = %q, want %q", got.Timezone, "Asia/Singapore")
	}
	if got.ReminderLeadMin != 45 {
		t.Errorf("ReminderLeadMin = %d, want 45", got.ReminderLeadMin)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitflow.db")

	first := NewSQLiteStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := first.AddClient(testClient("c1", "John Doe", "91234567", "2025-06-01T10:00:00Z")); err != nil {
		t.Fatalf("AddClient() failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	second := NewSQLiteStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load() on reopened store failed: %v", err)
	}
	defer second.Close()

	got, err := second.GetClient("c1")
	if err != nil {
		t.Fatalf("GetClient() on reopened store failed: %v", err)
	}
	if got.Name != "John Doe" {
		t.Errorf("persisted Name = %q, want %q", got.Name, "John Doe")
	}
}
