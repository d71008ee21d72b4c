package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fitflow.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	return store
}

func testClient(id, name, phone, createdAt string) models.Client {
	return models.Client{
		ID:        id,
		Name:      name,
		Phone:     phone,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestJSONStoreInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitflow.json")
	store := NewJSONStore(path)

	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected storage file at %s: %v", path, err)
	}

	err := store.Init()
	if err == nil {
		t.Fatal("expected error on second Init(), got nil")
	}
	if !strings.Contains(err.Error(), "already initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestJSONStoreLoadBeforeInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "fitflow.json"))
	err := store.Load()
	if err == nil {
		t.Fatal("expected error loading uninitialized storage, got nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestJSONStoreClientLifecycle(t *testing.T) {
	store := newTestJSONStore(t)

	monday, err := models.NewRecurringSchedule(time.Monday, "0900", "1000")
	if err != nil {
		t.Fatalf("NewRecurringSchedule() failed: %v", err)
	}

	client := testClient("c1", "John Doe", "91234567", "2025-06-01T10:00:00Z")
	client.RecurringSchedules = []models.RecurringSchedule{monday}

	if err := store.AddClient(client); err != nil {
		t.Fatalf("AddClient() failed: %v", err)
	}

	got, err := store.GetClient("c1")
	if err != nil {
		t.Fatalf("GetClient() failed: %v", err)
	}
	if got.Name != "John Doe" {
		t.Errorf("Name = %q, want %q", got.Name, "John Doe")
	}
	if len(got.RecurringSchedules) != 1 || got.RecurringSchedules[0].Day != time.Monday {
		t.Errorf("recurring schedules did not survive the roundtrip: %+v", got.RecurringSchedules)
	}

	got.Goals = "marathon prep"
	if err := store.UpdateClient(got); err != nil {
		t.Fatalf("UpdateClient() failed: %v", err)
	}
	updated, err := store.GetClient("c1")
	if err != nil {
		t.Fatalf("GetClient() after update failed: %v", err)
	}
	if updated.Goals != "marathon prep" {
		t.Errorf("Goals = %q, want %q", updated.Goals, "marathon prep")
	}

	if _, err := store.GetClient("missing"); err == nil {
		t.Error("expected error for unknown client id, got nil")
	}
}

func TestJSONStoreSoftDeleteAndRestore(t *testing.T) {
	store := newTestJSONStore(t)

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
	if len(all) != 1 {
		t.Fatalf("GetAllClientsIncludingDeleted() returned %d clients, want 1", len(all))
	}
	if all[0].DeletedAt == nil {
		t.Error("expected DeletedAt to be set on soft-deleted client")
	}

	if err := store.DeleteClient("c1"); err == nil {
		t.Error("expected error deleting an already-deleted client")
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

func TestJSONStoreStableOrdering(t *testing.T) {
	store := newTestJSONStore(t)

	// Insert out of creation order; listings must come back sorted by
	// created_at and then id.
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

func TestJSONStoreSettings(t *testing.T) {
	store := newTestJSONStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.Timezone != constants.DefaultTimezone {
		t.Errorf("default Timezone = %q, want %q", settings.Timezone, constants.DefaultTimezone)
	}

	settings.Timezone = "Asia/Singapore"
	settings.AutoBackup = false
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() after save failed: %v", err)
	}
	if got.Timezone != "Asia/Singapore" || got.AutoBackup {
		t.Errorf("settings roundtrip mismatch: %+v", got)
	}
}

func TestJSONStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitflow.json")

	first := NewJSONStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := first.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := first.AddClient(testClient("c1", "John Doe", "91234567", "2025-06-01T10:00:00Z")); err != nil {
		t.Fatalf("AddClient() failed: %v", err)
	}

	second := NewJSONStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load() on second store failed: %v", err)
	}
	got, err := second.GetClient("c1")
	if err != nil {
		t.Fatalf("GetClient() on second store failed: %v", err)
	}
	if got.Name != "John Doe" {
		t.Errorf("persisted Name = %q, want %q", got.Name, "John Doe")
	}
}
