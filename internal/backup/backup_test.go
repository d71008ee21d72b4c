package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// createTestDB writes a small SQLite database with one known row so restore
// tests can tell snapshots apart.
func createTestDB(t *testing.T, path, marker string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO kv (key, value) VALUES ('marker', ?)", marker); err != nil {
		t.Fatalf("failed to insert marker: %v", err)
	}
}

func readMarker(t *testing.T, path string) string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var marker string
	if err := db.QueryRow("SELECT value FROM kv WHERE key = 'marker'").Scan(&marker); err != nil {
		t.Fatalf("failed to read marker: %v", err)
	}
	return marker
}

func TestCreateBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fitflow.db")
	createTestDB(t, dbPath, "v1")

	m := NewManager(dbPath)
	backupPath, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	if filepath.Dir(backupPath) != m.GetBackupDir() {
		t.Errorf("backup written to %s, want directory %s", backupPath, m.GetBackupDir())
	}
	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, "fitflow-") || !strings.HasSuffix(name, ".db") {
		t.Errorf("unexpected backup name %q", name)
	}
	if readMarker(t, backupPath) != "v1" {
		t.Error("backup does not contain the source data")
	}
}

func TestCreateBackupMissingSource(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "fitflow.db"))
	if _, err := m.CreateBackup(); err == nil {
		t.Fatal("expected error for missing storage file, got nil")
	}
}

func TestCreateBackupCollision(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fitflow.db")
	createTestDB(t, dbPath, "v1")

	m := NewManager(dbPath)
	first, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("first CreateBackup() failed: %v", err)
	}
	second, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("second CreateBackup() failed: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct backup paths, both were %s", first)
	}
}

func TestListBackups(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fitflow.db")
	createTestDB(t, dbPath, "v1")
	m := NewManager(dbPath)

	if err := os.MkdirAll(m.GetBackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	names := []string{
		"fitflow-20250601-100000.db",
		"fitflow-20250603-100000.db",
		"fitflow-20250602-100000.db",
		"fitflow-20250602-100000-1.db",
		"unrelated.txt",
		"fitflow-garbage.db",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(m.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 4 {
		t.Fatalf("ListBackups() returned %d entries, want 4", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first: %v before %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
	if want := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC); !backups[0].Timestamp.Equal(want) {
		t.Errorf("newest backup timestamp = %v, want %v", backups[0].Timestamp, want)
	}
}

func TestListBackupsEmptyDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "fitflow.db"))
	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("ListBackups() returned %d entries, want 0", len(backups))
	}
}

func TestRotateBackups(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fitflow.db")
	createTestDB(t, dbPath, "v1")
	m := NewManager(dbPath)

	if err := os.MkdirAll(m.GetBackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < MaxBackups+5; i++ {
		name := "fitflow-" + base.AddDate(0, 0, i).Format("20060102-150405") + ".db"
		if err := os.WriteFile(filepath.Join(m.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	if _, err := m.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("rotation left %d backups, want at most %d", len(backups), MaxBackups)
	}
	// The snapshot just written must survive rotation.
	if !backups[0].Timestamp.After(base.AddDate(0, 0, MaxBackups+5)) {
		t.Error("rotation removed the newest backup")
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fitflow.db")
	createTestDB(t, dbPath, "before")

	m := NewManager(dbPath)
	backupPath, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}

	createTestDB(t, dbPath, "after")
	if readMarker(t, dbPath) != "after" {
		t.Fatal("setup failed: marker not updated")
	}

	if err := m.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup() failed: %v", err)
	}
	if got := readMarker(t, dbPath); got != "before" {
		t.Errorf("marker after restore = %q, want %q", got, "before")
	}

	// The pre-restore state must have been snapshotted too.
	backups, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() failed: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected a safety snapshot before restore, found %d backups", len(backups))
	}
}

func TestRestoreBackupRejectsCorruptFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fitflow.db")
	createTestDB(t, dbPath, "v1")
	m := NewManager(dbPath)

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("this is not a database"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	err := m.RestoreBackup(corrupt)
	if err == nil {
		t.Fatal("expected error restoring corrupt backup, got nil")
	}
	if !strings.Contains(err.Error(), "corrupted or invalid") {
		t.Errorf("unexpected error: %v", err)
	}
	if got := readMarker(t, dbPath); got != "v1" {
		t.Errorf("storage was modified by failed restore: marker = %q", got)
	}
}

func TestRestoreBackupMissingFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "fitflow.db"))
	if err := m.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Fatal("expected error for missing backup file, got nil")
	}
}

func TestJSONStoreSnapshots(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "fitflow.json")
	doc := `{"version":1,"clients":{}}`
	if err := os.WriteFile(jsonPath, []byte(doc), 0600); err != nil {
		t.Fatalf("failed to write JSON store: %v", err)
	}

	m := NewManager(jsonPath)
	backupPath, err := m.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("JSON snapshot has wrong suffix: %s", backupPath)
	}
	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if string(data) != doc {
		t.Errorf("snapshot content = %q, want %q", data, doc)
	}
}

func TestJSONStoreRejectsCorruptSource(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "fitflow.json")
	if err := os.WriteFile(jsonPath, []byte("{truncated"), 0600); err != nil {
		t.Fatalf("failed to write JSON store: %v", err)
	}

	m := NewManager(jsonPath)
	if _, err := m.CreateBackup(); err == nil {
		t.Fatal("expected error snapshotting invalid JSON, got nil")
	}
}

func TestParseSnapshotTime(t *testing.T) {
	tests := []struct {
		stem   string
		wantOK bool
	}{
		{"20250601-100000", true},
		{"20250601-100000-1", true},
		{"20250601-100000-12", true},
		{"garbage", false},
		{"20250601", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			_, ok := parseSnapshotTime(tt.stem)
			if ok != tt.wantOK {
				t.Errorf("parseSnapshotTime(%q) ok = %v, want %v", tt.stem, ok, tt.wantOK)
			}
		})
	}
}
