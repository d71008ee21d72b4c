package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/CloudKai/fitflow/internal/constants"
)

const (
	// MaxBackups is how many snapshots rotation keeps.
	MaxBackups = 14
	// BackupDirName is the directory under the config dir that holds snapshots.
	BackupDirName = "backups"

	timestampFormat = "20060102-150405"
)

// filePrefix keeps snapshot names tied to the application name.
var filePrefix = constants.AppName + "-"

// Info describes one snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the storage file and rotates old snapshots. SQLite
// databases are copied with VACUUM INTO so a live database yields a
// consistent snapshot; JSON stores are verified file copies. The snapshot
// keeps the source file's extension so a restore stays matched to the
// store that wrote it.
type Manager struct {
	storePath string
	backupDir string
	suffix    string
}

func NewManager(storePath string) *Manager {
	suffix := filepath.Ext(storePath)
	if suffix == "" {
		suffix = ".db"
	}
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), BackupDirName),
		suffix:    suffix,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup writes a new snapshot and prunes snapshots beyond MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// createBackup writes a snapshot. skipRotation prevents a restore's safety
// snapshot from pruning the very backup being restored.
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("storage file does not exist: %s", m.storePath)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if err := m.snapshot(backupPath); err != nil {
		return "", fmt.Errorf("failed to back up storage: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
		}
	}

	return backupPath, nil
}

// nextBackupPath picks an unused snapshot name, appending a counter when
// two snapshots land within the same second.
func (m *Manager) nextBackupPath() (string, error) {
	timestamp := time.Now().Format(timestampFormat)
	backupPath := filepath.Join(m.backupDir, filePrefix+timestamp+m.suffix)

	counter := 1
	for {
		if _, err := os.Stat(backupPath); os.IsNotExist(err) {
			return backupPath, nil
		}
		backupPath = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", filePrefix, timestamp, counter, m.suffix))
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
	}
}

// snapshot copies the storage file to destPath using the strategy that
// matches the store format.
func (m *Manager) snapshot(destPath string) error {
	if m.suffix != ".db" {
		if err := m.verifyJSON(m.storePath); err != nil {
			return fmt.Errorf("storage file is not valid JSON: %w", err)
		}
		return copyFile(m.storePath, destPath)
	}

	srcDB, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	// VACUUM INTO produces a consistent copy even while the database is
	// open elsewhere. Older SQLite builds without it fall back to a file
	// copy.
	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		srcDB.Close()
		return copyFile(m.storePath, destPath)
	}

	return nil
}

// ListBackups returns all snapshots, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		timestamp, ok := parseSnapshotTime(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), m.suffix))
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// parseSnapshotTime reads the timestamp out of a snapshot name stem,
// ignoring a trailing collision counter.
func parseSnapshotTime(stem string) (time.Time, bool) {
	parts := strings.Split(stem, "-")
	if len(parts) > 2 {
		stem = strings.Join(parts[:2], "-")
	}
	timestamp, err := time.Parse(timestampFormat, stem)
	if err != nil {
		return time.Time{}, false
	}
	return timestamp, true
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= MaxBackups {
		return nil
	}

	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}

	return nil
}

// RestoreBackup replaces the storage file with the given snapshot. The
// current file is snapshotted first so a bad restore is recoverable.
func (m *Manager) RestoreBackup(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := m.verifyBackup(backupPath); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		currentBackup, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
		fmt.Printf("Created backup of current data: %s\n", filepath.Base(currentBackup))
	}

	// Copy to a temp file first so the swap is a single atomic rename.
	tempPath := m.storePath + ".restore.tmp"

	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.storePath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove temporary file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to restore storage: %w", err)
	}

	return nil
}

// verifyBackup checks that a snapshot is readable in its own format before
// it is allowed to replace the live storage file.
func (m *Manager) verifyBackup(path string) error {
	if m.suffix != ".db" {
		return m.verifyJSON(path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func (m *Manager) verifyJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("not a valid JSON document")
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
