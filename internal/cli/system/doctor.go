package system

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/CloudKai/fitflow/internal/backup"
	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/migration"
	"github.com/CloudKai/fitflow/internal/notifier"
	"github.com/CloudKai/fitflow/internal/storage"
	"github.com/CloudKai/fitflow/internal/utils"
	"github.com/CloudKai/fitflow/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: Store reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (store not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (store not reachable)\n")
	}

	// Check 4: Backups present (warning only; server-backed stores have no local file)
	if _, err := os.Stat(ctx.Store.GetConfigPath()); err != nil {
		fmt.Printf("⊘ Backups present: SKIPPED (server-backed store)\n")
	} else if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: Roster validation (only if DB is reachable)
	if dbReachable {
		if err := checkRosterValidation(ctx); err != nil {
			fmt.Printf("❌ Roster validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Roster validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Roster validation: SKIPPED (store not reachable)\n")
	}

	// Check 6: Clock/timezone sanity
	if err := checkClockTimezone(ctx, dbReachable); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 7: Timestamp integrity (only if DB is reachable)
	if dbReachable {
		if err := checkTimestampIntegrity(ctx); err != nil {
			fmt.Printf("❌ Timestamp integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Timestamp integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Timestamp integrity: SKIPPED (store not reachable)\n")
	}

	// Check 8: Tray lockfile (warning only)
	if err := checkTrayLockfile(); err != nil {
		fmt.Printf("⚠ Tray lockfile: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Tray lockfile: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	// Try to load the store
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	// For SQL-backed stores, also try a simple query
	if db := storeDB(ctx); db != nil {
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

// storeDB returns the SQL handle behind the store, or nil for the JSON store.
func storeDB(ctx *cli.Context) *sql.DB {
	switch s := ctx.Store.(type) {
	case *storage.SQLiteStore:
		return s.GetDB()
	case *storage.PostgresStore:
		return s.GetDB()
	default:
		return nil
	}
}

// migrationRunner builds a runner for the store's backend, or returns nil
// for stores without schema versioning.
func migrationRunner(ctx *cli.Context) (*migration.Runner, error) {
	var (
		db     *sql.DB
		dir    string
		driver migration.Driver
	)
	switch s := ctx.Store.(type) {
	case *storage.SQLiteStore:
		db = s.GetDB()
		dir = "sqlite"
		driver = migration.DriverSQLite
	case *storage.PostgresStore:
		db = s.GetDB()
		dir = "postgres"
		driver = migration.DriverPostgres
	default:
		return nil, nil
	}
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}
	return migration.NewRunner(db, subFS, driver)
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if err != nil {
		return err
	}
	if runner == nil {
		// JSON store doesn't have schema version
		return nil
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}

	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx)
	if err != nil {
		return err
	}
	if runner == nil {
		// JSON store doesn't have migrations
		return nil
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'fitflow migrate')", currentVersion, latestVersion)
	}

	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'fitflow backup create'")
	}

	return nil
}

func checkRosterValidation(ctx *cli.Context) error {
	// Try to get settings
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	// Try to get all clients, including soft-deleted ones
	clients, err := ctx.Store.GetAllClientsIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}

	// Check for duplicate IDs
	clientIDs := make(map[string]bool)
	for _, client := range clients {
		if clientIDs[client.ID] {
			return fmt.Errorf("duplicate client ID found: %s", client.ID)
		}
		clientIDs[client.ID] = true
	}

	// Check for duplicate phone numbers among active clients
	phones := make(map[string]string)
	for _, client := range clients {
		if client.IsDeleted() || client.Phone == "" {
			continue
		}
		if other, ok := phones[client.Phone]; ok {
			return fmt.Errorf("clients %s and %s share phone number %s", other, client.Name, client.Phone)
		}
		phones[client.Phone] = client.Name
	}

	// Check each client's fields and schedules are well-formed
	for _, client := range clients {
		if err := client.Validate(); err != nil {
			return fmt.Errorf("client %s (%s) is invalid: %w", client.Name, cli.ShortID(client.ID), err)
		}
	}

	return nil
}

func checkClockTimezone(ctx *cli.Context, dbReachable bool) error {
	// Check if system time is reasonable
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	// Check the configured timezone resolves, when settings are readable
	if dbReachable {
		settings, err := ctx.Store.GetSettings()
		if err == nil && settings.Timezone != "" {
			if !utils.ValidateTimezone(settings.Timezone) {
				return fmt.Errorf("configured timezone is invalid: %s", settings.Timezone)
			}
		}
	}

	return nil
}

func checkTimestampIntegrity(ctx *cli.Context) error {
	db := storeDB(ctx)
	if db == nil {
		return nil // JSON store has no rows to probe
	}

	var corruptedCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM clients
		WHERE created_at = '' OR updated_at = ''
	`).Scan(&corruptedCount)
	if err != nil {
		return fmt.Errorf("failed to check client timestamps: %w", err)
	}
	if corruptedCount > 0 {
		return fmt.Errorf("found %d clients with corrupted timestamps", corruptedCount)
	}

	return nil
}

func checkTrayLockfile() error {
	lockfilePath, exists, err := notifier.LockfileStatus()
	if err != nil && !exists {
		return fmt.Errorf("failed to locate tray config: %v", err)
	}
	if exists && err != nil {
		return fmt.Errorf("stale lockfile at %s: %v (remove it or restart fitflow-tray)", lockfilePath, err)
	}
	return nil
}
