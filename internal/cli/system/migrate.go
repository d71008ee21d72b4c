package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/migration"
	"github.com/CloudKai/fitflow/internal/storage"
	"github.com/CloudKai/fitflow/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	// Load the database
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

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
		return fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}

	runner, err := migration.NewRunner(db, subFS, driver)
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
