package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/storage"
	"github.com/CloudKai/fitflow/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			// Normalize paths to absolute for accurate comparison
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			// Then delete it
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			// Some other error occurred while checking the database; surface it to the user
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	// Initialize destination store
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized fitflow storage at: %s\n", ctx.Store.GetConfigPath())

	// If source is provided, migrate data
	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	// Determine source store type and instantiate it
	var sourceStore storage.Provider
	switch {
	case strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://"):
		// Validate source connection string for embedded credentials
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use the keyring or environment variables instead")
			}
			return err
		}
		sourceStore = storage.NewPostgresStore(sourcePath)
	case strings.HasSuffix(sourcePath, ".json"):
		sourceStore = storage.NewJSONStore(sourcePath)
	default:
		// Default to SQLite for file paths
		sourceStore = storage.NewSQLiteStore(sourcePath)
	}

	// Load the source store
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	// Migrate Settings
	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	// Migrate Clients (soft-deleted records come along too)
	fmt.Println("  Migrating clients...")
	clients, err := sourceStore.GetAllClientsIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get clients from source: %w", err)
	}
	for _, client := range clients {
		if err := ctx.Store.AddClient(client); err != nil {
			return fmt.Errorf("failed to add client %s: %w", client.ID, err)
		}
	}
	fmt.Printf("    Migrated %d clients\n", len(clients))

	return nil
}
