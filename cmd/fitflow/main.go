package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/cli/backups"
	"github.com/CloudKai/fitflow/internal/cli/clients"
	"github.com/CloudKai/fitflow/internal/cli/exports"
	"github.com/CloudKai/fitflow/internal/cli/system"
	"github.com/CloudKai/fitflow/internal/conflict"
	"github.com/CloudKai/fitflow/internal/constants"
	"github.com/CloudKai/fitflow/internal/keyring"
	"github.com/CloudKai/fitflow/internal/logger"
	"github.com/CloudKai/fitflow/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring or environment variables instead." type:"string" default:"~/.config/fitflow/fitflow.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize fitflow storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Add     clients.ClientAddCmd     `cmd:"" help:"Add a new client."`
	Edit    clients.ClientEditCmd    `cmd:"" help:"Edit an existing client."`
	Delete  clients.ClientDeleteCmd  `cmd:"" help:"Delete a client."`
	Restore clients.ClientRestoreCmd `cmd:"" help:"Restore a deleted client."`

	List      cli.ListCmd      `cmd:"" help:"List clients."`
	Find      cli.FindCmd      `cmd:"" help:"Find clients whose names contain any keyword."`
	View      cli.ViewCmd      `cmd:"" help:"Show full details for one client."`
	Conflicts cli.ConflictsCmd `cmd:"" help:"Scan the whole roster for schedule conflicts."`
	Sessions  cli.SessionsCmd  `cmd:"" help:"Show upcoming sessions."`

	Export exports.ExportCmd `cmd:"" help:"Export the roster (ics, yaml, or json)."`
	Import exports.ImportCmd `cmd:"" help:"Import clients from a roster file."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Clear  system.KeyringClearCmd  `cmd:"" help:"Remove the connection string from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability and stored credentials."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`

	Remind struct {
		Watch system.RemindWatchCmd `cmd:"" help:"Watch for upcoming sessions and notify." default:"1"`
		Once  system.RemindOnceCmd  `cmd:"" help:"Run a single reminder scan."`
	} `cmd:"" help:"Session reminders via the tray notifier."`

	DebugCmd system.DebugCmd  `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Notify   system.NotifyCmd `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("fitflow"),
		kong.Description("Personal trainer client manager with schedule conflict detection"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := resolveConfig(CLI.Config)

	// Initialize storage based on config format
	var store storage.Provider
	var configDir string
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		// PostgreSQL connection string detected - validate for embedded credentials
		if storage.HasEmbeddedCredentials(config) {
			fmt.Fprintf(os.Stderr, "❌ Error: PostgreSQL connection strings with embedded credentials are NOT allowed.\n")
			fmt.Fprintf(os.Stderr, "       Use one of these secure alternatives:\n")
			fmt.Fprintf(os.Stderr, "       1. OS keyring:    fitflow keyring set \"postgresql://user@host:5432/fitflow\"\n")
			fmt.Fprintf(os.Stderr, "       2. Environment:   export %s=\"postgresql://user@host:5432/fitflow\"\n", constants.EnvDBConnection)
			fmt.Fprintf(os.Stderr, "       3. .pgpass file:  Use a connection string without the password\n")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(config)
		configDir = defaultConfigDir()
	} else if strings.HasSuffix(config, ".json") {
		store = storage.NewJSONStore(config)
		configDir = filepath.Dir(config)
	} else {
		// Default to SQLite
		store = storage.NewSQLiteStore(config)
		configDir = filepath.Dir(config)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store:    store,
		Detector: conflict.New(),
	}

	// Load the store before running the command (Init command will handle its own loading)
	if !CLI.Init.Force && ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig turns the --config flag into a usable store target. A flag
// left at its default defers to the environment and then the OS keyring, so
// PostgreSQL users don't have to repeat the connection string per command.
// Tildes are expanded here because the flag also accepts connection strings,
// which kong's path type would mangle.
func resolveConfig(config string) string {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		return config
	}

	if config == constants.DefaultConfigPath {
		if env := os.Getenv(constants.EnvDBConnection); env != "" {
			return env
		}
		if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
			return connStr
		}
	}

	return expandHome(config)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func defaultConfigDir() string {
	return filepath.Dir(expandHome(constants.DefaultConfigPath))
}
