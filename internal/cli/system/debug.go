package system

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/CloudKai/fitflow/internal/backup"
	"github.com/CloudKai/fitflow/internal/cli"
	"github.com/CloudKai/fitflow/internal/logger"
	"github.com/CloudKai/fitflow/internal/notifier"
)

type DebugCmd struct {
	Paths    *DebugPathsCmd    `cmd:"" help:"Show resolved storage, backup, and log paths."`
	Settings *DebugSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

type DebugPathsCmd struct{}

func (cmd *DebugPathsCmd) Run(ctx *cli.Context) error {
	storePath := ctx.Store.GetConfigPath()

	// Output in machine-readable format
	output := map[string]string{
		"store":   storePath,
		"backups": backup.NewManager(storePath).GetBackupDir(),
		"log":     logger.LogPath(filepath.Dir(storePath)),
	}
	if trayDir, err := notifier.GetTrayAppConfigDir(); err == nil {
		output["tray_config"] = trayDir
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugSettingsCmd struct{}

func (cmd *DebugSettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
