package system

import (
	"testing"
)

func TestDebugPathsCmd(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &DebugPathsCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug paths failed: %v", err)
	}
}

func TestDebugSettingsCmd(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	cmd := &DebugSettingsCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("debug settings failed: %v", err)
	}
}

func TestDebugSettingsCmd_Uninitialized(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &DebugSettingsCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Error("debug settings should fail before init")
	}
}
