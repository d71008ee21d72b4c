package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/CloudKai/fitflow/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int { return m.pid }

func (m *mockProcess) PPid() int { return 0 }

func (m *mockProcess) Executable() string { return m.executable }

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	trayConfigDir := filepath.Join(tempDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayConfigDir, 0755); err != nil {
		t.Fatal(err)
	}

	customDir := "/custom/fitflow/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(trayConfigDir, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()

	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	writeLockfile := func(content string) {
		t.Helper()
		if err := os.WriteFile(lockfilePath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing lockfile")
	}

	writeLockfile("8080|12345")
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for two-part lockfile")
	}

	writeLockfile("invalid")
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for malformed lockfile")
	}

	writeLockfile("8080|12345|")
	_, _, err := findAndValidateTrayProcess(lockfilePath)
	if err == nil || !strings.Contains(err.Error(), "secret") {
		t.Errorf("expected error about empty secret, got: %v", err)
	}

	writeLockfile("|12345|testsecret123")
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for empty port")
	}

	writeLockfile("99999|12345|testsecret123")
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for port out of range")
	}

	writeLockfile("8080|12345|testsecret123")
	findProcessFunc = func(pid int) (ps.Process, error) {
		return nil, nil
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing process")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "other-app"}, nil
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "fitflow-tray"}, nil
	}
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != "8080" {
		t.Errorf("expected port 8080, got %s", port)
	}
	if secret != "testsecret123" {
		t.Errorf("expected secret testsecret123, got %s", secret)
	}
}

func TestSendNotification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		secret := r.Header.Get("X-Fitflow-Secret")
		if secret != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}

		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	parts := strings.Split(server.URL, ":")
	port := parts[len(parts)-1]

	if err := sendNotification(port, "test-secret", WebhookPayload{Text: "Session with John Doe in 30m"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// A rejected secret must fail immediately, not burn retries.
	err := sendNotification(port, "wrong-secret", WebhookPayload{Text: "hello"})
	if err == nil {
		t.Error("expected error for wrong secret")
	}
	if err != nil && !strings.Contains(err.Error(), "rejected") {
		t.Errorf("expected rejection error, got: %v", err)
	}

	if err := sendNotification(port, "test-secret", WebhookPayload{Text: "fail"}); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestSendNotificationRetriesTransientFailures(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < constants.NotifyMaxRetries {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	parts := strings.Split(server.URL, ":")
	port := parts[len(parts)-1]

	if err := sendNotification(port, "any", WebhookPayload{Text: "hello"}); err != nil {
		t.Errorf("expected retry to succeed, got: %v", err)
	}
	if attempts != constants.NotifyMaxRetries {
		t.Errorf("server saw %d attempts, want %d", attempts, constants.NotifyMaxRetries)
	}
}
