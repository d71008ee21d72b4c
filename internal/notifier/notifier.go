// Package notifier delivers desktop notifications through the fitflow-tray
// companion app. The tray writes a lockfile with its webhook port, its PID,
// and a shared secret; the CLI validates all three before posting, so a
// stale lockfile or an impostor process on the port never receives session
// reminders.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/CloudKai/fitflow/internal/constants"
)

const trayExecutablePrefix = "fitflow-tray"

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type Notifier struct{}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{}
}

// Notify shows text as a desktop notification via the running tray app.
func (n *Notifier) Notify(text string) error {
	trayConfigDir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayConfigDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	return sendNotification(port, secret, payload)
}

// GetTrayAppConfigDir returns the configuration directory used by the tray
// application. The tray's settings.json may point the lockfile somewhere
// else; that override wins.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

// LockfileStatus reports on the tray lockfile for diagnostics. It returns
// the lockfile path, whether the file exists, and a validation error when
// the file exists but is unusable (malformed, or its process is gone).
func LockfileStatus() (string, bool, error) {
	trayConfigDir, err := GetTrayAppConfigDir()
	if err != nil {
		return "", false, err
	}

	lockfilePath := filepath.Join(trayConfigDir, constants.NotifierLockfileName)
	if _, err := os.Stat(lockfilePath); err != nil {
		return lockfilePath, false, nil
	}

	if _, _, err := findAndValidateTrayProcess(lockfilePath); err != nil {
		return lockfilePath, true, err
	}
	return lockfilePath, true, nil
}

// findAndValidateTrayProcess reads the lockfile (port|pid|secret) and
// checks that the recorded PID is a live fitflow-tray process.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("fitflow-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("fitflow-tray process not running")
	}

	if !strings.HasPrefix(process.Executable(), trayExecutablePrefix) {
		return "", "", fmt.Errorf("process with PID %d is not fitflow-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

// sendNotification posts the payload to the tray's local webhook, retrying
// transient failures. Rejected secrets are not retried.
func sendNotification(port string, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(constants.NotifyRetryDelay)
		}

		req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Fitflow-Secret", secret)

		res, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(res.Body)
		res.Body.Close()

		switch {
		case res.StatusCode == http.StatusOK:
			return nil
		case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
			return fmt.Errorf("tray app rejected the lockfile secret (status %d)", res.StatusCode)
		default:
			lastErr = fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
		}
	}

	return lastErr
}
