package notify

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

	"github.com/mitchellh/go-ps"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/keyring"
)

// swappable for tests
var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Payload is the webhook body posted to the tray companion app.
type Payload struct {
	ReminderID string   `json:"reminder_id"`
	Text       string   `json:"text"`
	DurationMs uint32   `json:"duration_ms"`
	Actions    []string `json:"actions,omitempty"`
}

// Sender delivers a reminder to the user.
type Sender interface {
	Send(r Reminder) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(r Reminder) error

func (f SenderFunc) Send(r Reminder) error { return f(r) }

// TraySender posts reminders to the desktop tray companion app. The tray
// writes a lockfile (port|pid|secret) on startup; delivery requires the
// recorded process to still be alive and the secret to match.
type TraySender struct {
	client *http.Client
}

func NewTraySender() *TraySender {
	return &TraySender{
		client: &http.Client{Timeout: constants.NotifySendTimeout},
	}
}

func (t *TraySender) Send(r Reminder) error {
	configDir, err := trayConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := readTrayLockfile(filepath.Join(configDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	// Keyring-stored secret takes precedence over the lockfile one.
	if kept, err := keyring.GetWebhookSecret(); err == nil && kept != "" {
		secret = kept
	}

	actions := make([]string, 0, len(r.Actions))
	for _, a := range r.Actions {
		actions = append(actions, string(a))
	}

	payload := Payload{
		ReminderID: r.ID,
		Text:       r.Message,
		DurationMs: constants.NotificationDurationMs,
		Actions:    actions,
	}
	return t.post(port, secret, payload)
}

func (t *TraySender) post(port, secret string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, "http://127.0.0.1:"+port+"/notify", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+secret)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach anchor-tray: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("anchor-tray rejected notification: %s (%s)", resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}

// TrayAvailable reports whether the tray companion app is running and able
// to deliver notifications, based on its lockfile and recorded process.
func TrayAvailable() error {
	configDir, err := trayConfigDir()
	if err != nil {
		return err
	}
	_, _, err = readTrayLockfile(filepath.Join(configDir, constants.NotifierLockfileName))
	return err
}

// trayConfigDir returns the configuration directory used by the tray app.
func trayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.TrayAppIdentifier), nil
}

// readTrayLockfile parses and validates the tray lockfile: port|pid|secret.
// The pid must belong to a live process; a stale lockfile means the tray
// is not running and reminders cannot be delivered.
func readTrayLockfile(path string) (port, secret string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.New("anchor-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("tray lockfile is malformed")
	}

	port = parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return "", "", errors.New("invalid port in tray lockfile")
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in tray lockfile")
	}
	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return "", "", errors.New("anchor-tray is not running (stale lockfile)")
	}

	secret = strings.TrimSpace(parts[2])
	if secret == "" {
		return "", "", errors.New("secret in tray lockfile is empty")
	}

	return port, secret, nil
}
