package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"

	"github.com/routineanchor/anchor/internal/constants"
)

type fakeProcess struct{ pid int }

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 0 }
func (p fakeProcess) Executable() string { return "anchor-tray" }

func writeLockfile(t *testing.T, dir, content string) {
	t.Helper()
	trayDir := filepath.Join(dir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatalf("failed to create tray dir: %v", err)
	}
	path := filepath.Join(trayDir, constants.NotifierLockfileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}
}

func TestTrayAvailable(t *testing.T) {
	dir := t.TempDir()

	origDir := userConfigDirFunc
	origFind := findProcessFunc
	userConfigDirFunc = func() (string, error) { return dir, nil }
	findProcessFunc = func(pid int) (ps.Process, error) { return fakeProcess{pid}, nil }
	t.Cleanup(func() {
		userConfigDirFunc = origDir
		findProcessFunc = origFind
	})

	if err := TrayAvailable(); err == nil {
		t.Error("expected error when the tray lockfile is missing")
	}

	writeLockfile(t, dir, fmt.Sprintf("8080|%d|secret", os.Getpid()))
	if err := TrayAvailable(); err != nil {
		t.Errorf("expected tray to be available: %v", err)
	}

	writeLockfile(t, dir, "not-a-lockfile")
	if err := TrayAvailable(); err == nil {
		t.Error("expected error for a malformed lockfile")
	}

	// A recorded process that is gone means the lockfile is stale
	findProcessFunc = func(pid int) (ps.Process, error) { return nil, nil }
	writeLockfile(t, dir, fmt.Sprintf("8080|%d|secret", os.Getpid()))
	if err := TrayAvailable(); err == nil {
		t.Error("expected error for a stale lockfile")
	}
}
