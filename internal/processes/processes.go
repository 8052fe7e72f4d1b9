// Package processes lists the current user's processes and where they run,
// so callers can spot builds still active inside a workspace.
package processes

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrUnsupported indicates the platform offers no process listing.
var ErrUnsupported = errors.New("process listing unsupported")

const (
	testDataEnv     = "MB_PROCESS_TEST_DATA"
	testDataFileEnv = "MB_PROCESS_TEST_DATA_FILE"
)

// Process describes one running process owned by the current user.
type Process struct {
	PID     int    `json:"pid"`
	PPID    int    `json:"ppid"`
	Command string `json:"command"`
	CWD     string `json:"cwd"`
}

// List returns the current user's processes. JSON injected through
// MB_PROCESS_TEST_DATA or MB_PROCESS_TEST_DATA_FILE takes precedence so
// tests and the transcript harness stay hermetic.
func List() ([]Process, error) {
	if procs, ok, err := injectedTestData(); ok || err != nil {
		return procs, err
	}
	return listNative(os.Getuid())
}

func injectedTestData() ([]Process, bool, error) {
	if path := os.Getenv(testDataFileEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, true, fmt.Errorf("read %s: %w", path, err)
		}
		procs, err := decode(data)
		return procs, true, err
	}
	if raw := os.Getenv(testDataEnv); raw != "" {
		procs, err := decode([]byte(raw))
		return procs, true, err
	}
	return nil, false, nil
}

func decode(data []byte) ([]Process, error) {
	var procs []Process
	if err := json.Unmarshal(data, &procs); err != nil {
		return nil, fmt.Errorf("parse process test data: %w", err)
	}
	return procs, nil
}

func fallbackCommand(cmd string, pid int) string {
	if cmd != "" {
		return cmd
	}
	return fmt.Sprintf("pid-%d", pid)
}
