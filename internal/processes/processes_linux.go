//go:build linux

package processes

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func listNative(uid int) ([]Process, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrUnsupported
		}
		return nil, err
	}

	procs := make([]Process, 0, len(entries))
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		if proc, ok := readProc(pid, uid); ok {
			procs = append(procs, proc)
		}
	}
	return procs, nil
}

// readProc assembles one entry from /proc/<pid>. Processes owned by other
// users, or gone by the time we look, are skipped.
func readProc(pid, uid int) (Process, bool) {
	base := filepath.Join("/proc", strconv.Itoa(pid))

	owner, ppid, err := readStatusIDs(filepath.Join(base, "status"))
	if err != nil || owner != uid {
		return Process{}, false
	}

	cwd, err := os.Readlink(filepath.Join(base, "cwd"))
	if err != nil || cwd == "" {
		return Process{}, false
	}
	cwd = strings.TrimSuffix(cwd, " (deleted)")

	return Process{
		PID:     pid,
		PPID:    ppid,
		Command: fallbackCommand(readCommand(base), pid),
		CWD:     cwd,
	}, true
}

func readStatusIDs(path string) (uid, ppid int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	sawUID := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "Uid:":
			if v, err := strconv.Atoi(fields[1]); err == nil {
				uid = v
				sawUID = true
			}
		case "PPid:":
			if v, err := strconv.Atoi(fields[1]); err == nil {
				ppid = v
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, err
	}
	if !sawUID {
		return 0, 0, errors.New("no Uid line")
	}
	return uid, ppid, nil
}

// readCommand prefers the short comm name and falls back to argv[0].
func readCommand(base string) string {
	if b, err := os.ReadFile(filepath.Join(base, "comm")); err == nil {
		if cmd := strings.TrimSpace(string(b)); cmd != "" {
			return cmd
		}
	}
	if b, err := os.ReadFile(filepath.Join(base, "cmdline")); err == nil {
		if argv0, _, _ := strings.Cut(string(b), "\x00"); argv0 != "" {
			return argv0
		}
	}
	return ""
}
