package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mybuild-dev/mybuild/internal/processes"
)

// Swapped in tests.
var (
	listProcesses     = processes.List
	currentProcessPID = os.Getpid()
	parentProcessPID  = os.Getppid()
)

// runningUnder returns this user's processes working under root, minus
// mybuild itself and the shell that launched it. Listing failures count
// as nothing running; a purge warning must never block the command.
func runningUnder(root string) []processes.Process {
	procs, err := listProcesses()
	if err != nil {
		return nil
	}
	root = canonicalizePath(root)
	if root == "" {
		return nil
	}

	var under []processes.Process
	for _, proc := range procs {
		if proc.PID == currentProcessPID || proc.PID == parentProcessPID {
			continue
		}
		cwd := canonicalizePath(strings.TrimSpace(proc.CWD))
		if cwd == "" || !isWithin(cwd, root) {
			continue
		}
		under = append(under, proc)
	}

	sort.SliceStable(under, func(i, j int) bool {
		ci, cj := commandLabel(under[i].Command), commandLabel(under[j].Command)
		if ci == cj {
			return under[i].PID < under[j].PID
		}
		return ci < cj
	})
	return under
}

func canonicalizePath(path string) string {
	if path == "" {
		return ""
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return filepath.Clean(path)
}

func isWithin(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}

func commandLabel(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return "process"
	}
	fields := strings.Fields(cmd)
	return filepath.Base(fields[0])
}

// summarizeRunning folds processes into a one-line "label (pids)" list,
// keeping at most three command groups.
func summarizeRunning(procs []processes.Process) string {
	if len(procs) == 0 {
		return ""
	}

	type group struct {
		label string
		pids  []string
	}
	var groups []group
	for _, proc := range procs {
		label := commandLabel(proc.Command)
		pid := fmt.Sprintf("%d", proc.PID)
		if n := len(groups); n > 0 && groups[n-1].label == label {
			groups[n-1].pids = append(groups[n-1].pids, pid)
			continue
		}
		groups = append(groups, group{label: label, pids: []string{pid}})
	}

	shown := groups
	truncated := false
	if len(shown) > 3 {
		shown = shown[:3]
		truncated = true
	}

	parts := make([]string, len(shown))
	for i, g := range shown {
		parts[i] = fmt.Sprintf("%s (%s)", g.label, strings.Join(g.pids, ", "))
	}
	out := strings.Join(parts, ", ")
	if truncated {
		out += ", …"
	}
	return out
}
