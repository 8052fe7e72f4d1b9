// Package wafutil builds invocations of the waf build script.
package wafutil

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mybuild-dev/mybuild/internal/toolexec"
)

// Configure builds a `waf configure` invocation. The enable flags follow
// waf's spelling; extra flags come from workspace configuration.
func Configure(wafPath, dir string, tests, examples bool, extra ...string) toolexec.Command {
	args := []string{"configure"}
	if tests {
		args = append(args, "--enable-tests")
	}
	if examples {
		args = append(args, "--enable-examples")
	}
	args = append(args, extra...)
	return toolexec.Command{Path: wafPath, Args: args, Dir: dir}
}

// Build is the bare waf invocation, compiling whatever the last configure
// set up.
func Build(wafPath, dir string) toolexec.Command {
	return toolexec.Command{Path: wafPath, Args: nil, Dir: dir}
}

// LockFile reports the lock file a successful configure leaves at the
// workspace root. The name embeds the platform, so match by prefix.
func LockFile(root string) (name string, mtime time.Time, ok bool) {
	matches, err := filepath.Glob(filepath.Join(root, ".lock-waf*"))
	if err != nil || len(matches) == 0 {
		return "", time.Time{}, false
	}
	info, err := os.Stat(matches[0])
	if err != nil {
		return "", time.Time{}, false
	}
	return filepath.Base(matches[0]), info.ModTime(), true
}
