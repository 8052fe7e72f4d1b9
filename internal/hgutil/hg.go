// Package hgutil builds Mercurial invocations for the clean-up and
// status surfaces.
package hgutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mybuild-dev/mybuild/internal/toolexec"
)

// PurgeAll deletes every untracked and ignored file in the repository.
// Requires the purge extension.
func PurgeAll(hgTool, dir string) toolexec.Command {
	return toolexec.Command{Path: hgTool, Args: []string{"purge", "--all"}, Dir: dir}
}

// Revert restores path from the repository, undoing a local deletion.
func Revert(hgTool, dir, path string) toolexec.Command {
	return toolexec.Command{Path: hgTool, Args: []string{"revert", path}, Dir: dir}
}

// Status lists changed and unknown files.
func Status(hgTool, dir string) toolexec.Command {
	return toolexec.Command{Path: hgTool, Args: []string{"status"}, Dir: dir}
}

// StatusLines runs `hg status` captured and splits the listing into lines.
// The capture is trimmed here so runners that pass output through verbatim
// do not yield a trailing empty line. A clean repository yields no lines.
func StatusLines(ctx context.Context, runner toolexec.Runner, hgTool, dir string) ([]string, error) {
	out, err := runner.Output(ctx, Status(hgTool, dir))
	if err != nil {
		return nil, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// IsRepo reports whether dir is the root of a Mercurial repository.
func IsRepo(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, ".hg"))
	if err != nil {
		return false
	}
	return fi.IsDir()
}
