package cli

import (
	"context"
	"runtime/trace"
	"strings"

	"github.com/mybuild-dev/mybuild/internal/shellhook"
	"github.com/mybuild-dev/mybuild/internal/workspace"
	"github.com/spf13/cobra"
)

// singleLineError flattens a multi-line error (tool stderr is folded into
// capture failures) for warning lines and panels.
func singleLineError(err error) string {
	if err == nil {
		return ""
	}
	parts := strings.Split(err.Error(), "\n")
	kept := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "; ")
}

// runHook executes the named hook for direct subcommands, where failures
// propagate instead of being discarded.
func runHook(cmd *cobra.Command, ws *workspace.Workspace, name string) error {
	script := ws.Config.Hooks.Script(name)
	return withTraceRegionErr(cmd.Context(), "hook:"+name, func() error {
		return shellhook.Run(cmd.Context(), name, ws.Root, script, ws.Config.Hooks.StrictEnabled(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	})
}

// Hooks and VCS calls can be arbitrarily slow; regions make them visible
// in runtime traces.
func withTraceRegion[T any](ctx context.Context, name string, fn func() (T, error)) (T, error) {
	var value T
	var err error
	trace.WithRegion(ctx, name, func() {
		value, err = fn()
	})
	return value, err
}

func withTraceRegionErr(ctx context.Context, name string, fn func() error) error {
	var err error
	trace.WithRegion(ctx, name, func() {
		err = fn()
	})
	return err
}
