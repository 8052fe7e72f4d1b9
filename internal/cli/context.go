package cli

import (
	"os"

	"github.com/mybuild-dev/mybuild/internal/workspace"
)

func loadWorkspaceFromWD() (*workspace.Workspace, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return workspace.Discover(wd)
}
