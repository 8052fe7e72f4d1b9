// mbcmdtest is a small internal harness for transcript tests.
//
// It provisions a disposable waf project under `/tmp/mybuild-transcripts/tmprepo-<id>`,
// installs hermetic `waf` and `hg` stubs, then runs an arbitrary command inside
// the repo and returns the command's exit code.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	tool, err := newToolFromExecutable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(tool.runCLI(context.Background(), os.Args[1:]))
}
