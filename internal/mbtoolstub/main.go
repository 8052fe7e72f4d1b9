// mbtoolstub is a hermetic stand-in for the `waf` and `hg` tools used by
// transcript tests. It dispatches on the name it was installed under.
//
// As `waf`:
//   - `waf configure [flags...]` writes `.lock-waf_linux_build` and `build/`,
//     then prints "'configure' finished successfully".
//   - `waf` (no args) builds; without a lock file it fails the way waf does.
//
// As `hg`:
//   - `hg purge --all` removes `build/` and `.lock-waf*` from the repo.
//   - `hg revert <file>` restores the file with the seeded ignore rules.
//   - `hg status` prints the contents of `MB_HG_STATUS_FILE`, if any.
//
// Every invocation is appended to `MB_TOOL_LOG` so transcripts can assert
// tool sequences. `MB_STUB_CONFIGURE_EXIT` and `MB_STUB_BUILD_EXIT` force
// waf failures.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const ignoreRules = "syntax: glob\nbuild/\n"

func main() {
	tool := filepath.Base(os.Args[0])
	args := os.Args[1:]
	logInvocation(tool, args)

	switch tool {
	case "waf":
		os.Exit(runWaf(args))
	case "hg":
		os.Exit(runHg(args))
	}
	fmt.Fprintf(os.Stderr, "mbtoolstub must be installed as waf or hg, not %s\n", tool)
	os.Exit(2)
}

func runWaf(args []string) int {
	if len(args) == 0 {
		return wafBuild()
	}
	if args[0] == "configure" {
		return wafConfigure()
	}
	fmt.Fprintf(os.Stderr, "waf stub cannot handle: %s\n", strings.Join(args, " "))
	return 1
}

func wafConfigure() int {
	if code := exitFromEnv("MB_STUB_CONFIGURE_EXIT"); code != 0 {
		fmt.Fprintln(os.Stderr, "The configuration failed")
		return code
	}
	if err := os.WriteFile(".lock-waf_linux_build", nil, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := os.MkdirAll("build", 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("'configure' finished successfully")
	return 0
}

func wafBuild() int {
	if code := exitFromEnv("MB_STUB_BUILD_EXIT"); code != 0 {
		fmt.Fprintln(os.Stderr, "Build failed")
		return code
	}
	locks, _ := filepath.Glob(".lock-waf*")
	if len(locks) == 0 {
		fmt.Fprintln(os.Stderr, "The project was not configured, run './waf configure' first!")
		return 1
	}
	fmt.Println("'build' finished successfully")
	return 0
}

func runHg(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "hg stub: missing subcommand")
		return 1
	}
	sub := args[0]
	rest := args[1:]

	switch sub {
	case "purge":
		if len(rest) >= 1 && rest[0] == "--all" {
			return hgPurge()
		}
	case "revert":
		if len(rest) >= 1 {
			return hgRevert(rest[0])
		}
	case "status":
		return hgStatus()
	}
	fmt.Fprintf(os.Stderr, "hg stub cannot handle: %s %s\n", sub, strings.Join(rest, " "))
	return 1
}

// hgPurge sweeps what the seeded ignore rules cover plus the waf lock
// files, mimicking `hg purge --all` in the tmprepo layout.
func hgPurge() int {
	if err := os.RemoveAll("build"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	locks, _ := filepath.Glob(".lock-waf*")
	for _, lock := range locks {
		if err := os.Remove(lock); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	return 0
}

func hgRevert(name string) int {
	if err := os.WriteFile(name, []byte(ignoreRules), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func hgStatus() int {
	path := os.Getenv("MB_HG_STATUS_FILE")
	if path == "" {
		return 0
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	os.Stdout.Write(b)
	return 0
}

func logInvocation(tool string, args []string) {
	path := os.Getenv("MB_TOOL_LOG")
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	line := strings.TrimSpace(tool + " " + strings.Join(args, " "))
	_, _ = fmt.Fprintln(f, line)
}

func exitFromEnv(key string) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0
	}
	code, err := strconv.Atoi(raw)
	if err != nil || code <= 0 {
		return 0
	}
	return code
}
