// Implementation of the `mbcmdtest` harness.
//
// Key behaviors:
//   - Creates `/tmp/mybuild-transcripts/tmprepo-<id>` and symlinks
//     `/tmp/mybuild-transcripts/bin -> <repo>/bin`.
//   - Installs `bin/mbtoolstub` into the temp repo twice: as `./waf` and as
//     `bin/hg`, so both tools are hermetic.
//   - Seeds a minimal Mercurial-flavored waf project (`wscript`, `.hgignore`,
//     an empty `.hg` marker) and runs `mybuild init` unless told not to.
//   - Honors `MB_CMDTEST_TIMEOUT` (default 10s) to cap setup + command runtime.
//   - Honors `MB_CMDTEST_ID` to isolate temp repos for parallel tests.
package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

type tool struct {
	repoRoot        string
	transcriptsRoot string
	stubBinary      string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

const defaultTimeout = 10 * time.Second

func newToolFromExecutable() (*tool, error) {
	if root := os.Getenv("MB_REPO_ROOT"); root != "" {
		return newTool(root), nil
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, err
	}
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(exe), ".."))
	return newTool(repoRoot), nil
}

func newTool(repoRoot string) *tool {
	repoRoot = filepath.Clean(repoRoot)
	return &tool{
		repoRoot:        repoRoot,
		transcriptsRoot: "/tmp/mybuild-transcripts",
		stubBinary:      filepath.Join(repoRoot, "bin", "mbtoolstub"),
		stdin:           os.Stdin,
		stdout:          os.Stdout,
		stderr:          os.Stderr,
	}
}

func (t *tool) runCLI(ctx context.Context, args []string) int {
	ctx, cancel, timeout := withTimeoutFromEnv(ctx, "MB_CMDTEST_TIMEOUT", defaultTimeout)
	if cancel != nil {
		defer cancel()
	}

	opts, cmdArgs, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(t.stderr, err)
		t.printUsage()
		return 2
	}
	if opts.help {
		t.printUsage()
		return 0
	}

	exitCode, err := t.run(ctx, opts, cmdArgs, timeout)
	if err != nil {
		fmt.Fprintln(t.stderr, err)
		return 1
	}
	return exitCode
}

func (t *tool) printUsage() {
	fmt.Fprint(t.stderr, `Usage: mbcmdtest [options] -- <command> [args...]

Sets up a disposable waf test project, runs the given command inside it,
and cleans up afterward. Intended for transcript integration tests.

Options:
  --skip-init    Leave the project without a mybuild config (for init tests).
  --workdir DIR  cd into DIR (relative to the temp repo) before running.
  --keep         Preserve the temp repo for debugging (prints its path).
`)
}

func (t *tool) run(ctx context.Context, opts options, cmdArgs []string, timeout time.Duration) (int, error) {
	if t.repoRoot == "" {
		return 1, errors.New("repo root is required")
	}
	if _, err := os.Stat(filepath.Join(t.repoRoot, "go.mod")); err != nil {
		return 1, fmt.Errorf("unable to locate mybuild repo root: %w", err)
	}

	if err := os.MkdirAll(t.transcriptsRoot, 0o755); err != nil {
		return 1, err
	}

	if err := t.ensureBinSymlink(); err != nil {
		return 1, err
	}

	tmprepo := filepath.Join(t.transcriptsRoot, tmprepoDirName())

	release, err := acquireLockFile(ctx, tmprepo+".lock", timeout)
	if err != nil {
		return 1, err
	}
	defer release()

	if err := removeAllUnder(t.transcriptsRoot, tmprepo); err != nil {
		return 1, err
	}
	if err := os.MkdirAll(tmprepo, 0o755); err != nil {
		return 1, err
	}

	childEnv := deterministicEnv(os.Environ())

	if err := t.seedWafProject(tmprepo); err != nil {
		return 1, err
	}
	if !opts.skipInit {
		if err := t.runQuiet(ctx, tmprepo, childEnv, filepath.Join(t.repoRoot, "bin", "mybuild"), "init"); err != nil {
			return 1, err
		}
	}

	childEnv = withEnv(childEnv, "MB_TOOL_LOG", filepath.Join(tmprepo, ".tool-log"))
	childEnv = withEnv(childEnv, "MB_HG_STATUS_FILE", filepath.Join(tmprepo, ".hg-status"))
	childEnv = withEnv(childEnv, "PATH", filepath.Join(tmprepo, "bin")+string(os.PathListSeparator)+getEnv(childEnv, "PATH"))

	workdir := tmprepo
	if opts.workdir != "" {
		workdir = filepath.Join(tmprepo, opts.workdir)
		if err := os.MkdirAll(workdir, 0o755); err != nil {
			return 1, err
		}
	}

	cmd := exec.CommandContext(ctx, cmdArgs[0], cmdArgs[1:]...)
	cmd.Dir = workdir
	cmd.Env = withEnv(childEnv, "PWD", workdir)
	cmd.Stdin = t.stdin
	cmd.Stdout = t.stdout
	cmd.Stderr = t.stderr

	runErr := cmd.Run()
	if runErr != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 124, fmt.Errorf("mbcmdtest: timed out after %s", timeout)
	}
	exitCode := exitStatus(runErr)

	if opts.keepRepo {
		fmt.Fprintf(t.stderr, "temp repo kept at %s\n", tmprepo)
	} else if cleanupErr := removeAllUnder(t.transcriptsRoot, tmprepo); cleanupErr != nil {
		return 1, cleanupErr
	}

	return exitCode, nil
}

func (t *tool) ensureBinSymlink() error {
	dst := filepath.Join(t.transcriptsRoot, "bin")
	src := filepath.Join(t.repoRoot, "bin")

	if info, err := os.Lstat(dst); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			return fmt.Errorf("refusing to overwrite non-symlink: %s", dst)
		}
		if target, err := os.Readlink(dst); err == nil {
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(dst), target)
			}
			if filepath.Clean(target) == src {
				return nil
			}
		}
		return fmt.Errorf("symlink %s points somewhere else; remove it to continue", dst)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.Symlink(src, dst); err != nil {
		if errors.Is(err, os.ErrExist) {
			if target, err := os.Readlink(dst); err == nil {
				if !filepath.IsAbs(target) {
					target = filepath.Join(filepath.Dir(dst), target)
				}
				if filepath.Clean(target) == src {
					return nil
				}
			}
		}
		return err
	}
	return nil
}

// seedWafProject lays out the fixture the stubs and mybuild expect: a waf
// script (the stub installed by path), a wscript, Mercurial ignore rules
// that match the stub's revert output, and a `.hg` marker directory.
func (t *tool) seedWafProject(dir string) error {
	stub, err := os.ReadFile(t.stubBinary)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "waf"), stub, 0o755); err != nil {
		return err
	}

	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(binDir, "hg"), stub, 0o755); err != nil {
		return err
	}

	wscript := strings.Join([]string{
		"top = '.'",
		"out = 'build'",
		"",
		"def options(opt):",
		"    opt.add_option('--enable-tests', action='store_true')",
		"    opt.add_option('--enable-examples', action='store_true')",
		"",
		"def configure(conf):",
		"    pass",
		"",
		"def build(bld):",
		"    pass",
		"",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "wscript"), []byte(wscript), 0o644); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, ".hgignore"), []byte("syntax: glob\nbuild/\n"), 0o644); err != nil {
		return err
	}

	return os.MkdirAll(filepath.Join(dir, ".hg"), 0o755)
}

func (t *tool) runQuiet(ctx context.Context, dir string, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = withEnv(env, "PWD", dir)

	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			msg = ": " + msg
		}
		return fmt.Errorf("%s %s failed%s: %w", name, strings.Join(args, " "), msg, err)
	}
	return nil
}

func deterministicEnv(base []string) []string {
	env := envMap(base)
	env["NO_COLOR"] = "1"
	env["CLICOLOR"] = "0"
	env["CLICOLOR_FORCE"] = "0"
	// The harness's own process tree lives under /tmp; pin the process
	// listing empty so status output stays stable.
	env["MB_PROCESS_TEST_DATA"] = "[]"
	return envSlice(env)
}

func removeAllUnder(root, target string) error {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return err
	}
	if rel == "." {
		return fmt.Errorf("refusing to remove root: %s", root)
	}
	if strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return fmt.Errorf("refusing to remove outside root: %s", target)
	}
	return os.RemoveAll(target)
}

func exitStatus(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 127
}

func withTimeoutFromEnv(ctx context.Context, key string, def time.Duration) (context.Context, context.CancelFunc, time.Duration) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = def.String()
	}
	if raw == "0" || raw == "0s" {
		return ctx, nil, 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		d = def
	}
	next, cancel := context.WithTimeout(ctx, d)
	return next, cancel, d
}

func envMap(env []string) map[string]string {
	out := make(map[string]string, len(env))
	for _, entry := range env {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		out[key] = value
	}
	return out
}

func envSlice(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	return out
}

func withEnv(env []string, key, value string) []string {
	m := envMap(env)
	m[key] = value
	return envSlice(m)
}

func getEnv(env []string, key string) string {
	m := envMap(env)
	return m[key]
}

func tmprepoDirName() string {
	raw := strings.TrimSpace(os.Getenv("MB_CMDTEST_ID"))
	if raw != "" {
		safe := make([]rune, 0, len(raw))
		for _, r := range raw {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
				safe = append(safe, r)
				continue
			}
			safe = append(safe, '_')
		}
		id := strings.Trim(strings.TrimSpace(string(safe)), "._-")
		if id != "" {
			return "tmprepo-" + id
		}
	}

	// Fallback: generate a unique, non-guessable ID to avoid collisions in `/tmp`.
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("tmprepo-%d", os.Getpid())
	}
	return "tmprepo-" + hex.EncodeToString(b[:])
}
