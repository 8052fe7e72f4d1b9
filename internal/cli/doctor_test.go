package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// seedHealthyWorkspace builds a workspace that passes every doctor check.
// The hg tool is set to sh so the PATH lookup succeeds on any unix box.
func seedHealthyWorkspace(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skipf("sh not found on PATH: %v", err)
	}

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "waf"), []byte("#!/usr/bin/env python\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".hgignore"), []byte("syntax: glob\nbuild/\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, ".hg"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".mybuild.toml"), []byte("[tools]\nwaf = \"./waf\"\nhg = \"sh\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func runDoctorCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"doctor"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestDoctorHealthy(t *testing.T) {
	t.Chdir(seedHealthyWorkspace(t))

	out, errOut, err := runDoctorCommand(t)
	if err != nil {
		t.Fatalf("doctor: %v (stderr: %s)", err, errOut)
	}
	if out != "healthy!\n" {
		t.Fatalf("output = %q, want %q", out, "healthy!\n")
	}
}

func TestDoctorVerboseListsChecks(t *testing.T) {
	t.Chdir(seedHealthyWorkspace(t))

	out, errOut, err := runDoctorCommand(t, "--verbose")
	if err != nil {
		t.Fatalf("doctor: %v (stderr: %s)", err, errOut)
	}
	want := strings.Join([]string{
		"✓ waf project",
		"✓ waf script executable",
		"✓ hg installed",
		"✓ mercurial repository",
		"✓ ignore file present",
		"healthy!",
	}, "\n") + "\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestDoctorReportsMissingIgnoreFile(t *testing.T) {
	root := seedHealthyWorkspace(t)
	if err := os.Remove(filepath.Join(root, ".hgignore")); err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)

	_, errOut, err := runDoctorCommand(t)
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	if got := err.Error(); got != "1 doctor checks failed" {
		t.Fatalf("error = %q", got)
	}
	if !strings.Contains(errOut, "✗ ignore file present") {
		t.Fatalf("stderr = %q, want ignore file failure", errOut)
	}
}

func TestDoctorOutsideWorkspace(t *testing.T) {
	t.Chdir(t.TempDir())

	_, errOut, err := runDoctorCommand(t)
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	if !strings.Contains(errOut, "✗ waf project") {
		t.Fatalf("stderr = %q, want waf project failure", errOut)
	}
}
