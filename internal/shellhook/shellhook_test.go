package shellhook

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunEmptyScriptIsNoop(t *testing.T) {
	if err := Run(context.Background(), "post_build", t.TempDir(), "  \n ", true, nil, nil); err != nil {
		t.Fatalf("empty hook should be a no-op, got %v", err)
	}
}

func TestRunExecutesInDir(t *testing.T) {
	dir := t.TempDir()
	err := Run(context.Background(), "post_configure", dir, "echo configured > marker.txt", true, nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "marker.txt"))
	if err != nil {
		t.Fatalf("hook did not write in its working directory: %v", err)
	}
	if strings.TrimSpace(string(data)) != "configured" {
		t.Fatalf("marker contents = %q", data)
	}
}

func TestRunCapturesStdout(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), "post_build", t.TempDir(), "echo done", true, &out, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); got != "done\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestRunStrictRejectsUnsetVariables(t *testing.T) {
	script := "echo $MYBUILD_TEST_UNSET_VARIABLE"

	if err := Run(context.Background(), "post_build", t.TempDir(), script, true, nil, nil); err == nil {
		t.Fatal("strict hook should fail on unset variable")
	}
	if err := Run(context.Background(), "post_build", t.TempDir(), script, false, nil, nil); err != nil {
		t.Fatalf("lenient hook should tolerate unset variable, got %v", err)
	}
}

func TestRunReportsFailureWithHookName(t *testing.T) {
	err := Run(context.Background(), "post_clean", t.TempDir(), "false", true, nil, nil)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "post_clean") {
		t.Fatalf("error %q should name the hook", err)
	}
}

func TestRunParseError(t *testing.T) {
	err := Run(context.Background(), "post_build", t.TempDir(), `echo "unterminated`, true, nil, nil)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse post_build hook") {
		t.Fatalf("error %q should mention parsing", err)
	}
}
