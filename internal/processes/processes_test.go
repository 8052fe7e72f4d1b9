package processes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListUsesInjectedData(t *testing.T) {
	t.Setenv("MB_PROCESS_TEST_DATA", `[{"pid":41,"ppid":1,"command":"waf","cwd":"/ws/demo"}]`)

	procs, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(procs) != 1 {
		t.Fatalf("got %d processes, want 1", len(procs))
	}
	p := procs[0]
	if p.PID != 41 || p.PPID != 1 || p.Command != "waf" || p.CWD != "/ws/demo" {
		t.Fatalf("unexpected process: %+v", p)
	}
}

func TestListUsesInjectedDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procs.json")
	if err := os.WriteFile(path, []byte(`[{"pid":7,"command":"hg","cwd":"/ws"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MB_PROCESS_TEST_DATA_FILE", path)

	procs, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(procs) != 1 || procs[0].Command != "hg" {
		t.Fatalf("unexpected processes: %+v", procs)
	}
}

func TestListEmptyInjectedData(t *testing.T) {
	t.Setenv("MB_PROCESS_TEST_DATA", `[]`)

	procs, err := List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(procs) != 0 {
		t.Fatalf("got %d processes, want 0", len(procs))
	}
}

func TestListRejectsMalformedData(t *testing.T) {
	t.Setenv("MB_PROCESS_TEST_DATA", `{"pid":`)

	_, err := List()
	if err == nil || !strings.Contains(err.Error(), "parse process test data") {
		t.Fatalf("err = %v, want parse failure", err)
	}
}
