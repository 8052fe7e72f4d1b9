package wafutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigure(t *testing.T) {
	cases := []struct {
		name     string
		tests    bool
		examples bool
		extra    []string
		want     []string
	}{
		{"plain", false, false, nil, []string{"configure"}},
		{"tests", true, false, nil, []string{"configure", "--enable-tests"}},
		{"tests and examples", true, true, nil, []string{"configure", "--enable-tests", "--enable-examples"}},
		{"examples only", false, true, nil, []string{"configure", "--enable-examples"}},
		{"extra flags last", true, false, []string{"--jobs=4"}, []string{"configure", "--enable-tests", "--jobs=4"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := Configure("/repo/waf", "/repo", tc.tests, tc.examples, tc.extra...)
			if cmd.Path != "/repo/waf" {
				t.Fatalf("Path = %q", cmd.Path)
			}
			if cmd.Dir != "/repo" {
				t.Fatalf("Dir = %q", cmd.Dir)
			}
			if !reflect.DeepEqual(cmd.Args, tc.want) {
				t.Fatalf("Args = %v, want %v", cmd.Args, tc.want)
			}
		})
	}
}

func TestBuildIsBareInvocation(t *testing.T) {
	cmd := Build("/repo/waf", "/repo")
	if cmd.Path != "/repo/waf" || cmd.Dir != "/repo" {
		t.Fatalf("unexpected command %+v", cmd)
	}
	if len(cmd.Args) != 0 {
		t.Fatalf("Args = %v, want none", cmd.Args)
	}
}

func TestLockFile(t *testing.T) {
	root := t.TempDir()

	if _, _, ok := LockFile(root); ok {
		t.Fatal("unconfigured root should have no lock file")
	}

	lock := filepath.Join(root, ".lock-waf_linux_build")
	if err := os.WriteFile(lock, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	name, mtime, ok := LockFile(root)
	if !ok {
		t.Fatal("expected lock file to be found")
	}
	if name != ".lock-waf_linux_build" {
		t.Fatalf("name = %q", name)
	}
	if mtime.IsZero() {
		t.Fatal("mtime should be set")
	}
}
