package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Tools.Waf != "./waf" {
		t.Fatalf("Tools.Waf = %q, want ./waf", cfg.Tools.Waf)
	}
	if cfg.Tools.Hg != "hg" {
		t.Fatalf("Tools.Hg = %q, want hg", cfg.Tools.Hg)
	}
	if cfg.Clean.IgnoreFile != ".hgignore" {
		t.Fatalf("Clean.IgnoreFile = %q, want .hgignore", cfg.Clean.IgnoreFile)
	}
	if len(cfg.Configure.Flags) != 0 {
		t.Fatalf("Configure.Flags = %v, want empty", cfg.Configure.Flags)
	}
	if !cfg.Hooks.StrictEnabled() {
		t.Fatal("hooks should be strict by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tools.Waf != "./waf" || cfg.Tools.Hg != "hg" {
		t.Fatalf("missing file should yield defaults, got %+v", cfg.Tools)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
[tools]
waf = "scripts/waf"
hg = "/usr/local/bin/hg"

[configure]
flags = ["--jobs=4"]

[clean]
ignore_file = ".ignore"

[hooks]
post_build = "echo done"
strict = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tools.Waf != "scripts/waf" {
		t.Fatalf("Tools.Waf = %q", cfg.Tools.Waf)
	}
	if cfg.Tools.Hg != "/usr/local/bin/hg" {
		t.Fatalf("Tools.Hg = %q", cfg.Tools.Hg)
	}
	if len(cfg.Configure.Flags) != 1 || cfg.Configure.Flags[0] != "--jobs=4" {
		t.Fatalf("Configure.Flags = %v", cfg.Configure.Flags)
	}
	if cfg.Clean.IgnoreFile != ".ignore" {
		t.Fatalf("Clean.IgnoreFile = %q", cfg.Clean.IgnoreFile)
	}
	if cfg.Hooks.Script(HookPostBuild) != "echo done" {
		t.Fatalf("post_build hook = %q", cfg.Hooks.PostBuild)
	}
	if cfg.Hooks.StrictEnabled() {
		t.Fatal("strict = false should disable strict mode")
	}
}

func TestLoadRejectsNestedIgnoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[clean]\nignore_file = \"sub/.hgignore\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrNestedIgnoreFile) {
		t.Fatalf("err = %v, want ErrNestedIgnoreFile", err)
	}
}

func TestValidateRejectsClearedTools(t *testing.T) {
	cfg := Default()
	cfg.Tools.Waf = "  "
	if err := cfg.Validate(); !errors.Is(err, ErrMissingWafTool) {
		t.Fatalf("err = %v, want ErrMissingWafTool", err)
	}

	cfg = Default()
	cfg.Tools.Hg = ""
	if err := cfg.Validate(); !errors.Is(err, ErrMissingHgTool) {
		t.Fatalf("err = %v, want ErrMissingHgTool", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Configure.Flags = []string{"--check-cxx-compiler=g++"}
	cfg.Hooks.PostClean = "echo cleaned"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Configure.Flags[0] != "--check-cxx-compiler=g++" {
		t.Fatalf("Flags = %v", loaded.Configure.Flags)
	}
	if loaded.Hooks.PostClean != "echo cleaned" {
		t.Fatalf("PostClean = %q", loaded.Hooks.PostClean)
	}
}
