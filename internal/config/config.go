package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the per-workspace configuration file, stored at the root
// next to the waf script.
const FileName = ".mybuild.toml"

// Config captures the user editable settings stored in .mybuild.toml.
type Config struct {
	Tools     ToolsBlock     `toml:"tools"`
	Configure ConfigureBlock `toml:"configure"`
	Clean     CleanBlock     `toml:"clean"`
	Hooks     HooksBlock     `toml:"hooks"`
}

// ToolsBlock names the external programs mybuild drives.
type ToolsBlock struct {
	// Waf is the build script; relative values resolve against the
	// workspace root.
	Waf string `toml:"waf"`
	// Hg is the Mercurial executable, looked up on PATH when bare.
	Hg string `toml:"hg"`
}

// ConfigureBlock holds extra flags appended to every configure run.
type ConfigureBlock struct {
	Flags []string `toml:"flags"`
}

// CleanBlock governs the clean-up sequence.
type CleanBlock struct {
	// IgnoreFile is removed before purging and restored afterwards.
	IgnoreFile string `toml:"ignore_file"`
}

// HooksBlock describes optional shell fragments that run at the
// workspace root after the matching operation.
type HooksBlock struct {
	PostConfigure string `toml:"post_configure"`
	PostBuild     string `toml:"post_build"`
	PostClean     string `toml:"post_clean"`
	Strict        *bool  `toml:"strict"`
}

// Hook names accepted by HooksBlock.Script.
const (
	HookPostConfigure = "post_configure"
	HookPostBuild     = "post_build"
	HookPostClean     = "post_clean"
)

// Script returns the hook fragment registered under name, or "".
func (h HooksBlock) Script(name string) string {
	switch name {
	case HookPostConfigure:
		return h.PostConfigure
	case HookPostBuild:
		return h.PostBuild
	case HookPostClean:
		return h.PostClean
	default:
		return ""
	}
}

// StrictEnabled reports whether strict shell options should be enabled.
func (h HooksBlock) StrictEnabled() bool {
	if h.Strict == nil {
		return true
	}
	return *h.Strict
}

var (
	// ErrMissingWafTool indicates the config cleared the build script path.
	ErrMissingWafTool = errors.New("config.tools.waf must be set")
	// ErrMissingHgTool indicates the config cleared the Mercurial executable.
	ErrMissingHgTool = errors.New("config.tools.hg must be set")
	// ErrNestedIgnoreFile indicates clean.ignore_file is not a bare file name.
	ErrNestedIgnoreFile = errors.New("config.clean.ignore_file must be a bare file name")
)

// Default returns the baseline configuration matching an unconfigured
// workspace.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Tools.Waf == "" {
		c.Tools.Waf = "./waf"
	}
	if c.Tools.Hg == "" {
		c.Tools.Hg = "hg"
	}
	if c.Clean.IgnoreFile == "" {
		c.Clean.IgnoreFile = ".hgignore"
	}
}

// Validate ensures the configuration can guide mybuild's behavior.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Tools.Waf) == "" {
		return ErrMissingWafTool
	}
	if strings.TrimSpace(c.Tools.Hg) == "" {
		return ErrMissingHgTool
	}
	name := c.Clean.IgnoreFile
	if name != filepath.Base(name) || name == "." || name == ".." {
		return ErrNestedIgnoreFile
	}
	return nil
}

// Load reads configuration from disk. Missing files return a default config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes configuration to disk, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
