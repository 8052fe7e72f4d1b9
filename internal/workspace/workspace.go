package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mybuild-dev/mybuild/internal/config"
)

// ErrNotFound indicates no waf workspace could be discovered.
var ErrNotFound = errors.New("no waf script found; run mybuild inside a waf project")

// Workspace is a waf project root discovered on disk.
type Workspace struct {
	Root       string
	ConfigPath string
	Config     config.Config
}

// Discover walks upward from start until it finds a directory holding a
// waf script or a mybuild config file.
func Discover(start string) (*Workspace, error) {
	root, err := FindRoot(start)
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// Load constructs a Workspace from a known root directory.
func Load(root string) (*Workspace, error) {
	cfgPath := filepath.Join(root, config.FileName)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		Root:       root,
		ConfigPath: cfgPath,
		Config:     cfg,
	}, nil
}

// Fallback returns a Workspace rooted at dir with default settings. It is
// used when discovery fails but the caller wants to proceed anyway.
func Fallback(dir string) *Workspace {
	return &Workspace{
		Root:       dir,
		ConfigPath: filepath.Join(dir, config.FileName),
		Config:     config.Default(),
	}
}

// FindRoot walks upward from start looking for a workspace marker.
func FindRoot(start string) (string, error) {
	cur, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if isFile(filepath.Join(cur, "waf")) || isFile(filepath.Join(cur, config.FileName)) {
			return cur, nil
		}
		next := filepath.Dir(cur)
		if next == cur {
			break
		}
		cur = next
	}
	return "", ErrNotFound
}

// WafPath resolves the configured build script to an absolute path so that
// invocations do not depend on the parent process working directory.
func (w *Workspace) WafPath() string {
	tool := w.Config.Tools.Waf
	if filepath.IsAbs(tool) {
		return tool
	}
	return filepath.Join(w.Root, tool)
}

// HgTool returns the Mercurial executable: bare names are left for PATH
// lookup, relative paths resolve against the root.
func (w *Workspace) HgTool() string {
	tool := w.Config.Tools.Hg
	if tool == filepath.Base(tool) || filepath.IsAbs(tool) {
		return tool
	}
	return filepath.Join(w.Root, tool)
}

// IgnoreFilePath locates the VCS ignore file targeted by clean-up.
func (w *Workspace) IgnoreFilePath() string {
	return filepath.Join(w.Root, w.Config.Clean.IgnoreFile)
}

// ConfigExists reports whether root carries a mybuild config file.
func ConfigExists(root string) bool {
	return isFile(filepath.Join(root, config.FileName))
}

// EnsureConfig ensures a baseline config file exists, writing when missing.
func EnsureConfig(root string) (config.Config, error) {
	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := config.Default()
		if err := config.Save(path, cfg); err != nil {
			return config.Config{}, err
		}
		return cfg, nil
	}
	return config.Load(path)
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
