// Package config resolves the module store layout and runtime settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// StoreDirName is the store directory created under the home directory.
	StoreDirName = ".dsdm.d"

	// ManifestFile is the per-module manifest. Its presence makes a directory a module.
	ManifestFile = "mod.yaml"

	// GlobalFile holds store-wide template variables and delimiters.
	GlobalFile = "global.yaml"

	// DefaultExportRoot is where modules land, relative to home, unless overridden.
	DefaultExportRoot = ".config"

	envPrefix = "DSDM"
)

// ErrHomeUnavailable indicates the platform could not report a home directory.
var ErrHomeUnavailable = errors.New("failed to determine home directory")

// Config holds the resolved dsdm paths.
type Config struct {
	// Home is the user's home directory. Tilde expansion resolves against it.
	Home string

	// StoreDir is the module store root (contains global.yaml and modules).
	StoreDir string

	// ExportRoot is the default export root; modules export to ExportRoot/<title>.
	ExportRoot string
}

// New returns a Config rooted at the given home directory with default layout.
func New(home string) *Config {
	return &Config{
		Home:       home,
		StoreDir:   filepath.Join(home, StoreDirName),
		ExportRoot: filepath.Join(home, DefaultExportRoot),
	}
}

// Load resolves the home directory and applies DSDM_* environment overrides.
//
//	DSDM_STORE_DIR    module store root (default ~/.dsdm.d)
//	DSDM_EXPORT_ROOT  default export root (default ~/.config)
//
// Relative override values are taken relative to the home directory.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHomeUnavailable, err)
	}
	if home == "" {
		return nil, ErrHomeUnavailable
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("store_dir", "DSDM_STORE_DIR")
	_ = v.BindEnv("export_root", "DSDM_EXPORT_ROOT")

	cfg := New(home)
	if dir := v.GetString("store_dir"); dir != "" {
		cfg.StoreDir = cfg.resolve(dir)
	}
	if dir := v.GetString("export_root"); dir != "" {
		cfg.ExportRoot = cfg.resolve(dir)
	}

	return cfg, nil
}

func (c *Config) resolve(path string) string {
	path = c.ExpandTilde(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.Home, path)
}

// ModuleDir returns the directory of a module. A non-empty subdir sits
// between the store root and the title: StoreDir/subdir/title.
func (c *Config) ModuleDir(title, subdir string) string {
	if subdir == "" {
		return filepath.Join(c.StoreDir, title)
	}
	return filepath.Join(c.StoreDir, filepath.FromSlash(subdir), title)
}

// ManifestPath returns the path of a module's mod.yaml.
func (c *Config) ManifestPath(title, subdir string) string {
	return filepath.Join(c.ModuleDir(title, subdir), ManifestFile)
}

// GlobalPath returns the path of the store's global.yaml.
func (c *Config) GlobalPath() string {
	return filepath.Join(c.StoreDir, GlobalFile)
}

// ExportDir returns the default destination directory for a module.
func (c *Config) ExportDir(title string) string {
	return filepath.Join(c.ExportRoot, title)
}

// StoreExists reports whether the store root is an existing directory.
func (c *Config) StoreExists() bool {
	info, err := os.Stat(c.StoreDir)
	return err == nil && info.IsDir()
}

// ModuleExists reports whether the module directory exists and directly
// contains a manifest.
func (c *Config) ModuleExists(title, subdir string) bool {
	info, err := os.Stat(c.ModuleDir(title, subdir))
	if err != nil || !info.IsDir() {
		return false
	}
	manifest, err := os.Stat(c.ManifestPath(title, subdir))
	return err == nil && manifest.Mode().IsRegular()
}

// ExpandTilde expands a leading ~ against the configured home directory.
// "~" and "~/..." are expanded; "~user" and all other paths are returned as-is.
func (c *Config) ExpandTilde(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return c.Home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(c.Home, path[2:])
	}
	return path
}
