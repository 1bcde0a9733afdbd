// Package module implements the module store: creating and destroying
// modules, reading their manifests, resolving include trees and applying
// modules to the export tree.
package module

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cameronsjo/dsdm/internal/config"
	"github.com/cameronsjo/dsdm/internal/manifest"
)

var (
	// ErrModuleNotFound indicates the module directory or its manifest is missing.
	ErrModuleNotFound = errors.New("module does not exist")

	// ErrModuleExists indicates create was called for an existing module.
	ErrModuleExists = errors.New("module already exists")

	// ErrStoreNotFound indicates the module store directory is missing.
	ErrStoreNotFound = errors.New("module store does not exist")

	// ErrPromptFailed indicates the confirmation prompt could not be answered.
	ErrPromptFailed = errors.New("confirmation prompt failed")

	// ErrCyclicInclude indicates a module includes itself, directly or transitively.
	ErrCyclicInclude = errors.New("cyclic include")
)

// Ref identifies a module by title and optional subdirectory of the store.
type Ref struct {
	Title  string
	Subdir string
}

// String returns the store-relative path of the module.
func (r Ref) String() string {
	if r.Subdir == "" {
		return r.Title
	}
	return path.Join(filepath.ToSlash(r.Subdir), r.Title)
}

// includeRef converts a manifest include entry into a Ref.
func includeRef(entry manifest.IncludeEntry) Ref {
	return Ref{Title: entry.Module, Subdir: entry.Path}
}

// Manager performs module operations against one store.
type Manager struct {
	cfg *config.Config
}

// NewManager creates a Manager for the store described by cfg.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg}
}

// Config returns the configuration the manager was created with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Dir returns the source directory of a module.
func (m *Manager) Dir(ref Ref) string {
	return m.cfg.ModuleDir(ref.Title, ref.Subdir)
}

// Exists reports whether ref names a module in the store.
func (m *Manager) Exists(ref Ref) bool {
	return m.cfg.ModuleExists(ref.Title, ref.Subdir)
}

// Read loads the manifest of a module.
func (m *Manager) Read(ref Ref) (*manifest.Manifest, error) {
	if !m.Exists(ref) {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, ref)
	}
	return manifest.LoadManifest(m.cfg.ManifestPath(ref.Title, ref.Subdir))
}

// Globals loads the store's global.yaml.
func (m *Manager) Globals() (*manifest.Globals, error) {
	return manifest.LoadGlobals(m.cfg.GlobalPath())
}

// includeStack tracks the modules currently being resolved.
type includeStack []Ref

// push returns the stack with ref on top, or ErrCyclicInclude if ref is
// already being resolved.
func (s includeStack) push(m *Manager, ref Ref) (includeStack, error) {
	key := filepath.Clean(m.Dir(ref))
	idx := slices.IndexFunc(s, func(r Ref) bool {
		return filepath.Clean(m.Dir(r)) == key
	})
	if idx >= 0 {
		chain := make([]string, 0, len(s)-idx+1)
		for _, r := range s[idx:] {
			chain = append(chain, r.String())
		}
		chain = append(chain, ref.String())
		return nil, fmt.Errorf("%w: %s", ErrCyclicInclude, strings.Join(chain, " -> "))
	}

	next := make(includeStack, len(s), len(s)+1)
	copy(next, s)
	return append(next, ref), nil
}
