package module

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cameronsjo/dsdm/internal/fileutil"
	"github.com/cameronsjo/dsdm/internal/ui"
)

var (
	//go:embed defaults/global.yaml
	defaultGlobal []byte

	//go:embed defaults/mod.yaml
	defaultManifest []byte
)

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) (bool, error)

// AssumeYes is a Confirmer that always agrees.
func AssumeYes(string) (bool, error) {
	return true, nil
}

// Create creates a module with a starter manifest. The store and its
// global.yaml are created first if the store does not exist yet.
func (m *Manager) Create(ref Ref) error {
	ui.Logger.Debug("creating module", "module", ref)

	if err := m.ensureStore(); err != nil {
		return err
	}

	if m.Exists(ref) {
		return fmt.Errorf("%w: %s", ErrModuleExists, ref)
	}

	if err := fileutil.EnsureDir(m.Dir(ref)); err != nil {
		return err
	}

	path := m.cfg.ManifestPath(ref.Title, ref.Subdir)
	if err := fileutil.WriteFile(path, defaultManifest, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

func (m *Manager) ensureStore() error {
	if m.cfg.StoreExists() {
		ui.Logger.Debug("store exists", "path", m.cfg.StoreDir)
		return nil
	}

	ui.Logger.Debug("creating store", "path", m.cfg.StoreDir)
	if err := fileutil.EnsureDir(m.cfg.StoreDir); err != nil {
		return err
	}

	if err := fileutil.WriteFile(m.cfg.GlobalPath(), defaultGlobal, 0644); err != nil {
		return fmt.Errorf("write global defaults: %w", err)
	}

	return nil
}

// Destroy removes a module directory after confirm agrees. It reports
// whether the module was removed; a declined prompt is not an error.
func (m *Manager) Destroy(ref Ref, confirm Confirmer) (bool, error) {
	ui.Logger.Debug("deleting module", "module", ref)

	if !m.cfg.StoreExists() {
		return false, fmt.Errorf("%w: %s", ErrStoreNotFound, m.cfg.StoreDir)
	}

	if !m.Exists(ref) {
		return false, fmt.Errorf("%w: %s", ErrModuleNotFound, ref)
	}

	ok, err := confirm(fmt.Sprintf("Delete module %s?", ref.Title))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPromptFailed, err)
	}
	if !ok {
		return false, nil
	}

	if err := os.RemoveAll(m.Dir(ref)); err != nil {
		return false, fmt.Errorf("remove module: %w", err)
	}

	return true, nil
}

// List returns every module in the store, sorted by path. Modules nested
// inside other modules are listed too.
func (m *Manager) List() ([]Ref, error) {
	if !m.cfg.StoreExists() {
		return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, m.cfg.StoreDir)
	}

	var refs []Ref
	err := filepath.WalkDir(m.cfg.StoreDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == m.cfg.StoreDir {
			return nil
		}

		rel, err := filepath.Rel(m.cfg.StoreDir, path)
		if err != nil {
			return fmt.Errorf("calculate relative path: %w", err)
		}

		ref := Ref{Title: filepath.Base(rel)}
		if parent := filepath.Dir(rel); parent != "." {
			ref.Subdir = filepath.ToSlash(parent)
		}
		if m.Exists(ref) {
			refs = append(refs, ref)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].String() < refs[j].String()
	})

	return refs, nil
}
