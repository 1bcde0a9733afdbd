package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidManifest indicates a mod.yaml that does not decode into a Manifest.
	ErrInvalidManifest = errors.New("invalid module manifest")

	// ErrInvalidGlobals indicates a global.yaml that does not decode into Globals.
	ErrInvalidGlobals = errors.New("invalid global defaults")

	// ErrGlobalsNotFound indicates the store has no global.yaml.
	ErrGlobalsNotFound = errors.New("global defaults not found")
)

// LoadManifest reads and decodes a mod.yaml.
func LoadManifest(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidManifest, path, err)
	}

	if err := m.checkRequired(); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidManifest, path, err)
	}

	return &m, nil
}

// checkRequired rejects entries with required fields left unset, which the
// decoder would otherwise fill with empty strings.
func (m *Manifest) checkRequired() error {
	for i, e := range m.Exports {
		switch {
		case e.Source == "":
			return fmt.Errorf("export %d: missing source", i)
		case e.Target == "":
			return fmt.Errorf("export %d: missing target", i)
		}
	}
	for i, inc := range m.Include {
		if inc.Module == "" {
			return fmt.Errorf("include %d: missing module", i)
		}
	}
	return nil
}

// LoadGlobals reads and decodes the store's global.yaml.
// A missing file is an error; missing fields are not.
func LoadGlobals(path string) (*Globals, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrGlobalsNotFound, path)
		}
		return nil, fmt.Errorf("read global defaults: %w", err)
	}

	var g Globals
	if err := yaml.Unmarshal(content, &g); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidGlobals, path, err)
	}

	return &g, nil
}
