package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	t.Run("full manifest", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "mod.yaml", `exports:
  - source: config/app.toml
    target: ~/.app/app.toml
include:
  - module: git
  - module: b
    path: nested
templates:
  name: alice
`)

		m, err := LoadManifest(path)
		require.NoError(t, err)

		assert.Equal(t, []ExportEntry{{Source: "config/app.toml", Target: "~/.app/app.toml"}}, m.Exports)
		assert.Equal(t, []IncludeEntry{{Module: "git"}, {Module: "b", Path: "nested"}}, m.Include)
		assert.Equal(t, yaml.MappingNode, m.Templates.Kind)
	})

	t.Run("empty manifest", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "mod.yaml", "")

		m, err := LoadManifest(path)
		require.NoError(t, err)
		assert.Empty(t, m.Exports)
		assert.Empty(t, m.Include)
		assert.True(t, isAbsent(&m.Templates))
	})

	t.Run("wrong shape", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "mod.yaml", "exports: not-a-list\n")

		_, err := LoadManifest(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidManifest)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "mod.yaml", "include: [\n")

		_, err := LoadManifest(path)
		assert.ErrorIs(t, err, ErrInvalidManifest)
	})

	t.Run("missing required fields", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			content string
			wantMsg string
		}{
			{
				name:    "include without module",
				content: "include:\n  - path: tools\n",
				wantMsg: "include 0: missing module",
			},
			{
				name:    "second include without module",
				content: "include:\n  - module: git\n  - path: tools\n",
				wantMsg: "include 1: missing module",
			},
			{
				name:    "export without source",
				content: "exports:\n  - target: ~/elsewhere\n",
				wantMsg: "export 0: missing source",
			},
			{
				name:    "export with empty source",
				content: "exports:\n  - source: \"\"\n    target: ~/elsewhere\n",
				wantMsg: "export 0: missing source",
			},
			{
				name:    "export without target",
				content: "exports:\n  - source: cfg\n",
				wantMsg: "export 0: missing target",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				path := writeFile(t, t.TempDir(), "mod.yaml", tt.content)

				_, err := LoadManifest(path)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidManifest)
				assert.Contains(t, err.Error(), tt.wantMsg)
			})
		}
	})

	t.Run("dot source covers the module", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "mod.yaml", "exports:\n  - source: .\n    target: ~\n")

		m, err := LoadManifest(path)
		require.NoError(t, err)
		assert.Equal(t, []ExportEntry{{Source: ".", Target: "~"}}, m.Exports)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadManifest(filepath.Join(t.TempDir(), "mod.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadGlobals(t *testing.T) {
	t.Parallel()

	t.Run("defaults when fields are missing", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "global.yaml", "{}\n")

		g, err := LoadGlobals(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultDelimiters(), g.Delims())
		assert.True(t, isAbsent(&g.Templates))
	})

	t.Run("custom delimiters", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "global.yaml", "delimiters:\n  open: '<<'\n  close: '>>'\ntemplates:\n  editor: vim\n")

		g, err := LoadGlobals(path)
		require.NoError(t, err)
		assert.Equal(t, Delimiters{Open: "<<", Close: ">>"}, g.Delims())
		assert.Equal(t, yaml.MappingNode, g.Templates.Kind)
	})

	t.Run("half-set delimiters fall back", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "global.yaml", "delimiters:\n  open: '<<'\n")

		g, err := LoadGlobals(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultDelimiters(), g.Delims())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadGlobals(filepath.Join(t.TempDir(), "global.yaml"))
		assert.ErrorIs(t, err, ErrGlobalsNotFound)
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "global.yaml", "delimiters: [a]\n")

		_, err := LoadGlobals(path)
		assert.ErrorIs(t, err, ErrInvalidGlobals)
	})
}
