package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCmd(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		cfg := useHome(t)
		writeModule(t, cfg, "shell", "", "", map[string]string{"bashrc": "!(global.editor)!"})

		output, err := executeCmd(t, "validate")
		require.NoError(t, err)
		assert.Contains(t, output, "* shell")
		assert.Contains(t, output, "All 1 modules are valid")
		assert.NoDirExists(t, cfg.ExportDir("shell"))
	})

	t.Run("reports broken modules", func(t *testing.T) {
		cfg := useHome(t)
		writeModule(t, cfg, "good", "", "", nil)
		writeModule(t, cfg, "bad", "", "templates: 42\n", nil)

		output, err := executeCmd(t, "validate")
		assert.ErrorIs(t, err, errValidationFailed)
		assert.Contains(t, output, "x bad")
		assert.Contains(t, output, "* good")
		assert.Contains(t, output, "1 of 2 modules failed")
	})
}
