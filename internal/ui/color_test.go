package ui

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// captureColorOutput captures output from the color package.
// color.Output and color.Error default to stdout and stderr.
func captureColorOutput(fn func()) string {
	oldNoColor := color.NoColor
	oldOutput := color.Output
	oldError := color.Error

	color.NoColor = true

	r, w, _ := os.Pipe()
	color.Output = w
	color.Error = w

	// Also redirect os.Stdout for fmt.Printf calls
	oldStdout := os.Stdout
	os.Stdout = w

	fn()

	w.Close()

	color.Output = oldOutput
	color.Error = oldError
	color.NoColor = oldNoColor
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	r.Close()

	return buf.String()
}

func TestSuccess(t *testing.T) {
	output := captureColorOutput(func() {
		Success("applied %d modules", 3)
	})
	assert.Equal(t, "✓ applied 3 modules\n", output)
}

func TestError(t *testing.T) {
	output := captureColorOutput(func() {
		Error("module does not exist: %s", "shell")
	})
	assert.Equal(t, "✗ module does not exist: shell\n", output)
}

func TestWarning(t *testing.T) {
	output := captureColorOutput(func() {
		Warning("skipping %s", "link")
	})
	assert.Equal(t, "⚠ skipping link\n", output)
}

func TestInfo(t *testing.T) {
	output := captureColorOutput(func() {
		Info("version: %s", "1.0.0")
	})
	assert.Equal(t, "version: 1.0.0\n", output)
}

func TestEmptyMessage(t *testing.T) {
	output := captureColorOutput(func() {
		Info("")
	})
	assert.Equal(t, "\n", output)
}

func TestColorVariables(t *testing.T) {
	assert.NotNil(t, Red)
	assert.NotNil(t, Green)
	assert.NotNil(t, Yellow)
	assert.NotNil(t, Blue)
	assert.NotNil(t, Cyan)
	assert.NotNil(t, Bold)
	assert.NotNil(t, Faint)
}

func TestWrite(t *testing.T) {
	oldNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = oldNoColor })

	var buf bytes.Buffer
	Write(&buf, "git/config", "/home/alice/.config/git/config")
	assert.Equal(t, "  ✓ git/config → /home/alice/.config/git/config\n", buf.String())
}
