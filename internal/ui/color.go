// Package ui provides coloured console output and the process logger.
package ui

import (
	"io"

	"github.com/fatih/color"
)

var (
	// Colors
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Faint  = color.New(color.Faint)
)

// Success prints a green success message with checkmark.
func Success(format string, args ...any) {
	Green.Printf("✓ "+format+"\n", args...)
}

// Error prints a red error message with X to stderr.
func Error(format string, args ...any) {
	Red.Fprintf(color.Error, "✗ "+format+"\n", args...)
}

// Warning prints a yellow warning message.
func Warning(format string, args ...any) {
	Yellow.Printf("⚠ "+format+"\n", args...)
}

// Info prints a blue info message.
func Info(format string, args ...any) {
	Blue.Printf(format+"\n", args...)
}

// Write prints a "source → destination" line for a materialised file.
func Write(w io.Writer, src, dst string) {
	Green.Fprintf(w, "  ✓ %s", src)
	Faint.Fprintf(w, " → %s\n", dst)
}
