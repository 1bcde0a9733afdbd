package cmd

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// renderUnifiedDiff returns a unified diff from the current content of path
// to its rendered content. A missing file diffs against /dev/null. Identical
// content yields an empty string.
func renderUnifiedDiff(path string, before, after []byte, exists bool) string {
	if exists && string(before) == string(after) {
		return ""
	}

	from := path
	if !exists {
		from = "/dev/null"
	}

	ud := difflib.UnifiedDiff{
		A:        splitLines(string(before)),
		B:        splitLines(string(after)),
		FromFile: from,
		ToFile:   path,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return fmt.Sprintf("failed to render diff: %v\n", err)
	}
	return text
}

// noNewline marks a final line without a trailing newline, as git does.
const noNewline = "\\ No newline at end of file\n"

// splitLines splits s into lines that keep their newline. A last line without
// one gets the noNewline marker, so content differing only in its final
// newline still diffs.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if last := len(lines) - 1; lines[last] == "" {
		lines = lines[:last]
	} else {
		lines[last] += "\n" + noNewline
	}
	return lines
}
