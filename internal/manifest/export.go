package manifest

import (
	"path/filepath"
	"strings"

	"github.com/cameronsjo/dsdm/internal/config"
)

// ResolveExport returns the destination of a file or directory at rel,
// relative to the root of module title.
//
// Export entries are checked in order and the first whose source is rel, or
// a whole-component prefix of rel, wins: the destination becomes the entry's
// target (with ~ expanded) plus whatever part of rel follows the source. With
// no match the destination is <export root>/<title>/<rel>.
func ResolveExport(cfg *config.Config, title string, exports []ExportEntry, rel string) string {
	rel = filepath.Clean(rel)

	for _, entry := range exports {
		suffix, ok := matchSource(rel, entry.Source)
		if !ok {
			continue
		}

		dest := cfg.ExpandTilde(entry.Target)
		if suffix != "" {
			dest = filepath.Join(dest, suffix)
		}
		return dest
	}

	return filepath.Join(cfg.ExportDir(title), rel)
}

// matchSource reports whether source is rel or a path-component prefix of
// it, returning the remainder of rel after source. A source of "." or ""
// covers the whole module.
func matchSource(rel, source string) (string, bool) {
	src := filepath.Clean(filepath.FromSlash(source))

	if src == "." {
		if rel == "." {
			return "", true
		}
		return rel, true
	}

	if rel == src {
		return "", true
	}

	prefix := src + string(filepath.Separator)
	if strings.HasPrefix(rel, prefix) {
		return rel[len(prefix):], true
	}

	return "", false
}
