package manifest

import "gopkg.in/yaml.v3"

// Default template delimiters used when global.yaml does not set them.
const (
	DefaultOpenDelimiter  = "!("
	DefaultCloseDelimiter = ")!"
)

// Manifest is the parsed mod.yaml of a module.
type Manifest struct {
	// Exports remaps module-relative paths to explicit destinations.
	// Order matters: the first matching entry wins.
	Exports []ExportEntry `yaml:"exports,omitempty"`

	// Include lists other modules applied after this one, in order.
	Include []IncludeEntry `yaml:"include,omitempty"`

	// Templates holds the module's local template variables. It is kept as a
	// raw node and validated when the template context is built.
	Templates yaml.Node `yaml:"templates,omitempty"`
}

// ExportEntry maps a module-relative source path (and its subtree) to a target.
type ExportEntry struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// IncludeEntry references another module by title and optional store subdirectory.
type IncludeEntry struct {
	Module string `yaml:"module"`
	Path   string `yaml:"path,omitempty"`
}

// Globals is the parsed global.yaml at the store root.
type Globals struct {
	Delimiters *Delimiters `yaml:"delimiters,omitempty"`
	Templates  yaml.Node   `yaml:"templates,omitempty"`
}

// Delimiters are the open/close markers of a template expression.
type Delimiters struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// DefaultDelimiters returns the built-in !( and )! delimiters.
func DefaultDelimiters() Delimiters {
	return Delimiters{Open: DefaultOpenDelimiter, Close: DefaultCloseDelimiter}
}

// Delims returns the configured delimiters, falling back to the defaults
// when the block is missing or either side is empty.
func (g *Globals) Delims() Delimiters {
	if g == nil || g.Delimiters == nil || g.Delimiters.Open == "" || g.Delimiters.Close == "" {
		return DefaultDelimiters()
	}
	return *g.Delimiters
}
