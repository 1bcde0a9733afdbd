// Package manifest decodes module manifests and global defaults, builds the
// template context for a module, and maps module files to export destinations.
//
// # Manifest Structure
//
// Every module directory carries a mod.yaml:
//
//	exports:
//	  - source: config/app.toml
//	    target: ~/.app/app.toml
//	include:
//	  - module: git
//	  - module: b
//	    path: nested
//	templates:
//	  name: alice
//	  colors:
//	    fg: white
//
// # Global Defaults
//
// The store root carries a global.yaml shared by all modules:
//
//	delimiters:
//	  open: "!("
//	  close: ")!"
//	templates:
//	  editor: vim
//
// Global templates are reachable under the reserved "global" key, so a module
// file containing !(global.editor)! renders as vim. Local keys named "global"
// (or starting with it) shadow that namespace and trigger a warning.
//
// Both template roots must be mappings. A global.yaml whose templates value is
// a scalar or a sequence fails with ErrInvalidTemplateValue instead of being
// ignored, and so does every leaf that is not a string.
//
// # Exports
//
// Files land under <export root>/<module title>/<relative path> unless an
// export entry matches. Sources match on whole path components, the first
// matching entry wins, and a leading ~ in the target expands to the home
// directory.
package manifest
