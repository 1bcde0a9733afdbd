// Package render expands module files through text/template.
//
// Templates see the module context as their root object and get the sprig
// function map. Every top-level context key that is a valid identifier is
// also registered as a function returning its value, so a variable can be
// written without the leading dot:
//
//	export EDITOR=!(global.editor)!
//	export EDITOR=!( .global.editor )!
package render

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"
	"unicode"

	"github.com/Masterminds/sprig/v3"
)

// ErrRender indicates a template failed to parse or execute.
var ErrRender = errors.New("render failed")

// reserved holds names the template language already owns.
var reserved = map[string]bool{
	"and": true, "call": true, "html": true, "index": true, "slice": true,
	"js": true, "len": true, "not": true, "or": true, "print": true,
	"printf": true, "println": true, "urlquery": true,
	"eq": true, "ge": true, "gt": true, "le": true, "lt": true, "ne": true,
	"block": true, "break": true, "continue": true, "define": true,
	"else": true, "end": true, "if": true, "range": true, "nil": true,
	"template": true, "with": true, "true": true, "false": true,
}

// Renderer renders file contents with a fixed pair of delimiters.
type Renderer struct {
	open  string
	close string
}

// New creates a renderer using the given delimiters.
func New(open, close string) *Renderer {
	return &Renderer{open: open, close: close}
}

// Delims returns the renderer's delimiters.
func (r *Renderer) Delims() (string, string) {
	return r.open, r.close
}

// Render expands src with data. Referencing a key that is not in data is an
// error. name identifies the template in error messages.
func (r *Renderer) Render(name, src string, data map[string]any) (string, error) {
	tmpl, err := template.New(name).
		Delims(r.open, r.close).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Funcs(rootFuncs(data)).
		Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}

	return buf.String(), nil
}

// rootFuncs exposes top-level context keys as zero-argument functions.
// Context keys take precedence over sprig functions of the same name.
func rootFuncs(data map[string]any) template.FuncMap {
	funcs := make(template.FuncMap, len(data))
	for key, value := range data {
		if reserved[key] || !isIdentifier(key) {
			continue
		}
		funcs[key] = func() any { return value }
	}
	return funcs
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case i == 0 && !unicode.IsLetter(r):
			return false
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			return false
		}
	}
	return true
}
