package manifest

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/dsdm/internal/ui"
)

// GlobalKey is the reserved top-level context key holding global templates.
const GlobalKey = "global"

var (
	// ErrInvalidTemplateKey indicates a template mapping key that is not a string.
	ErrInvalidTemplateKey = errors.New("template key is not a string")

	// ErrInvalidTemplateValue indicates a template value that is neither a
	// string nor a mapping, or a template root that is not a mapping.
	ErrInvalidTemplateValue = errors.New("invalid template value")
)

// Value is a node of the template context: a Leaf or a Tree.
type Value interface {
	isValue()
}

// Leaf is a string template variable.
type Leaf string

// Tree is a named mapping of template variables.
type Tree map[string]Value

func (Leaf) isValue() {}
func (Tree) isValue() {}

// Keys returns the tree's keys in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Data converts the tree into plain maps for the template engine.
func (t Tree) Data() map[string]any {
	out := make(map[string]any, len(t))
	for k, v := range t {
		switch val := v.(type) {
		case Leaf:
			out[k] = string(val)
		case Tree:
			out[k] = val.Data()
		}
	}
	return out
}

// BuildContext merges a module's local templates with the global templates.
//
// The whole global tree is inserted under GlobalKey (empty when global.yaml
// declares no templates). Local top-level keys are inserted next to it; a
// local key equal to or starting with "global" is kept but logged as a
// warning since it may shadow the global namespace.
//
// Either node may be nil or zero to mean "absent". A present root must be a
// mapping; leaves must be strings.
func BuildContext(local, global *yaml.Node) (Tree, error) {
	ctx := make(Tree)

	globals := make(Tree)
	if !isAbsent(global) {
		g, err := buildTree(resolve(global), GlobalKey)
		if err != nil {
			return nil, err
		}
		globals = g
		ui.Logger.Debug("registered global templates", "keys", len(globals))
	}
	ctx[GlobalKey] = globals

	if isAbsent(local) {
		ui.Logger.Debug("no local templates found")
		return ctx, nil
	}

	locals, err := buildTree(resolve(local), "templates")
	if err != nil {
		return nil, err
	}

	for _, key := range locals.Keys() {
		if strings.HasPrefix(key, GlobalKey) {
			ui.Logger.Warn("local template key may shadow global templates", "key", key)
		}
		ctx[key] = locals[key]
	}

	return ctx, nil
}

// buildTree converts a root node, which must be a mapping.
func buildTree(n *yaml.Node, path string) (Tree, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at %s: expected a mapping, got %s", ErrInvalidTemplateValue, path, describe(n))
	}

	tree := make(Tree, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := resolve(n.Content[i])
		if keyNode.Kind != yaml.ScalarNode || keyNode.ShortTag() != "!!str" {
			return nil, fmt.Errorf("%w at %s: %s", ErrInvalidTemplateKey, path, describe(keyNode))
		}

		key := keyNode.Value
		value, err := buildValue(resolve(n.Content[i+1]), path+"."+key)
		if err != nil {
			return nil, err
		}
		tree[key] = value
	}

	return tree, nil
}

func buildValue(n *yaml.Node, path string) (Value, error) {
	switch {
	case n.Kind == yaml.MappingNode:
		return buildTree(n, path)
	case n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str":
		return Leaf(n.Value), nil
	default:
		return nil, fmt.Errorf("%w at %s: %s", ErrInvalidTemplateValue, path, describe(n))
	}
}

func isAbsent(n *yaml.Node) bool {
	if n == nil || n.Kind == 0 {
		return true
	}
	n = resolve(n)
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// resolve unwraps documents and follows aliases.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return n
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return fmt.Sprintf("%s %q (line %d)", strings.TrimPrefix(n.ShortTag(), "!!"), n.Value, n.Line)
	case yaml.SequenceNode:
		return fmt.Sprintf("sequence (line %d)", n.Line)
	case yaml.MappingNode:
		return fmt.Sprintf("mapping (line %d)", n.Line)
	default:
		return fmt.Sprintf("node kind %d (line %d)", n.Kind, n.Line)
	}
}
