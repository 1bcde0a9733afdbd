package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "
)

var (
	// StyleNoun styles module names.
	StyleNoun = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	// StyleRoot styles the root of a tree.
	StyleRoot = lipgloss.NewStyle().Bold(true)

	// StyleDim styles connectors and other chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// TreeNode is a labelled node for RenderTree.
type TreeNode struct {
	Name     string
	Children []*TreeNode
}

// RenderTree draws a tree with box-drawing connectors. Children keep their
// given order.
func RenderTree(root *TreeNode) string {
	if root == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleRoot.Render(root.Name))
	sb.WriteString("\n")
	renderChildren(&sb, root.Children, "")
	return sb.String()
}

func renderChildren(sb *strings.Builder, children []*TreeNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1

		connector := treeEdge
		next := prefix + treeVert
		if last {
			connector = treeLast
			next = prefix + treeSpace
		}

		sb.WriteString(StyleDim.Render(prefix + connector))
		sb.WriteString(StyleNoun.Render(child.Name))
		sb.WriteString("\n")

		renderChildren(sb, child.Children, next)
	}
}
