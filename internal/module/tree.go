package module

// Node is one module in a resolved include tree.
type Node struct {
	Name     string
	Ref      Ref
	Children []*Node
}

// BuildTree resolves the include tree rooted at ref. It reads manifests
// only and never touches the export tree.
func (m *Manager) BuildTree(ref Ref) (*Node, error) {
	return m.buildTree(ref, nil)
}

func (m *Manager) buildTree(ref Ref, stack includeStack) (*Node, error) {
	stack, err := stack.push(m, ref)
	if err != nil {
		return nil, err
	}

	mf, err := m.Read(ref)
	if err != nil {
		return nil, err
	}

	node := &Node{Name: ref.Title, Ref: ref}
	for _, entry := range mf.Include {
		child, err := m.buildTree(includeRef(entry), stack)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}
