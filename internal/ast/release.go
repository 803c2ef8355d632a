package ast

// Release tears the tree down: children are dropped before their parent,
// iteratively, and the arena is emptied. A second call does nothing.
func (t *Tree) Release() {
	t.ReleaseWith(nil)
}

// ReleaseWith is Release with a callback observing each node just before it
// is dropped. Tooling uses it to count or trace teardown.
func (t *Tree) ReleaseWith(visit func(id NodeID, n *Node)) {
	if t == nil || t.released {
		return
	}
	if t.Len() > 0 {
		t.postOrder(RootID, func(id NodeID) {
			n := t.Node(id)
			if visit != nil {
				visit(id, n)
			}
			n.Children = nil
			n.Attrs = nil
			n.Content = ""
			n.Parent = NoNodeID
		})
	}
	t.nodes.Reset()
	t.released = true
}
