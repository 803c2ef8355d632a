package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tagtree/internal/ast"
	"tagtree/internal/source"
)

// CheckTreeInvariants runs the structural invariants of a built tree:
// 1) node 1 is the root: no parent, no attributes, no content
// 2) every other node has exactly one parent and appears exactly once in
// that parent's child list
// 3) children are in document order and their spans stay within the file
// 4) every element has a sealed attribute list; text nodes have no children
// 5) a pre-order walk reaches every node (no cycles, no orphans)
//
// sf may be nil; span bounds are then not checked.
func CheckTreeInvariants(t *ast.Tree, sf *source.File) error {
	if t == nil {
		return fmt.Errorf("nil tree")
	}
	if t.Released() {
		return fmt.Errorf("tree is released")
	}

	// 1) root sanity
	root := t.Node(t.Root())
	if root == nil || root.Kind != ast.NodeRoot {
		return fmt.Errorf("node %d is not the root", t.Root())
	}
	if root.Parent.IsValid() || len(root.Attrs) != 0 || root.Content != "" {
		return fmt.Errorf("root has parent, attributes or content")
	}

	var limit uint32
	if sf != nil {
		n, err := safecast.Conv[uint32](len(sf.Content))
		if err != nil {
			return fmt.Errorf("len content overflow: %w", err)
		}
		limit = n
	}

	seen := make([]int, t.Len()+1)
	for i := 1; i <= t.Len(); i++ {
		id := ast.NodeID(i)
		n := t.Node(id)
		if n == nil {
			return fmt.Errorf("nil node for id=%d", id)
		}

		// 4) kind-specific shape
		switch n.Kind {
		case ast.NodeElement:
			if !n.Sealed() {
				return fmt.Errorf("element %d <%s> has an unsealed attribute list", id, t.Name(id))
			}
		case ast.NodeText:
			if len(n.Children) != 0 {
				return fmt.Errorf("text node %d has children", id)
			}
			if n.Tag != ast.TagUnknown {
				return fmt.Errorf("text node %d has tag %s", id, n.Tag)
			}
		}

		// 2) + 3) child lists
		var prev source.Span
		for j, c := range n.Children {
			child := t.Node(c)
			if child == nil {
				return fmt.Errorf("node %d lists missing child %d", id, c)
			}
			if child.Parent != id {
				return fmt.Errorf("child %d of %d points to parent %d", c, id, child.Parent)
			}
			seen[c]++
			if j > 0 && child.Span.Start < prev.Start {
				return fmt.Errorf("children of %d out of order: %v before %v", id, prev, child.Span)
			}
			prev = child.Span
		}

		if sf != nil && n.Kind != ast.NodeRoot {
			if n.Span.File != sf.ID {
				return fmt.Errorf("node %d span file mismatch: got=%d want=%d", id, n.Span.File, sf.ID)
			}
			if n.Span.End > limit || n.Span.Start > n.Span.End {
				return fmt.Errorf("node %d span %v outside content (%d bytes)", id, n.Span, limit)
			}
		}
	}

	for i := 2; i <= t.Len(); i++ {
		if seen[i] != 1 {
			return fmt.Errorf("node %d appears %d times in child lists", i, seen[i])
		}
	}

	// 5) reachability
	visited := 0
	t.Walk(func(ast.NodeID, int) bool {
		visited++
		return true
	})
	if visited != t.Len() {
		return fmt.Errorf("walk reached %d of %d nodes", visited, t.Len())
	}
	return nil
}
