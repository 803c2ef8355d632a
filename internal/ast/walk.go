package ast

// Walk visits nodes in document (pre-)order starting at the root.
// fn receives the node depth (root is 0); returning false skips the subtree.
// The traversal keeps its own stack, so document depth does not grow the call stack.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	if t.released || t.Len() == 0 {
		return
	}
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{id: RootID}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.id, top.depth) {
			continue
		}
		children := t.Children(top.id)
		// в обратном порядке, чтобы первый ребёнок оказался сверху
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: children[i], depth: top.depth + 1})
		}
	}
}

// PostOrder visits every node after all of its children, root last.
func (t *Tree) PostOrder(fn func(id NodeID)) {
	if t.released || t.Len() == 0 {
		return
	}
	t.postOrder(RootID, fn)
}

func (t *Tree) postOrder(start NodeID, fn func(id NodeID)) {
	type frame struct {
		id   NodeID
		next int // index of the next child to descend into
	}
	stack := []frame{{id: start}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := t.Children(top.id)
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			stack = append(stack, frame{id: child})
			continue
		}
		id := top.id
		stack = stack[:len(stack)-1]
		fn(id)
	}
}

// Elements returns the ids of all elements in document order.
func (t *Tree) Elements() []NodeID {
	var out []NodeID
	t.Walk(func(id NodeID, _ int) bool {
		if n := t.Node(id); n.Kind == NodeElement {
			out = append(out, id)
		}
		return true
	})
	return out
}
