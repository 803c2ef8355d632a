package ast

import (
	"errors"
	"fmt"

	"tagtree/internal/source"
)

// SnapshotAttr is the flat, serializable form of Attr.
type SnapshotAttr struct {
	Name     string `msgpack:"n"`
	Value    string `msgpack:"v,omitempty"`
	HasValue bool   `msgpack:"h,omitempty"`
	Start    uint32 `msgpack:"s"`
	End      uint32 `msgpack:"e"`
}

// SnapshotNode is the flat, serializable form of Node; Children are 1-based
// indices into Snapshot.Nodes like NodeID.
type SnapshotNode struct {
	Kind        NodeKind       `msgpack:"k"`
	Name        string         `msgpack:"n,omitempty"`
	Attrs       []SnapshotAttr `msgpack:"a,omitempty"`
	Content     string         `msgpack:"c,omitempty"`
	Parent      uint32         `msgpack:"p"`
	Children    []uint32       `msgpack:"ch,omitempty"`
	Start       uint32         `msgpack:"s"`
	End         uint32         `msgpack:"e"`
	SelfClosing bool           `msgpack:"sc,omitempty"`
}

// Snapshot is a self-contained copy of a tree, independent of any interner.
type Snapshot struct {
	Doctype string         `msgpack:"doctype,omitempty"`
	Nodes   []SnapshotNode `msgpack:"nodes"`
}

var ErrBadSnapshot = errors.New("malformed tree snapshot")

// Snapshot flattens the tree. It returns nil for a released tree.
func (t *Tree) Snapshot() *Snapshot {
	if t.released {
		return nil
	}
	src := t.nodes.Slice()
	out := &Snapshot{Doctype: t.Doctype, Nodes: make([]SnapshotNode, len(src))}
	for i := range src {
		n := &src[i]
		sn := SnapshotNode{
			Kind:        n.Kind,
			Name:        t.Name(NodeID(i + 1)), // #nosec G115 -- arena index
			Content:     n.Content,
			Parent:      uint32(n.Parent),
			Start:       n.Span.Start,
			End:         n.Span.End,
			SelfClosing: n.SelfClosing,
		}
		for _, c := range n.Children {
			sn.Children = append(sn.Children, uint32(c))
		}
		for _, a := range n.Attrs {
			sn.Attrs = append(sn.Attrs, SnapshotAttr{
				Name: a.Name, Value: a.Value, HasValue: a.HasValue,
				Start: a.Span.Start, End: a.Span.End,
			})
		}
		out.Nodes[i] = sn
	}
	return out
}

// FromSnapshot rebuilds a tree. Nodes are re-created through the builder API
// in document order (pre-order, the order the parser allocates them), so
// node IDs match the original and every tree invariant is re-established.
func FromSnapshot(file source.FileID, names *source.Interner, s *Snapshot) (*Tree, error) {
	if s == nil || len(s.Nodes) == 0 || s.Nodes[0].Kind != NodeRoot {
		return nil, fmt.Errorf("%w: missing root", ErrBadSnapshot)
	}
	t := NewTree(file, names, Hints{Nodes: uint(len(s.Nodes))})
	t.Doctype = s.Doctype

	type frame struct {
		src  uint32 // index in s.Nodes (1-based)
		dst  NodeID
		next int // next child of src to create
	}
	stack := []frame{{src: 1, dst: RootID}}
	seen := 1
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := s.Nodes[top.src-1].Children
		if top.next == len(children) {
			stack = stack[:len(stack)-1]
			continue
		}
		c := children[top.next]
		top.next++
		if c < 2 || int(c) > len(s.Nodes) || s.Nodes[c-1].Parent != top.src {
			return nil, fmt.Errorf("%w: bad child %d of node %d", ErrBadSnapshot, c, top.src)
		}
		seen++
		if seen > len(s.Nodes) {
			return nil, fmt.Errorf("%w: node %d listed twice", ErrBadSnapshot, c)
		}
		id, err := t.restore(top.dst, file, &s.Nodes[c-1])
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", c, err)
		}
		// top is invalid after append
		stack = append(stack, frame{src: c, dst: id})
	}
	if seen != len(s.Nodes) {
		return nil, fmt.Errorf("%w: %d unreachable nodes", ErrBadSnapshot, len(s.Nodes)-seen)
	}
	return t, nil
}

func (t *Tree) restore(parent NodeID, file source.FileID, sn *SnapshotNode) (NodeID, error) {
	sp := source.Span{File: file, Start: sn.Start, End: sn.End}
	switch sn.Kind {
	case NodeElement:
		tag, _ := LookupTag(sn.Name)
		id, err := t.NewElement(parent, tag, sn.Name, sp)
		if err != nil {
			return NoNodeID, err
		}
		for _, a := range sn.Attrs {
			asp := source.Span{File: file, Start: a.Start, End: a.End}
			if err := t.AddAttr(id, NewAttr(a.Name, a.Value, a.HasValue, asp)); err != nil {
				return NoNodeID, err
			}
		}
		t.Seal(id)
		if sn.SelfClosing {
			t.SetSelfClosing(id)
		}
		return id, nil
	case NodeText:
		return t.NewText(parent, sn.Content, sp)
	default:
		return NoNodeID, fmt.Errorf("%w: unexpected %s node", ErrBadSnapshot, sn.Kind)
	}
}
