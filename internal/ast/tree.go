package ast

import (
	"errors"
	"fmt"

	"tagtree/internal/source"
)

var (
	ErrReleased     = errors.New("tree already released")
	ErrSealed       = errors.New("attribute list is sealed")
	ErrNodeBudget   = errors.New("node budget exhausted")
	ErrBadParent    = errors.New("parent is not an element or root")
	ErrNotAnElement = errors.New("node is not an element")
)

// Hints sizes a new tree. MaxNodes == 0 means no budget.
type Hints struct {
	Nodes    uint
	MaxNodes uint32
}

// Tree owns every node of one document. Node 1 is the synthetic root.
// Mutation goes through NewElement/NewText/AddAttr/Seal only.
type Tree struct {
	File    source.FileID
	Doctype string // raw text of a <!...> declaration, if any

	names    *source.Interner
	nodes    *Arena[Node]
	maxNodes uint32
	released bool
}

// NewTree allocates a tree with its root. names may be shared between trees.
func NewTree(file source.FileID, names *source.Interner, hints Hints) *Tree {
	if names == nil {
		names = source.NewInterner()
	}
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 6
	}
	t := &Tree{
		File:     file,
		names:    names,
		nodes:    NewArena[Node](hints.Nodes),
		maxNodes: hints.MaxNodes,
	}
	t.nodes.Allocate(Node{Kind: NodeRoot, Tag: TagUnknown, sealed: true, Span: source.Span{File: file}})
	return t
}

func (t *Tree) Root() NodeID { return RootID }

// Len returns the number of nodes including the root.
func (t *Tree) Len() int { return int(t.nodes.Len()) }

// Names returns the interner holding element names.
func (t *Tree) Names() *source.Interner { return t.names }

// Released reports whether Release already ran.
func (t *Tree) Released() bool { return t.released }

// Node returns the node for id or nil.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

// Children returns the ordered child list. READONLY.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Parent returns the parent id, NoNodeID for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

// Attrs returns the attribute list of an element. READONLY.
func (t *Tree) Attrs(id NodeID) []Attr {
	if n := t.Node(id); n != nil {
		return n.Attrs
	}
	return nil
}

// Name returns the lower-cased element name ("" for text and root).
func (t *Tree) Name(id NodeID) string {
	n := t.Node(id)
	if n == nil || n.Name == source.NoStringID {
		return ""
	}
	s, _ := t.names.Lookup(n.Name)
	return s
}

// Depth counts the ancestors of id excluding the root; root children are depth 1.
func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for n := t.Node(id); n != nil && n.Kind != NodeRoot; n = t.Node(n.Parent) {
		depth++
	}
	return depth
}

func (t *Tree) alloc(parent NodeID, n Node) (NodeID, error) {
	if t.released {
		return NoNodeID, ErrReleased
	}
	p := t.Node(parent)
	if p == nil || p.Kind == NodeText {
		return NoNodeID, fmt.Errorf("%w: %d", ErrBadParent, parent)
	}
	if t.maxNodes != 0 && t.nodes.Len() >= t.maxNodes {
		return NoNodeID, fmt.Errorf("%w: limit %d", ErrNodeBudget, t.maxNodes)
	}
	n.Parent = parent
	id := NodeID(t.nodes.Allocate(n))
	// p может быть невалиден после Allocate (рост слайса)
	p = t.Node(parent)
	p.Children = append(p.Children, id)
	return id, nil
}

// NewElement appends an element as the last child of parent.
func (t *Tree) NewElement(parent NodeID, tag TagType, name string, sp source.Span) (NodeID, error) {
	return t.alloc(parent, Node{
		Kind: NodeElement,
		Tag:  tag,
		Name: t.names.Intern(name),
		Span: sp,
	})
}

// NewText appends a text run as the last child of parent.
func (t *Tree) NewText(parent NodeID, content string, sp source.Span) (NodeID, error) {
	return t.alloc(parent, Node{
		Kind:    NodeText,
		Tag:     TagUnknown,
		Content: content,
		Span:    sp,
		sealed:  true,
	})
}

// AddAttr appends an attribute while the open tag is still being read.
func (t *Tree) AddAttr(id NodeID, a Attr) error {
	n := t.Node(id)
	switch {
	case t.released:
		return ErrReleased
	case n == nil || n.Kind != NodeElement:
		return ErrNotAnElement
	case n.sealed:
		return ErrSealed
	}
	n.Attrs = append(n.Attrs, a)
	return nil
}

// Seal freezes the attribute list; called when the open tag ends.
func (t *Tree) Seal(id NodeID) {
	if n := t.Node(id); n != nil {
		n.sealed = true
	}
}

// SetSelfClosing marks an element written as `<x/>` or a void element.
func (t *Tree) SetSelfClosing(id NodeID) {
	if n := t.Node(id); n != nil && n.Kind == NodeElement {
		n.SelfClosing = true
	}
}

// Extend grows the span of id to cover sp (e.g. up to its end tag).
func (t *Tree) Extend(id NodeID, sp source.Span) {
	if n := t.Node(id); n != nil {
		n.Span = n.Span.Cover(sp)
	}
}
