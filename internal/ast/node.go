package ast

import (
	"strings"

	"tagtree/internal/source"
)

// NodeKind distinguishes the three node shapes of a tree.
type NodeKind uint8

const (
	NodeRoot NodeKind = iota
	NodeElement
	NodeText
)

func (k NodeKind) String() string {
	switch k {
	case NodeRoot:
		return "root"
	case NodeElement:
		return "element"
	case NodeText:
		return "text"
	}
	return "unknown"
}

// Node is an element, a text run or the synthetic root.
//
// Text nodes carry TagUnknown and Content. Elements carry Tag and, for
// custom elements, only Name. Parent is a back-reference and never owns.
type Node struct {
	Kind        NodeKind
	Tag         TagType
	Name        source.StringID // lower-cased element name
	Attrs       []Attr
	Content     string
	Parent      NodeID
	Children    []NodeID
	Span        source.Span
	SelfClosing bool

	sealed bool // attribute list is frozen once the open tag ends
}

func (n *Node) IsElement() bool { return n.Kind == NodeElement }
func (n *Node) IsText() bool    { return n.Kind == NodeText }

// Sealed reports whether the attribute list can still grow.
func (n *Node) Sealed() bool { return n.sealed }

// Attr returns the first attribute with the given (case-insensitive) name.
func (n *Node) Attr(name string) (Attr, bool) {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Attr{}, false
}
