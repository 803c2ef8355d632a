package format

import (
	"errors"
	"strings"

	"golang.org/x/net/html"

	"tagtree/internal/ast"
)

type Options struct {
	Pretty      bool // one node per line, indented
	IndentWidth int
	UseTabs     bool
	// Escape re-encodes &, <, >, quotes in text and attribute values.
	// Needed when the tree was built with entity decoding.
	Escape bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

type printer struct {
	tree   *ast.Tree
	writer *Writer
	opt    Options
}

// Render prints the tree as markup. Comments are gone from the tree and do
// not come back; whitespace between tokens is normalized.
func Render(t *ast.Tree, opt Options) ([]byte, error) {
	if t == nil {
		return nil, errors.New("format: nil tree")
	}
	if t.Released() {
		return nil, ast.ErrReleased
	}
	opt = opt.withDefaults()
	pr := printer{
		tree:   t,
		writer: NewWriter(opt, t.Len()*16),
		opt:    opt,
	}
	pr.printTree()
	return pr.writer.Bytes(), nil
}

// String is Render with default options; errors yield "".
func String(t *ast.Tree) string {
	out, err := Render(t, Options{})
	if err != nil {
		return ""
	}
	return string(out)
}

// printTree walks with an explicit stack; closing frames print end tags.
func (p *printer) printTree() {
	type frame struct {
		id      ast.NodeID
		prev    ast.NodeID // previous sibling, for compact spacing
		closing bool
	}

	w := p.writer
	if p.tree.Doctype != "" {
		w.WriteString("<!" + p.tree.Doctype + ">")
		w.Newline()
	}

	stack := make([]frame, 0, 32)
	pushChildren := func(parent ast.NodeID) {
		kids := p.tree.Children(parent)
		for i := len(kids) - 1; i >= 0; i-- {
			f := frame{id: kids[i]}
			if i > 0 {
				f.prev = kids[i-1]
			}
			stack = append(stack, f)
		}
	}
	pushChildren(p.tree.Root())

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := p.tree.Node(f.id)

		if f.closing {
			w.IndentPop()
			if len(n.Children) > 0 {
				w.Newline()
			}
			w.WriteString("</" + p.tree.Name(f.id) + ">")
			continue
		}

		if !p.opt.Pretty && f.prev.IsValid() && (n.IsText() || p.tree.Node(f.prev).IsText()) {
			_ = w.WriteByte(' ')
		}
		w.Newline()

		switch n.Kind {
		case ast.NodeText:
			w.WriteString(p.text(f.id, n))
		case ast.NodeElement:
			w.WriteString(p.openTag(f.id, n))
			if n.SelfClosing || n.Tag.IsVoid() {
				continue
			}
			w.IndentPush()
			stack = append(stack, frame{id: f.id, closing: true})
			pushChildren(f.id)
		}
	}
	w.Newline()
}

func (p *printer) openTag(id ast.NodeID, n *ast.Node) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(p.tree.Name(id))
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		if !a.HasValue {
			continue
		}
		sb.WriteByte('=')
		sb.WriteString(p.quote(a.Value))
	}
	if n.SelfClosing {
		sb.WriteString("/>")
	} else {
		sb.WriteByte('>')
	}
	return sb.String()
}

// quote picks the quote character the value does not contain.
func (p *printer) quote(v string) string {
	if p.opt.Escape {
		return `"` + html.EscapeString(v) + `"`
	}
	if strings.Contains(v, `"`) {
		return "'" + v + "'"
	}
	return `"` + v + `"`
}

func (p *printer) text(id ast.NodeID, n *ast.Node) string {
	if !p.opt.Escape {
		return n.Content
	}
	// тело script/style печатается как есть
	if parent := p.tree.Node(p.tree.Parent(id)); parent != nil && parent.Tag.IsRawText() {
		return n.Content
	}
	return html.EscapeString(n.Content)
}
