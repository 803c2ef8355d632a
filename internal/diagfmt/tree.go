package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/xlab/treeprint"

	"tagtree/internal/ast"
	"tagtree/internal/source"
)

// FormatTreePretty печатает дерево в виде ветвей (как утилита tree).
// Элемент: <name attr="v"> [span]; текст: "…".
func FormatTreePretty(w io.Writer, t *ast.Tree, fs *source.FileSet, opts TreeOpts) error {
	if t == nil || t.Released() {
		return fmt.Errorf("no tree to print")
	}

	header := "document"
	if fs != nil {
		if f := fs.Get(t.File); f != nil {
			header = formatPath(f, fs, opts.PathMode)
		}
	}
	if t.Doctype != "" {
		header += " <!" + t.Doctype + ">"
	}

	root := treeprint.NewWithRoot(header)
	// branches[d] — ветка для узлов глубины d+1
	branches := []treeprint.Tree{root}
	t.Walk(func(id ast.NodeID, depth int) bool {
		if depth == 0 {
			return true
		}
		branches = branches[:depth]
		parent := branches[depth-1]
		label := nodeLabel(t, id, fs, opts)
		if len(t.Children(id)) > 0 {
			branches = append(branches, parent.AddBranch(label))
		} else {
			parent.AddNode(label)
		}
		return true
	})

	_, err := io.WriteString(w, root.String())
	return err
}

func nodeLabel(t *ast.Tree, id ast.NodeID, fs *source.FileSet, opts TreeOpts) string {
	n := t.Node(id)
	var sb strings.Builder
	if n.IsText() {
		text := n.Content
		if opts.MaxText > 0 && runewidth.StringWidth(text) > opts.MaxText {
			text = runewidth.Truncate(text, opts.MaxText, "...")
		}
		sb.WriteString(strconv.Quote(text))
	} else {
		sb.WriteByte('<')
		sb.WriteString(t.Name(id))
		for _, a := range n.Attrs {
			sb.WriteByte(' ')
			sb.WriteString(a.Name)
			if a.HasValue {
				sb.WriteByte('=')
				sb.WriteString(strconv.Quote(a.Value))
			}
		}
		if n.SelfClosing {
			sb.WriteByte('/')
		}
		sb.WriteByte('>')
		if n.Tag == ast.TagUnknown {
			sb.WriteString(" (custom)")
		}
	}
	if opts.ShowSpans && fs != nil {
		start, end := fs.Resolve(n.Span)
		fmt.Fprintf(&sb, " [%d:%d-%d:%d]", start.Line, start.Col, end.Line, end.Col)
	}
	return sb.String()
}

// AttrJSON — атрибут в JSON выводе дерева.
type AttrJSON struct {
	Name   string  `json:"name"`
	Value  *string `json:"value,omitempty"` // nil для boolean-атрибута
	Custom bool    `json:"custom,omitempty"`
}

// NodeJSON — узел дерева в JSON выводе.
type NodeJSON struct {
	Kind        string      `json:"kind"`
	Tag         string      `json:"tag,omitempty"`
	Name        string      `json:"name,omitempty"`
	Attrs       []AttrJSON  `json:"attrs,omitempty"`
	Content     string      `json:"content,omitempty"`
	SelfClosing bool        `json:"self_closing,omitempty"`
	Span        source.Span `json:"span"`
	Children    []*NodeJSON `json:"children,omitempty"`
}

// TreeOutput — корень JSON вывода дерева.
type TreeOutput struct {
	File    string    `json:"file,omitempty"`
	Doctype string    `json:"doctype,omitempty"`
	Nodes   int       `json:"nodes"`
	Root    *NodeJSON `json:"root"`
}

// BuildTreeOutput собирает вложенную структуру без рекурсии по дереву.
func BuildTreeOutput(t *ast.Tree, fs *source.FileSet, mode PathMode) (*TreeOutput, error) {
	if t == nil || t.Released() {
		return nil, fmt.Errorf("no tree to print")
	}
	out := &TreeOutput{Doctype: t.Doctype, Nodes: t.Len() - 1}
	if fs != nil {
		if f := fs.Get(t.File); f != nil {
			out.File = formatPath(f, fs, mode)
		}
	}

	byID := make(map[ast.NodeID]*NodeJSON, t.Len())
	t.Walk(func(id ast.NodeID, _ int) bool {
		n := t.Node(id)
		j := &NodeJSON{
			Kind:        n.Kind.String(),
			Content:     n.Content,
			SelfClosing: n.SelfClosing,
			Span:        n.Span,
		}
		if n.IsElement() {
			j.Tag = n.Tag.String()
			j.Name = t.Name(id)
			for _, a := range n.Attrs {
				aj := AttrJSON{Name: a.Name, Custom: a.Custom}
				if a.HasValue {
					v := a.Value
					aj.Value = &v
				}
				j.Attrs = append(j.Attrs, aj)
			}
		}
		byID[id] = j
		if parent, ok := byID[n.Parent]; ok && n.Kind != ast.NodeRoot {
			parent.Children = append(parent.Children, j)
		}
		return true
	})
	out.Root = byID[t.Root()]
	return out, nil
}

// FormatTreeJSON выводит дерево в JSON формате.
func FormatTreeJSON(w io.Writer, t *ast.Tree, fs *source.FileSet, mode PathMode) error {
	out, err := BuildTreeOutput(t, fs, mode)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
