package parser_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"tagtree/internal/ast"
	"tagtree/internal/diag"
	"tagtree/internal/lexer"
	"tagtree/internal/parser"
	"tagtree/internal/source"
	"tagtree/internal/testkit"
)

// parseString прогоняет src через лексер и парсер, проверяет инварианты дерева.
func parseString(t *testing.T, src string, opts parser.Options) (parser.Result, *diag.Bag) {
	t.Helper()
	return parseStringCtx(context.Background(), t, src, opts)
}

func parseStringCtx(ctx context.Context, t *testing.T, src string, opts parser.Options) (parser.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.html", []byte(src)))

	bag := diag.NewBag(256)
	if opts.Reporter == nil {
		opts.Reporter = diag.BagReporter{Bag: bag}
	}
	toks, _ := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	res := parser.ParseFile(ctx, file, toks, opts)
	if res.Tree != nil {
		if err := testkit.CheckTreeInvariants(res.Tree, file); err != nil {
			t.Fatalf("tree invariants broken for %q: %v", src, err)
		}
	}
	return res, bag
}

// outline печатает дерево компактно: элемент(дети), текст в кавычках.
func outline(t *ast.Tree) string {
	var sb strings.Builder
	var rec func(id ast.NodeID)
	rec = func(id ast.NodeID) {
		for i, c := range t.Children(id) {
			if i > 0 {
				sb.WriteByte(' ')
			}
			n := t.Node(c)
			if n.IsText() {
				sb.WriteString(strconv.Quote(n.Content))
				continue
			}
			sb.WriteString(t.Name(c))
			if len(n.Children) > 0 {
				sb.WriteByte('(')
				rec(c)
				sb.WriteByte(')')
			}
		}
	}
	rec(t.Root())
	return sb.String()
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// findElement возвращает первый элемент с именем name в порядке документа.
func findElement(t *ast.Tree, name string) ast.NodeID {
	for _, id := range t.Elements() {
		if t.Name(id) == name {
			return id
		}
	}
	return ast.NoNodeID
}
