package parser

import (
	"tagtree/internal/ast"
	"tagtree/internal/diag"
	"tagtree/internal/source"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter

	// Names interns element names; shared between files of one run. Optional.
	Names *source.Interner

	// DecodeEntities replaces character references (&amp;, &#39;) in text
	// and attribute values.
	DecodeEntities bool

	// MaxDepth bounds element nesting; 0 means unbounded.
	MaxDepth uint

	// MaxNodes bounds the arena; 0 means unbounded. Exceeding it aborts the parse.
	MaxNodes uint32
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result of building one document.
//
// Tree is nil when the parse was aborted by a fatal diagnostic
// (unterminated comment or tag, node budget) or by context cancellation.
type Result struct {
	File  source.FileID
	Tree  *ast.Tree
	Bag   *diag.Bag
	Fatal bool  // a fatal diagnostic aborted the parse
	Err   error // context error, if the parse was cancelled
}

// OK reports whether a tree was produced.
func (r Result) OK() bool { return r.Tree != nil }
