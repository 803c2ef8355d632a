// Package diag defines the diagnostic model shared by the lexer, the comment
// filter and the tree builder.
//
// A Diagnostic carries a Severity, a stable numeric Code (rendered as LEX1001,
// SYN2003, IO4002, ...), a message, the primary source.Span and optional notes
// and fixes. Producers emit through a Reporter; BagReporter collects into a Bag
// that enforces a limit and offers sorting and deduplication.
//
// Some codes are fatal (see Code.Fatal): the parser stops at the first one and
// returns no tree. All other codes are recovered in place.
//
// Rendering lives in internal/diagfmt; this package does no formatting beyond
// the one-line form (FormatLines) shared by golden tests and `--diagnostics short`.
package diag
