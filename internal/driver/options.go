package driver

import (
	"fmt"

	"fortio.org/safecast"

	"tagtree/internal/diag"
	"tagtree/internal/lexer"
	"tagtree/internal/parser"
	"tagtree/internal/source"
)

// DefaultMaxDiagnostics is the bag capacity when Options leaves it at 0.
const DefaultMaxDiagnostics = 100

// Options configures one run over a document or a directory.
type Options struct {
	// MaxDiagnostics caps the bag of every document; 0 → DefaultMaxDiagnostics.
	MaxDiagnostics int
	// MaxErrors stops reporting recoverable errors; 0 → MaxDiagnostics.
	MaxErrors uint

	DecodeEntities bool
	MaxDepth       uint
	MaxNodes       uint32
	MaxTokenLength uint32

	// Cache stores trees of clean documents between runs. Optional.
	Cache *DiskCache
}

func (o Options) bagLimit() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) maxErrors() (uint, error) {
	if o.MaxErrors != 0 {
		return o.MaxErrors, nil
	}
	n, err := safecast.Conv[uint](o.bagLimit())
	if err != nil {
		return 0, fmt.Errorf("max diagnostics overflow: %w", err)
	}
	return n, nil
}

func (o Options) lexerOptions(r diag.Reporter) lexer.Options {
	return lexer.Options{Reporter: r, MaxTokenLength: o.MaxTokenLength}
}

func (o Options) parserOptions(r diag.Reporter, names *source.Interner) (parser.Options, error) {
	maxErrors, err := o.maxErrors()
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{
		MaxErrors:      maxErrors,
		Reporter:       r,
		Names:          names,
		DecodeEntities: o.DecodeEntities,
		MaxDepth:       o.MaxDepth,
		MaxNodes:       o.MaxNodes,
	}, nil
}

// newReporter returns a bag and the deduplicating reporter writing into it.
func (o Options) newReporter() (*diag.Bag, diag.Reporter) {
	bag := diag.NewBag(o.bagLimit())
	return bag, diag.NewDedupReporter(diag.BagReporter{Bag: bag})
}
