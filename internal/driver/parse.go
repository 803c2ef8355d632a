package driver

import (
	"context"
	"strconv"

	"tagtree/internal/ast"
	"tagtree/internal/diag"
	"tagtree/internal/lexer"
	"tagtree/internal/observ"
	"tagtree/internal/parser"
	"tagtree/internal/source"
	"tagtree/internal/trace"
)

// ParseResult is the outcome of parsing one document.
//
// Tree is nil when a fatal diagnostic aborted the parse; Bag then holds it.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree
	Bag     *diag.Bag
	Cached  bool // Tree came from the disk cache
	Timing  observ.Report
}

// Parse loads path and builds its tree. I/O failures are returned as an
// error; everything else is reported through ParseResult.Bag.
func Parse(path string, opts Options) (*ParseResult, error) {
	return ParseContext(context.Background(), path, opts)
}

// ParseContext is Parse with cancellation and a tracer taken from ctx.
func ParseContext(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	timer := observ.NewTimer()
	endLoad := timer.Track("load")
	fileID, err := fs.Load(path)
	if err != nil {
		endLoad("failed")
		return nil, err
	}
	endLoad("")
	return parseLoaded(ctx, fs, fs.Get(fileID), source.NewInterner(), opts, timer)
}

// ParseBytes parses an in-memory document registered under name
// (stdin, editors, tests).
func ParseBytes(ctx context.Context, name string, content []byte, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseLoaded(ctx, fs, fs.Get(fileID), source.NewInterner(), opts, observ.NewTimer())
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, names *source.Interner, opts Options, timer *observ.Timer) (*ParseResult, error) {
	doc, err := parseDocument(ctx, file, names, opts, timer)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    doc.tree,
		Bag:     doc.bag,
		Cached:  doc.cached,
		Timing:  timer.Report(),
	}, nil
}

type document struct {
	tree   *ast.Tree
	bag    *diag.Bag
	cached bool
}

// parseDocument runs cache lookup, lexer and parser for one loaded file.
// The returned error is a context error or an options overflow; parse
// problems live in the bag.
func parseDocument(ctx context.Context, file *source.File, names *source.Interner, opts Options, timer *observ.Timer) (document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := trace.Start(trace.WithDocument(ctx, file.Path), trace.ScopeFile, "document")

	bag, reporter := opts.newReporter()
	popts, err := opts.parserOptions(reporter, names)
	if err != nil {
		span.End("bad options")
		return document{}, err
	}

	if opts.Cache != nil {
		endCache := timer.Track("cache")
		tree, ok, cerr := opts.Cache.load(file, names, opts)
		switch {
		case cerr != nil:
			endCache("error")
			trace.Mark(ctx, trace.ScopeFile, "cache", cerr.Error())
		case ok:
			endCache("hit")
			span.WithExtra("nodes", strconv.Itoa(tree.Len()-1)).End("cached")
			return document{tree: tree, bag: bag, cached: true}, nil
		default:
			endCache("miss")
		}
	}

	endLex := timer.Track("lex")
	_, lexSpan := trace.Start(ctx, trace.ScopePass, "lex")
	// lexical errors are already in the bag via reporter
	tokens, _ := lexer.Tokenize(file, opts.lexerOptions(reporter))
	lexSpan.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")
	endLex(strconv.Itoa(len(tokens)) + " tokens")

	endParse := timer.Track("parse")
	res := parser.ParseFile(ctx, file, tokens, popts)
	if res.Err != nil {
		endParse("cancelled")
		span.End("cancelled")
		return document{}, res.Err
	}
	if res.Tree == nil {
		endParse("aborted")
		span.End("fatal")
		return document{bag: bag}, nil
	}
	endParse(strconv.Itoa(res.Tree.Len()-1) + " nodes")

	if opts.Cache != nil && bag.Len() == 0 {
		if err := opts.Cache.store(file, res.Tree, opts); err != nil {
			trace.Mark(ctx, trace.ScopeFile, "cache", err.Error())
		}
	}
	span.WithExtra("diagnostics", strconv.Itoa(bag.Len())).End("")
	return document{tree: res.Tree, bag: bag}, nil
}
