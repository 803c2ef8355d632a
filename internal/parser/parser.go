package parser

import (
	"context"
	"strconv"

	"tagtree/internal/ast"
	"tagtree/internal/diag"
	"tagtree/internal/source"
	"tagtree/internal/token"
	"tagtree/internal/trace"
)

// state of the tree builder between tokens.
type state uint8

const (
	stateOutside     state = iota // between tags, collecting text
	stateInOpenTag                // after `<name`, reading attributes
	stateInAttrValue              // after `name=`
	stateInRawText                // inside <script>/<style>
)

func (s state) String() string {
	switch s {
	case stateOutside:
		return "outside"
	case stateInOpenTag:
		return "open-tag"
	case stateInAttrValue:
		return "attr-value"
	case stateInRawText:
		return "raw-text"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// cancelCheckEvery — как часто (в шагах) смотреть на ctx.Err().
const cancelCheckEvery = 256

// Parser — состояние построителя дерева на один файл
type Parser struct {
	ctx  context.Context
	file *source.File
	toks []token.Token
	pos  int

	tree  *ast.Tree
	stack []ast.NodeID // открытые элементы, вершина — последний
	state state

	cur       ast.NodeID // элемент, чей открывающий тег сейчас читается
	curStart  source.Span
	curPushed bool
	attrName  string // имя атрибута в stateInAttrValue
	attrSpan  source.Span

	text     textBuf
	overflow []string // элементы глубже MaxDepth, не попавшие в stack
	deepOnce bool

	opts     Options
	lastSpan source.Span
	fatal    bool
	cancel   error

	tracer trace.Tracer
	span   *trace.Span
}

// ParseFile builds the syntax tree of file from its token stream.
// tokens must come from lexing file; a missing trailing EOF is tolerated.
func ParseFile(ctx context.Context, file *source.File, tokens []token.Token, opts Options) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	var fileID source.FileID
	if file != nil {
		fileID = file.ID
	}
	if len(tokens) == 0 || !tokens[len(tokens)-1].IsEOF() {
		eof := token.Token{Kind: token.EOF, Span: source.Span{File: fileID}}
		if len(tokens) > 0 {
			end := tokens[len(tokens)-1].Span.End
			eof.Span.Start, eof.Span.End = end, end
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}

	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
	p := &Parser{
		ctx:    ctx,
		file:   file,
		toks:   tokens,
		tree:   ast.NewTree(fileID, opts.Names, ast.Hints{Nodes: uint(len(tokens)/2 + 1), MaxNodes: opts.MaxNodes}),
		stack:  make([]ast.NodeID, 0, 16),
		opts:   opts,
		tracer: trace.FromContext(ctx),
		span:   span,
	}

	p.run()

	res := Result{
		File: fileID,
		Bag:  diag.BagOf(opts.Reporter),
	}
	switch {
	case p.cancel != nil:
		res.Err = p.cancel
		p.tree.Release()
		p.span.End("cancelled")
	case p.fatal:
		res.Fatal = true
		p.tree.Release()
		p.span.End("aborted")
	default:
		res.Tree = p.tree
		p.span.
			WithExtra("nodes", strconv.Itoa(p.tree.Len()-1)).
			WithExtra("tokens", strconv.Itoa(len(tokens))).
			End("")
	}
	return res
}

// Build is ParseFile without a context.
func Build(file *source.File, tokens []token.Token, opts Options) Result {
	return ParseFile(context.Background(), file, tokens, opts)
}

// run — основной цикл: фильтр комментариев, затем шаг автомата.
func (p *Parser) run() {
	for step := 0; !p.fatal; step++ {
		if step%cancelCheckEvery == 0 {
			if err := p.ctx.Err(); err != nil {
				p.cancel = err
				return
			}
		}
		// внутри значения атрибута комментариев не бывает
		if p.state != stateInAttrValue && p.skipComment() {
			continue
		}
		if p.fatal {
			return
		}
		if p.at(token.EOF) {
			p.finish()
			return
		}
		switch p.state {
		case stateOutside:
			p.stepOutside()
		case stateInOpenTag:
			p.stepOpenTag()
		case stateInAttrValue:
			p.stepAttrValue()
		case stateInRawText:
			p.stepRawText()
		}
	}
}

// top returns the innermost open element or the root.
func (p *Parser) top() ast.NodeID {
	if len(p.stack) == 0 {
		return p.tree.Root()
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(id ast.NodeID) {
	p.stack = append(p.stack, id)
}

func (p *Parser) pop() ast.NodeID {
	if len(p.stack) == 0 {
		return ast.NoNodeID
	}
	id := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return id
}

// finish handles end of input: flushes text, reports whatever is still open.
func (p *Parser) finish() {
	switch p.state {
	case stateInOpenTag, stateInAttrValue:
		p.abort(diag.ReportError(p.opts.Reporter, diag.SynUnterminatedTag, p.curStart,
			"tag <"+p.tree.Name(p.cur)+"> is not closed with '>' before end of input").
			WithNote(p.eofSpan(), "input ends here"))
		return
	}

	p.flushText()

	eof := p.eofSpan()
	for i := len(p.stack) - 1; i >= 0; i-- {
		id := p.stack[i]
		name := p.tree.Name(id)
		n := p.tree.Node(id)
		p.emit(diag.ReportError(p.opts.Reporter, diag.SynUnclosedElement, n.Span, "element <"+name+"> is never closed").
			WithFix("insert </"+name+">", diag.FixEdit{Span: eof, NewText: "</" + name + ">"}))
		p.tree.Extend(id, eof)
	}
	p.stack = p.stack[:0]
}

// alloc handles an arena error: the node budget is the only way a builder
// call fails on a live tree.
func (p *Parser) alloc(id ast.NodeID, err error) (ast.NodeID, bool) {
	if err != nil {
		p.abort(diag.ReportError(p.opts.Reporter, diag.IOAllocation, p.peek().Span, err.Error()))
		return ast.NoNodeID, false
	}
	return id, true
}
