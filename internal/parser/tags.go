package parser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"tagtree/internal/ast"
	"tagtree/internal/diag"
	"tagtree/internal/source"
	"tagtree/internal/token"
)

// readName reads `lit`, `lit-lit`, `lit:lit`... with no spaces in between
// and returns it lower-cased.
func (p *Parser) readName() (string, source.Span) {
	first := p.advance()
	sp := first.Span
	var sb strings.Builder
	sb.WriteString(first.Text)
	last := first
	for {
		sep, lit := p.peek(), p.peekN(1)
		if !sep.Is(token.Minus, token.Colon) || !lit.IsLiteral() || !last.Adjacent(sep) || !sep.Adjacent(lit) {
			break
		}
		p.advance()
		last = p.advance()
		sb.WriteString(sep.Text)
		sb.WriteString(lit.Text)
		sp = sp.Cover(lit.Span)
	}
	return strings.ToLower(sb.String()), sp
}

// openTag handles `<name`: the element is attached to the stack top and
// pushed, unless MaxDepth is reached.
func (p *Parser) openTag() {
	lt := p.advance()
	name, nameSpan := p.readName()
	tag, _ := ast.LookupTag(name)
	sp := lt.Span.Cover(nameSpan)

	id, ok := p.alloc(p.tree.NewElement(p.top(), tag, name, sp))
	if !ok {
		return
	}
	p.cur, p.curStart = id, sp
	p.state = stateInOpenTag

	if p.opts.MaxDepth != 0 && uint(len(p.stack)) >= p.opts.MaxDepth {
		p.curPushed = false
		if !p.deepOnce {
			p.deepOnce = true
			parent := p.top()
			p.emit(diag.ReportError(p.opts.Reporter, diag.SynNestingTooDeep, sp,
				fmt.Sprintf("element nesting exceeds %d levels", p.opts.MaxDepth)).
				WithNote(p.tree.Node(parent).Span, "deeper elements are attached to <"+p.tree.Name(parent)+">"))
		}
		p.recovered("flatten <" + name + ">")
		return
	}
	p.curPushed = true
	p.push(id)
}

// stepOpenTag handles one token inside `<name ... >`.
func (p *Parser) stepOpenTag() {
	tok := p.peek()
	switch {
	case tok.Kind == token.Newline:
		p.advance()
	case tok.Kind == token.RAngle:
		p.advance()
		p.endOpenTag(tok.Span, false)
	case p.adjacentRun(token.Slash, token.RAngle):
		p.advance()
		end := p.advance()
		p.endOpenTag(end.Span, true)
	case tok.IsLiteral():
		p.attribute()
	default:
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("unexpected %q in tag <%s>", tok.Text, p.tree.Name(p.cur)))
		p.advance()
		p.recovered("skip token in open tag")
	}
}

// attribute reads a name and either a boolean attribute or `name=`.
func (p *Parser) attribute() {
	name, sp := p.readName()
	if p.at(token.Equals) {
		eq := p.advance()
		p.attrName, p.attrSpan = name, sp.Cover(eq.Span)
		p.state = stateInAttrValue
		return
	}
	p.addAttr(ast.NewAttr(name, "", false, sp))
}

// stepAttrValue reads the value after `name=`.
func (p *Parser) stepAttrValue() {
	tok := p.peek()
	switch {
	case tok.Kind == token.Newline:
		p.advance()
	case tok.Is(token.DQuote, token.SQuote):
		p.quotedValue()
	case tok.Kind == token.RAngle || p.adjacentRun(token.Slash, token.RAngle):
		p.err(diag.SynUnexpectedToken, fmt.Sprintf("expected a value for attribute %q", p.attrName))
		p.finishAttr("", p.attrSpan)
	default:
		p.unquotedValue()
	}
}

// quotedValue keeps the raw source between the quotes. Without a closing
// quote the tag never ends; finish reports it at EOF.
func (p *Parser) quotedValue() {
	open := p.advance()
	from := p.pos
	for !p.at(token.EOF) {
		if p.peek().Kind == open.Kind {
			to := p.pos
			closing := p.advance()
			p.finishAttr(p.raw(open.Span.End, closing.Span.Start, from, to), p.attrSpan.Cover(closing.Span))
			return
		}
		p.pos++
	}
}

// unquotedValue takes the run of touching tokens up to whitespace, `>` or `/>`.
func (p *Parser) unquotedValue() {
	from := p.pos
	first := p.advance()
	last := first
	for {
		next := p.peek()
		if !last.Adjacent(next) || next.Is(token.RAngle, token.Newline, token.EOF, token.DQuote, token.SQuote) ||
			p.adjacentRun(token.Slash, token.RAngle) {
			break
		}
		last = p.advance()
	}
	p.finishAttr(p.raw(first.Span.Start, last.Span.End, from, p.pos), p.attrSpan.Cover(last.Span))
}

func (p *Parser) finishAttr(value string, sp source.Span) {
	if p.opts.DecodeEntities {
		value = html.UnescapeString(value)
	}
	p.addAttr(ast.NewAttr(p.attrName, value, true, sp))
	p.attrName = ""
	p.state = stateInOpenTag
}

// addAttr keeps the first of duplicate attributes.
func (p *Parser) addAttr(a ast.Attr) {
	if prev, dup := p.tree.Node(p.cur).Attr(a.Name); dup {
		p.emit(diag.ReportWarning(p.opts.Reporter, diag.SynDuplicateAttribute, a.Span,
			fmt.Sprintf("duplicate attribute %q is ignored", a.Name)).
			WithNote(prev.Span, "first defined here").
			WithFix("remove duplicate", diag.Delete(a.Span)))
		return
	}
	if err := p.tree.AddAttr(p.cur, a); err != nil {
		p.recovered(err.Error())
	}
}

// endOpenTag runs at `>` or `/>`.
func (p *Parser) endOpenTag(end source.Span, selfClosing bool) {
	id := p.cur
	p.tree.Seal(id)
	p.tree.Extend(id, end)
	n := p.tree.Node(id)
	p.state = stateOutside
	p.cur = ast.NoNodeID

	switch {
	case selfClosing:
		p.tree.SetSelfClosing(id)
		if p.curPushed {
			p.pop()
		}
	case n.Tag.IsVoid():
		if p.curPushed {
			p.pop()
		}
	case !p.curPushed:
		p.overflow = append(p.overflow, p.tree.Name(id))
	case n.Tag.IsRawText():
		p.state = stateInRawText
	}
}

// closeTag handles `</name ... >`.
func (p *Parser) closeTag() {
	lt := p.advance()
	p.advance() // '/'
	name, _ := p.readName()
	for !p.at(token.RAngle) {
		if p.at(token.EOF) {
			p.abort(diag.ReportError(p.opts.Reporter, diag.SynUnterminatedTag, lt.Span.Cover(p.lastSpan),
				"end tag </"+name+"> is not closed with '>' before end of input").
				WithNote(p.eofSpan(), "input ends here"))
			return
		}
		if tok := p.peek(); tok.Kind != token.Newline {
			p.err(diag.SynUnexpectedToken, fmt.Sprintf("unexpected %q in end tag </%s>", tok.Text, name))
		}
		p.advance()
	}
	gt := p.advance()
	p.state = stateOutside
	p.closeElement(name, lt.Span.Cover(gt.Span))
}

// closeElement pops the element named by an end tag. On mismatch every
// element opened after the match is closed implicitly; an end tag with no
// open match is ignored.
func (p *Parser) closeElement(name string, sp source.Span) {
	if n := len(p.overflow); n > 0 && p.overflow[n-1] == name {
		p.overflow = p.overflow[:n-1]
		return
	}
	top := p.top()
	if len(p.stack) > 0 && p.tree.Name(top) == name {
		p.tree.Extend(top, sp)
		p.pop()
		return
	}
	if tag, ok := ast.LookupTag(name); ok && tag.IsVoid() {
		p.recovered("drop </" + name + ">")
		return
	}

	match := -1
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.tree.Name(p.stack[i]) == name {
			match = i
			break
		}
	}

	if len(p.stack) == 0 {
		p.emit(diag.ReportError(p.opts.Reporter, diag.SynMismatchedClosingTag, sp,
			"end tag </"+name+"> has no open element"))
		p.recovered("ignore </" + name + ">")
		return
	}

	topName := p.tree.Name(top)
	b := diag.ReportError(p.opts.Reporter, diag.SynMismatchedClosingTag, sp,
		"end tag </"+name+"> does not match <"+topName+">").
		WithNote(p.tree.Node(top).Span, "<"+topName+"> opened here")
	if match < 0 {
		p.emit(b)
		p.recovered("ignore </" + name + ">")
		return
	}

	var closers strings.Builder
	for i := len(p.stack) - 1; i > match; i-- {
		closers.WriteString("</" + p.tree.Name(p.stack[i]) + ">")
	}
	p.emit(b.WithFix("close open elements first", diag.Insert(sp, closers.String())))

	// every element closed here, implicitly or not, ends at this end tag
	for len(p.stack) > match {
		p.tree.Extend(p.pop(), sp)
	}
	p.recovered("implicit close up to <" + name + ">")
}

// raw returns the source between two offsets; without a file the text is
// rebuilt from toks[i:j].
func (p *Parser) raw(from, to uint32, i, j int) string {
	if p.file != nil {
		return p.file.Text(source.Span{File: p.file.ID, Start: from, End: to})
	}
	var b textBuf
	for _, tok := range p.toks[i:j] {
		if tok.Kind != token.Newline {
			b.add(tok)
		}
	}
	return b.sb.String()
}
