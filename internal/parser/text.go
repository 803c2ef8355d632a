package parser

import (
	"strings"

	"golang.org/x/net/html"

	"tagtree/internal/source"
	"tagtree/internal/token"
)

// textBuf collects the tokens of one text run. Tokens that were apart in
// the source (whitespace, newline, a comment) are joined with one space.
type textBuf struct {
	sb   strings.Builder
	span source.Span
	last token.Token
	used bool
}

func (b *textBuf) add(tok token.Token) {
	if !b.used {
		b.span = tok.Span
		b.used = true
	} else {
		if !b.last.Adjacent(tok) {
			b.sb.WriteByte(' ')
		}
		b.span = b.span.Cover(tok.Span)
	}
	b.sb.WriteString(tok.Text)
	b.last = tok
}

func (b *textBuf) reset() {
	b.sb.Reset()
	b.used = false
	b.last = token.Token{}
	b.span = source.Span{}
}

// flushText attaches the pending run as a text child of the stack top.
func (p *Parser) flushText() {
	if !p.text.used {
		return
	}
	content := p.text.sb.String()
	sp := p.text.span
	p.text.reset()
	// содержимое script/style не декодируется
	if p.opts.DecodeEntities && p.state != stateInRawText {
		content = html.UnescapeString(content)
	}
	p.alloc(p.tree.NewText(p.top(), content, sp))
}

// stepOutside handles one token between tags.
func (p *Parser) stepOutside() {
	tok := p.peek()
	switch tok.Kind {
	case token.Newline:
		p.advance()
	case token.LAngle:
		next := p.peekN(1)
		switch {
		case next.IsLiteral() && tok.Adjacent(next):
			p.flushText()
			p.openTag()
		case p.adjacentRun(token.LAngle, token.Slash, token.Literal):
			p.flushText()
			p.closeTag()
		default:
			// `a < b`: обычный текст
			p.text.add(p.advance())
		}
	default:
		p.text.add(p.advance())
	}
}

// stepRawText collects everything up to the end tag of the raw-text element
// on top of the stack. Other tags are plain text here.
func (p *Parser) stepRawText() {
	tok := p.peek()
	if tok.Kind == token.Newline {
		p.advance()
		return
	}
	if p.adjacentRun(token.LAngle, token.Slash, token.Literal) &&
		strings.EqualFold(p.peekN(2).Text, p.tree.Name(p.top())) {
		p.flushText()
		p.closeTag()
		return
	}
	p.text.add(p.advance())
}
