package parser

import (
	"strings"

	"tagtree/internal/diag"
	"tagtree/internal/source"
	"tagtree/internal/token"
)

// skipComment checks, in order, for a markup comment `<!-- -->`, a line
// comment `// ...` and a block comment `/* */` at the current position and
// moves past it. A `<!` that does not open a comment is a declaration
// (`<!DOCTYPE html>`) and is skipped the same way.
//
// The search never leaves the token slice: a missing close is fatal.
func (p *Parser) skipComment() bool {
	switch {
	case p.adjacentRun(token.LAngle, token.Bang, token.Minus, token.Minus):
		p.skipMarkupComment()
	case p.adjacentRun(token.LAngle, token.Bang):
		p.skipDeclaration()
	case p.adjacentRun(token.Slash, token.Slash):
		p.skipLineComment()
	case p.adjacentRun(token.Slash, token.Star):
		p.skipBlockComment()
	default:
		return false
	}
	return true
}

// The dashes of the opener count towards the close, so `<!-->` is a
// complete comment.
func (p *Parser) skipMarkupComment() {
	start := p.peek().Span
	p.pos += 2
	for ; p.pos < len(p.toks); p.pos++ {
		if p.adjacentRun(token.Minus, token.Minus, token.RAngle) {
			p.pos += 3
			p.lastSpan = p.toks[p.pos-1].Span
			return
		}
		if p.at(token.EOF) {
			break
		}
	}
	p.unterminatedComment(start, "-->")
}

// skipLineComment stops before the newline: text on both sides stays apart.
func (p *Parser) skipLineComment() {
	p.pos += 2
	for !p.at(token.EOF) && !p.at(token.Newline) {
		p.pos++
	}
}

func (p *Parser) skipBlockComment() {
	start := p.peek().Span
	p.pos += 2
	for ; p.pos < len(p.toks); p.pos++ {
		if p.adjacentRun(token.Star, token.Slash) {
			p.pos += 2
			p.lastSpan = p.toks[p.pos-1].Span
			return
		}
		if p.at(token.EOF) {
			break
		}
	}
	p.unterminatedComment(start, "*/")
}

func (p *Parser) unterminatedComment(start source.Span, closer string) {
	p.abort(diag.ReportError(p.opts.Reporter, diag.SynUnterminatedComment, start,
		"comment is not closed before end of input").
		WithNote(p.eofSpan(), "expected '"+closer+"' before here"))
}

// skipDeclaration consumes `<! ... >` and keeps the first one as the
// tree's doctype.
func (p *Parser) skipDeclaration() {
	start := p.peek().Span
	p.pos += 2
	from, bodyStart := p.pos, p.peek().Span.Start
	for !p.at(token.EOF) {
		if p.at(token.RAngle) {
			to := p.pos
			end := p.advance()
			if p.tree.Doctype == "" {
				body := p.raw(bodyStart, end.Span.Start, from, to)
				p.tree.Doctype = strings.Join(strings.Fields(body), " ")
			}
			return
		}
		p.pos++
	}
	p.abort(diag.ReportError(p.opts.Reporter, diag.SynUnterminatedTag, start,
		"declaration is not closed with '>' before end of input").
		WithNote(p.eofSpan(), "input ends here"))
}
