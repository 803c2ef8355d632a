package parser

import (
	"tagtree/internal/diag"
	"tagtree/internal/source"
	"tagtree/internal/token"
	"tagtree/internal/trace"
)

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

// peekN смотрит на n токенов вперёд; за концом потока всегда EOF.
func (p *Parser) peekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// adjacentRun reports whether toks[pos..pos+n) touch each other with no
// whitespace in between and have the given kinds.
func (p *Parser) adjacentRun(kinds ...token.Kind) bool {
	for i, k := range kinds {
		tok := p.peekN(i)
		if tok.Kind != k {
			return false
		}
		if i > 0 && !p.peekN(i-1).Adjacent(tok) {
			return false
		}
	}
	return true
}

// eofSpan — пустой span в конце файла
func (p *Parser) eofSpan() source.Span {
	eof := p.toks[len(p.toks)-1]
	return source.Span{File: eof.Span.File, Start: eof.Span.End, End: eof.Span.End}
}

// репортует ошибку на текущем токене
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.peek().Span, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.emit(diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg))
}

// emit отправляет собранную диагностику с учётом MaxErrors.
// Фатальные коды проходят всегда: без них вызывающий не узнает причину.
func (p *Parser) emit(b *diag.ReportBuilder) bool {
	if p.opts.Reporter == nil {
		return false
	}
	d := b.Diagnostic()
	if d.Severity == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() && !d.Code.Fatal() && p.opts.CurrentErrors > p.opts.MaxErrors {
		return false // достигли максимального количества ошибок
	}
	b.Emit()
	return true
}

// abort reports a fatal diagnostic and stops the main loop.
func (p *Parser) abort(b *diag.ReportBuilder) {
	p.emit(b)
	p.fatal = true
	trace.Mark(p.ctx, trace.ScopeNode, "abort", b.Diagnostic().Code.ID())
}

// recovered leaves a trace point for a local repair.
func (p *Parser) recovered(what string) {
	if !p.tracer.Enabled() {
		return
	}
	trace.Mark(p.ctx, trace.ScopeNode, "recover", what+" in "+p.state.String())
}
