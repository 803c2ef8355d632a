package lexer

import (
	"errors"

	"tagtree/internal/diag"
	"tagtree/internal/source"
)

// DefaultMaxTokenLength caps a single literal run when Options leaves it at 0.
const DefaultMaxTokenLength = 1 << 16

var (
	// ErrInvalidByte is wrapped by Tokenize for every byte outside the
	// supported character set.
	ErrInvalidByte = errors.New("invalid byte")
	// ErrTokenTooLong is wrapped by Tokenize for literals above the limit.
	ErrTokenTooLong = errors.New("token too long")
)

type Options struct {
	Reporter       diag.Reporter // может быть nil — тогда ошибки только возвращаются из Tokenize
	MaxTokenLength uint32        // 0 → DefaultMaxTokenLength
}

func (o Options) maxTokenLength() uint32 {
	if o.MaxTokenLength == 0 {
		return DefaultMaxTokenLength
	}
	return o.MaxTokenLength
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
