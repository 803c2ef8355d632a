package lexer

import (
	"errors"
	"fmt"

	"tagtree/internal/diag"
	"tagtree/internal/source"
	"tagtree/internal/token"
)

// Lexer turns one document into tokens. It keeps no state outside itself,
// so independent lexers can run concurrently.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	errs   []error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes the whole file. The slice always ends with exactly one EOF.
// The error joins one wrapped ErrInvalidByte / ErrTokenTooLong per occurrence;
// tokens are still complete when it is non-nil.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	// грубая оценка: один токен на ~4 байта
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, lx.Err()
}

// Err returns the lexical errors seen so far, joined.
func (lx *Lexer) Err() error {
	return errors.Join(lx.errs...)
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipSpaces()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(token.Newline, start)

	case isLiteralByte(ch):
		return lx.scanLiteral()

	case ch >= 0x80:
		if r, _ := lx.peekRune(); isLiteralRune(r) {
			return lx.scanLiteral()
		}
		return lx.scanInvalid()
	}

	if k, ok := token.LookupPunct(ch); ok {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.emit(k, start)
	}
	return lx.scanInvalid()
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// skipSpaces пропускает пробелы циклом, без рекурсии.
func (lx *Lexer) skipSpaces() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// scanLiteral съедает максимальный отрезок букв и цифр (ASCII и Unicode).
func (lx *Lexer) scanLiteral() token.Token {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if isLiteralByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b < 0x80 {
			break
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isLiteralRune(r) {
			break
		}
		lx.cursor.Advance(sz)
	}

	sp := lx.cursor.SpanFrom(start)
	if limit := lx.opts.maxTokenLength(); sp.Len() > limit {
		lx.errs = append(lx.errs, fmt.Errorf("%w: %d bytes at offset %d (limit %d)", ErrTokenTooLong, sp.Len(), sp.Start, limit))
		lx.report(diag.LexTokenTooLong, sp, fmt.Sprintf("literal of %d bytes exceeds the limit of %d", sp.Len(), limit))
		return lx.emit(token.Invalid, start)
	}
	return lx.emit(token.Literal, start)
}

// scanInvalid emits one Invalid token for an unsupported character.
// A well-formed UTF-8 sequence is consumed whole, anything else byte by byte.
func (lx *Lexer) scanInvalid() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()
	_, sz := lx.peekRune()
	lx.cursor.Advance(max(sz, 1))
	sp := lx.cursor.SpanFrom(start)

	lx.errs = append(lx.errs, fmt.Errorf("%w 0x%02x at offset %d", ErrInvalidByte, b, sp.Start))
	lx.report(diag.LexInvalidByte, sp, fmt.Sprintf("unsupported character %q", lx.file.Slice(sp)))
	return lx.emit(token.Invalid, start)
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
