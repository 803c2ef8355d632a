package token

import (
	"tagtree/internal/source"
)

// Token is an immutable lexical unit.
// Text is the exact source slice: the run for Literal, the single byte for
// punctuation and Invalid, empty for EOF.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsLiteral reports whether the token is an alphanumeric run.
func (t Token) IsLiteral() bool { return t.Kind == Literal }

// IsEOF reports whether the token terminates the stream.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// Adjacent reports whether next starts exactly where t ends, i.e. no
// whitespace separated them in the source.
func (t Token) Adjacent(next Token) bool {
	return t.Span.File == next.Span.File && t.Span.End == next.Span.Start
}
