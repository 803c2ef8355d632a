package token_test

import (
	"testing"

	"tagtree/internal/source"
	"tagtree/internal/token"
)

func TestLookupPunct(t *testing.T) {
	table := map[byte]token.Kind{
		'<': token.LAngle, '>': token.RAngle, '{': token.LBrace, '}': token.RBrace,
		'[': token.LBracket, ']': token.RBracket, '(': token.LParen, ')': token.RParen,
		'!': token.Bang, '\'': token.SQuote, '"': token.DQuote, ':': token.Colon,
		';': token.Semicolon, ',': token.Comma, '=': token.Equals, '%': token.Percent,
		'+': token.Plus, '*': token.Star, '-': token.Minus, '/': token.Slash,
		'#': token.Hash, '.': token.Dot, '@': token.At, '&': token.Amp, '$': token.Dollar,
	}
	for b := range 256 {
		got, ok := token.LookupPunct(byte(b))
		want, inTable := table[byte(b)]
		if ok != inTable || got != want {
			t.Fatalf("LookupPunct(%q) = %v, %v; want %v, %v", b, got, ok, want, inTable)
		}
		if ok && !got.IsPunct() {
			t.Fatalf("%v should be punct", got)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.Invalid:   "Invalid",
		token.EOF:       "EOF",
		token.Literal:   "Literal",
		token.LAngle:    "LAngle",
		token.Dollar:    "Dollar",
		token.Kind(200): "Kind(?)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
	if token.Literal.IsPunct() || token.Newline.IsPunct() {
		t.Error("Literal/Newline must not be punct")
	}
	if !token.SQuote.IsQuote() || token.Equals.IsQuote() {
		t.Error("IsQuote mismatch")
	}
}

func TestAdjacent(t *testing.T) {
	a := token.Token{Kind: token.Literal, Span: source.Span{Start: 0, End: 3}}
	b := token.Token{Kind: token.Minus, Span: source.Span{Start: 3, End: 4}}
	c := token.Token{Kind: token.Literal, Span: source.Span{Start: 5, End: 8}}
	if !a.Adjacent(b) {
		t.Error("a and b touch")
	}
	if b.Adjacent(c) {
		t.Error("b and c are separated by a space")
	}
	if !b.Is(token.Slash, token.Minus) || b.Is(token.Slash) {
		t.Error("Is mismatch")
	}
}
