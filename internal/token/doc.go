// Package token defines the lexical token kinds of markup documents.
// Invariants:
//   - Token.Text is a copy of the source bytes under Token.Span.
//   - Whitespace other than '\n' never produces a token; gaps are visible only
//     through spans (see Token.Adjacent).
//   - Every stream ends with exactly one EOF token.
package token
