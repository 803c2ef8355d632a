package token

// Kind represents the category of a markup token.
type Kind uint8

const (
	// Invalid is a byte outside the supported character set.
	Invalid Kind = iota
	// EOF marks the end of input. Exactly one per stream.
	EOF
	// Newline is '\n'; it terminates line comments.
	Newline
	// Literal is a maximal run of letters and digits.
	Literal

	LAngle    // <
	RAngle    // >
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	LParen    // (
	RParen    // )
	Bang      // !
	SQuote    // '
	DQuote    // "
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Equals    // =
	Percent   // %
	Plus      // +
	Star      // *
	Minus     // -
	Slash     // /
	Hash      // #
	Dot       // .
	At        // @
	Amp       // &
	Dollar    // $

	numKinds
)

var kindNames = [numKinds]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Newline:   "Newline",
	Literal:   "Literal",
	LAngle:    "LAngle",
	RAngle:    "RAngle",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	LParen:    "LParen",
	RParen:    "RParen",
	Bang:      "Bang",
	SQuote:    "SQuote",
	DQuote:    "DQuote",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Equals:    "Equals",
	Percent:   "Percent",
	Plus:      "Plus",
	Star:      "Star",
	Minus:     "Minus",
	Slash:     "Slash",
	Hash:      "Hash",
	Dot:       "Dot",
	At:        "At",
	Amp:       "Amp",
	Dollar:    "Dollar",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Kind(?)"
}

// punct maps every single-character byte the lexer recognizes to its kind.
var punct = [256]Kind{
	'<': LAngle, '>': RAngle,
	'{': LBrace, '}': RBrace,
	'[': LBracket, ']': RBracket,
	'(': LParen, ')': RParen,
	'!': Bang, '\'': SQuote, '"': DQuote,
	':': Colon, ';': Semicolon, ',': Comma, '=': Equals,
	'%': Percent, '+': Plus, '*': Star, '-': Minus, '/': Slash,
	'#': Hash, '.': Dot, '@': At, '&': Amp, '$': Dollar,
}

// LookupPunct returns the single-character kind for b.
func LookupPunct(b byte) (Kind, bool) {
	k := punct[b]
	return k, k != Invalid
}

// IsPunct reports whether k is one of the single-character kinds.
func (k Kind) IsPunct() bool {
	return k >= LAngle && k < numKinds
}

// IsQuote reports whether k opens or closes a quoted attribute value.
func (k Kind) IsQuote() bool {
	return k == SQuote || k == DQuote
}
