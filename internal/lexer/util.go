package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune читает текущую позицию как руну; size 0 на EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.Rest())
}

// ===== Классификаторы =====

// isSpace: пробелы, которые пропускаются молча. '\n' сюда не входит.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f'
}

func isLiteralByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isLiteralRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isLiteralByte(byte(r))
	}
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
