package diag

import (
	"fmt"
	"slices"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo         Code = 1000
	LexInvalidByte  Code = 1001
	LexTokenTooLong Code = 1002

	// Структурные (комментарии, теги, вложенность)
	SynInfo                 Code = 2000
	SynUnterminatedComment  Code = 2001
	SynUnterminatedTag      Code = 2002
	SynMismatchedClosingTag Code = 2003
	SynUnexpectedToken      Code = 2004
	SynUnclosedElement      Code = 2005
	SynDuplicateAttribute   Code = 2006
	SynNestingTooDeep       Code = 2007

	// Ошибки I/O и ресурсов
	IOLoadFileError Code = 4001
	IOAllocation    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexInvalidByte:          "Invalid byte",
	LexTokenTooLong:         "Token too long",
	SynInfo:                 "Syntax information",
	SynUnterminatedComment:  "Unterminated comment",
	SynUnterminatedTag:      "Unterminated tag",
	SynMismatchedClosingTag: "Mismatched closing tag",
	SynUnexpectedToken:      "Unexpected token",
	SynUnclosedElement:      "Unclosed element",
	SynDuplicateAttribute:   "Duplicate attribute",
	SynNestingTooDeep:       "Nesting too deep",
	IOLoadFileError:         "I/O load file error",
	IOAllocation:            "Node budget exhausted",
}

// fatalCodes abort the parse: no tree is returned alongside them.
var fatalCodes = map[Code]bool{
	SynUnterminatedComment: true,
	SynUnterminatedTag:     true,
	IOAllocation:           true,
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// Fatal reports whether a diagnostic with this code ends the parse.
func (c Code) Fatal() bool {
	return fatalCodes[c]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Codes returns every known code in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
