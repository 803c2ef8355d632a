package fuzztests

import (
	"testing"

	"tagtree/internal/diag"
	"tagtree/internal/lexer"
	"tagtree/internal/source"
	"tagtree/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.html", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}
		toks, _ := lexer.Tokenize(file, lexer.Options{Reporter: reporter, MaxTokenLength: 256})

		// ровно один EOF в конце, спаны идут по возрастанию и не выходят за файл
		var prevEnd uint32
		for i, tok := range toks {
			if tok.Kind == token.EOF && i != len(toks)-1 {
				t.Fatalf("EOF at %d of %d", i, len(toks))
			}
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start || int(tok.Span.End) > len(input) {
				t.Fatalf("token %d has bad span %v (prev end %d, len %d)", i, tok.Span, prevEnd, len(input))
			}
			prevEnd = tok.Span.End
		}
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("stream does not end with EOF")
		}
	})
}
