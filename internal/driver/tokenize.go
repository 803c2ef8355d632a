package driver

import (
	"tagtree/internal/diag"
	"tagtree/internal/lexer"
	"tagtree/internal/source"
	"tagtree/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and runs only the lexer. Comments are not filtered:
// they are a parser concern and show up here as plain punctuation.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag, reporter := opts.newReporter()
	// ошибки уже лежат в bag, возвращаемая ошибка их дублирует
	tokens, _ := lexer.Tokenize(file, opts.lexerOptions(reporter))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
