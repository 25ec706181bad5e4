package driver

import (
	"enumclass/internal/diag"
	"enumclass/internal/lexer"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file with trivia kept, for debugging the lexer.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.All(file, lexer.Options{
		Reporter:   diag.BagReporter{Bag: bag},
		KeepTrivia: true,
	})
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}, nil
}
