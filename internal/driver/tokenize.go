package driver

import (
	"stamp/internal/diag"
	"stamp/internal/lexer"
	"stamp/internal/source"
	"stamp/internal/token"
)

// TokenizeResult is the outcome of lexing one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a single file into its flat token stream, EOF included.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Scan(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &TokenizeResult{FileSet: fs, FileID: id, Tokens: toks, Bag: bag}, nil
}
