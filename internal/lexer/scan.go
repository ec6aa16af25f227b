package lexer

import (
	"stamp/internal/source"
	"stamp/internal/token"
)

// Scan lexes the whole file and returns all tokens including the final EOF.
func Scan(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}
