package lexer

import (
	"stamp/internal/diag"
	"stamp/internal/source"
)

// Options configures a Lexer. A nil Reporter drops diagnostics but scanning
// still continues.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
