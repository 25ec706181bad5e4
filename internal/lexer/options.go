package lexer

import (
	"enumclass/internal/diag"
	"enumclass/internal/source"
)

type Options struct {
	// Reporter may be nil; lexing continues past errors either way.
	Reporter diag.Reporter
	// KeepTrivia attaches leading trivia to tokens. The parser only needs
	// it for fix indentation, so it can be switched off for speed.
	KeepTrivia bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
