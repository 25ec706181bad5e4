package parser

import (
	"enumclass/internal/diag"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

// advance consumes one token and remembers its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan points at the next token, or just past the last one at EOF.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false
		}
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
	return true
}

func (p *Parser) describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return "'" + tok.Text + "'"
}

// resyncUntil skips tokens until one of stops is next at bracket depth 0.
// Stops are not consumed.
func (p *Parser) resyncUntil(stops ...token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if depth == 0 {
			for _, s := range stops {
				if k == s {
					return
				}
			}
		}
		switch k {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
	}
}

// skipBalanced consumes an opening bracket and everything up to its match.
func (p *Parser) skipBalanced() {
	open := p.advance()
	closer := closerOf(open.Kind)
	depth := 1
	for depth > 0 {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed "+open.Kind.String())
			return
		case open.Kind:
			depth++
		case closer:
			depth--
		}
		p.advance()
	}
}

func closerOf(k token.Kind) token.Kind {
	switch k {
	case token.LBrace:
		return token.RBrace
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	}
	return token.Invalid
}
