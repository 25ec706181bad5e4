package parser

import (
	"slices"

	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/lexer"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span

	// fn is the function whose body is being skimmed.
	fn ast.ItemID
}

// ParseFile parses one file into arenas. The lexer must be positioned at
// the start of the file.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	f := lx.File()
	start := source.Span{File: f.ID}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(start),
		opts:     opts,
		lastSpan: start,
	}
	p.parseItems()
	return Result{File: p.file, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		id, ok := p.parseItem(ast.NoItemID)
		if !ok {
			p.resyncTop()
			continue
		}
		p.arenas.PushItem(p.file, id)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem dispatches on the first token after any attributes.
func (p *Parser) parseItem(parent ast.ItemID) (ast.ItemID, bool) {
	attrs, attrSpan := p.parseAttrs()
	switch p.lx.Peek().Kind {
	case token.KwClass:
		return p.parseClass(parent, attrs, attrSpan)
	case token.KwInterface:
		return p.parseInterface(parent, attrs, attrSpan)
	case token.KwFn:
		return p.parseFn(parent, attrs, attrSpan)
	}
	p.err(diag.SynUnexpectedTopLevel, "expected 'class', 'interface' or 'fn', got "+p.describe(p.lx.Peek()))
	return ast.NoItemID, false
}

// resyncTop skips to the next item starter or EOF.
func (p *Parser) resyncTop() {
	p.advance()
	p.resyncUntil(token.KwClass, token.KwInterface, token.KwFn, token.At)
}

func isItemStarter(k token.Kind) bool {
	switch k {
	case token.KwClass, token.KwInterface, token.KwFn, token.At:
		return true
	}
	return false
}

// parseIdent expects an identifier.
func (p *Parser) parseIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+p.describe(p.lx.Peek()))
	return token.Token{}, false
}
