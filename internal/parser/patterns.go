package parser

import (
	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

// Pattern grammar, loosest first:
//
//	pattern   = and { "or" and }
//	and       = not { "and" not }
//	not       = "not" not | primary
//	primary   = "_" | "var" name | "null" | literal | relop literal
//	          | "[" patterns "]" | "(" patterns ")" | props
//	          | TypeRef [ "(" patterns ")" ] [ props ] [ name ]
//	props     = "{" [ path ":" pattern { "," path ":" pattern } ] "}"

// parsePattern returns an ID even on failure so that arms stay aligned;
// ok is false when the pattern could not be read.
func (p *Parser) parsePattern() (ast.PatternID, bool) {
	return p.parseOrPattern()
}

// parsePatternOrRecover parses a pattern and, on failure, skips to one of stops.
func (p *Parser) parsePatternOrRecover(stops ...token.Kind) ast.PatternID {
	id, ok := p.parsePattern()
	if !ok {
		p.resyncUntil(append(stops, token.KwWhen)...)
	}
	return id
}

func (p *Parser) newPattern(pat ast.Pattern) ast.PatternID {
	return p.arenas.Patterns.New(pat)
}

func (p *Parser) spanOf(id ast.PatternID) source.Span {
	if pat := p.arenas.Patterns.Get(id); pat != nil {
		return pat.Span
	}
	return p.lastSpan
}

func (p *Parser) parseOrPattern() (ast.PatternID, bool) {
	left, ok := p.parseAndPattern()
	for ok && p.at(token.KwOr) {
		p.advance()
		var right ast.PatternID
		right, ok = p.parseAndPattern()
		left = p.newPattern(ast.Pattern{
			Kind: ast.PatOr,
			Span: p.spanOf(left).Cover(p.spanOf(right)),
			Subs: []ast.PatternID{left, right},
		})
	}
	return left, ok
}

func (p *Parser) parseAndPattern() (ast.PatternID, bool) {
	left, ok := p.parseNotPattern()
	for ok && p.at(token.KwAnd) {
		p.advance()
		var right ast.PatternID
		right, ok = p.parseNotPattern()
		left = p.newPattern(ast.Pattern{
			Kind: ast.PatAnd,
			Span: p.spanOf(left).Cover(p.spanOf(right)),
			Subs: []ast.PatternID{left, right},
		})
	}
	return left, ok
}

func (p *Parser) parseNotPattern() (ast.PatternID, bool) {
	if !p.at(token.KwNot) {
		return p.parsePrimaryPattern()
	}
	kw := p.advance()
	sub, ok := p.parseNotPattern()
	return p.newPattern(ast.Pattern{
		Kind: ast.PatNot,
		Span: kw.Span.Cover(p.spanOf(sub)),
		Subs: []ast.PatternID{sub},
	}), ok
}

func (p *Parser) parsePrimaryPattern() (ast.PatternID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Underscore:
		p.advance()
		return p.newPattern(ast.Pattern{Kind: ast.PatDiscard, Span: tok.Span}), true

	case token.KwVar:
		p.advance()
		pat := ast.Pattern{Kind: ast.PatVar, Span: tok.Span}
		switch {
		case p.at(token.Ident), p.at(token.Underscore):
			name := p.advance()
			pat.Designation = name.Text
		case p.at(token.LParen):
			p.skipBalanced()
		default:
			p.err(diag.SynExpectIdentifier, "expected a name after 'var'")
			return p.newPattern(ast.Pattern{Kind: ast.PatInvalid, Span: tok.Span}), false
		}
		pat.Span = pat.Span.Cover(p.lastSpan)
		return p.newPattern(pat), true

	case token.KwNull:
		p.advance()
		return p.newPattern(ast.Pattern{Kind: ast.PatNull, Span: tok.Span}), true

	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse:
		p.advance()
		return p.newPattern(ast.Pattern{Kind: ast.PatConstant, Span: tok.Span, Text: tok.Text}), true

	case token.Minus:
		p.advance()
		if !p.atOr(token.IntLit, token.FloatLit) {
			p.err(diag.SynExpectPattern, "expected a number after '-'")
			return p.newPattern(ast.Pattern{Kind: ast.PatInvalid, Span: tok.Span}), false
		}
		lit := p.advance()
		return p.newPattern(ast.Pattern{Kind: ast.PatConstant, Span: tok.Span.Cover(lit.Span), Text: "-" + lit.Text}), true

	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		p.advance()
		operand, ok := p.parsePrimaryPattern()
		return p.newPattern(ast.Pattern{
			Kind: ast.PatRelational,
			Span: tok.Span.Cover(p.spanOf(operand)),
			Text: tok.Text,
			Subs: []ast.PatternID{operand},
		}), ok

	case token.LBracket:
		return p.parseListPattern()

	case token.LParen:
		return p.parseRecursivePattern(ast.TypeRef{}, tok.Span)

	case token.LBrace:
		return p.parseRecursivePattern(ast.TypeRef{}, tok.Span)

	case token.Ident:
		ref, ok := p.parseTypeRefFrom(p.advance())
		if !ok {
			return p.newPattern(ast.Pattern{Kind: ast.PatInvalid, Span: tok.Span.Cover(p.lastSpan)}), false
		}
		return p.parseRecursivePattern(ref, ref.Span)
	}

	p.err(diag.SynExpectPattern, "expected pattern, got "+p.describe(tok))
	return p.newPattern(ast.Pattern{Kind: ast.PatInvalid, Span: p.getDiagnosticSpan()}), false
}

// parseRecursivePattern reads the optional positional part, property part
// and designation that may follow ty. A lone parenthesized pattern without
// a type or comma is a PatParen.
func (p *Parser) parseRecursivePattern(ty ast.TypeRef, start source.Span) (ast.PatternID, bool) {
	pat := ast.Pattern{Kind: ast.PatType, Type: ty, Span: start}
	ok := true

	if p.at(token.LParen) {
		subs, commas, good := p.parsePatternList(token.LParen, token.RParen)
		ok = ok && good
		if ty.IsZero() && len(subs) == 1 && commas == 0 && !p.at(token.LBrace) && !p.at(token.Ident) {
			return p.newPattern(ast.Pattern{Kind: ast.PatParen, Span: start.Cover(p.lastSpan), Subs: subs}), ok
		}
		pat.Subs = subs
		pat.HasPosition = true
	}
	if p.at(token.LBrace) {
		props, good := p.parsePropertyList()
		ok = ok && good
		pat.Props = props
		pat.HasProps = true
	}
	if pat.HasPosition || pat.HasProps || ty.IsZero() {
		pat.Kind = ast.PatRecursive
	}
	if p.at(token.Ident) || p.at(token.Underscore) {
		pat.Designation = p.advance().Text
	}
	pat.Span = pat.Span.Cover(p.lastSpan)
	return p.newPattern(pat), ok
}

// parsePatternList reads `open pattern, ... close` and counts the commas.
func (p *Parser) parsePatternList(open, close token.Kind) ([]ast.PatternID, int, bool) {
	openTok := p.advance()
	var subs []ast.PatternID
	commas := 0
	ok := true
	for !p.atOr(close, token.EOF) {
		if p.at(token.DotDot) {
			dd := p.advance()
			subs = append(subs, p.newPattern(ast.Pattern{Kind: ast.PatConstant, Span: dd.Span, Text: ".."}))
		} else {
			sub, good := p.parsePattern()
			subs = append(subs, sub)
			if !good {
				ok = false
				p.resyncUntil(token.Comma, close)
			}
		}
		if !p.eat(token.Comma) {
			break
		}
		commas++
	}
	if !p.eat(close) {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, openTok.Span, "unclosed "+openTok.Kind.String()+" in pattern")
		return subs, commas, false
	}
	return subs, commas, ok
}

func (p *Parser) parseListPattern() (ast.PatternID, bool) {
	start := p.lx.Peek().Span
	subs, _, ok := p.parsePatternList(token.LBracket, token.RBracket)
	pat := ast.Pattern{Kind: ast.PatList, Span: start.Cover(p.lastSpan), Subs: subs}
	if p.at(token.Ident) {
		pat.Designation = p.advance().Text
		pat.Span = pat.Span.Cover(p.lastSpan)
	}
	return p.newPattern(pat), ok
}

// { a: P, b.c: Q }
func (p *Parser) parsePropertyList() ([]ast.Property, bool) {
	openTok := p.advance()
	var props []ast.Property
	ok := true
	for !p.atOr(token.RBrace, token.EOF) {
		name, good := p.parseIdent()
		if !good {
			ok = false
			p.resyncUntil(token.Comma, token.RBrace)
			if !p.eat(token.Comma) {
				break
			}
			continue
		}
		prop := ast.Property{Path: []string{name.Text}, Span: name.Span}
		for p.eat(token.Dot) {
			seg, good := p.parseIdent()
			if !good {
				ok = false
				break
			}
			prop.Path = append(prop.Path, seg.Text)
		}
		if _, good := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property name"); !good {
			ok = false
			p.resyncUntil(token.Comma, token.RBrace)
		} else {
			sub, good := p.parsePattern()
			if !good {
				ok = false
				p.resyncUntil(token.Comma, token.RBrace)
			}
			prop.Pattern = sub
			prop.Span = prop.Span.Cover(p.lastSpan)
			props = append(props, prop)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.eat(token.RBrace) {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, openTok.Span, "unclosed '{' in property pattern")
		return props, false
	}
	return props, ok
}
