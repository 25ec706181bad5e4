package parser

import (
	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

// scanUntil skims statements and expressions until one of stops is next at
// bracket depth 0. It records `let` bindings and every match construct it
// passes. Stops are not consumed.
func (p *Parser) scanUntil(stops ...token.Kind) {
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			return
		}
		for _, s := range stops {
			if tok.Kind == s {
				return
			}
		}
		switch tok.Kind {
		case token.LBrace, token.LParen, token.LBracket:
			open := p.advance()
			closer := closerOf(open.Kind)
			p.scanUntil(closer)
			if !p.eat(closer) {
				p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed "+open.Kind.String())
				return
			}
		case token.RBrace, token.RParen, token.RBracket:
			p.err(diag.SynUnexpectedToken, "unexpected "+p.describe(tok))
			p.advance()
		case token.KwLet:
			p.scanLet()
		case token.KwSwitch:
			p.parseSwitchKeyword()
		case token.KwIs:
			p.parseIs(ast.Path{}, p.advance())
		case token.Ident:
			path := p.parsePath()
			switch {
			case p.at(token.KwSwitch):
				p.parseSwitchExpr(path, p.advance())
			case p.at(token.KwIs):
				p.parseIs(path, p.advance())
			}
		default:
			p.advance()
		}
	}
}

// parsePath reads `name(.field)*`. A dot followed by something else ends
// the path and yields the zero Path.
func (p *Parser) parsePath() ast.Path {
	first := p.advance()
	path := ast.Path{Segments: []string{first.Text}, Span: first.Span}
	for p.at(token.Dot) {
		p.advance()
		if !p.at(token.Ident) {
			return ast.Path{}
		}
		seg := p.advance()
		path.Segments = append(path.Segments, seg.Text)
		path.Span = path.Span.Cover(seg.Span)
	}
	return path
}

// let name: Type = ...
func (p *Parser) scanLet() {
	p.advance()
	if !p.at(token.Ident) {
		return
	}
	name := p.advance()
	local := ast.Binding{Name: name.Text, Span: name.Span}
	if p.eat(token.Colon) {
		ty, ok := p.parseTypeRef()
		if ok {
			local.Type = ty
		}
	}
	fn := p.arenas.Items.Get(p.fn)
	fn.Locals = append(fn.Locals, local)
}

// parseSwitchKeyword handles a `switch` that is not preceded by a plain
// path: either a statement `switch x { ... }` or an expression whose
// scrutinee is not a path, as in `f() switch { ... }`.
func (p *Parser) parseSwitchKeyword() {
	kw := p.advance()
	if p.at(token.LBrace) {
		p.parseSwitchExpr(ast.Path{}, kw)
		return
	}
	var path ast.Path
	switch {
	case p.at(token.LParen):
		p.advance()
		if p.at(token.Ident) {
			path = p.parsePath()
		}
		if !p.at(token.RParen) {
			path = ast.Path{}
			p.scanUntil(token.RParen)
		}
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after switch subject")
	case p.at(token.Ident):
		path = p.parsePath()
	}
	if !p.at(token.LBrace) {
		path = ast.Path{}
		p.scanUntil(token.LBrace, token.RBrace)
	}
	p.parseSwitchStmt(path, kw)
}

func (p *Parser) newConstruct(kind ast.ConstructKind, path ast.Path, kw source.Span) ast.Construct {
	start := kw
	if !path.IsZero() && kind != ast.SwitchStmt {
		start = path.Span
	}
	return ast.Construct{
		Kind:      kind,
		Fn:        p.fn,
		Keyword:   kw,
		Span:      start,
		Scrutinee: path,
		Locals:    len(p.arenas.Items.Get(p.fn).Locals),
	}
}

func (p *Parser) pushConstruct(con ast.Construct) {
	con.Span = con.Span.Cover(p.lastSpan)
	id := p.arenas.Constructs.New(con)
	fn := p.arenas.Items.Get(p.fn)
	fn.Constructs = append(fn.Constructs, id)
}

// switch x { case P when g: ... default: ... }
func (p *Parser) parseSwitchStmt(path ast.Path, kw token.Token) {
	con := p.newConstruct(ast.SwitchStmt, path, kw.Span)
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after switch subject")
	if !ok {
		return
	}
	for !p.atOr(token.RBrace, token.EOF) {
		var arm ast.Arm
		switch {
		case p.at(token.KwCase):
			caseTok := p.advance()
			arm.Span = caseTok.Span
			arm.Pattern = p.parsePatternOrRecover(token.Colon, token.KwCase, token.KwDefault, token.RBrace)
			if p.eat(token.KwWhen) {
				arm.Guarded = true
				p.scanUntil(token.Colon, token.KwCase, token.KwDefault, token.RBrace)
			}
		case p.at(token.KwDefault):
			arm.Span = p.advance().Span
			arm.Default = true
		default:
			p.err(diag.SynUnexpectedToken, "expected 'case' or 'default', got "+p.describe(p.lx.Peek()))
			p.scanUntil(token.KwCase, token.KwDefault, token.RBrace)
			continue
		}
		arm.Span = arm.Span.Cover(p.lastSpan)
		p.expect(token.Colon, diag.SynExpectColon, "expected ':' after case label")
		p.scanUntil(token.KwCase, token.KwDefault, token.RBrace)
		arm.End = p.lastSpan.End
		con.Arms = append(con.Arms, arm)
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "unclosed switch body")
	if !ok {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "switch body opened here is never closed")
		return
	}
	con.Close = closeTok.Span
	p.pushConstruct(con)
}

// x switch { P when g => e, _ => e }
func (p *Parser) parseSwitchExpr(path ast.Path, kw token.Token) {
	con := p.newConstruct(ast.SwitchExpr, path, kw.Span)
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'switch'")
	if !ok {
		return
	}
	for !p.atOr(token.RBrace, token.EOF) {
		var arm ast.Arm
		arm.Span = p.lx.Peek().Span
		arm.Pattern = p.parsePatternOrRecover(token.FatArrow, token.Comma, token.RBrace)
		if p.eat(token.KwWhen) {
			arm.Guarded = true
			p.scanUntil(token.FatArrow, token.Comma, token.RBrace)
		}
		arm.Span = arm.Span.Cover(p.lastSpan)
		p.expect(token.FatArrow, diag.SynExpectArrow, "expected '=>' after switch arm pattern")
		p.scanUntil(token.Comma, token.RBrace)
		arm.End = p.lastSpan.End
		con.Arms = append(con.Arms, arm)
		con.TrailingComma = p.eat(token.Comma)
		if !con.TrailingComma {
			break
		}
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "unclosed switch expression")
	if !ok {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "switch expression opened here is never closed")
		p.scanUntil(token.RBrace)
		p.eat(token.RBrace)
		return
	}
	con.Close = closeTok.Span
	p.pushConstruct(con)
}

// x is P
func (p *Parser) parseIs(path ast.Path, kw token.Token) {
	con := p.newConstruct(ast.IsExpr, path, kw.Span)
	start := p.lx.Peek().Span
	id, ok := p.parsePattern()
	if !ok {
		return
	}
	con.Arms = []ast.Arm{{Pattern: id, Span: start.Cover(p.lastSpan), End: p.lastSpan.End}}
	p.pushConstruct(con)
}
