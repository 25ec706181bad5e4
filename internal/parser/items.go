package parser

import (
	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

// parseAttrs reads `@name` prefixes. Arguments are not supported.
func (p *Parser) parseAttrs() ([]ast.Attr, source.Span) {
	var attrs []ast.Attr
	var sp source.Span
	for p.at(token.At) {
		at := p.advance()
		name, ok := p.parseIdent()
		if !ok {
			continue
		}
		full := at.Span.Cover(name.Span)
		if len(attrs) == 0 {
			sp = full
		} else {
			sp = sp.Cover(full)
		}
		attrs = append(attrs, ast.Attr{Name: name.Text, Span: full})
		if p.at(token.LParen) {
			p.err(diag.SynUnexpectedToken, "attribute arguments are not supported")
			p.skipBalanced()
		}
	}
	return attrs, sp
}

// class Name<T> : Base<T>, Iface { members }
func (p *Parser) parseClass(parent ast.ItemID, attrs []ast.Attr, attrSpan source.Span) (ast.ItemID, bool) {
	kw := p.advance()
	start := kw.Span
	if len(attrs) > 0 {
		start = attrSpan
	}
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	id := p.arenas.NewItem(ast.ItemClass, start, name.Text)
	p.fillHeader(id, parent, attrs, name)

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open the class body"); !ok {
		return ast.NoItemID, false
	}
	for !p.atOr(token.RBrace, token.EOF) {
		if p.at(token.Ident) {
			if field, ok := p.parseBinding(); ok {
				it := p.arenas.Items.Get(id)
				it.Fields = append(it.Fields, field)
			}
			if !p.eat(token.Semicolon) && !p.atOr(token.Ident, token.RBrace, token.KwClass, token.KwInterface, token.KwFn, token.At) {
				p.err(diag.SynUnexpectedToken, "expected ';' after field")
				p.resyncUntil(token.Semicolon, token.RBrace, token.KwClass, token.KwInterface, token.KwFn, token.At)
				p.eat(token.Semicolon)
			}
			continue
		}
		member, ok := p.parseItem(id)
		if !ok {
			p.resyncUntil(token.RBrace, token.KwClass, token.KwInterface, token.KwFn, token.At)
			continue
		}
		it := p.arenas.Items.Get(id)
		it.Members = append(it.Members, member)
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close class "+name.Text)
	it := p.arenas.Items.Get(id)
	if ok {
		it.Span = it.Span.Cover(closeTok.Span)
	} else {
		it.Span = it.Span.Cover(p.lastSpan)
	}
	return id, true
}

// interface Name<T> : Base { ... } -- members are not modeled.
func (p *Parser) parseInterface(parent ast.ItemID, attrs []ast.Attr, attrSpan source.Span) (ast.ItemID, bool) {
	kw := p.advance()
	start := kw.Span
	if len(attrs) > 0 {
		start = attrSpan
	}
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	id := p.arenas.NewItem(ast.ItemInterface, start, name.Text)
	p.fillHeader(id, parent, attrs, name)
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' to open the interface body")
		return ast.NoItemID, false
	}
	p.skipBalanced()
	it := p.arenas.Items.Get(id)
	it.Span = it.Span.Cover(p.lastSpan)
	return id, true
}

// fillHeader parses the type parameters and base list shared by classes
// and interfaces.
func (p *Parser) fillHeader(id, parent ast.ItemID, attrs []ast.Attr, name token.Token) {
	it := p.arenas.Items.Get(id)
	it.Attrs = attrs
	it.NameSpan = name.Span
	it.Parent = parent
	typeParams := p.parseTypeParams()
	var bases []ast.TypeRef
	if p.eat(token.Colon) {
		for {
			ref, ok := p.parseTypeRef()
			if !ok {
				break
			}
			bases = append(bases, ref)
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	it = p.arenas.Items.Get(id)
	it.TypeParams = typeParams
	it.Bases = bases
	it.HeaderSpan = it.Span.Cover(p.lastSpan)
}

func (p *Parser) parseTypeParams() []ast.TypeParam {
	if !p.eat(token.Lt) {
		return nil
	}
	var out []ast.TypeParam
	for !p.atOr(token.Gt, token.EOF) {
		name, ok := p.parseIdent()
		if !ok {
			p.resyncUntil(token.Gt, token.LBrace)
			break
		}
		out = append(out, ast.TypeParam{Name: name.Text, Span: name.Span})
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' to close type parameters")
	return out
}

// name: Type
func (p *Parser) parseBinding() (ast.Binding, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return ast.Binding{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after "+name.Text); !ok {
		return ast.Binding{}, false
	}
	ty, ok := p.parseTypeRef()
	if !ok {
		return ast.Binding{}, false
	}
	return ast.Binding{Name: name.Text, Span: name.Span, Type: ty}, true
}

// fn name<T>(a: A, b: B?) -> R { body }
func (p *Parser) parseFn(parent ast.ItemID, attrs []ast.Attr, attrSpan source.Span) (ast.ItemID, bool) {
	kw := p.advance()
	start := kw.Span
	if len(attrs) > 0 {
		start = attrSpan
	}
	name, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	id := p.arenas.NewItem(ast.ItemFn, start, name.Text)
	it := p.arenas.Items.Get(id)
	it.Attrs = attrs
	it.NameSpan = name.Span
	it.Parent = parent
	typeParams := p.parseTypeParams()

	var params []ast.Binding
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoItemID, false
	}
	for !p.atOr(token.RParen, token.EOF) {
		b, ok := p.parseBinding()
		if !ok {
			p.resyncUntil(token.Comma, token.RParen, token.LBrace)
		} else {
			params = append(params, b)
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameters")

	var result ast.TypeRef
	if p.eat(token.Arrow) {
		result, _ = p.parseTypeRef()
	}
	it = p.arenas.Items.Get(id)
	it.TypeParams = typeParams
	it.Params = params
	it.Result = result
	it.HeaderSpan = it.Span.Cover(p.lastSpan)

	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open the function body")
	if !ok {
		return ast.NoItemID, false
	}
	prev := p.fn
	p.fn = id
	p.scanUntil(token.RBrace)
	p.fn = prev
	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "unclosed function body"); !ok {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "body of "+name.Text+" opened here is never closed")
	}
	it = p.arenas.Items.Get(id)
	it.Span = it.Span.Cover(p.lastSpan)
	return id, true
}
