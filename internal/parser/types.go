package parser

import (
	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/token"
)

// parseTypeRef reads `Seg(.Seg)*` with optional `<args>` per segment and a
// trailing `?`.
func (p *Parser) parseTypeRef() (ast.TypeRef, bool) {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectType, "expected type, got "+p.describe(p.lx.Peek()))
		return ast.TypeRef{}, false
	}
	return p.parseTypeRefFrom(p.advance())
}

// parseTypeRefFrom continues a type reference whose first identifier has
// already been consumed.
func (p *Parser) parseTypeRefFrom(first token.Token) (ast.TypeRef, bool) {
	ref := ast.TypeRef{Span: first.Span}
	seg := ast.TypeSegment{Name: first.Text, Span: first.Span}
	for {
		if p.at(token.Lt) {
			args, ok := p.parseTypeArgs()
			if !ok {
				return ast.TypeRef{}, false
			}
			seg.Args = args
			seg.Span = seg.Span.Cover(p.lastSpan)
		}
		ref.Segments = append(ref.Segments, seg)
		if !p.at(token.Dot) {
			break
		}
		p.advance()
		name, ok := p.parseIdent()
		if !ok {
			return ast.TypeRef{}, false
		}
		seg = ast.TypeSegment{Name: name.Text, Span: name.Span}
	}
	if p.eat(token.Question) {
		ref.Nullable = true
	}
	ref.Span = ref.Span.Cover(p.lastSpan)
	return ref, true
}

func (p *Parser) parseTypeArgs() ([]ast.TypeRef, bool) {
	p.advance()
	var args []ast.TypeRef
	for {
		arg, ok := p.parseTypeRef()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' to close type arguments"); !ok {
		return nil, false
	}
	return args, true
}
