package sema

import (
	"enumclass/internal/ast"
	"enumclass/internal/pattern"
	"enumclass/internal/source"
	"enumclass/internal/types"
)

// pos registers sp and returns its handle for the core.
func (c *checker) pos(sp source.Span) pattern.Pos {
	c.spans = append(c.spans, sp)
	return pattern.Pos(len(c.spans))
}

func (c *checker) locate(p pattern.Pos) source.Span {
	if p == pattern.NoPos || int(p) > len(c.spans) {
		return source.Span{}
	}
	return c.spans[p-1]
}

// lowerPattern binds the types of an AST pattern. Unresolvable typed
// patterns become opaque so they neither match nor cover anything.
func (c *checker) lowerPattern(id ast.PatternID, sc scope) *pattern.Syntax[types.TypeID] {
	p := c.b.Patterns.Get(id)
	if p == nil {
		return nil
	}
	pos := c.pos(p.Span)
	out := &pattern.Syntax[types.TypeID]{Pos: pos}
	switch p.Kind {
	case ast.PatDiscard:
		out.Kind = pattern.SynDiscard
	case ast.PatVar:
		out.Kind = pattern.SynVar
	case ast.PatNull:
		out.Kind = pattern.SynNull
	case ast.PatConstant:
		out.Kind = pattern.SynConstant
	case ast.PatRelational:
		out.Kind = pattern.SynRelational
	case ast.PatList:
		out.Kind = pattern.SynList
	case ast.PatType:
		out.Kind = pattern.SynType
		out.Type, out.HasType = c.resolveType(p.Type, sc)
	case ast.PatRecursive:
		out.Kind = pattern.SynRecursive
		if !p.Type.IsZero() {
			t, ok := c.resolveType(p.Type, sc)
			if !ok {
				out.Kind = pattern.SynUnknown
				return out
			}
			out.Type, out.HasType = t, true
		}
		for _, sub := range p.Children() {
			out.Sub = append(out.Sub, c.lowerPattern(sub, sc))
		}
	case ast.PatParen, ast.PatNot:
		out.Kind = pattern.SynParen
		if p.Kind == ast.PatNot {
			out.Kind = pattern.SynNot
		}
		out.Sub = []*pattern.Syntax[types.TypeID]{c.lowerPattern(p.Subs[0], sc)}
	case ast.PatOr, ast.PatAnd:
		out.Kind = pattern.SynOr
		if p.Kind == ast.PatAnd {
			out.Kind = pattern.SynAnd
		}
		out.Sub = []*pattern.Syntax[types.TypeID]{c.lowerPattern(p.Subs[0], sc), c.lowerPattern(p.Subs[1], sc)}
	default:
		out.Kind = pattern.SynUnknown
	}
	return out
}

func lowerConstructKind(k ast.ConstructKind) pattern.ConstructKind {
	switch k {
	case ast.SwitchExpr:
		return pattern.SwitchExpression
	case ast.IsExpr:
		return pattern.IsPattern
	}
	return pattern.SwitchStatement
}

func (c *checker) lowerConstruct(con *ast.Construct, sc scope) *pattern.Construct[types.TypeID] {
	out := &pattern.Construct[types.TypeID]{Kind: lowerConstructKind(con.Kind), Pos: c.pos(con.Span)}
	for _, arm := range con.Arms {
		la := pattern.Arm[types.TypeID]{Default: arm.Default, Guarded: arm.Guarded, Pos: c.pos(arm.Span)}
		if !arm.Default {
			la.Pattern = c.lowerPattern(arm.Pattern, sc)
		}
		out.Arms = append(out.Arms, la)
	}
	return out
}
