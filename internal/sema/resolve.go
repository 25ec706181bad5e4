package sema

import (
	"fmt"

	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/types"
)

// scope is the lexical context for name resolution.
type scope struct {
	// decl is the innermost enclosing class or interface.
	decl types.DeclID
	// params are the enclosing function's type parameters.
	params map[string]types.TypeID
}

// resolveType binds ref, reporting what goes wrong. Nullability is not
// part of the result; callers read ref.Nullable.
func (c *checker) resolveType(ref ast.TypeRef, sc scope) (types.TypeID, bool) {
	if ref.IsZero() {
		return types.NoTypeID, false
	}
	first := ref.Segments[0]
	t, decl, ok := c.lookupFirst(first.Name, sc, first)
	if !ok {
		return types.NoTypeID, false
	}
	if decl == types.NoDeclID {
		if len(first.Args) > 0 {
			diag.ReportError(c.rep, diag.SemaTypeArity, first.Span, first.Name+" does not take type arguments").Emit()
			return types.NoTypeID, false
		}
		if len(ref.Segments) > 1 {
			diag.ReportError(c.rep, diag.SemaUnresolvedType, ref.Segments[1].Span,
				first.Name+" has no nested type "+ref.Segments[1].Name).Emit()
			return types.NoTypeID, false
		}
		return t, true
	}

	d := c.tb.Decl(decl)
	args := append([]types.TypeID(nil), d.All[:len(d.All)-len(d.Own)]...)
	args, ok = c.appendArgs(args, d, first, sc)
	if !ok {
		return types.NoTypeID, false
	}
	for _, seg := range ref.Segments[1:] {
		nested, found := c.tb.FindNested(decl, seg.Name)
		if !found {
			diag.ReportError(c.rep, diag.SemaUnresolvedType, seg.Span,
				c.tb.Decl(decl).Name+" has no nested type "+seg.Name).Emit()
			return types.NoTypeID, false
		}
		decl = nested
		args, ok = c.appendArgs(args, c.tb.Decl(decl), seg, sc)
		if !ok {
			return types.NoTypeID, false
		}
	}
	return c.tb.Named(decl, args), true
}

func (c *checker) appendArgs(args []types.TypeID, d *types.Decl, seg ast.TypeSegment, sc scope) ([]types.TypeID, bool) {
	if len(seg.Args) != len(d.Own) {
		diag.ReportError(c.rep, diag.SemaTypeArity, seg.Span,
			fmt.Sprintf("%s expects %d type argument(s), got %d", d.Name, len(d.Own), len(seg.Args))).Emit()
		return nil, false
	}
	for _, a := range seg.Args {
		t, ok := c.resolveType(a, sc)
		if !ok {
			return nil, false
		}
		args = append(args, t)
	}
	return args, true
}

// lookupFirst resolves the leading segment of a type reference. It returns
// either a declaration or, for parameters and builtins, a type.
//
// Lookup order: function type parameters, then each enclosing declaration's
// own parameters and nested types from the inside out, then top-level
// declarations, builtins, and finally any uniquely named nested type.
func (c *checker) lookupFirst(name string, sc scope, seg ast.TypeSegment) (types.TypeID, types.DeclID, bool) {
	if t, ok := sc.params[name]; ok {
		return t, types.NoDeclID, true
	}
	for d := sc.decl; d != types.NoDeclID; d = c.tb.Decl(d).Outer {
		for _, p := range c.tb.Decl(d).Own {
			if c.tb.ParamName(p) == name {
				return p, types.NoDeclID, true
			}
		}
		if n, ok := c.tb.FindNested(d, name); ok {
			return types.NoTypeID, n, true
		}
	}
	if d, ok := c.top[name]; ok {
		return types.NoTypeID, d, true
	}
	if t, ok := c.tb.BuiltinByName(name); ok {
		return t, types.NoDeclID, true
	}
	switch candidates := c.tb.DeclsNamed(name); len(candidates) {
	case 0:
		diag.ReportError(c.rep, diag.SemaUnresolvedType, seg.Span, "unknown type "+name).Emit()
	case 1:
		return types.NoTypeID, candidates[0], true
	default:
		b := diag.ReportError(c.rep, diag.SemaAmbiguousType, seg.Span, "ambiguous type "+name+"; qualify it with its enclosing type")
		for _, cand := range candidates {
			b.WithNote(c.tb.Decl(cand).NameSpan, "candidate "+c.tb.DisplayName(c.tb.Definition(cand)))
		}
		b.Emit()
	}
	return types.NoTypeID, types.NoDeclID, false
}
