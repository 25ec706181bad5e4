package sema

import (
	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/source"
	"enumclass/internal/types"
)

const attrClosed = "closed"

func (c *checker) declareItem(id ast.ItemID, outer types.DeclID) {
	it := c.b.Items.Get(id)
	if it == nil {
		return
	}
	if it.Kind == ast.ItemFn {
		c.checkAttrs(it, false)
		c.fns = append(c.fns, fnEntry{item: id, outer: outer})
		return
	}

	kind := types.DeclClass
	if it.Kind == ast.ItemInterface {
		kind = types.DeclInterface
	}
	prev, dup := c.lookupDeclared(it.Name, outer)
	d := c.tb.NewDecl(kind, it.Name, outer, it.Span, it.NameSpan)
	c.declOf[id] = d
	c.decls = append(c.decls, id)
	if dup {
		diag.ReportError(c.rep, diag.SemaDuplicateType, it.NameSpan, "type "+it.Name+" is already declared").
			WithNote(c.tb.Decl(prev).NameSpan, "previous declaration").
			Emit()
	} else if outer == types.NoDeclID {
		c.top[it.Name] = d
	}

	seen := make(map[string]bool, len(it.TypeParams))
	for _, tp := range it.TypeParams {
		if seen[tp.Name] {
			diag.ReportError(c.rep, diag.SemaDuplicateParam, tp.Span, "duplicate type parameter "+tp.Name).Emit()
			continue
		}
		seen[tp.Name] = true
		c.tb.AddTypeParam(d, tp.Name)
	}
	if c.checkAttrs(it, kind == types.DeclClass) {
		c.tb.SetClosed(d, true)
	}
	for _, m := range it.Members {
		c.declareItem(m, d)
	}
}

// lookupDeclared finds an earlier declaration with the same name in the
// same scope.
func (c *checker) lookupDeclared(name string, outer types.DeclID) (types.DeclID, bool) {
	if outer == types.NoDeclID {
		d, ok := c.top[name]
		return d, ok
	}
	return c.tb.FindNested(outer, name)
}

// checkAttrs validates its attributes and reports whether it is a closed
// class.
func (c *checker) checkAttrs(it *ast.Item, isClass bool) bool {
	closed := false
	for _, a := range it.Attrs {
		if a.Name != attrClosed {
			diag.ReportWarning(c.rep, diag.SynAttributeUnknown, a.Span, "unknown attribute @"+a.Name).Emit()
			continue
		}
		switch {
		case isClass:
			closed = true
		case it.Kind == ast.ItemInterface:
			diag.ReportError(c.rep, diag.DeclClosedInterface, a.Span,
				"Interface "+it.Name+" cannot be closed. Only classes can declare enum cases.").Emit()
		default:
			diag.ReportWarning(c.rep, diag.SynAttributeUnknown, a.Span, "@closed only applies to classes").Emit()
		}
	}
	return closed
}

// resolveHeaders binds base lists and field types.
func (c *checker) resolveHeaders() {
	c.classBase = make(map[types.DeclID]source.Span)
	for _, id := range c.decls {
		it := c.b.Items.Get(id)
		d := c.declOf[id]
		sc := scope{decl: d}
		var bases []types.TypeID
		classBases := 0
		for _, ref := range it.Bases {
			t, ok := c.resolveType(ref, sc)
			if !ok {
				continue
			}
			bd, named := c.tb.DeclOf(t)
			if !named {
				diag.ReportError(c.rep, diag.SemaBaseNotClass, ref.Span, c.tb.DisplayName(t)+" cannot be used as a base type").Emit()
				continue
			}
			if c.tb.Decl(bd).Kind == types.DeclClass {
				if it.Kind == ast.ItemInterface {
					diag.ReportError(c.rep, diag.SemaBaseNotClass, ref.Span,
						"interface "+it.Name+" can only extend interfaces, not class "+c.tb.DisplayName(t)).Emit()
					continue
				}
				classBases++
				if classBases > 1 {
					diag.ReportError(c.rep, diag.SemaMultipleBases, ref.Span,
						"class "+it.Name+" cannot extend more than one class").Emit()
					continue
				}
				c.classBase[d] = ref.Span
			}
			bases = append(bases, t)
		}
		c.tb.SetBases(d, bases)

		fields := make([]types.Field, 0, len(it.Fields))
		for _, f := range it.Fields {
			t, ok := c.resolveType(f.Type, sc)
			if !ok {
				continue
			}
			fields = append(fields, types.Field{Name: f.Name, Type: t, Nullable: f.Type.Nullable})
		}
		c.tb.SetFields(d, fields)
	}
}

// breakCycles reports declarations that reach themselves through their
// bases and drops those bases.
func (c *checker) breakCycles() {
	for _, id := range c.decls {
		d := c.declOf[id]
		if !c.reachesSelf(d) {
			continue
		}
		it := c.b.Items.Get(id)
		diag.ReportError(c.rep, diag.SemaInheritanceCycle, it.NameSpan, "inheritance cycle involving "+it.Name).Emit()
		c.tb.SetBases(d, nil)
		delete(c.classBase, d)
	}
}

func (c *checker) reachesSelf(d types.DeclID) bool {
	seen := make(map[types.DeclID]bool)
	stack := append([]types.TypeID(nil), c.tb.Decl(d).Bases...)
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		bd, ok := c.tb.DeclOf(t)
		if !ok {
			continue
		}
		if bd == d {
			return true
		}
		if seen[bd] {
			continue
		}
		seen[bd] = true
		stack = append(stack, c.tb.Decl(bd).Bases...)
	}
	return false
}
