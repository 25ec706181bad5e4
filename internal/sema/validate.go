package sema

import (
	"fmt"

	"enumclass/internal/ast"
	"enumclass/internal/caseset"
	"enumclass/internal/diag"
	"enumclass/internal/source"
	"enumclass/internal/types"
)

// validateDecls enforces the shape of closed hierarchies: cases live
// directly inside their closed class, extend it verbatim and declare no
// type parameters of their own.
func (c *checker) validateDecls() {
	for _, id := range c.decls {
		it := c.b.Items.Get(id)
		if it.Kind != ast.ItemClass {
			continue
		}
		d := c.declOf[id]
		def := c.tb.Definition(d)
		decl := c.tb.Decl(d)

		if base, ok := c.tb.DirectBase(def); ok && c.tb.IsClosed(base) {
			c.validateCase(it, d, base)
		} else if outer := c.tb.Decl(decl.Outer); outer != nil && outer.Closed && outer.Kind == types.DeclClass {
			diag.ReportWarning(c.rep, diag.DeclUnrelatedNestedType, it.NameSpan,
				"Nested type does not extend the enum class it is part of. Therefore, it will not be considered a \"case\" of the enum class. If this is intentional, you can safely suppress this warning.").Emit()
		}

		if decl.Closed && !c.hasCases(def) {
			diag.ReportWarning(c.rep, diag.DeclNoCases, it.NameSpan,
				"Enum class does not contain any cases and can therefore not be instantiated").Emit()
		}
	}
}

func (c *checker) validateCase(it *ast.Item, d types.DeclID, base types.TypeID) {
	decl := c.tb.Decl(d)
	closedDecl, _ := c.tb.DeclOf(base)
	switch {
	case decl.Outer != closedDecl:
		diag.ReportError(c.rep, diag.DeclCaseOutsideDefinition, it.NameSpan,
			"Cannot extend enum class outside of its definition. Enum cases must be placed directly within their base class.").Emit()
	case base != c.tb.Definition(closedDecl):
		sp := it.NameSpan
		if bs, ok := c.classBase[d]; ok {
			sp = bs
		}
		diag.ReportError(c.rep, diag.DeclCaseBaseSpecialized, sp, fmt.Sprintf(
			"Enum case must extend parent class verbatim. Expected base class to be `%s`, found `%s` instead.",
			c.tb.DisplayName(c.tb.Definition(closedDecl)), c.tb.DisplayName(base))).Emit()
	}
	if len(it.TypeParams) > 0 {
		sp := it.TypeParams[0].Span.Cover(it.TypeParams[len(it.TypeParams)-1].Span)
		diag.ReportError(c.rep, diag.DeclCaseTypeParameters, sp,
			"Enum case may not declare type parameters. Any type parameter should be declared on the parent enum class.").Emit()
	}
}

func (c *checker) hasCases(def types.TypeID) bool {
	for _, m := range c.tb.Members(def) {
		if caseset.IsDirectCase(def, m, c.tb) {
			return true
		}
	}
	return false
}

// collectClosed records every closed class with its leaf cases.
func (c *checker) collectClosed() {
	for _, id := range c.decls {
		d := c.declOf[id]
		def := c.tb.Definition(d)
		if !c.tb.IsClosed(def) {
			continue
		}
		ct := ClosedType{Name: c.tb.DisplayName(def), Span: c.tb.Decl(d).NameSpan}
		for _, leaf := range c.cache.Cases(def, c.tb, c.tb) {
			var sp source.Span
			if ld, ok := c.tb.DeclOf(leaf); ok {
				sp = c.tb.Decl(ld).NameSpan
			}
			ct.Cases = append(ct.Cases, Case{Name: c.tb.DisplayName(leaf), Span: sp})
		}
		c.result.Closed = append(c.result.Closed, ct)
	}
}
