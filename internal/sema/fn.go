package sema

import (
	"enumclass/internal/ast"
	"enumclass/internal/diag"
	"enumclass/internal/types"
)

// binding is a resolved parameter or local. ok is false when the type is
// missing or failed to resolve; such bindings hide outer names but are
// never analyzed.
type binding struct {
	name     string
	typ      types.TypeID
	nullable bool
	ok       bool
}

type fnScope struct {
	sc     scope
	params []binding
	locals []binding
}

func (c *checker) checkFn(fn fnEntry) {
	it := c.b.Items.Get(fn.item)
	fs := fnScope{sc: scope{decl: fn.outer}}
	if len(it.TypeParams) > 0 {
		fs.sc.params = make(map[string]types.TypeID, len(it.TypeParams))
		for _, tp := range it.TypeParams {
			if _, dup := fs.sc.params[tp.Name]; dup {
				diag.ReportError(c.rep, diag.SemaDuplicateParam, tp.Span, "duplicate type parameter "+tp.Name).Emit()
				continue
			}
			fs.sc.params[tp.Name] = c.tb.NewParam(tp.Name, types.NoDeclID)
		}
	}

	seen := make(map[string]bool, len(it.Params))
	for _, p := range it.Params {
		if seen[p.Name] {
			diag.ReportError(c.rep, diag.SemaDuplicateParam, p.Span, "duplicate parameter "+p.Name).Emit()
		}
		seen[p.Name] = true
		fs.params = append(fs.params, c.bind(p, fs.sc))
	}
	if !it.Result.IsZero() {
		c.resolveType(it.Result, fs.sc)
	}
	for _, l := range it.Locals {
		fs.locals = append(fs.locals, c.bind(l, fs.sc))
	}

	for _, id := range it.Constructs {
		c.checkConstruct(c.b.Constructs.Get(id), &fs)
	}
}

func (c *checker) bind(b ast.Binding, sc scope) binding {
	out := binding{name: b.Name, nullable: b.Type.Nullable}
	if b.Type.IsZero() {
		return out
	}
	out.typ, out.ok = c.resolveType(b.Type, sc)
	return out
}

// scrutineeType resolves `name(.field)*` against the locals in scope and
// the parameters. Unknown names are skipped silently: expressions are not
// type-checked.
func (c *checker) scrutineeType(path ast.Path, visibleLocals int, fs *fnScope) (types.TypeID, bool, bool) {
	if path.IsZero() {
		return types.NoTypeID, false, false
	}
	name := path.Segments[0]
	var b binding
	found := false
	for i := min(visibleLocals, len(fs.locals)) - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			b, found = fs.locals[i], true
			break
		}
	}
	if !found {
		for _, p := range fs.params {
			if p.name == name {
				b, found = p, true
				break
			}
		}
	}
	if !found || !b.ok {
		return types.NoTypeID, false, false
	}
	t, nullable := b.typ, b.nullable
	for _, field := range path.Segments[1:] {
		f, ok := c.tb.FieldOf(t, field)
		if !ok {
			return types.NoTypeID, false, false
		}
		t, nullable = f.Type, f.Nullable
	}
	return t, nullable, true
}
