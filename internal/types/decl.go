package types

import (
	"slices"

	"enumclass/internal/source"
)

// Decl is a class or interface declaration.
type Decl struct {
	Name   string
	Kind   DeclKind
	Closed bool
	Outer  DeclID
	// Own are the parameters declared on this declaration; All prefixes
	// them with every enclosing class's parameters.
	Own    []TypeID
	All    []TypeID
	Bases  []TypeID
	Nested []DeclID
	Fields []Field

	Span     source.Span
	NameSpan source.Span
}

type paramInfo struct {
	Name  string
	Owner DeclID
}

// NewDecl registers a declaration nested in outer (NoDeclID for top level).
// Outer's type parameters must already be registered.
func (tb *Table) NewDecl(kind DeclKind, name string, outer DeclID, span, nameSpan source.Span) DeclID {
	d := Decl{Name: name, Kind: kind, Outer: outer, Span: span, NameSpan: nameSpan}
	if od := tb.Decl(outer); od != nil {
		d.All = slices.Clone(od.All)
	}
	tb.decls = append(tb.decls, d)
	id := DeclID(tb.mustLen(len(tb.decls) - 1))
	if od := tb.Decl(outer); od != nil {
		od.Nested = append(od.Nested, id)
	}
	tb.byName[name] = append(tb.byName[name], id)
	return id
}

// Decl returns nil for NoDeclID.
func (tb *Table) Decl(id DeclID) *Decl {
	if id == NoDeclID || int(id) >= len(tb.decls) {
		return nil
	}
	return &tb.decls[id]
}

// DeclCount returns the number of registered declarations.
func (tb *Table) DeclCount() int {
	return len(tb.decls) - 1
}

// AddTypeParam declares a type parameter on decl and returns its type.
func (tb *Table) AddTypeParam(decl DeclID, name string) TypeID {
	t := tb.NewParam(name, decl)
	if d := tb.Decl(decl); d != nil {
		d.Own = append(d.Own, t)
		d.All = append(d.All, t)
	}
	return t
}

// NewParam creates a type parameter not attached to a declaration, such as
// a function's.
func (tb *Table) NewParam(name string, owner DeclID) TypeID {
	tb.params = append(tb.params, paramInfo{Name: name, Owner: owner})
	return tb.internRaw(Type{Kind: KindParam, Param: tb.mustLen(len(tb.params) - 1)})
}

func (tb *Table) SetBases(decl DeclID, bases []TypeID) {
	if d := tb.Decl(decl); d != nil {
		d.Bases = slices.Clone(bases)
	}
}

func (tb *Table) SetFields(decl DeclID, fields []Field) {
	if d := tb.Decl(decl); d != nil {
		d.Fields = slices.Clone(fields)
	}
}

func (tb *Table) SetClosed(decl DeclID, closed bool) {
	if d := tb.Decl(decl); d != nil {
		d.Closed = closed
	}
}

// DeclsNamed lists every declaration called name, in registration order.
func (tb *Table) DeclsNamed(name string) []DeclID {
	return tb.byName[name]
}

// FindNested returns the declaration called name nested directly in decl.
func (tb *Table) FindNested(decl DeclID, name string) (DeclID, bool) {
	d := tb.Decl(decl)
	if d == nil {
		return NoDeclID, false
	}
	for _, n := range d.Nested {
		if tb.decls[n].Name == name {
			return n, true
		}
	}
	return NoDeclID, false
}

// Definition returns decl applied to its own parameters.
func (tb *Table) Definition(decl DeclID) TypeID {
	d := tb.Decl(decl)
	if d == nil {
		return NoTypeID
	}
	return tb.Named(decl, d.All)
}

// FieldOf looks a field up on t or its supertypes, with t's arguments
// substituted.
func (tb *Table) FieldOf(t TypeID, name string) (Field, bool) {
	return tb.fieldOf(t, name, make(map[TypeID]struct{}))
}

func (tb *Table) fieldOf(t TypeID, name string, seen map[TypeID]struct{}) (Field, bool) {
	if _, dup := seen[t]; dup {
		return Field{}, false
	}
	seen[t] = struct{}{}
	ty, ok := tb.Lookup(t)
	if !ok || ty.Kind != KindNamed {
		return Field{}, false
	}
	d := tb.Decl(ty.Decl)
	for _, f := range d.Fields {
		if f.Name == name {
			f.Type = tb.Subst(f.Type, tb.bindings(d, ty.Args))
			return f, true
		}
	}
	for _, base := range tb.Bases(t) {
		if f, ok := tb.fieldOf(base, name, seen); ok {
			return f, true
		}
	}
	return Field{}, false
}

// ParamName returns the name of a type parameter, or "" for other types.
func (tb *Table) ParamName(t TypeID) string {
	ty, ok := tb.Lookup(t)
	if !ok || ty.Kind != KindParam {
		return ""
	}
	return tb.params[ty.Param].Name
}
