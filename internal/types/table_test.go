package types

import (
	"slices"
	"testing"

	"enumclass/internal/caseset"
	"enumclass/internal/coverage"
	"enumclass/internal/source"
)

var (
	_ coverage.TypeSystem[TypeID] = (*Table)(nil)
	_ caseset.Hierarchy[TypeID]   = (*Table)(nil)
	_ caseset.Specializer[TypeID] = (*Table)(nil)
)

// optionTable declares
//
//	@closed class Option<T> { class Some : Option<T> { value: T } class None : Option<T> {} }
func optionTable() (*Table, DeclID, DeclID, DeclID) {
	tb := NewTable()
	opt := tb.NewDecl(DeclClass, "Option", NoDeclID, source.Span{}, source.Span{})
	tp := tb.AddTypeParam(opt, "T")
	tb.SetClosed(opt, true)
	some := tb.NewDecl(DeclClass, "Some", opt, source.Span{}, source.Span{})
	none := tb.NewDecl(DeclClass, "None", opt, source.Span{}, source.Span{})
	optT := tb.Named(opt, []TypeID{tp})
	tb.SetBases(some, []TypeID{optT})
	tb.SetBases(none, []TypeID{optT})
	tb.SetFields(some, []Field{{Name: "value", Type: tp}})
	return tb, opt, some, none
}

func TestInterningIsStable(t *testing.T) {
	tb, opt, _, _ := optionTable()
	a := tb.Named(opt, []TypeID{tb.Builtins().Int})
	b := tb.Named(opt, []TypeID{tb.Builtins().Int})
	c := tb.Named(opt, []TypeID{tb.Builtins().String})
	if a != b || a == c {
		t.Fatalf("interning: %d %d %d", a, b, c)
	}
	if tb.Definition(opt) != tb.Family(a) {
		t.Fatal("Family must return the definition")
	}
	if got, ok := tb.BuiltinByName("object"); !ok || got != tb.Builtins().Object {
		t.Fatal("object builtin missing")
	}
}

func TestNestedInheritsParams(t *testing.T) {
	tb, opt, some, _ := optionTable()
	if len(tb.Decl(some).All) != 1 || tb.Decl(some).All[0] != tb.Decl(opt).All[0] {
		t.Fatalf("Some.All = %v", tb.Decl(some).All)
	}
	someInt := tb.Named(some, []TypeID{tb.Builtins().Int})
	if got := tb.DisplayName(someInt); got != "Option<int>.Some" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := tb.DisplayName(tb.Definition(some)); got != "Option<T>.Some" {
		t.Fatalf("DisplayName = %q", got)
	}
	f, ok := tb.FieldOf(someInt, "value")
	if !ok || f.Type != tb.Builtins().Int {
		t.Fatalf("FieldOf = %+v %v", f, ok)
	}
}

func TestSubtyping(t *testing.T) {
	tb, opt, some, _ := optionTable()
	i, s := tb.Builtins().Int, tb.Builtins().String
	someInt := tb.Named(some, []TypeID{i})
	if !tb.IsSubtype(someInt, tb.Named(opt, []TypeID{i})) {
		t.Fatal("Option<int>.Some must be an Option<int>")
	}
	if tb.IsSubtype(someInt, tb.Named(opt, []TypeID{s})) {
		t.Fatal("Option<int>.Some must not be an Option<string>")
	}
	if !tb.IsSubtype(someInt, tb.Builtins().Object) || tb.IsSubtype(i, tb.Builtins().Object) {
		t.Fatal("object relation wrong")
	}

	iface := tb.NewDecl(DeclInterface, "IValue", NoDeclID, source.Span{}, source.Span{})
	tb.SetBases(some, append(tb.Decl(some).Bases, tb.Definition(iface)))
	if !tb.IsSubtype(someInt, tb.Definition(iface)) || !tb.IsInterface(tb.Definition(iface)) {
		t.Fatal("interface relation wrong")
	}
	if base, ok := tb.DirectBase(someInt); !ok || base != tb.Named(opt, []TypeID{i}) {
		t.Fatalf("DirectBase = %d %v", base, ok)
	}
}

func TestCaseResolution(t *testing.T) {
	tb, opt, some, none := optionTable()
	i := tb.Builtins().Int
	optInt := tb.Named(opt, []TypeID{i})
	cache := caseset.NewCache[TypeID]()
	got := cache.Cases(optInt, tb, tb)
	want := []TypeID{tb.Named(some, []TypeID{i}), tb.Named(none, []TypeID{i})}
	if !slices.Equal(got, want) {
		t.Fatalf("cases = %v, want %v", got, want)
	}
	// the unbound definition keeps its parameters
	got = cache.Cases(tb.Definition(opt), tb, tb)
	if !slices.Equal(got, []TypeID{tb.Definition(some), tb.Definition(none)}) {
		t.Fatalf("definition cases = %v", got)
	}
	if tb.TypeArgs(tb.Definition(opt)) != nil {
		t.Fatal("definition has no bound arguments")
	}
}

func TestCyclicBasesTerminate(t *testing.T) {
	tb := NewTable()
	a := tb.NewDecl(DeclClass, "A", NoDeclID, source.Span{}, source.Span{})
	b := tb.NewDecl(DeclClass, "B", NoDeclID, source.Span{}, source.Span{})
	tb.SetBases(a, []TypeID{tb.Definition(b)})
	tb.SetBases(b, []TypeID{tb.Definition(a)})
	c := tb.NewDecl(DeclClass, "C", NoDeclID, source.Span{}, source.Span{})
	if tb.IsSubtype(tb.Definition(a), tb.Definition(c)) {
		t.Fatal("unrelated types")
	}
	if _, ok := tb.FieldOf(tb.Definition(a), "x"); ok {
		t.Fatal("no such field")
	}
}
