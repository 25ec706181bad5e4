package goanalyzer

import (
	"go/types"
	"strings"
)

// goTypes is the coverage type system over Go type names. A type with
// value receivers has a second name for its pointer form, see
// world.pointerForm.
type goTypes struct {
	pkg *types.Package
}

func (goTypes) IsSubtype(a, b *types.TypeName) bool {
	if a == b {
		return true
	}
	if b.Type() == nil || !types.IsInterface(b.Type()) {
		return false
	}
	ok, _ := implementation(a, b)
	return ok
}

func (goTypes) IsInterface(t *types.TypeName) bool {
	return t.Type() != nil && types.IsInterface(t.Type())
}

func (g goTypes) DisplayName(t *types.TypeName) string {
	if t.Pkg() == nil || t.Pkg() == g.pkg {
		return t.Name()
	}
	if base, ok := strings.CutPrefix(t.Name(), "*"); ok {
		return "*" + t.Pkg().Name() + "." + base
	}
	return t.Pkg().Name() + "." + t.Name()
}

// pointerBase returns T when t is the pointer form of T.
func pointerBase(t *types.TypeName) (*types.TypeName, bool) {
	if t.Type() == nil {
		return nil, false
	}
	p, ok := t.Type().(*types.Pointer)
	if !ok {
		return nil, false
	}
	named, ok := p.Elem().(*types.Named)
	if !ok {
		return nil, false
	}
	return named.Obj(), true
}

// typeName returns the defined type behind t, looking through aliases,
// one level of pointer and instantiation.
func typeName(t types.Type) *types.TypeName {
	if t == nil {
		return nil
	}
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil
	}
	return named.Origin().Obj()
}

func typeArgs(t types.Type) []types.Type {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.TypeArgs() == nil {
		return nil
	}
	args := make([]types.Type, named.TypeArgs().Len())
	for i := range args {
		args[i] = named.TypeArgs().At(i)
	}
	return args
}
