package types

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

type typeKey struct {
	kind  Kind
	decl  DeclID
	param uint32
	args  string
}

// Table interns types and owns declarations. It is not safe for
// concurrent mutation; read-only use after binding is.
type Table struct {
	types    []Type
	index    map[typeKey]TypeID
	decls    []Decl
	params   []paramInfo
	byName   map[string][]DeclID
	builtins Builtins
}

func NewTable() *Table {
	tb := &Table{
		index:  make(map[typeKey]TypeID, 64),
		decls:  make([]Decl, 1, 16),
		params: make([]paramInfo, 1, 8),
		byName: make(map[string][]DeclID),
	}
	tb.types = append(tb.types, Type{Kind: KindInvalid})
	tb.builtins = Builtins{
		Object: tb.internRaw(Type{Kind: KindObject}),
		Int:    tb.internRaw(Type{Kind: KindInt}),
		Float:  tb.internRaw(Type{Kind: KindFloat}),
		String: tb.internRaw(Type{Kind: KindString}),
		Bool:   tb.internRaw(Type{Kind: KindBool}),
	}
	return tb
}

func (tb *Table) Builtins() Builtins { return tb.builtins }

// BuiltinByName resolves the predeclared type names.
func (tb *Table) BuiltinByName(name string) (TypeID, bool) {
	switch name {
	case "object":
		return tb.builtins.Object, true
	case "int":
		return tb.builtins.Int, true
	case "float":
		return tb.builtins.Float, true
	case "string":
		return tb.builtins.String, true
	case "bool":
		return tb.builtins.Bool, true
	}
	return NoTypeID, false
}

func keyOf(t Type) typeKey {
	k := typeKey{kind: t.Kind, decl: t.Decl, param: t.Param}
	if len(t.Args) > 0 {
		var b strings.Builder
		for i, a := range t.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatUint(uint64(a), 10))
		}
		k.args = b.String()
	}
	return k
}

func (tb *Table) mustLen(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	return v
}

func (tb *Table) internRaw(t Type) TypeID {
	id := TypeID(tb.mustLen(len(tb.types)))
	tb.types = append(tb.types, t)
	tb.index[keyOf(t)] = id
	return id
}

// Named interns decl applied to args. args must cover decl's full
// parameter list, enclosing classes first.
func (tb *Table) Named(decl DeclID, args []TypeID) TypeID {
	t := Type{Kind: KindNamed, Decl: decl}
	if len(args) > 0 {
		t.Args = append([]TypeID(nil), args...)
	}
	if id, ok := tb.index[keyOf(t)]; ok {
		return id
	}
	return tb.internRaw(t)
}

func (tb *Table) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(tb.types) {
		return Type{}, false
	}
	return tb.types[id], true
}

// DeclOf returns the declaration of a named type.
func (tb *Table) DeclOf(t TypeID) (DeclID, bool) {
	ty, ok := tb.Lookup(t)
	if !ok || ty.Kind != KindNamed {
		return NoDeclID, false
	}
	return ty.Decl, true
}

// bindings maps d's parameters to args.
func (tb *Table) bindings(d *Decl, args []TypeID) map[TypeID]TypeID {
	if len(d.All) == 0 || len(args) == 0 {
		return nil
	}
	m := make(map[TypeID]TypeID, len(d.All))
	for i, p := range d.All {
		if i < len(args) && args[i] != p {
			m[p] = args[i]
		}
	}
	return m
}

// Subst replaces type parameters in t according to m.
func (tb *Table) Subst(t TypeID, m map[TypeID]TypeID) TypeID {
	if len(m) == 0 {
		return t
	}
	if r, ok := m[t]; ok {
		return r
	}
	ty, ok := tb.Lookup(t)
	if !ok || ty.Kind != KindNamed || len(ty.Args) == 0 {
		return t
	}
	args := make([]TypeID, len(ty.Args))
	changed := false
	for i, a := range ty.Args {
		args[i] = tb.Subst(a, m)
		changed = changed || args[i] != a
	}
	if !changed {
		return t
	}
	return tb.Named(ty.Decl, args)
}

// Bases returns t's declared supertypes with t's arguments substituted.
func (tb *Table) Bases(t TypeID) []TypeID {
	ty, ok := tb.Lookup(t)
	if !ok || ty.Kind != KindNamed {
		return nil
	}
	d := tb.Decl(ty.Decl)
	m := tb.bindings(d, ty.Args)
	out := make([]TypeID, len(d.Bases))
	for i, b := range d.Bases {
		out[i] = tb.Subst(b, m)
	}
	return out
}

// IsSubtype reports whether every a is a b. Every class and interface is
// an object.
func (tb *Table) IsSubtype(a, b TypeID) bool {
	if a == b {
		return true
	}
	if b == tb.builtins.Object {
		ty, ok := tb.Lookup(a)
		return ok && ty.Kind == KindNamed
	}
	seen := map[TypeID]struct{}{a: {}}
	queue := []TypeID{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, base := range tb.Bases(cur) {
			if base == b {
				return true
			}
			if _, dup := seen[base]; dup {
				continue
			}
			seen[base] = struct{}{}
			queue = append(queue, base)
		}
	}
	return false
}

func (tb *Table) IsInterface(t TypeID) bool {
	ty, ok := tb.Lookup(t)
	return ok && ty.Kind == KindNamed && tb.decls[ty.Decl].Kind == DeclInterface
}

// IsClosed reports whether t is a class marked @closed. Closed interfaces
// are rejected by the validator and never count.
func (tb *Table) IsClosed(t TypeID) bool {
	ty, ok := tb.Lookup(t)
	if !ok || ty.Kind != KindNamed {
		return false
	}
	d := tb.decls[ty.Decl]
	return d.Closed && d.Kind == DeclClass
}

// Family returns the definition type of t's declaration.
func (tb *Table) Family(t TypeID) TypeID {
	ty, ok := tb.Lookup(t)
	if !ok || ty.Kind != KindNamed {
		return t
	}
	return tb.Definition(ty.Decl)
}

// Members lists the definition types of declarations nested in t.
func (tb *Table) Members(t TypeID) []TypeID {
	ty, ok := tb.Lookup(t)
	if !ok || ty.Kind != KindNamed {
		return nil
	}
	nested := tb.decls[ty.Decl].Nested
	out := make([]TypeID, 0, len(nested))
	for _, n := range nested {
		out = append(out, tb.Definition(n))
	}
	return out
}

// DirectBase returns the first class among t's bases.
func (tb *Table) DirectBase(t TypeID) (TypeID, bool) {
	for _, b := range tb.Bases(t) {
		ty, ok := tb.Lookup(b)
		if ok && ty.Kind == KindNamed && tb.decls[ty.Decl].Kind == DeclClass {
			return b, true
		}
	}
	return NoTypeID, false
}

// TypeArgs returns t's arguments, or nil when t is not generic or is its
// own definition.
func (tb *Table) TypeArgs(t TypeID) []TypeID {
	ty, ok := tb.Lookup(t)
	if !ok || ty.Kind != KindNamed || len(ty.Args) == 0 {
		return nil
	}
	if tb.Definition(ty.Decl) == t {
		return nil
	}
	return ty.Args
}

// Instantiate binds the leading parameters of c's declaration to args.
// Cases inherit their closed type's parameters first, so the prefix lines
// up with the scrutinee's arguments.
func (tb *Table) Instantiate(c TypeID, args []TypeID) (TypeID, bool) {
	ty, ok := tb.Lookup(c)
	if !ok || ty.Kind != KindNamed {
		return c, false
	}
	d := tb.Decl(ty.Decl)
	if len(d.All) < len(args) {
		return c, false
	}
	m := make(map[TypeID]TypeID, len(args))
	for i, a := range args {
		m[d.All[i]] = a
	}
	return tb.Subst(c, m), true
}

// DisplayName renders t the way it is written in source, e.g.
// "Option<int>.Some".
func (tb *Table) DisplayName(t TypeID) string {
	var b strings.Builder
	tb.writeName(&b, t)
	return b.String()
}

func (tb *Table) writeName(b *strings.Builder, t TypeID) {
	ty, ok := tb.Lookup(t)
	if !ok {
		b.WriteString("<invalid>")
		return
	}
	switch ty.Kind {
	case KindNamed:
		tb.writeDecl(b, ty.Decl, ty.Args)
	case KindParam:
		b.WriteString(tb.params[ty.Param].Name)
	default:
		b.WriteString(ty.Kind.String())
	}
}

func (tb *Table) writeDecl(b *strings.Builder, id DeclID, args []TypeID) {
	d := tb.Decl(id)
	if od := tb.Decl(d.Outer); od != nil {
		tb.writeDecl(b, d.Outer, args)
		b.WriteByte('.')
	}
	b.WriteString(d.Name)
	if len(d.Own) == 0 {
		return
	}
	start := len(d.All) - len(d.Own)
	b.WriteByte('<')
	for i := start; i < len(d.All); i++ {
		if i > start {
			b.WriteString(", ")
		}
		if i < len(args) {
			tb.writeName(b, args[i])
		} else {
			tb.writeName(b, d.All[i])
		}
	}
	b.WriteByte('>')
}
