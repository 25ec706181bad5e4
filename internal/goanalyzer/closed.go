package goanalyzer

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"

	"enumclass/internal/caseset"
	"enumclass/internal/diag"
)

const closedDirective = "//enumclass:closed"

// closedFact marks an interface as closed. Cases lists its leaf cases by
// name in resolution order.
type closedFact struct {
	Cases []string
}

func (*closedFact) AFact() {}

func (f *closedFact) String() string {
	return "closed(" + strings.Join(f.Cases, ", ") + ")"
}

// world holds the closed interfaces visible from one package.
type world struct {
	pass *analysis.Pass
	// closed interfaces declared in this package, in source order
	local []*types.TypeName
	// package-level non-interface types, in source order
	concrete []*types.TypeName
	closed   map[*types.TypeName]bool
	leaves   map[*types.TypeName][]*types.TypeName
	pointers map[*types.TypeName]*types.TypeName
}

func newWorld(pass *analysis.Pass) *world {
	w := &world{
		pass:   pass,
		closed: make(map[*types.TypeName]bool),
		leaves:   make(map[*types.TypeName][]*types.TypeName),
		pointers: make(map[*types.TypeName]*types.TypeName),
	}
	w.scanDirectives()
	w.scanConcrete()
	return w
}

func (w *world) scanDirectives() {
	for _, f := range w.pass.Files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}
				if !hasDirective(doc, closedDirective) {
					continue
				}
				obj, ok := w.pass.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}
				if obj.IsAlias() || !types.IsInterface(obj.Type()) {
					w.pass.Reportf(ts.Name.Pos(), "%s applies only to interface types", closedDirective)
					continue
				}
				w.local = append(w.local, obj)
				w.closed[obj] = true
			}
		}
	}
}

func (w *world) scanConcrete() {
	scope := w.pass.Pkg.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || obj.IsAlias() || types.IsInterface(obj.Type()) {
			continue
		}
		w.concrete = append(w.concrete, obj)
	}
	slices.SortFunc(w.concrete, func(a, b *types.TypeName) int { return int(a.Pos() - b.Pos()) })
}

func hasDirective(cg *ast.CommentGroup, directive string) bool {
	if cg == nil {
		return false
	}
	for _, c := range cg.List {
		rest, ok := strings.CutPrefix(c.Text, directive)
		if ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
			return true
		}
	}
	return false
}

// isClosed reports whether obj is a closed interface, consulting the facts
// of imported packages.
func (w *world) isClosed(obj *types.TypeName) bool {
	if obj == nil {
		return false
	}
	if c, ok := w.closed[obj]; ok {
		return c
	}
	var fact closedFact
	c := obj.Pkg() != nil && obj.Pkg() != w.pass.Pkg && w.pass.ImportObjectFact(obj, &fact)
	w.closed[obj] = c
	if c {
		w.leaves[obj] = w.importedCases(obj.Pkg(), fact.Cases)
	}
	return c
}

// importedCases maps case names back to objects. A case the importer cannot
// see gets a placeholder no pattern can name.
func (w *world) importedCases(pkg *types.Package, names []string) []*types.TypeName {
	out := make([]*types.TypeName, 0, len(names))
	for _, name := range names {
		base, ptr := strings.CutPrefix(name, "*")
		if obj, ok := pkg.Scope().Lookup(base).(*types.TypeName); ok {
			if ptr {
				obj = w.pointerForm(obj)
			}
			out = append(out, obj)
			continue
		}
		out = append(out, types.NewTypeName(token.NoPos, pkg, name, nil))
	}
	return out
}

// pointerForm returns the case standing for *t. A type whose value
// receivers implement a closed interface reaches it both as t and as *t,
// and a type switch clause catches only one of the two.
func (w *world) pointerForm(t *types.TypeName) *types.TypeName {
	if p, ok := w.pointers[t]; ok {
		return p
	}
	p := types.NewTypeName(t.Pos(), t.Pkg(), "*"+t.Name(), types.NewPointer(t.Type()))
	w.pointers[t] = p
	return p
}

// pointerCase maps a *t clause to its case in sum. It returns t itself
// when only *t implements sum.
func (w *world) pointerCase(t, sum *types.TypeName) *types.TypeName {
	if types.IsInterface(t.Type()) {
		return t
	}
	if ok, ptr := implementation(t, sum); ok && !ptr {
		return w.pointerForm(t)
	}
	return t
}

// cases returns the leaf cases of a closed interface.
func (w *world) cases(sum *types.TypeName) []*types.TypeName {
	if cs, ok := w.leaves[sum]; ok {
		return cs
	}
	cs := caseset.Resolve(w.describe(sum, make(map[*types.TypeName]bool)))
	w.leaves[sum] = cs
	return cs
}

// describe builds the descriptor of a local closed interface. Closed
// interfaces embedding root become nested cases; concrete types that
// implement one of them are not direct cases of root.
func (w *world) describe(root *types.TypeName, visiting map[*types.TypeName]bool) *caseset.Descriptor[*types.TypeName] {
	visiting[root] = true
	defer delete(visiting, root)

	var inner []*types.TypeName
	for _, iface := range w.local {
		if iface == root || visiting[iface] || !narrower(iface, root) {
			continue
		}
		inner = append(inner, iface)
	}
	// keep the outermost ones
	var direct []*types.TypeName
	for _, iface := range inner {
		if !slices.ContainsFunc(inner, func(other *types.TypeName) bool {
			return other != iface && narrower(iface, other)
		}) {
			direct = append(direct, iface)
		}
	}

	d := &caseset.Descriptor[*types.TypeName]{Type: root}
	for _, iface := range direct {
		d.Cases = append(d.Cases, caseset.Case[*types.TypeName]{Type: iface, Nested: w.describe(iface, visiting)})
	}
	for _, t := range w.concrete {
		ok, ptr := implementation(t, root)
		if !ok {
			continue
		}
		if slices.ContainsFunc(direct, func(iface *types.TypeName) bool {
			ok, _ := implementation(t, iface)
			return ok
		}) {
			continue
		}
		d.Cases = append(d.Cases, caseset.Case[*types.TypeName]{Type: t})
		if !ptr {
			d.Cases = append(d.Cases, caseset.Case[*types.TypeName]{Type: w.pointerForm(t)})
		}
	}
	slices.SortStableFunc(d.Cases, func(a, b caseset.Case[*types.TypeName]) int {
		return int(a.Type.Pos() - b.Type.Pos())
	})
	return d
}

// narrower reports whether interface a strictly refines interface b.
func narrower(a, b *types.TypeName) bool {
	ab, _ := implementation(a, b)
	ba, _ := implementation(b, a)
	return ab && !ba
}

// implementation reports whether t or *t implements iface; ptr is set when
// only the pointer does. A generic t is instantiated with iface's own type
// parameters.
func implementation(t, iface *types.TypeName) (ok, ptr bool) {
	if t.Type() == nil || iface.Type() == nil {
		return false, false
	}
	if base, isPtr := pointerBase(t); isPtr {
		baseOK, _ := implementation(base, iface)
		return baseOK, false
	}
	it, isIface := iface.Type().Underlying().(*types.Interface)
	if !isIface {
		return false, false
	}
	typ := t.Type()
	if named, isNamed := typ.(*types.Named); isNamed && named.TypeParams().Len() > 0 {
		inst, instOK := instantiateFor(named, iface)
		if !instOK {
			return false, false
		}
		typ = inst
	}
	if types.Implements(typ, it) {
		return true, false
	}
	if types.IsInterface(typ) {
		return false, false
	}
	if types.Implements(types.NewPointer(typ), it) {
		return true, true
	}
	return false, false
}

func instantiateFor(named *types.Named, iface *types.TypeName) (types.Type, bool) {
	in, ok := iface.Type().(*types.Named)
	if !ok || in.TypeParams().Len() != named.TypeParams().Len() {
		return nil, false
	}
	args := make([]types.Type, in.TypeParams().Len())
	for i := range args {
		args[i] = in.TypeParams().At(i)
	}
	inst, err := types.Instantiate(nil, named, args, false)
	return inst, err == nil
}

// exportFacts publishes the case list of every local closed interface and
// flags the ones without cases.
func (w *world) exportFacts() {
	for _, sum := range w.local {
		cs := w.cases(sum)
		names := make([]string, len(cs))
		for i, c := range cs {
			names[i] = c.Name()
		}
		w.pass.ExportObjectFact(sum, &closedFact{Cases: names})
		if len(cs) == 0 {
			w.pass.Report(analysis.Diagnostic{
				Pos:      sum.Pos(),
				Category: diag.DeclNoCases.ID(),
				Message:  "closed interface " + sum.Name() + " has no cases",
			})
		}
	}
}
