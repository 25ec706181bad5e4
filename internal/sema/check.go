package sema

import (
	"enumclass/internal/ast"
	"enumclass/internal/caseset"
	"enumclass/internal/coverage"
	"enumclass/internal/diag"
	"enumclass/internal/source"
	"enumclass/internal/types"
)

// Options configure a semantic pass over one file.
type Options struct {
	Reporter diag.Reporter
	// File is the source the AST came from; fixes need its text.
	File     *source.File
	Coverage coverage.Options
	// Fixes attaches "Add remaining cases" edits to exhaustiveness findings.
	Fixes bool
}

// Case is one leaf case of a closed type.
type Case struct {
	Name string
	Span source.Span
}

// ClosedType lists the resolved leaf cases of a closed class.
type ClosedType struct {
	Name  string
	Span  source.Span
	Cases []Case
}

// Analysis summarizes one analyzed match construct.
type Analysis struct {
	Kind       ast.ConstructKind
	Span       source.Span
	SumType    string
	Exhaustive bool
	Missing    []string
	Findings   int
}

type Result struct {
	Types    *types.Table
	Closed   []ClosedType
	Analyses []Analysis
}

// Check binds file and reports declaration and coverage diagnostics.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	res := Result{Types: types.NewTable()}
	if builder == nil || !fileID.IsValid() {
		return res
	}
	c := &checker{
		b:      builder,
		file:   fileID,
		opts:   opts,
		rep:    opts.Reporter,
		tb:     res.Types,
		declOf: make(map[ast.ItemID]types.DeclID),
		top:    make(map[string]types.DeclID),
		cache:  caseset.NewCache[types.TypeID](),
		result: &res,
	}
	c.run()
	return res
}

type fnEntry struct {
	item  ast.ItemID
	outer types.DeclID
}

type checker struct {
	b    *ast.Builder
	file ast.FileID
	opts Options
	rep  diag.Reporter
	tb   *types.Table

	declOf map[ast.ItemID]types.DeclID
	// decls lists declared classes and interfaces in source order.
	decls []ast.ItemID
	top   map[string]types.DeclID
	fns   []fnEntry
	// classBase records where each class's class base was written.
	classBase map[types.DeclID]source.Span

	cache *caseset.Cache[types.TypeID]
	spans []source.Span

	result *Result
}

func (c *checker) run() {
	for _, id := range c.b.Files.Get(c.file).Items {
		c.declareItem(id, types.NoDeclID)
	}
	c.resolveHeaders()
	c.breakCycles()
	c.validateDecls()
	c.collectClosed()
	for _, fn := range c.fns {
		c.checkFn(fn)
	}
}
