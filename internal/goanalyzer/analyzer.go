package goanalyzer

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"enumclass/internal/coverage"
	"enumclass/internal/diag"
	"enumclass/internal/pattern"
	"enumclass/internal/report"
)

// NilFlag names the flag that makes nil a value type switches must handle.
const NilFlag = "nil"

var checkNil bool

func init() {
	Analyzer.Flags.BoolVar(&checkNil, NilFlag, false, "require type switches over closed interfaces to handle nil")
}

var Analyzer = &analysis.Analyzer{
	Name:      "enumclass",
	Doc:       "check type switches over //enumclass:closed interfaces for exhaustiveness",
	Run:       run,
	Requires:  []*analysis.Analyzer{inspect.Analyzer},
	FactTypes: []analysis.Fact{new(closedFact)},
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	w := newWorld(pass)
	w.exportFacts()

	c := &checker{
		pass:     pass,
		world:    w,
		ts:       goTypes{pkg: pass.Pkg},
		opts:     coverage.Options{WildcardCoversNull: true},
		nullable: checkNil,
	}
	insp.Preorder([]ast.Node{(*ast.TypeSwitchStmt)(nil), (*ast.TypeAssertExpr)(nil)}, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.TypeSwitchStmt:
			c.typeSwitch(n)
		case *ast.TypeAssertExpr:
			c.assertion(n)
		}
	})
	return nil, nil
}

type checker struct {
	pass     *analysis.Pass
	world    *world
	ts       goTypes
	opts     coverage.Options
	nullable bool
}

func (c *checker) sumOf(x ast.Expr) (*types.TypeName, bool) {
	t := c.pass.TypesInfo.TypeOf(x)
	if t == nil {
		return nil, false
	}
	if _, isPtr := types.Unalias(t).(*types.Pointer); isPtr {
		return nil, false
	}
	obj := typeName(t)
	if !c.world.isClosed(obj) {
		return nil, false
	}
	return obj, true
}

func (c *checker) typeSwitch(sw *ast.TypeSwitchStmt) {
	x := switchOperand(sw)
	if x == nil {
		return
	}
	sum, ok := c.sumOf(x)
	if !ok {
		return
	}
	con := c.lower(sw, sum)
	r := coverage.Analyze(coverage.Input[*types.TypeName]{
		SumType:  sum,
		Cases:    c.world.cases(sum),
		Patterns: pattern.Normalize(con),
		Nullable: c.nullable,
	}, c.ts, c.opts, c.reportFinding)

	// an empty switch does nothing
	if len(sw.Body.List) == 0 {
		return
	}
	code, _ := report.NotExhaustiveCode(con.Kind)
	for i, msg := range report.NotExhaustiveMessages(&r, c.ts) {
		d := analysis.Diagnostic{
			Pos:      sw.Switch,
			End:      sw.Switch + token.Pos(len(token.SWITCH.String())),
			Category: code.ID(),
			Message:  msg,
		}
		if i == 0 {
			if fix, ok := c.remainingCases(sw, sum, &r); ok {
				d.SuggestedFixes = []analysis.SuggestedFix{fix}
			}
		}
		c.pass.Report(d)
	}
}

func switchOperand(sw *ast.TypeSwitchStmt) ast.Expr {
	var e ast.Expr
	switch s := sw.Assign.(type) {
	case *ast.ExprStmt:
		e = s.X
	case *ast.AssignStmt:
		if len(s.Rhs) == 1 {
			e = s.Rhs[0]
		}
	}
	ta, ok := e.(*ast.TypeAssertExpr)
	if !ok {
		return nil
	}
	return ta.X
}

// lower turns the clauses of sw into a construct: default is a wildcard,
// nil is a null check and a clause listing several types is a disjunction.
func (c *checker) lower(sw *ast.TypeSwitchStmt, sum *types.TypeName) *pattern.Construct[*types.TypeName] {
	con := &pattern.Construct[*types.TypeName]{Kind: pattern.TypeSwitch, Pos: pattern.Pos(sw.Pos())}
	for _, stmt := range sw.Body.List {
		cc, ok := stmt.(*ast.CaseClause)
		if !ok {
			continue
		}
		arm := pattern.Arm[*types.TypeName]{Pos: pattern.Pos(cc.Pos())}
		if cc.List == nil {
			arm.Default = true
		}
		for _, e := range cc.List {
			p := c.typePattern(e, sum)
			if arm.Pattern == nil {
				arm.Pattern = p
				continue
			}
			arm.Pattern = pattern.Or(arm.Pattern, p, arm.Pattern.Pos)
		}
		con.Arms = append(con.Arms, arm)
	}
	return con
}

func (c *checker) typePattern(e ast.Expr, sum *types.TypeName) *pattern.Syntax[*types.TypeName] {
	pos := pattern.Pos(e.Pos())
	tv, ok := c.pass.TypesInfo.Types[e]
	if !ok {
		return &pattern.Syntax[*types.TypeName]{Kind: pattern.SynUnknown, Pos: pos}
	}
	if tv.IsNil() {
		return pattern.Null[*types.TypeName](pos)
	}
	if obj := typeName(tv.Type); obj != nil {
		if _, isPtr := types.Unalias(tv.Type).(*types.Pointer); isPtr {
			obj = c.world.pointerCase(obj, sum)
		}
		return pattern.TypeRef(obj, pos)
	}
	// unnamed types
	return &pattern.Syntax[*types.TypeName]{Kind: pattern.SynType, Pos: pos}
}

// assertion flags x.(I) when no case of x's closed type implements I.
func (c *checker) assertion(ta *ast.TypeAssertExpr) {
	if ta.Type == nil {
		return
	}
	sum, ok := c.sumOf(ta.X)
	if !ok {
		return
	}
	target := typeName(c.pass.TypesInfo.TypeOf(ta.Type))
	if target == nil || !c.ts.IsInterface(target) {
		return
	}
	nodes := []pattern.Node[*types.TypeName]{pattern.NewTypeCheck(target, false, pattern.Pos(ta.Type.Pos()))}
	for _, f := range coverage.CheckIs(sum, c.world.cases(sum), nodes, c.ts, nil) {
		if f.Kind == coverage.FindingNoCaseImplements {
			c.reportFinding(f)
		}
	}
}

func (c *checker) reportFinding(f coverage.Finding[*types.TypeName]) {
	code := diag.CovUnreachablePattern
	if f.Kind == coverage.FindingNoCaseImplements {
		code = diag.CovNoCaseImplements
	}
	c.pass.Report(analysis.Diagnostic{
		Pos:      token.Pos(f.Pos),
		Category: code.ID(),
		Message:  report.FindingMessage(f, c.ts),
	})
}
