package sema

import (
	"enumclass/internal/ast"
	"enumclass/internal/coverage"
	"enumclass/internal/pattern"
	"enumclass/internal/report"
	"enumclass/internal/types"
)

// checkConstruct analyzes con when its scrutinee is a closed class.
func (c *checker) checkConstruct(con *ast.Construct, fs *fnScope) {
	sum, nullable, ok := c.scrutineeType(con.Scrutinee, con.Locals, fs)
	if !ok || !c.tb.IsClosed(sum) {
		return
	}
	cases := c.cache.Cases(sum, c.tb, c.tb)
	lowered := c.lowerConstruct(con, fs.sc)
	nodes := pattern.Normalize(lowered)

	adapter := &report.Adapter[types.TypeID]{
		Namer:    c.tb,
		Locate:   c.locate,
		Reporter: c.rep,
	}
	if c.opts.Fixes && c.opts.File != nil {
		adapter.Fixer = &caseFixer{src: c.opts.File, con: con, tb: c.tb}
	}
	summary := Analysis{Kind: con.Kind, Span: con.Span, SumType: c.tb.DisplayName(sum)}

	if con.Kind == ast.IsExpr {
		findings := coverage.CheckIs(sum, cases, nodes, c.tb, adapter.Sink())
		summary.Exhaustive = true
		summary.Findings = len(findings)
		c.result.Analyses = append(c.result.Analyses, summary)
		return
	}

	r := coverage.Analyze(coverage.Input[types.TypeID]{
		SumType:  sum,
		Cases:    cases,
		Patterns: nodes,
		Nullable: nullable,
	}, c.tb, c.opts.Coverage, adapter.Sink())
	summary.Exhaustive = r.Exhaustive()
	summary.Findings = len(r.Findings)
	for _, m := range r.Unmatched() {
		summary.Missing = append(summary.Missing, c.tb.DisplayName(m))
	}
	// an empty switch statement is a no-op, not a coverage bug
	if !(con.Kind == ast.SwitchStmt && len(con.Arms) == 0) {
		adapter.ReportExhaustiveness(lowered.Kind, con.Keyword, &r)
	}
	c.result.Analyses = append(c.result.Analyses, summary)
}
