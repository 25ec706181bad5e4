package report

import (
	"enumclass/internal/coverage"
	"enumclass/internal/diag"
	"enumclass/internal/pattern"
	"enumclass/internal/source"
)

// Locator maps pattern handles back to source spans.
type Locator func(pattern.Pos) source.Span

// Fixer builds the "Add remaining cases" edit for a host language.
type Fixer[T comparable] interface {
	RemainingCases(kind pattern.ConstructKind, r *coverage.Report[T]) (diag.Fix, bool)
}

const FixAddRemainingCases = "add-remaining-cases"

// Adapter turns coverage results into diagnostics.
type Adapter[T comparable] struct {
	Namer    Namer[T]
	Locate   Locator
	Reporter diag.Reporter
	Fixer    Fixer[T]
}

// Sink forwards findings to the reporter as they are produced.
func (a *Adapter[T]) Sink() coverage.Sink[T] {
	return a.ReportFinding
}

func (a *Adapter[T]) ReportFinding(f coverage.Finding[T]) {
	code := diag.CovUnreachablePattern
	if f.Kind == coverage.FindingNoCaseImplements {
		code = diag.CovNoCaseImplements
	}
	diag.ReportWarning(a.Reporter, code, a.Locate(f.Pos), FindingMessage(f, a.Namer)).Emit()
}

// NotExhaustiveCode picks the diagnostic code for kind; is-tests are never
// checked for exhaustiveness.
func NotExhaustiveCode(kind pattern.ConstructKind) (diag.Code, bool) {
	switch kind {
	case pattern.SwitchExpression:
		return diag.CovSwitchExprNotExhaustive, true
	case pattern.SwitchStatement, pattern.TypeSwitch:
		return diag.CovSwitchStmtNotExhaustive, true
	}
	return diag.UnknownCode, false
}

// ReportExhaustiveness emits EC2001/EC2002 at keyword when r is incomplete.
// The remaining-cases fix rides on the first diagnostic only.
func (a *Adapter[T]) ReportExhaustiveness(kind pattern.ConstructKind, keyword source.Span, r *coverage.Report[T]) int {
	code, ok := NotExhaustiveCode(kind)
	if !ok {
		return 0
	}
	msgs := NotExhaustiveMessages(r, a.Namer)
	for i, msg := range msgs {
		b := diag.ReportWarning(a.Reporter, code, keyword, msg)
		if i == 0 && a.Fixer != nil {
			if fix, ok := a.Fixer.RemainingCases(kind, r); ok {
				b.WithFix(fix)
			}
		}
		b.Emit()
	}
	return len(msgs)
}
