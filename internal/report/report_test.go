package report

import (
	"strings"
	"testing"

	"enumclass/internal/coverage"
	"enumclass/internal/diag"
	"enumclass/internal/pattern"
	"enumclass/internal/source"
)

type plainNames struct{}

func (plainNames) DisplayName(t string) string { return t }

func TestFormatCaseList(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"Shape.Circle"}, "Circle"},
		{[]string{"Shape.Circle", "Shape.Square"}, "Circle, Square"},
		{[]string{"Shape.A", "Shape.B", "Shape.C"}, "A, B, C"},
		{[]string{"Shape.A", "Shape.B", "Shape.C", "Shape.D"}, "A, B, C, and 1 more"},
		{[]string{"Shape.A", "Shape.B", "Shape.C", "Shape.D", "Shape.E", "Shape.F"}, "A, B, C, and 3 more"},
		{[]string{"Other.Thing", "ShapeX.Y"}, "Other.Thing, ShapeX.Y"},
		{[]string{"Shape.Polygon.Triangle"}, "Polygon.Triangle"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := FormatCaseList("Shape", c.in); got != c.want {
			t.Fatalf("FormatCaseList(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestToCamelCase(t *testing.T) {
	for in, want := range map[string]string{
		"Circle":      "circle",
		"HTTPRequest": "httpRequest",
		"ABC":         "abc",
		"circle":      "circle",
		"A":           "a",
		"IRound":      "iRound",
		"":            "",
		"Ünicode":     "ünicode",
	} {
		if got := ToCamelCase(in); got != want {
			t.Fatalf("ToCamelCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func report(nullable, missingNull bool, states ...coverage.State) *coverage.Report[string] {
	r := &coverage.Report[string]{SumType: "Shape", Nullable: nullable, MissingNullCheck: missingNull}
	names := []string{"Shape.Circle", "Shape.Rectangle", "Shape.Triangle", "Shape.Square", "Shape.Oval"}
	for i, s := range states {
		r.Cases = append(r.Cases, coverage.CaseState[string]{Case: names[i], State: s})
	}
	return r
}

func TestNotExhaustiveMessages(t *testing.T) {
	cases := []struct {
		name string
		r    *coverage.Report[string]
		want []string
	}{
		{"complete", report(false, false, coverage.Full, coverage.Full), nil},
		{"untouched", report(false, false, coverage.Full, coverage.None),
			[]string{"Switch is not exhaustive. Unhandled cases: Rectangle."}},
		{"all partial", report(false, false, coverage.Partial, coverage.Full, coverage.Partial),
			[]string{"Switch is not exhaustive. The following cases are being matched on, but only partially: Circle, Triangle."}},
		{"mixed", report(false, false, coverage.Partial, coverage.None, coverage.Full),
			[]string{"Switch is not exhaustive. Unhandled cases: Circle, Rectangle. Some of these are already being matched on, but only partially: Circle."}},
		{"null only", report(true, true, coverage.Full),
			[]string{"Switch is not exhaustive. The value being switched on can be null, but none of the arms check for it"}},
		{"null and cases", report(true, true, coverage.None, coverage.None, coverage.None, coverage.None, coverage.None),
			[]string{
				"Switch is not exhaustive. The value being switched on can be null, but none of the arms check for it",
				"Switch is not exhaustive. Unhandled cases: Circle, Rectangle, Triangle, and 2 more.",
			}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NotExhaustiveMessages(c.r, plainNames{})
			if strings.Join(got, "\n") != strings.Join(c.want, "\n") {
				t.Fatalf("got %q\nwant %q", got, c.want)
			}
		})
	}
}

type stubFixer struct{ calls int }

func (f *stubFixer) RemainingCases(kind pattern.ConstructKind, r *coverage.Report[string]) (diag.Fix, bool) {
	f.calls++
	return diag.Fix{ID: FixAddRemainingCases, Title: "Add remaining cases"}, true
}

func TestAdapterReportsDiagnostics(t *testing.T) {
	bag := diag.NewBag(0)
	fixer := &stubFixer{}
	a := &Adapter[string]{
		Namer:    plainNames{},
		Locate:   func(p pattern.Pos) source.Span { return source.Span{Start: uint32(p), End: uint32(p) + 1} },
		Reporter: diag.BagReporter{Bag: bag},
		Fixer:    fixer,
	}
	sink := a.Sink()
	sink(coverage.Finding[string]{Kind: coverage.FindingAlreadyHandled, Pos: 4})
	sink(coverage.Finding[string]{Kind: coverage.FindingNoCaseImplements, Pos: 9, Type: "ISharp"})

	kw := source.Span{Start: 0, End: 6}
	if n := a.ReportExhaustiveness(pattern.SwitchExpression, kw, report(true, true, coverage.None)); n != 2 {
		t.Fatalf("emitted %d exhaustiveness diagnostics", n)
	}
	if n := a.ReportExhaustiveness(pattern.IsPattern, kw, report(true, true, coverage.None)); n != 0 {
		t.Fatal("is-patterns are never exhaustiveness-checked")
	}

	items := bag.Items()
	if len(items) != 4 {
		t.Fatalf("got %d diagnostics", len(items))
	}
	if items[0].Code != diag.CovUnreachablePattern || items[0].Primary.Start != 4 {
		t.Fatalf("first = %+v", items[0])
	}
	if items[1].Code != diag.CovNoCaseImplements || !strings.Contains(items[1].Message, "ISharp") {
		t.Fatalf("second = %+v", items[1])
	}
	if items[2].Code != diag.CovSwitchExprNotExhaustive || len(items[2].Fixes) != 1 {
		t.Fatalf("third = %+v", items[2])
	}
	if len(items[3].Fixes) != 0 || fixer.calls != 1 {
		t.Fatalf("fix must be attached once; calls=%d", fixer.calls)
	}
}

func TestNotExhaustiveCode(t *testing.T) {
	if c, _ := NotExhaustiveCode(pattern.TypeSwitch); c != diag.CovSwitchStmtNotExhaustive {
		t.Fatalf("type switch code = %s", c.ID())
	}
	if _, ok := NotExhaustiveCode(pattern.IsPattern); ok {
		t.Fatal("is-pattern has no exhaustiveness code")
	}
}
