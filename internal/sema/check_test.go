package sema

import (
	"slices"
	"sort"
	"strings"
	"testing"

	"enumclass/internal/ast"
	"enumclass/internal/coverage"
	"enumclass/internal/diag"
	"enumclass/internal/lexer"
	"enumclass/internal/parser"
	"enumclass/internal/source"
)

type checked struct {
	res Result
	bag *diag.Bag
	fs  *source.FileSet
	src *source.File
}

func check(t *testing.T, src string) checked {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ec", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{})
	pr := parser.ParseFile(lx, b, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse errors:\n%s", diag.FormatGoldenDiagnostics(bag.Items(), fs, false))
	}
	res := Check(b, pr.File, Options{
		Reporter: rep,
		File:     fs.Get(id),
		Coverage: coverage.DefaultOptions(),
		Fixes:    true,
	})
	return checked{res: res, bag: bag, fs: fs, src: fs.Get(id)}
}

func (c checked) golden() string {
	return diag.FormatGoldenDiagnostics(c.bag.Items(), c.fs, false)
}

func (c checked) codes() []string {
	out := make([]string, 0, c.bag.Len())
	for _, d := range c.bag.Items() {
		out = append(out, d.Code.ID())
	}
	sort.Strings(out)
	return out
}

func (c checked) wantGolden(t *testing.T, want string) {
	t.Helper()
	if got := c.golden(); got != strings.TrimSpace(want) {
		t.Fatalf("diagnostics mismatch\n got:\n%s\nwant:\n%s", got, strings.TrimSpace(want))
	}
}

// applyFix applies the edits of the first fix found on a diagnostic.
func (c checked) applyFix(t *testing.T) string {
	t.Helper()
	for _, d := range c.bag.Items() {
		if len(d.Fixes) == 0 {
			continue
		}
		edits := slices.Clone(d.Fixes[0].Edits)
		sort.SliceStable(edits, func(i, j int) bool { return edits[i].Span.Start > edits[j].Span.Start })
		out := string(c.src.Content)
		for _, e := range edits {
			out = out[:e.Span.Start] + e.NewText + out[e.Span.End:]
		}
		return out
	}
	t.Fatal("no diagnostic carries a fix")
	return ""
}

const shapes = `@closed
class Shape {
    class Circle : Shape { radius: float }
    class Square : Shape { side: float }
    class Triangle : Shape { }
}
`

func TestExhaustiveSwitchIsQuiet(t *testing.T) {
	c := check(t, shapes+`
fn area(s: Shape) -> float {
    switch s {
        case Shape.Circle c:
            return 1;
        case Square:
        case Triangle t:
            return 2;
    }
    return s switch { Circle => 1, Square or Triangle => 2 };
}
`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", c.golden())
	}
	if len(c.res.Analyses) != 2 || !c.res.Analyses[0].Exhaustive || !c.res.Analyses[1].Exhaustive {
		t.Fatalf("analyses = %+v", c.res.Analyses)
	}
}

func TestSwitchStatementNotExhaustive(t *testing.T) {
	c := check(t, shapes+`fn f(s: Shape) {
    switch s {
        case Circle c:
            break;
    }
}
`)
	c.wantGolden(t, `
warning EC2002 test.ec:8:5 Switch is not exhaustive. Unhandled cases: Square, Triangle.
`)
	a := c.res.Analyses[0]
	if a.Exhaustive || a.SumType != "Shape" || strings.Join(a.Missing, ",") != "Shape.Square,Shape.Triangle" {
		t.Fatalf("analysis = %+v", a)
	}
}

func TestSwitchExpressionPartialCases(t *testing.T) {
	c := check(t, shapes+`fn f(s: Shape) -> int {
    return s switch { Circle { radius: 0 } => 0, Square => 1 };
}
`)
	c.wantGolden(t, `
warning EC2001 test.ec:8:14 Switch is not exhaustive. Unhandled cases: Circle, Triangle. Some of these are already being matched on, but only partially: Circle.
`)
}

func TestGuardedArmsArePartial(t *testing.T) {
	c := check(t, shapes+`fn f(s: Shape) {
    switch s {
        case Circle c when c.radius > 1:
        case Square q when q.side > 1:
        case Triangle t when true:
            break;
    }
}
`)
	c.wantGolden(t, `
warning EC2002 test.ec:8:5 Switch is not exhaustive. The following cases are being matched on, but only partially: Circle, Square, Triangle.
`)
}

func TestUnreachablePatterns(t *testing.T) {
	c := check(t, shapes+`fn f(s: Shape) -> int {
    let a = s switch { Circle => 1, _ => 2, Square => 3 };
    switch s {
        case Circle:
        case Square:
        case Triangle:
            break;
        case Shape x:
            break;
    }
    return a;
}
`)
	c.wantGolden(t, `
warning EC2003 test.ec:8:45 Unreachable pattern. This pattern has already been handled by previous matches
warning EC2003 test.ec:14:14 Unreachable pattern. This pattern has already been handled by previous matches
`)
}

func TestDefaultAfterAllCases(t *testing.T) {
	c := check(t, shapes+`fn f(s: Shape) -> int {
    return s switch { Circle => 1, Square => 2, Triangle => 3, _ => 4 };
}
`)
	c.wantGolden(t, `
warning EC2003 test.ec:8:64 Unreachable pattern. All enum cases have already been handled
`)
}

func TestNullableScrutinee(t *testing.T) {
	c := check(t, shapes+`class Holder { shape: Shape? }
fn f(h: Holder) -> int {
    return h.shape switch { Circle => 1, Square => 2, Triangle => 3 };
}
fn g(h: Holder) -> int {
    return h.shape switch { null => 0, Circle => 1, Square => 2, Triangle => 3 };
}
`)
	c.wantGolden(t, `
warning EC2001 test.ec:9:20 Switch is not exhaustive. The value being switched on can be null, but none of the arms check for it
`)
}

func TestLocalsShadowParameters(t *testing.T) {
	c := check(t, shapes+`fn f(s: Holder) {
    let s: Shape = make();
    switch s {
        case Circle:
            break;
    }
}
class Holder { }
`)
	if got := c.codes(); strings.Join(got, ",") != "EC2002" {
		t.Fatalf("codes = %v\n%s", got, c.golden())
	}
}

func TestUnknownScrutineeIsSkipped(t *testing.T) {
	c := check(t, shapes+`fn f() {
    switch mystery { case Circle: break; }
    let n: int = 1;
    switch n { case 1: break; }
}
`)
	if c.bag.Len() != 0 || len(c.res.Analyses) != 0 {
		t.Fatalf("diagnostics:\n%s\nanalyses = %+v", c.golden(), c.res.Analyses)
	}
}

func TestIsPatternOnInterface(t *testing.T) {
	c := check(t, shapes+`interface IRound { }
fn f(s: Shape) {
    if (s is IRound) { }
    if (s is Circle or Square) { }
}
`)
	c.wantGolden(t, `
warning EC2004 test.ec:9:14 None of the enum cases implement this interface (IRound)
`)
}

func TestInterfaceImplementedByCase(t *testing.T) {
	c := check(t, `interface IRound { }
@closed
class Shape {
    class Circle : Shape, IRound { }
    class Square : Shape { }
}
fn f(s: Shape) -> int {
    return s switch { IRound => 1, Square => 2 };
}
`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", c.golden())
	}
}

func TestGenericCases(t *testing.T) {
	c := check(t, `@closed
class Option<T> {
    class Some : Option<T> { value: T }
    class None : Option<T> { }
}
fn f(o: Option<int>) -> int {
    return o switch { Option<int>.Some s => 1 };
}
`)
	c.wantGolden(t, `
warning EC2001 test.ec:7:14 Switch is not exhaustive. Unhandled cases: None.
`)
	a := c.res.Analyses[0]
	if a.SumType != "Option<int>" || len(a.Missing) != 1 || a.Missing[0] != "Option<int>.None" {
		t.Fatalf("analysis = %+v", a)
	}
}

func TestNestedClosedClasses(t *testing.T) {
	c := check(t, `@closed
class Shape {
    class Circle : Shape { }
    @closed class Polygon : Shape {
        class Triangle : Polygon { }
        class Quad : Polygon { }
    }
}
fn f(s: Shape) {
    let p: Shape.Polygon = s;
    switch s {
        case Circle:
        case Triangle:
            break;
    }
    switch p { case Triangle: case Quad: break; }
}
`)
	if got := c.codes(); strings.Join(got, ",") != "EC2002" {
		t.Fatalf("codes = %v\n%s", got, c.golden())
	}
	if len(c.res.Analyses) != 2 || c.res.Analyses[0].Missing[0] != "Shape.Polygon.Quad" || !c.res.Analyses[1].Exhaustive {
		t.Fatalf("analyses = %+v", c.res.Analyses)
	}
	var names []string
	for _, ct := range c.res.Closed {
		names = append(names, ct.Name+"="+strings.Join(caseNames(ct), "|"))
	}
	want := "Shape=Shape.Circle|Shape.Polygon.Triangle|Shape.Polygon.Quad;Shape.Polygon=Shape.Polygon.Triangle|Shape.Polygon.Quad"
	if strings.Join(names, ";") != want {
		t.Fatalf("closed = %v", names)
	}
}

func caseNames(ct ClosedType) []string {
	out := make([]string, len(ct.Cases))
	for i, c := range ct.Cases {
		out[i] = c.Name
	}
	return out
}

func TestDeclarationRules(t *testing.T) {
	c := check(t, `@closed
class Shape {
    class Circle : Shape { }
    class Inner { }
    class Box<U> : Shape { }
}
class Outside : Shape { }
@closed
class Option<T> {
    class Some : Option<int> { }
    class None : Option<T> { }
}
@closed
class Empty { }
@closed
interface IShape { }
`)
	c.wantGolden(t, `
warning EC1030 test.ec:4:11 Nested type does not extend the enum class it is part of. Therefore, it will not be considered a "case" of the enum class. If this is intentional, you can safely suppress this warning.
error EC1007 test.ec:5:15 Enum case may not declare type parameters. Any type parameter should be declared on the parent enum class.
error EC1001 test.ec:7:7 Cannot extend enum class outside of its definition. Enum cases must be placed directly within their base class.
error EC1008 test.ec:10:18 Enum case must extend parent class verbatim. Expected base class to be `+"`Option<T>`, found `Option<int>`"+` instead.
warning EC1031 test.ec:14:7 Enum class does not contain any cases and can therefore not be instantiated
error EC1009 test.ec:15:1 Interface IShape cannot be closed. Only classes can declare enum cases.
`)
}

func TestCaselessClosedClassArmsUnreachable(t *testing.T) {
	c := check(t, `@closed
class Empty { }
fn f(e: Empty) {
    switch e {
        case Empty:
            break;
        default:
            break;
    }
}
`)
	want := []string{"EC1031", "EC2003", "EC2003"}
	if got := c.codes(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("codes = %v, want %v\n%s", got, want, c.golden())
	}
}

func TestDeclarationErrors(t *testing.T) {
	c := check(t, `class A : B { }
class B : A { }
class C { }
class C { }
class D : int { }
class E : Missing { }
@frozen class F { }
`)
	want := []string{"SEM5001", "SEM5003", "SEM5005", "SEM5006", "SYN4009"}
	got := slices.Compact(c.codes())
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("codes = %v, want %v\n%s", got, want, c.golden())
	}
}
