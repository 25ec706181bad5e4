package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"enumclass/internal/coverage"
	"enumclass/internal/diag"
	"enumclass/internal/project"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

const shapesSrc = `@closed
class Shape {
    class Circle : Shape { radius: float }
    class Square : Shape { side: float }
    class Triangle : Shape { }
}
fn f(s: Shape) {
    switch s {
        case Circle c:
            break;
    }
}
`

const colorSrc = `@closed
class Color {
    class Red : Color { }
    class Green : Color { }
}
fn g(c: Color) -> int {
    return c switch { Red => 1, Green => 2 };
}
`

const wantShapes = "warning EC2002 a.ec:8:5 Switch is not exhaustive. Unhandled cases: Square, Triangle."

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.ec"), shapesSrc)
	writeFile(t, filepath.Join(dir, "sub", "b.ec"), colorSrc)
	writeFile(t, filepath.Join(dir, ".hidden", "c.ec"), "class {")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a source")
	return dir
}

func defaultOptions() Options {
	return Options{Jobs: 2, Coverage: coverage.DefaultOptions(), Fixes: true}
}

func golden(res *Result) string {
	return diag.FormatGoldenDiagnostics(res.Bag.Items(), res.FileSet, false)
}

func TestDiagnoseDirectory(t *testing.T) {
	res, err := Diagnose(context.Background(), sampleDir(t), defaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := golden(res); got != wantShapes {
		t.Fatalf("diagnostics:\n%s", got)
	}
	if len(res.Files) != 2 {
		t.Fatalf("files = %d", len(res.Files))
	}
	if !strings.HasSuffix(filepath.ToSlash(res.Files[1].Path), "sub/b.ec") {
		t.Fatalf("second file = %s", res.Files[1].Path)
	}
	if a := res.Files[1].Analyses; len(a) != 1 || !a[0].Exhaustive {
		t.Fatalf("analyses = %+v", a)
	}
	if len(res.Bag.Items()[0].Fixes) != 1 {
		t.Fatal("expected a fix on the exhaustiveness warning")
	}
}

func TestDiagnoseSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "only.ec")
	writeFile(t, path, colorSrc)
	res, err := Diagnose(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 || len(res.Files) != 1 {
		t.Fatalf("files = %d diagnostics = %d", len(res.Files), res.Bag.Len())
	}
}

func TestNoSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "readme.md"), "#")
	if _, err := Diagnose(context.Background(), dir, defaultOptions()); !errors.Is(err, ErrNoSources) {
		t.Fatalf("err = %v", err)
	}
	if _, err := Diagnose(context.Background(), filepath.Join(dir, "missing.ec"), defaultOptions()); err == nil {
		t.Fatal("expected error for a missing path")
	}
}

func TestSeverityOverrides(t *testing.T) {
	dir := sampleDir(t)
	manifestPath := filepath.Join(dir, project.ManifestName)
	writeFile(t, manifestPath, "[severity]\nEC2002 = \"error\"\nEC9999 = \"warning\"\n")
	m, err := project.Load(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	opts := defaultOptions()
	opts.Manifest = m
	res, err := Diagnose(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := "error EC2002 a.ec:8:5 Switch is not exhaustive. Unhandled cases: Square, Triangle.\n" +
		"warning PRJ7002 enumclass.toml:1:1 [severity] EC9999: unknown diagnostic code"
	if got := golden(res); got != want {
		t.Fatalf("diagnostics:\n%s\nwant:\n%s", got, want)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("override to error not applied")
	}
}

func TestSeverityOff(t *testing.T) {
	dir := sampleDir(t)
	manifestPath := filepath.Join(dir, project.ManifestName)
	writeFile(t, manifestPath, "[severity]\nEC2002 = \"off\"\n")
	m, err := project.Load(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	opts := defaultOptions()
	opts.Manifest = m
	res, err := Diagnose(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("diagnostics:\n%s", golden(res))
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := sampleDir(t)
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := defaultOptions()
	opts.Cache = cache
	first, err := Diagnose(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Diagnose(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	for _, fr := range first.Files {
		if fr.Cached {
			t.Fatalf("%s: unexpected cache hit on first run", fr.Path)
		}
	}
	for _, fr := range second.Files {
		if !fr.Cached {
			t.Fatalf("%s: expected cache hit", fr.Path)
		}
	}
	if golden(first) != golden(second) {
		t.Fatalf("cached diagnostics differ:\n%s\n---\n%s", golden(first), golden(second))
	}
	d1, d2 := first.Bag.Items()[0], second.Bag.Items()[0]
	if len(d2.Fixes) != 1 || d2.Fixes[0].Edits[0] != d1.Fixes[0].Edits[0] {
		t.Fatalf("fix not restored: %+v", d2.Fixes)
	}
	if len(second.Files[0].Closed) != 1 || len(second.Files[0].Closed[0].Cases) != 3 {
		t.Fatalf("closed = %+v", second.Files[0].Closed)
	}

	// A different option set misses the cache.
	opts.Coverage.WildcardCoversNull = false
	third, err := Diagnose(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Fatal("cache key ignores options")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
}

func TestProgressEvents(t *testing.T) {
	events := make(chan Event, 64)
	opts := defaultOptions()
	opts.Progress = events
	if _, err := Diagnose(context.Background(), sampleDir(t), opts); err != nil {
		t.Fatal(err)
	}
	close(events)
	seen := map[string][]Status{}
	for ev := range events {
		seen[ev.File] = append(seen[ev.File], ev.Status)
	}
	if len(seen) != 2 {
		t.Fatalf("files = %v", seen)
	}
	for file, sts := range seen {
		if sts[0] != StatusQueued || !sts[len(sts)-1].Terminal() {
			t.Fatalf("%s: statuses = %v", file, sts)
		}
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Diagnose(ctx, sampleDir(t), defaultOptions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestCases(t *testing.T) {
	res, err := Cases(context.Background(), sampleDir(t), defaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if all := res.ClosedTypes(""); len(all) != 2 {
		t.Fatalf("closed types = %+v", all)
	}
	got := res.ClosedTypes("Color")
	if len(got) != 1 || got[0].Type.Name != "Color" {
		t.Fatalf("Color = %+v", got)
	}
	var names []string
	for _, c := range got[0].Type.Cases {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "Color.Red,Color.Green" {
		t.Fatalf("cases = %v", names)
	}
	for _, d := range res.Bag.Items() {
		if len(d.Fixes) != 0 {
			t.Fatal("Cases must not compute fixes")
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.CovUnreachablePattern, source.Span{}, "a"))
	bag.Add(diag.New(diag.SevWarning, diag.CovSwitchExprNotExhaustive, source.Span{}, "b"))
	bag.Add(diag.New(diag.SevWarning, diag.DeclNoCases, source.Span{}, "c"))
	applyOverrides(bag, map[diag.Code]project.Override{
		diag.CovUnreachablePattern:      {Off: true},
		diag.CovSwitchExprNotExhaustive: {Severity: diag.SevError},
	})
	items := bag.Items()
	if len(items) != 2 || items[0].Severity != diag.SevError || items[1].Severity != diag.SevWarning {
		t.Fatalf("items = %+v", items)
	}
}

func TestTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.ec")
	writeFile(t, path, "class A { }")
	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(res.Tokens); n != 5 || res.Tokens[n-1].Kind != token.EOF {
		t.Fatalf("tokens = %+v", res.Tokens)
	}
}
