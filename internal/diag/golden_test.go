package diag

import (
	"testing"

	"enumclass/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	file := fs.Add("/workspace/testdata/shapes.ec", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     CovUnreachablePattern,
			Message:  "This pattern has already been handled by previous matches",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     CovSwitchExprNotExhaustive,
			Message:  "Unhandled cases:\nTriangle",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: file, Start: 2, End: 2}, Msg: "case declared here"}},
		},
	}

	want := "error EC2001 testdata/shapes.ec:1:1 Unhandled cases: Triangle\n" +
		"note EC2001 testdata/shapes.ec:2:1 case declared here\n" +
		"warning EC2003 testdata/shapes.ec:2:1 This pattern has already been handled by previous matches"
	if got := FormatGoldenDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestCodeIDRoundTrip(t *testing.T) {
	for _, c := range []Code{DeclNoCases, CovNoCaseImplements, LexBadNumber, SynExpectArrow, SemaUnresolvedType, IOLoadFileError, ProjManifestInvalid} {
		got, ok := ParseCode(c.ID())
		if !ok || got != c {
			t.Fatalf("ParseCode(%q) = %v,%v; want %v", c.ID(), got, ok, c)
		}
	}
	if _, ok := ParseCode("EC9999"); ok {
		t.Fatal("EC9999 must not parse")
	}
	if _, ok := ParseCode("SYN2003"); ok {
		t.Fatal("prefix/range mismatch must not parse")
	}
}

func TestBagCapSortDedup(t *testing.T) {
	b := NewBag(3)
	sp := source.Span{File: 0, Start: 5, End: 6}
	b.Add(New(SevWarning, CovUnreachablePattern, sp, "x"))
	b.Add(New(SevError, CovSwitchExprNotExhaustive, source.Span{Start: 1, End: 2}, "y"))
	b.Add(New(SevWarning, CovUnreachablePattern, sp, "x"))
	if b.Add(New(SevInfo, UnknownCode, sp, "over")) {
		t.Fatal("bag accepted diagnostic past its cap")
	}
	b.Sort()
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if b.Items()[0].Code != CovSwitchExprNotExhaustive {
		t.Fatalf("first = %s", b.Items()[0].Code.ID())
	}
	if !b.HasErrors() {
		t.Fatal("HasErrors = false")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	ReportWarning(r, CovUnreachablePattern, sp, "dup").Emit()
	ReportWarning(r, CovUnreachablePattern, sp, "dup").Emit()
	b := ReportError(r, CovSwitchStmtNotExhaustive, sp, "other").WithNote(sp, "n")
	b.Emit()
	b.Emit()
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}
