package directive

import (
	"bytes"
	"strings"
	"testing"

	"enumclass/internal/diag"
	"enumclass/internal/source"
)

const runnerSrc = "fn f(s: Shape) {\n" +
	"    switch s { // expect: EC2002\n" +
	"    }\n" +
	"}\n"

func spanOfLine(fs *source.FileSet, id source.FileID, line int) source.Span {
	content := fs.Get(id).Content
	var start uint32
	for l := 1; l < line; l++ {
		start += uint32(bytes.IndexByte(content[start:], '\n')) + 1
	}
	return source.Span{File: id, Start: start + 4, End: start + 10}
}

func setup(t *testing.T) (*source.FileSet, source.FileID, *Registry) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("f.ec", []byte(runnerSrc))
	reg := NewRegistry()
	reg.CollectFromFile(fs, id, "f.ec")
	if reg.Len() != 1 {
		t.Fatalf("collected %d scenarios", reg.Len())
	}
	return fs, id, reg
}

func TestRunnerPasses(t *testing.T) {
	fs, id, reg := setup(t)
	diags := []diag.Diagnostic{
		diag.New(diag.SevError, diag.CovSwitchStmtNotExhaustive, spanOfLine(fs, id, 2), "not exhaustive"),
	}
	var out bytes.Buffer
	res := NewRunner(reg, RunnerConfig{Output: &out}).Run(fs, diags)
	if !res.OK() || res.Passed != 1 {
		t.Fatalf("result = %+v\n%s", res, out.String())
	}
	if !strings.Contains(out.String(), "1 passed") {
		t.Fatalf("summary missing: %s", out.String())
	}
}

func TestRunnerMissingAndUnexpected(t *testing.T) {
	fs, id, reg := setup(t)
	diags := []diag.Diagnostic{
		// right code on the wrong line
		diag.New(diag.SevError, diag.CovSwitchStmtNotExhaustive, spanOfLine(fs, id, 3), "not exhaustive"),
	}
	var out bytes.Buffer
	res := NewRunner(reg, RunnerConfig{Output: &out}).Run(fs, diags)
	if res.Failed != 1 || res.Unexpected != 1 || res.OK() {
		t.Fatalf("result = %+v\n%s", res, out.String())
	}
	if !strings.Contains(out.String(), "FAIL f.ec:2") || !strings.Contains(out.String(), "UNEXPECTED") {
		t.Fatalf("output = %s", out.String())
	}
}

func TestRunnerIgnoresUncoveredFiles(t *testing.T) {
	fs, id, reg := setup(t)
	other := fs.AddVirtual("g.ec", []byte(runnerSrc))
	diags := []diag.Diagnostic{
		diag.New(diag.SevError, diag.CovSwitchStmtNotExhaustive, spanOfLine(fs, id, 2), "not exhaustive"),
		diag.New(diag.SevWarning, diag.CovUnreachablePattern, spanOfLine(fs, other, 2), "unreachable"),
	}
	res := NewRunner(reg, RunnerConfig{}).Run(fs, diags)
	if !res.OK() {
		t.Fatalf("result = %+v", res)
	}
}
