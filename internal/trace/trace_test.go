package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "ERROR", "Phase", "detail", "debug"} {
		l, err := ParseLevel(name)
		if err != nil || !strings.EqualFold(l.String(), name) {
			t.Fatalf("ParseLevel(%q) = %v, %v", name, l, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeFailure, false},
		{LevelError, ScopePhase, false},
		{LevelError, ScopeFailure, true},
		{LevelPhase, ScopeRun, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeConstruct, false},
		{LevelDebug, ScopeConstruct, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Fatalf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	root := Begin(tr, ScopeRun, "check", 0)
	file := Begin(tr, ScopeFile, "file:a.ec", root.ID())
	Point(tr, ScopeConstruct, "switch", "", file.ID())
	file.WithExtra("constructs", "2").End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[0], "→ check") || !strings.Contains(lines[1], "  → file:a.ec") {
		t.Fatalf("begin lines = %q", lines[:2])
	}
	if !strings.Contains(lines[2], "← file:a.ec") || !strings.HasSuffix(lines[2], "{constructs=2}") {
		t.Fatalf("file end = %q", lines[2])
	}
	if !strings.Contains(lines[3], "← check (ok)") {
		t.Fatalf("root end = %q", lines[3])
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopePhase, "parse", 0).End("")
	var ev map[string]any
	for i, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if ev["name"] != "parse" || ev["scope"] != "phase" {
			t.Fatalf("event = %v", ev)
		}
	}
	if ev["kind"] != "end" {
		t.Fatalf("last kind = %v", ev["kind"])
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context should carry Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Fatal("tracer not propagated")
	}
	sp := Begin(tr, ScopeRun, "run", 0)
	if ParentFrom(WithParent(ctx, sp)) != sp.ID() {
		t.Fatal("parent not propagated")
	}
}

func TestDisabledSpansAreInert(t *testing.T) {
	sp := Begin(Nop, ScopeRun, "run", 0)
	if sp.ID() != 0 || sp.WithExtra("k", "v").End("") != 0 {
		t.Fatal("nop span should be inert")
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}
