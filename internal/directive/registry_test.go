package directive

import (
	"testing"

	"enumclass/internal/source"
)

func TestCollectFromFile(t *testing.T) {
	src := "enum Shape { Circle, Square }\n" +
		"fn area(s: Shape) {\n" +
		"    switch s { // expect: EC2002\n" +
		"        Circle => {}\n" +
		"    }\n" +
		"    // expect: EC2003, EC2004\n" +
		"    // unrelated: comment\n" +
		"}\n"
	fs := source.NewFileSet()
	id := fs.AddVirtual("shapes.ec", []byte(src))

	reg := NewRegistry()
	reg.CollectFromFile(fs, id, "shapes.ec")

	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("got %d scenarios, want 2: %+v", len(all), all)
	}
	if all[0].Line != 3 || len(all[0].Codes) != 1 || all[0].Codes[0] != "EC2002" {
		t.Fatalf("first scenario = %+v", all[0])
	}
	if all[1].Line != 6 || len(all[1].Codes) != 2 || all[1].Codes[1] != "EC2004" {
		t.Fatalf("second scenario = %+v", all[1])
	}
	if all[1].Index != 1 {
		t.Fatalf("second index = %d, want 1", all[1].Index)
	}
	if got := all[0].Location(); got != "shapes.ec:3" {
		t.Fatalf("Location() = %q", got)
	}
	if !reg.Covers(id) {
		t.Fatalf("file not covered")
	}
}

func TestRegistryFilterByNamespace(t *testing.T) {
	reg := NewRegistry()
	reg.Add(&Scenario{Namespace: NamespaceExpect, Line: 1})
	reg.Add(&Scenario{Namespace: "other", Line: 2})

	if got := reg.FilterByNamespace([]string{NamespaceExpect}); len(got) != 1 || got[0].Line != 1 {
		t.Fatalf("filter expect = %+v", got)
	}
	if got := reg.FilterByNamespace(nil); len(got) != 2 {
		t.Fatalf("empty filter returned %d", len(got))
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d", reg.Len())
	}
}

func TestParseComment(t *testing.T) {
	cases := []struct {
		text  string
		ok    bool
		codes int
	}{
		{"// expect: EC2001", true, 1},
		{"//expect:EC2001,EC2003", true, 2},
		{"// expect:", false, 0},
		{"// expected: EC2001", false, 0},
		{"// just words", false, 0},
	}
	for _, tc := range cases {
		_, codes, ok := parseComment(tc.text)
		if ok != tc.ok || len(codes) != tc.codes {
			t.Fatalf("parseComment(%q) = %v, %v", tc.text, codes, ok)
		}
	}
}
