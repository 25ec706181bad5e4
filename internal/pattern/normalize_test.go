package pattern

import (
	"fmt"
	"strings"
	"testing"
)

func render(nodes []Node[string]) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n.Kind {
		case TypeCheck:
			if n.Partial {
				parts = append(parts, fmt.Sprintf("type(%s,partial)", n.Type))
			} else {
				parts = append(parts, fmt.Sprintf("type(%s)", n.Type))
			}
		default:
			parts = append(parts, n.Kind.String())
		}
	}
	return strings.Join(parts, " ")
}

func syn(k SyntaxKind, subs ...*Syntax[string]) *Syntax[string] {
	return &Syntax[string]{Kind: k, Sub: subs}
}

func TestNormalizePattern(t *testing.T) {
	circle := TypeRef("Circle", 1)
	square := TypeRef("Square", 2)
	unresolved := &Syntax[string]{Kind: SynType}

	cases := []struct {
		name string
		in   *Syntax[string]
		want string
	}{
		{"discard", Discard[string](1), "wildcard"},
		{"var", syn(SynVar), "wildcard"},
		{"null", Null[string](1), "null"},
		{"type", circle, "type(Circle)"},
		{"unresolved type", unresolved, "opaque"},
		{"constant", syn(SynConstant), "opaque"},
		{"relational", syn(SynRelational), "opaque"},
		{"list", syn(SynList), "opaque"},
		{"not", syn(SynNot, circle), "opaque"},
		{"paren", syn(SynParen, circle), "type(Circle)"},
		{"or", Or(circle, square, 3), "type(Circle) type(Square)"},
		{"or with null", Or(Null[string](1), circle, 3), "null type(Circle)"},
		{"nested or", Or(Or(circle, square, 3), Discard[string](4), 5), "type(Circle) type(Square) wildcard"},
		{"and of wildcards", And(Discard[string](1), syn(SynVar), 2), "wildcard"},
		{"and with type", And(circle, Discard[string](1), 2), "opaque"},
		{"typed shape, no subs", Recursive("Circle", true, 1), "type(Circle)"},
		{"typed shape, wildcard subs", Recursive("Circle", true, 1, Discard[string](2), syn(SynVar)), "type(Circle)"},
		{"typed shape, narrowing sub", Recursive("Circle", true, 1, Discard[string](2), syn(SynConstant)), "type(Circle,partial)"},
		{"typed shape, nested and-wildcard", Recursive("Circle", true, 1, And(Discard[string](1), Discard[string](2), 3)), "type(Circle)"},
		{"unresolved typed shape", Recursive("", false, 1, syn(SynConstant)), "opaque"},
		{"empty untyped shape", Recursive("", false, 1), "wildcard"},
		{"untyped shape with subs", Recursive("", false, 1, Discard[string](2)), "opaque"},
		{"unknown", syn(SynUnknown), "opaque"},
		{"nil", nil, "opaque"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := render(NormalizePattern(c.in)); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestNormalizeConstructAppliesGuards(t *testing.T) {
	c := &Construct[string]{
		Kind: SwitchExpression,
		Arms: []Arm[string]{
			{Pattern: TypeRef("Circle", 1), Guarded: true},
			{Pattern: Or(TypeRef("Square", 2), Null[string](3), 4), Guarded: true},
			{Pattern: Discard[string](5), Guarded: true},
			{Pattern: TypeRef("Circle", 6)},
			{Default: true, Pos: 7},
		},
	}
	want := "type(Circle,partial) type(Square,partial) opaque opaque type(Circle) wildcard"
	if got := render(Normalize(c)); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizePreservesPositions(t *testing.T) {
	c := &Construct[string]{Arms: []Arm[string]{
		{Pattern: Or(TypeRef("A", 10), TypeRef("B", 20), 30), Guarded: true},
		{Default: true, Pos: 40},
	}}
	nodes := Normalize(c)
	var got []Pos
	for _, n := range nodes {
		got = append(got, n.Pos)
	}
	if fmt.Sprint(got) != "[10 20 40]" {
		t.Fatalf("positions = %v", got)
	}
}

func TestApplyGuardDoesNotAlias(t *testing.T) {
	in := []Node[string]{NewTypeCheck("A", false, 1)}
	_ = ApplyGuard(in)
	if in[0].Partial {
		t.Fatal("ApplyGuard mutated its input")
	}
}
