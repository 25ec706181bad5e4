package lexer_test

import (
	"testing"

	"enumclass/internal/diag"
	"enumclass/internal/lexer"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

func lexAll(t *testing.T, input string, keepTrivia bool) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ec", []byte(input))
	bag := diag.NewBag(0)
	toks := lexer.All(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}, KeepTrivia: keepTrivia})
	return toks[:len(toks)-1], bag
}

func expectKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	toks, bag := lexAll(t, input, false)
	if bag.Len() != 0 {
		t.Fatalf("%q: unexpected diagnostics: %v", input, bag.Items())
	}
	if len(toks) != len(want) {
		t.Fatalf("%q: got %d tokens, want %d (%v)", input, len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok.Kind != want[i] {
			t.Fatalf("%q: token %d = %v (%q), want %v", input, i, tok.Kind, tok.Text, want[i])
		}
	}
}

func TestClassDeclaration(t *testing.T) {
	expectKinds(t, "@closed class Shape { class Circle : Shape { radius: float; } }",
		token.At, token.Ident, token.KwClass, token.Ident, token.LBrace,
		token.KwClass, token.Ident, token.Colon, token.Ident, token.LBrace,
		token.Ident, token.Colon, token.Ident, token.Semicolon,
		token.RBrace, token.RBrace)
}

func TestNestedGenericClosers(t *testing.T) {
	expectKinds(t, "Option<Option<int>>",
		token.Ident, token.Lt, token.Ident, token.Lt, token.Ident, token.Gt, token.Gt)
}

func TestPatternPunctuation(t *testing.T) {
	expectKinds(t, "case Shape.Circle { Radius: > 1.5 } c when c != null => _,",
		token.KwCase, token.Ident, token.Dot, token.Ident, token.LBrace, token.Ident, token.Colon,
		token.Gt, token.FloatLit, token.RBrace, token.Ident, token.KwWhen, token.Ident,
		token.BangEq, token.KwNull, token.FatArrow, token.Underscore, token.Comma)
}

func TestUnderscoreIdentifiers(t *testing.T) {
	toks, _ := lexAll(t, "_ _x __ x_1", false)
	want := []token.Kind{token.Underscore, token.Ident, token.Ident, token.Ident}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d (%q) = %v, want %v", i, toks[i].Text, toks[i].Kind, k)
		}
	}
}

func TestNumbers(t *testing.T) {
	expectKinds(t, "1 1_000 0x1F 0b10 1.5 2e10 1..2",
		token.IntLit, token.IntLit, token.IntLit, token.IntLit, token.FloatLit, token.FloatLit,
		token.IntLit, token.DotDot, token.IntLit)
}

func TestNFCIdentifiers(t *testing.T) {
	// "é" precomposed vs "e" + combining acute
	toks, bag := lexAll(t, "caf\u00e9 cafe\u0301", false)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 2 || toks[0].Text != toks[1].Text {
		t.Fatalf("identifiers not normalized: %q vs %q", toks[0].Text, toks[1].Text)
	}
	if toks[1].Span.Len() != uint32(len("cafe\u0301")) {
		t.Fatalf("span must cover the source bytes, got %d", toks[1].Span.Len())
	}
}

func TestComments(t *testing.T) {
	toks, bag := lexAll(t, "/* a /* nested */ b */ // tail\nclass", true)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 1 || toks[0].Kind != token.KwClass {
		t.Fatalf("got %v", toks)
	}
	kinds := []token.TriviaKind{}
	for _, tr := range toks[0].Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaBlockComment, token.TriviaSpace, token.TriviaLineComment, token.TriviaNewline}
	if len(kinds) != len(want) {
		t.Fatalf("trivia = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("trivia = %v, want %v", kinds, want)
		}
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{"\"open", diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"1e+", diag.LexBadNumber},
		{"0x", diag.LexBadNumber},
		{"#", diag.LexUnknownChar},
		{"€", diag.LexUnknownChar},
	}
	for _, tc := range cases {
		_, bag := lexAll(t, tc.input, false)
		if bag.Len() != 1 || bag.Items()[0].Code != tc.code {
			t.Fatalf("%q: got %v, want one %s", tc.input, bag.Items(), tc.code.ID())
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("p.ec", []byte("a b"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if lx.Peek().Text != "a" || lx.Peek().Text != "a" {
		t.Fatal("Peek must be idempotent")
	}
	if lx.Next().Text != "a" || lx.Next().Text != "b" || lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("unexpected token sequence")
	}
}
