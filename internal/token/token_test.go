package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	for word, want := range map[string]Kind{"class": KwClass, "when": KwWhen, "null": KwNull, "or": KwOr} {
		got, ok := LookupKeyword(word)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v", word, got, ok)
		}
	}
	for _, word := range []string{"Class", "object", "int", "_", "closed"} {
		if IsKeyword(word) {
			t.Fatalf("%q must not be a keyword", word)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if !(Token{Kind: KwNull}).IsLiteral() || (Token{Kind: Ident}).IsLiteral() {
		t.Fatal("IsLiteral mismatch")
	}
	if !(Token{Kind: KwWhile}).IsKeyword() || (Token{Kind: Plus}).IsKeyword() {
		t.Fatal("IsKeyword mismatch")
	}
	if KwSwitch.String() != "'switch'" || FatArrow.String() != "'=>'" {
		t.Fatalf("String: %s %s", KwSwitch, FatArrow)
	}
}
