package fuzztests

import (
	"testing"

	"enumclass/internal/diag"
	"enumclass/internal/lexer"
	"enumclass/internal/source"
	"enumclass/internal/token"
)

const maxFuzzInput = 1 << 16

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.ec", input))

		bag := diag.NewBag(64)
		toks := lexer.All(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}, KeepTrivia: true})
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF")
		}
		var prev uint32
		for i, tok := range toks {
			if tok.Span.Start < prev || tok.Span.End > uint32(len(input)) || tok.Span.Start > tok.Span.End {
				t.Fatalf("token %d (%s) has bad span %v after offset %d", i, tok.Kind, tok.Span, prev)
			}
			prev = tok.Span.End
		}
	})
}
