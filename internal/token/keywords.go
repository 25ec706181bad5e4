package token

var keywords = map[string]Kind{
	"class":     KwClass,
	"interface": KwInterface,
	"fn":        KwFn,
	"let":       KwLet,
	"switch":    KwSwitch,
	"case":      KwCase,
	"default":   KwDefault,
	"when":      KwWhen,
	"is":        KwIs,
	"null":      KwNull,
	"var":       KwVar,
	"or":        KwOr,
	"and":       KwAnd,
	"not":       KwNot,
	"true":      KwTrue,
	"false":     KwFalse,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
}

// LookupKeyword reports whether ident is a reserved word. Keywords are
// case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsKeyword reports whether ident cannot be used as a name.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}
