package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLit
	FloatLit
	StringLit

	KwClass     // class
	KwInterface // interface
	KwFn        // fn
	KwLet       // let
	KwSwitch    // switch
	KwCase      // case
	KwDefault   // default
	KwWhen      // when
	KwIs        // is
	KwNull      // null
	KwVar       // var
	KwOr        // or
	KwAnd       // and
	KwNot       // not
	KwTrue      // true
	KwFalse     // false
	KwReturn    // return
	KwIf        // if
	KwElse      // else
	KwWhile     // while

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Amp       // &
	Pipe      // |
	AndAnd    // &&
	OrOr      // ||
	Question  // ?
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Dot       // .
	DotDot    // ..
	Arrow     // ->
	FatArrow  // =>
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	At        // @
	Underscore
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	Ident:      "identifier",
	IntLit:     "integer literal",
	FloatLit:   "float literal",
	StringLit:  "string literal",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Percent:    "'%'",
	Assign:     "'='",
	EqEq:       "'=='",
	Bang:       "'!'",
	BangEq:     "'!='",
	Lt:         "'<'",
	LtEq:       "'<='",
	Gt:         "'>'",
	GtEq:       "'>='",
	Amp:        "'&'",
	Pipe:       "'|'",
	AndAnd:     "'&&'",
	OrOr:       "'||'",
	Question:   "'?'",
	Colon:      "':'",
	Semicolon:  "';'",
	Comma:      "','",
	Dot:        "'.'",
	DotDot:     "'..'",
	Arrow:      "'->'",
	FatArrow:   "'=>'",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
	LBracket:   "'['",
	RBracket:   "']'",
	At:         "'@'",
	Underscore: "'_'",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	for word, kw := range keywords {
		if kw == k {
			return "'" + word + "'"
		}
	}
	return "unknown"
}
