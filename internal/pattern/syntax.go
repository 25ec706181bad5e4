package pattern

// SyntaxKind tags a Syntax node.
type SyntaxKind uint8

const (
	SynUnknown    SyntaxKind = iota
	SynDiscard               // _
	SynVar                   // var x
	SynNull                  // null
	SynType                  // T, T x
	SynConstant              // literal or a name that is not a type
	SynRecursive             // T(p, q) { f: p }, (p, q), { f: p }
	SynParen                 // (p)
	SynOr                    // p or q
	SynAnd                   // p and q
	SynNot                   // not p
	SynRelational            // < 3
	SynList                  // [p, ..]
)

var syntaxNames = [...]string{
	SynUnknown:    "unknown",
	SynDiscard:    "discard",
	SynVar:        "var",
	SynNull:       "null",
	SynType:       "type",
	SynConstant:   "constant",
	SynRecursive:  "recursive",
	SynParen:      "paren",
	SynOr:         "or",
	SynAnd:        "and",
	SynNot:        "not",
	SynRelational: "relational",
	SynList:       "list",
}

func (k SyntaxKind) String() string {
	if int(k) < len(syntaxNames) {
		return syntaxNames[k]
	}
	return "unknown"
}

// Syntax is a pattern as written, with types already bound by the front end.
//
// HasType is false when a SynType or SynRecursive node names no type, or
// names one the front end could not resolve. Sub holds the operands:
// the inner pattern for SynParen and SynNot, left and right for SynOr and
// SynAnd, and all positional then property sub-patterns for SynRecursive.
type Syntax[T comparable] struct {
	Kind    SyntaxKind
	Pos     Pos
	Type    T
	HasType bool
	Sub     []*Syntax[T]
}

func Discard[T comparable](pos Pos) *Syntax[T] {
	return &Syntax[T]{Kind: SynDiscard, Pos: pos}
}

func Null[T comparable](pos Pos) *Syntax[T] {
	return &Syntax[T]{Kind: SynNull, Pos: pos}
}

func TypeRef[T comparable](t T, pos Pos) *Syntax[T] {
	return &Syntax[T]{Kind: SynType, Type: t, HasType: true, Pos: pos}
}

func Or[T comparable](left, right *Syntax[T], pos Pos) *Syntax[T] {
	return &Syntax[T]{Kind: SynOr, Pos: pos, Sub: []*Syntax[T]{left, right}}
}

func And[T comparable](left, right *Syntax[T], pos Pos) *Syntax[T] {
	return &Syntax[T]{Kind: SynAnd, Pos: pos, Sub: []*Syntax[T]{left, right}}
}

// Recursive builds a shape pattern; pass hasType=false for untyped shapes.
func Recursive[T comparable](t T, hasType bool, pos Pos, subs ...*Syntax[T]) *Syntax[T] {
	return &Syntax[T]{Kind: SynRecursive, Type: t, HasType: hasType, Pos: pos, Sub: subs}
}

// ConstructKind tells which construct a sequence of arms came from.
type ConstructKind uint8

const (
	SwitchStatement ConstructKind = iota
	SwitchExpression
	IsPattern
	TypeSwitch
)

func (k ConstructKind) String() string {
	switch k {
	case SwitchStatement:
		return "switch statement"
	case SwitchExpression:
		return "switch expression"
	case IsPattern:
		return "is pattern"
	case TypeSwitch:
		return "type switch"
	}
	return "construct"
}

// Arm is one arm, case label or default label.
type Arm[T comparable] struct {
	Pattern *Syntax[T]
	Default bool
	Guarded bool
	Pos     Pos
}

// Construct is a complete match construct.
type Construct[T comparable] struct {
	Kind ConstructKind
	Pos  Pos
	Arms []Arm[T]
}
