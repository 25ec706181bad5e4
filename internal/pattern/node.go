package pattern

// Pos is an opaque source handle owned by the front end.
type Pos uint64

const NoPos Pos = 0

// Kind tags a Node.
type Kind uint8

const (
	Wildcard Kind = iota
	NullCheck
	TypeCheck
	Opaque
)

func (k Kind) String() string {
	switch k {
	case Wildcard:
		return "wildcard"
	case NullCheck:
		return "null"
	case TypeCheck:
		return "type"
	case Opaque:
		return "opaque"
	}
	return "unknown"
}

// Node is one normalized pattern. Type and Partial are only meaningful for
// TypeCheck nodes.
type Node[T comparable] struct {
	Kind    Kind
	Type    T
	Partial bool
	Pos     Pos
}

func NewWildcard[T comparable](pos Pos) Node[T] {
	return Node[T]{Kind: Wildcard, Pos: pos}
}

func NewNullCheck[T comparable](pos Pos) Node[T] {
	return Node[T]{Kind: NullCheck, Pos: pos}
}

func NewTypeCheck[T comparable](t T, partial bool, pos Pos) Node[T] {
	return Node[T]{Kind: TypeCheck, Type: t, Partial: partial, Pos: pos}
}

func NewOpaque[T comparable](pos Pos) Node[T] {
	return Node[T]{Kind: Opaque, Pos: pos}
}
