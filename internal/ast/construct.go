package ast

import "enumclass/internal/source"

type ConstructKind uint8

const (
	SwitchStmt ConstructKind = iota
	SwitchExpr
	IsExpr
)

func (k ConstructKind) String() string {
	switch k {
	case SwitchStmt:
		return "switch statement"
	case SwitchExpr:
		return "switch expression"
	case IsExpr:
		return "is expression"
	}
	return "construct"
}

// Path is a scrutinee of the form `name(.field)*`.
type Path struct {
	Segments []string
	Span     source.Span
}

func (p Path) IsZero() bool { return len(p.Segments) == 0 }

type Arm struct {
	Pattern PatternID
	Default bool
	Guarded bool
	// Span covers the arm from its first token through its pattern and guard.
	Span source.Span
	// End is the offset just past the arm's body or result expression.
	End uint32
}

type Construct struct {
	Kind ConstructKind
	Fn   ItemID
	// Keyword is the span of `switch` or `is`.
	Keyword   source.Span
	Span      source.Span
	Scrutinee Path
	Arms      []Arm
	// Close is the closing brace of a switch; empty for `is`.
	Close source.Span
	// TrailingComma reports whether the last expression arm ends with ','.
	TrailingComma bool
	// Locals is how many of the function's locals are in scope.
	Locals int
}

type Constructs struct {
	Arena *Arena[Construct]
}

func NewConstructs(capHint uint) *Constructs {
	return &Constructs{Arena: NewArena[Construct](capHint)}
}

func (c *Constructs) New(con Construct) ConstructID {
	return ConstructID(c.Arena.Allocate(con))
}

func (c *Constructs) Get(id ConstructID) *Construct {
	return c.Arena.Get(uint32(id))
}
