package ast

import "enumclass/internal/source"

type PatternKind uint8

const (
	PatInvalid PatternKind = iota
	PatDiscard
	PatVar
	PatNull
	PatConstant
	// PatType is a bare type test or declaration pattern: `T` or `T name`.
	PatType
	// PatRecursive is a positional and/or property pattern, typed or not.
	PatRecursive
	PatParen
	PatOr
	PatAnd
	PatNot
	PatRelational
	PatList
)

var patternKindNames = [...]string{
	PatInvalid:    "invalid",
	PatDiscard:    "discard",
	PatVar:        "var",
	PatNull:       "null",
	PatConstant:   "constant",
	PatType:       "type",
	PatRecursive:  "recursive",
	PatParen:      "paren",
	PatOr:         "or",
	PatAnd:        "and",
	PatNot:        "not",
	PatRelational: "relational",
	PatList:       "list",
}

func (k PatternKind) String() string {
	if int(k) < len(patternKindNames) {
		return patternKindNames[k]
	}
	return "pattern"
}

// Property is a `Name.Path: pattern` clause of a recursive pattern.
type Property struct {
	Path    []string
	Span    source.Span
	Pattern PatternID
}

type Pattern struct {
	Kind PatternKind
	Span source.Span
	// Type is set for PatType and typed PatRecursive.
	Type TypeRef
	// Subs holds positional subpatterns, list elements, the operands of
	// or/and, or the single operand of not/paren.
	Subs  []PatternID
	Props []Property
	// HasProps distinguishes `T { }` from `T`.
	HasProps    bool
	HasPosition bool
	Designation string
	// Text is the literal or operator text of constant and relational patterns.
	Text string
}

type Patterns struct {
	Arena *Arena[Pattern]
}

func NewPatterns(capHint uint) *Patterns {
	return &Patterns{Arena: NewArena[Pattern](capHint)}
}

func (p *Patterns) New(pat Pattern) PatternID {
	return PatternID(p.Arena.Allocate(pat))
}

func (p *Patterns) Get(id PatternID) *Pattern {
	return p.Arena.Get(uint32(id))
}

// Children returns every direct subpattern in source order.
func (p *Pattern) Children() []PatternID {
	if len(p.Props) == 0 {
		return p.Subs
	}
	out := make([]PatternID, 0, len(p.Subs)+len(p.Props))
	out = append(out, p.Subs...)
	for _, prop := range p.Props {
		out = append(out, prop.Pattern)
	}
	return out
}
