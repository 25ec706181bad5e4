package ast

import (
	"strings"

	"enumclass/internal/source"
)

// TypeSegment is one dotted component of a type reference, e.g. the
// "Option<int>" in "Option<int>.Some".
type TypeSegment struct {
	Name string
	Span source.Span
	Args []TypeRef
}

// TypeRef is a possibly qualified, possibly generic type name. The zero
// value means "absent".
type TypeRef struct {
	Segments []TypeSegment
	Nullable bool
	Span     source.Span
}

func (t TypeRef) IsZero() bool { return len(t.Segments) == 0 }

// Last returns the final segment's name.
func (t TypeRef) Last() string {
	if len(t.Segments) == 0 {
		return ""
	}
	return t.Segments[len(t.Segments)-1].Name
}

func (t TypeRef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t TypeRef) write(b *strings.Builder) {
	for i, seg := range t.Segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Name)
		if len(seg.Args) > 0 {
			b.WriteByte('<')
			for j, a := range seg.Args {
				if j > 0 {
					b.WriteString(", ")
				}
				a.write(b)
			}
			b.WriteByte('>')
		}
	}
	if t.Nullable {
		b.WriteByte('?')
	}
}
