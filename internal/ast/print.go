package ast

import "strings"

// FormatPattern renders a pattern back to canonical .ec syntax.
func (b *Builder) FormatPattern(id PatternID) string {
	var sb strings.Builder
	b.formatPattern(&sb, id)
	return sb.String()
}

func (b *Builder) formatPattern(sb *strings.Builder, id PatternID) {
	p := b.Patterns.Get(id)
	if p == nil {
		sb.WriteString("<?>")
		return
	}
	switch p.Kind {
	case PatDiscard:
		sb.WriteByte('_')
	case PatVar:
		sb.WriteString("var ")
		sb.WriteString(p.Designation)
	case PatNull:
		sb.WriteString("null")
	case PatConstant:
		sb.WriteString(p.Text)
	case PatRelational:
		sb.WriteString(p.Text)
		sb.WriteByte(' ')
		b.formatPattern(sb, p.Subs[0])
	case PatType, PatRecursive:
		p.Type.write(sb)
		if p.HasPosition {
			sb.WriteByte('(')
			for i, s := range p.Subs {
				if i > 0 {
					sb.WriteString(", ")
				}
				b.formatPattern(sb, s)
			}
			sb.WriteByte(')')
		}
		if p.HasProps {
			if !p.Type.IsZero() || p.HasPosition {
				sb.WriteByte(' ')
			}
			if len(p.Props) == 0 {
				sb.WriteString("{}")
			} else {
				sb.WriteString("{ ")
			}
			for i, prop := range p.Props {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(strings.Join(prop.Path, "."))
				sb.WriteString(": ")
				b.formatPattern(sb, prop.Pattern)
			}
			if len(p.Props) > 0 {
				sb.WriteString(" }")
			}
		}
		if p.Designation != "" {
			sb.WriteByte(' ')
			sb.WriteString(p.Designation)
		}
	case PatParen:
		sb.WriteByte('(')
		b.formatPattern(sb, p.Subs[0])
		sb.WriteByte(')')
	case PatOr, PatAnd:
		op := " or "
		if p.Kind == PatAnd {
			op = " and "
		}
		b.formatPattern(sb, p.Subs[0])
		sb.WriteString(op)
		b.formatPattern(sb, p.Subs[1])
	case PatNot:
		sb.WriteString("not ")
		b.formatPattern(sb, p.Subs[0])
	case PatList:
		sb.WriteByte('[')
		for i, s := range p.Subs {
			if i > 0 {
				sb.WriteString(", ")
			}
			b.formatPattern(sb, s)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString("<invalid>")
	}
}
