package sema

import (
	"strconv"
	"strings"

	"enumclass/internal/ast"
	"enumclass/internal/coverage"
	"enumclass/internal/diag"
	"enumclass/internal/fix"
	"enumclass/internal/pattern"
	"enumclass/internal/report"
	"enumclass/internal/source"
	"enumclass/internal/token"
	"enumclass/internal/types"
)

// caseFixer inserts the missing arms of one switch before its closing
// brace, matching the indentation already in use.
type caseFixer struct {
	src *source.File
	con *ast.Construct
	tb  *types.Table
}

func (f *caseFixer) RemainingCases(kind pattern.ConstructKind, r *coverage.Report[types.TypeID]) (diag.Fix, bool) {
	if f.con.Close.Empty() {
		return diag.Fix{}, false
	}
	labels := f.labels(r)
	if len(labels) == 0 {
		return diag.Fix{}, false
	}
	stmt := kind == pattern.SwitchStatement

	var edits []diag.FixEdit
	if !stmt && len(f.con.Arms) > 0 && !f.con.TrailingComma {
		edits = append(edits, f.insert(f.con.Arms[len(f.con.Arms)-1].End, ","))
	}

	closeOff := f.con.Close.Start
	lineStart := f.lineStart(closeOff)
	var b strings.Builder
	if isBlank(f.src.Content[lineStart:closeOff]) {
		armIndent := f.armIndent()
		body := armIndent + indentUnit(armIndent)
		for _, l := range labels {
			b.WriteString(armIndent)
			if stmt {
				b.WriteString("case " + l + ":\n")
				b.WriteString(body + "todo();\n")
				b.WriteString(body + "break;\n")
			} else {
				b.WriteString(l + " => todo(),\n")
			}
		}
		edits = append(edits, f.insert(lineStart, b.String()))
	} else {
		if closeOff > 0 && !isBlank(f.src.Content[closeOff-1:closeOff]) {
			b.WriteByte(' ')
		}
		for _, l := range labels {
			if stmt {
				b.WriteString("case " + l + ": todo(); break; ")
			} else {
				b.WriteString(l + " => todo(), ")
			}
		}
		edits = append(edits, f.insert(closeOff, b.String()))
	}

	return fix.New("Add remaining cases", edits, fix.WithID(report.FixAddRemainingCases), fix.Preferred()), true
}

// labels renders the null pattern, if missing, followed by one
// declaration pattern per unmatched case.
func (f *caseFixer) labels(r *coverage.Report[types.TypeID]) []string {
	var out []string
	if r.MissingNullCheck {
		out = append(out, "null")
	}
	used := make(map[string]bool)
	for _, c := range r.Unmatched() {
		simple := f.tb.DisplayName(c)
		if d, ok := f.tb.DeclOf(c); ok {
			simple = f.tb.Decl(d).Name
		}
		out = append(out, f.tb.DisplayName(c)+" "+variableName(simple, used))
	}
	return out
}

func variableName(caseName string, used map[string]bool) string {
	base := report.ToCamelCase(caseName)
	if token.IsKeyword(base) || base == "_" {
		base += "Value"
	}
	name := base
	for i := 2; used[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	used[name] = true
	return name
}

func (f *caseFixer) insert(off uint32, text string) diag.FixEdit {
	return fix.Insert(f.src.ID, off, text)
}

// armIndent is the indentation of the first arm, or one level deeper than
// the switch keyword's line when there are no arms.
func (f *caseFixer) armIndent() string {
	if len(f.con.Arms) > 0 {
		return f.indentAt(f.con.Arms[0].Span.Start)
	}
	outer := f.indentAt(f.con.Keyword.Start)
	return outer + indentUnit(outer)
}

func (f *caseFixer) lineStart(off uint32) uint32 {
	for off > 0 && f.src.Content[off-1] != '\n' {
		off--
	}
	return off
}

func (f *caseFixer) indentAt(off uint32) string {
	start := f.lineStart(off)
	end := start
	for end < uint32(len(f.src.Content)) && (f.src.Content[end] == ' ' || f.src.Content[end] == '\t') {
		end++
	}
	return string(f.src.Content[start:end])
}

func indentUnit(indent string) string {
	if strings.Contains(indent, "\t") {
		return "\t"
	}
	return "    "
}

func isBlank(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}
