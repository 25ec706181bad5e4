package goanalyzer

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"

	"enumclass/internal/coverage"
)

// remainingCases appends one clause per unhandled case before the closing
// brace of sw. There is no fix when the brace shares its line with code or
// when a case cannot be named from the file.
func (c *checker) remainingCases(sw *ast.TypeSwitchStmt, sum *types.TypeName, r *coverage.Report[*types.TypeName]) (analysis.SuggestedFix, bool) {
	rbrace := sw.Body.Rbrace
	file := c.fileOf(rbrace)
	if file == nil || !rbrace.IsValid() {
		return analysis.SuggestedFix{}, false
	}
	labels, ok := c.labels(file, sum, c.pass.TypesInfo.TypeOf(switchOperand(sw)), r)
	if !ok || len(labels) == 0 {
		return analysis.SuggestedFix{}, false
	}

	tf := c.pass.Fset.File(rbrace)
	content, err := c.pass.ReadFile(tf.Name())
	if err != nil {
		return analysis.SuggestedFix{}, false
	}
	lineStart := tf.LineStart(tf.Line(rbrace))
	indent := content[tf.Offset(lineStart):tf.Offset(rbrace)]
	if strings.TrimLeft(string(indent), " \t") != "" {
		return analysis.SuggestedFix{}, false
	}

	var b strings.Builder
	for _, l := range labels {
		b.Write(indent)
		b.WriteString("case " + l + ":\n")
		b.Write(indent)
		b.WriteString("\tpanic(\"not implemented\")\n")
	}
	return analysis.SuggestedFix{
		Message:   "Add remaining cases",
		TextEdits: []analysis.TextEdit{{Pos: lineStart, End: lineStart, NewText: []byte(b.String())}},
	}, true
}

func (c *checker) labels(file *ast.File, sum *types.TypeName, operand types.Type, r *coverage.Report[*types.TypeName]) ([]string, bool) {
	var out []string
	if r.MissingNullCheck {
		out = append(out, "nil")
	}
	args := typeArgs(operand)
	qual := c.qualifier(file)
	for _, cs := range r.Unmatched() {
		l, ok := c.caseLabel(cs, sum, args, qual)
		if !ok {
			return nil, false
		}
		out = append(out, l)
	}
	return out, true
}

// caseLabel spells cs as a type switch clause, in pointer form for pointer
// cases and when only *cs implements sum.
func (c *checker) caseLabel(cs, sum *types.TypeName, args []types.Type, qual types.Qualifier) (string, bool) {
	if cs.Type() == nil {
		return "", false
	}
	base, star := pointerBase(cs)
	if !star {
		base = cs
		_, star = implementation(cs, sum)
	}
	if base.Pkg() != c.pass.Pkg && !base.Exported() {
		return "", false
	}
	name := base.Name()
	if base.Pkg() != c.pass.Pkg {
		q := qual(base.Pkg())
		if q == "_" {
			return "", false
		}
		if q != "" {
			name = q + "." + name
		}
	}
	if named, ok := base.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
		if len(args) != named.TypeParams().Len() {
			return "", false
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = types.TypeString(a, qual)
			if strings.Contains(parts[i], "_.") {
				return "", false
			}
		}
		name += "[" + strings.Join(parts, ", ") + "]"
	}
	if star {
		name = "*" + name
	}
	return name, true
}

// qualifier names packages the way file imports them. Packages the file
// does not import come back as "_".
func (c *checker) qualifier(file *ast.File) types.Qualifier {
	return func(p *types.Package) string {
		if p == c.pass.Pkg {
			return ""
		}
		for _, spec := range file.Imports {
			path, err := strconv.Unquote(spec.Path.Value)
			if err != nil || path != p.Path() {
				continue
			}
			if spec.Name == nil {
				return p.Name()
			}
			if spec.Name.Name == "." {
				return ""
			}
			return spec.Name.Name
		}
		return "_"
	}
}

func (c *checker) fileOf(pos token.Pos) *ast.File {
	for _, f := range c.pass.Files {
		if f.FileStart <= pos && pos <= f.FileEnd {
			return f
		}
	}
	return nil
}
