package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"enumclass/internal/diag"
	"enumclass/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
	added, removed  *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:     mk(color.FgRed, color.Bold),
		warn:    mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		code:    mk(color.Bold),
		gutter:  mk(color.FgBlue, color.Bold),
		caret:   mk(color.FgMagenta, color.Bold),
		note:    mk(color.FgCyan),
		added:   mk(color.FgGreen),
		removed: mk(color.FgRed),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

var titleCase = cases.Title(language.English)

// Pretty writes diagnostics for humans, in the order of bag.Items():
//
//	Warning[EC2002]: Switch is not exhaustive. Unhandled cases: Square.
//	  --> shapes.ec:8:5
//	   |
//	 8 |     switch s {
//	   |     ^^^^^^
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := titleCase.String(strings.ToLower(d.Severity.String()))
	fmt.Fprintf(w, "%s%s %s\n",
		p.severity(d.Severity).Sprint(sev),
		p.code.Sprintf("[%s]:", d.Code.ID()),
		d.Message)

	start, _ := fs.Resolve(d.Primary)
	gutterWidth := len(strconv.Itoa(int(start.Line) + opts.Context))
	pad := strings.Repeat(" ", gutterWidth)
	fmt.Fprintf(w, "%s%s %s:%d:%d\n", pad, p.gutter.Sprint("-->"), formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col)
	writeSnippet(w, fs, d.Primary, opts.Context, gutterWidth, p, p.caret)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "%s %s %s (%s:%d:%d)\n", pad, p.gutter.Sprint("="),
				p.note.Sprint("note:")+" "+n.Msg, formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col)
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			label := f.Title
			if f.ID != "" {
				label += " (" + f.ID + ")"
			}
			fmt.Fprintf(w, "%s %s %s %s\n", pad, p.gutter.Sprint("="), p.note.Sprint("fix:"), label)
			if opts.ShowPreview {
				writePreview(w, fs, f, pad, p)
			}
		}
	}
}

// writeSnippet prints the lines of sp with context and underlines the
// primary range on its first line.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context, gutterWidth int, p palette, caret *color.Color) {
	file := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	empty := strings.Repeat(" ", gutterWidth)
	fmt.Fprintf(w, "%s %s\n", empty, p.gutter.Sprint("|"))

	first := max(1, int(start.Line)-context)
	last := int(start.Line) + context
	for ln := first; ln <= last; ln++ {
		if ln > int(start.Line) && ln > len(file.LineIdx)+1 {
			break
		}
		line, err := safecast.Conv[uint32](ln)
		if err != nil {
			break
		}
		text := strings.ReplaceAll(file.GetLine(line), "\t", "    ")
		fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", gutterWidth, ln), p.gutter.Sprint("|"), text)
		if ln != int(start.Line) {
			continue
		}
		raw := file.GetLine(start.Line)
		s0 := min(len(raw), int(start.Col)-1)
		prefix := visualWidth(raw[:s0])
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			width = max(1, visualWidth(raw[s0:max(s0, min(len(raw), int(end.Col)-1))]))
		} else if end.Line > start.Line {
			width = max(1, visualWidth(raw[s0:]))
		}
		fmt.Fprintf(w, "%s %s %s%s\n", empty, p.gutter.Sprint("|"), strings.Repeat(" ", prefix), caret.Sprint(strings.Repeat("^", width)))
	}
}

// visualWidth is the terminal width of s, with tabs expanded to four
// columns as in writeSnippet.
func visualWidth(s string) int {
	return runewidth.StringWidth(strings.ReplaceAll(s, "\t", "    "))
}

func writePreview(w io.Writer, fs *source.FileSet, f diag.Fix, pad string, p palette) {
	pv, err := buildFixPreview(fs, f)
	if err != nil {
		return
	}
	for _, l := range pv.before {
		fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("|"), p.removed.Sprint("- "+l))
	}
	for _, l := range pv.after {
		fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("|"), p.added.Sprint("+ "+l))
	}
}

// Short writes one line per diagnostic: path:line:col: severity CODE: message.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs, d.Primary.File, mode), start.Line, start.Col,
			strings.ToLower(d.Severity.String()), d.Code.ID(), d.Message)
	}
}
