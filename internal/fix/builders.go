package fix

import (
	"enumclass/internal/diag"
	"enumclass/internal/source"
)

// Option mutates a fix during construction.
type Option func(*diag.Fix)

// Preferred marks the fix as the one editors should offer first.
func Preferred() Option {
	return func(f *diag.Fix) { f.IsPreferred = true }
}

// WithID sets the fix kind identifier, e.g. "add-remaining-cases".
func WithID(id string) Option {
	return func(f *diag.Fix) { f.ID = id }
}

// New bundles edits into one fix.
func New(title string, edits []diag.FixEdit, opts ...Option) diag.Fix {
	f := diag.Fix{Title: title, Edits: edits}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// Insert adds text at offset off of file.
func Insert(file source.FileID, off uint32, text string) diag.FixEdit {
	return diag.FixEdit{Span: source.Span{File: file, Start: off, End: off}, NewText: text}
}

// Replace swaps the bytes of span for text. A non-empty expect guards
// against stale spans.
func Replace(span source.Span, text, expect string) diag.FixEdit {
	return diag.FixEdit{Span: span, NewText: text, OldText: expect}
}

// Delete removes span.
func Delete(span source.Span, expect string) diag.FixEdit {
	return Replace(span, "", expect)
}
