package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"enumclass/internal/diag"
	"enumclass/internal/fix"
	"enumclass/internal/source"
)

// fixPreview is the block of whole lines touched by a fix, before and after.
type fixPreview struct {
	before []string
	after  []string
}

// buildFixPreview renders the lines covered by all edits of f. Edits must
// target one file.
func buildFixPreview(fs *source.FileSet, f diag.Fix) (fixPreview, error) {
	if fs == nil || len(f.Edits) == 0 {
		return fixPreview{}, fmt.Errorf("nothing to preview")
	}
	fileID := f.Edits[0].Span.File
	lo, hi := f.Edits[0].Span.Start, f.Edits[0].Span.End
	for _, e := range f.Edits[1:] {
		if e.Span.File != fileID {
			return fixPreview{}, fmt.Errorf("fix spans several files")
		}
		lo, hi = min(lo, e.Span.Start), max(hi, e.Span.End)
	}
	file := fs.Get(fileID)
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fixPreview{}, fmt.Errorf("file too large: %w", err)
	}
	if hi > size {
		return fixPreview{}, fmt.Errorf("edit end %d out of range", hi)
	}
	startPos, endPos := fs.Resolve(source.Span{File: fileID, Start: lo, End: hi})
	blockStart := file.LineStart(startPos.Line)
	blockEnd := size
	if int(endPos.Line) <= len(file.LineIdx) {
		blockEnd = file.LineIdx[endPos.Line-1] + 1
	}

	rebased := make([]diag.FixEdit, len(f.Edits))
	for i, e := range f.Edits {
		e.Span.Start -= blockStart
		e.Span.End -= blockStart
		rebased[i] = e
	}
	original := file.Content[blockStart:blockEnd]
	return fixPreview{
		before: splitPreviewLines(string(original)),
		after:  splitPreviewLines(string(fix.ApplyEdits(original, rebased))),
	}, nil
}

func splitPreviewLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
