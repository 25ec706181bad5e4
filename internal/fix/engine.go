package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"enumclass/internal/diag"
	"enumclass/internal/source"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects which fixes Apply uses.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first preferred fix, or the first fix.
	ApplyModeOnce ApplyMode = iota
	ApplyModeAll
	// ApplyModeID applies the single candidate whose ID is TargetID.
	ApplyModeID
)

type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes the new contents without writing files.
	DryRun bool
}

// Candidate is one fix of one diagnostic. ID is unique within a run:
// "<fix id>@<path>:<line>:<col>".
type Candidate struct {
	ID    string
	Title string
	Diag  diag.Diagnostic
	Fix   diag.Fix
	order int
}

type AppliedFix struct {
	ID        string
	Title     string
	Code      diag.Code
	Message   string
	EditCount int
}

type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange holds the new content of one modified file.
type FileChange struct {
	Path      string
	File      source.FileID
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

// Candidates lists the fixes carried by diagnostics in position order.
func Candidates(fs *source.FileSet, diagnostics []diag.Diagnostic) []Candidate {
	var out []Candidate
	seen := make(map[string]int)
	for _, d := range diagnostics {
		for i, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			kind := f.ID
			if kind == "" {
				kind = fmt.Sprintf("%s-%d", d.Code.ID(), i)
			}
			id := kind + "@" + position(fs, d.Primary)
			if n := seen[id]; n > 0 {
				seen[id]++
				id = fmt.Sprintf("%s#%d", id, n+1)
			} else {
				seen[id] = 1
			}
			out = append(out, Candidate{ID: id, Title: f.Title, Diag: d, Fix: f, order: len(out)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Diag.Primary, out[j].Diag.Primary
		if pi.File != pj.File {
			return pi.File < pj.File
		}
		if pi.Start != pj.Start {
			return pi.Start < pj.Start
		}
		if out[i].Fix.IsPreferred != out[j].Fix.IsPreferred {
			return out[i].Fix.IsPreferred
		}
		return out[i].order < out[j].order
	})
	return out
}

func position(fs *source.FileSet, sp source.Span) string {
	if fs == nil || int(sp.File) >= fs.Len() {
		return "?"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", fs.Get(sp.File).FormatPath("relative", fs.BaseDir()), start.Line, start.Col)
}

// Apply selects fixes from diagnostics according to opts and applies their
// edits. Fixes overlapping an already applied edit are skipped.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, errors.New("fix: FileSet is nil")
	}
	cands := Candidates(fs, diagnostics)
	selected, skipped := selectCandidates(cands, opts)
	result.Skipped = append(result.Skipped, skipped...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied := make(map[source.FileID][]diag.FixEdit)
	for _, c := range selected {
		if reason := checkEdits(fs, applied, c.Fix.Edits); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{ID: c.ID, Title: c.Title, Reason: reason})
			continue
		}
		for _, e := range c.Fix.Edits {
			applied[e.Span.File] = append(applied[e.Span.File], e)
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:        c.ID,
			Title:     c.Title,
			Code:      c.Diag.Code,
			Message:   c.Diag.Message,
			EditCount: len(c.Fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	for fileID, edits := range applied {
		file := fs.Get(fileID)
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      file.FormatPath("relative", fs.BaseDir()),
			File:      fileID,
			EditCount: len(edits),
			Content:   ApplyEdits(file.Content, edits),
		})
	}
	sort.Slice(result.FileChanges, func(i, j int) bool {
		return result.FileChanges[i].Path < result.FileChanges[j].Path
	})
	if opts.DryRun {
		return result, nil
	}
	for _, ch := range result.FileChanges {
		file := fs.Get(ch.File)
		if file.Flags&source.FileVirtual != 0 {
			continue
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, restoreEncoding(file, ch.Content), mode); err != nil {
			return result, fmt.Errorf("write %s: %w", file.Path, err)
		}
	}
	return result, nil
}

func selectCandidates(cands []Candidate, opts ApplyOptions) ([]Candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, c := range cands {
			if c.ID == opts.TargetID {
				return []Candidate{c}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		return cands, nil
	}
	if len(cands) == 0 {
		return nil, nil
	}
	for _, c := range cands {
		if c.Fix.IsPreferred {
			return []Candidate{c}, nil
		}
	}
	return cands[:1], nil
}

// checkEdits validates edits against the original file contents and the
// edits already accepted, returning a skip reason or "".
func checkEdits(fs *source.FileSet, applied map[source.FileID][]diag.FixEdit, edits []diag.FixEdit) string {
	for i, e := range edits {
		if int(e.Span.File) >= fs.Len() {
			return "edit targets an unknown file"
		}
		content := fs.Get(e.Span.File).Content
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(content) {
			return "edit span out of range"
		}
		if e.OldText != "" && string(content[e.Span.Start:e.Span.End]) != e.OldText {
			return "existing text does not match expected content"
		}
		for _, prev := range applied[e.Span.File] {
			if spansConflict(prev.Span, e.Span) {
				return "conflicts with a previously applied fix"
			}
		}
		for _, other := range edits[:i] {
			if other.Span.File == e.Span.File && spansConflict(other.Span, e.Span) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// spansConflict treats spans as half-open. Two insertions never conflict;
// an insertion conflicts with a range strictly containing its offset.
func spansConflict(a, b source.Span) bool {
	switch {
	case a.Empty() && b.Empty():
		return false
	case a.Empty():
		return b.Start < a.Start && a.Start < b.End
	case b.Empty():
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// restoreEncoding undoes the BOM stripping and CRLF normalization done when
// the file was loaded.
func restoreEncoding(file *source.File, content []byte) []byte {
	if file.Flags&source.FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if file.Flags&source.FileHadBOM != 0 {
		content = append([]byte("\xef\xbb\xbf"), content...)
	}
	return content
}

// ApplyEdits returns content with non-overlapping edits applied. Insertions
// at the same offset keep their given order.
func ApplyEdits(content []byte, edits []diag.FixEdit) []byte {
	sorted := make([]diag.FixEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Span.Start < sorted[j].Span.Start })
	out := make([]byte, 0, len(content))
	pos := uint32(0)
	for _, e := range sorted {
		out = append(out, content[pos:e.Span.Start]...)
		out = append(out, e.NewText...)
		pos = e.Span.End
	}
	return append(out, content[pos:]...)
}
