package driver

import (
	"context"
	"strings"

	"enumclass/internal/sema"
)

// ClosedListing is one closed type together with the file declaring it.
type ClosedListing struct {
	Path string
	Type sema.ClosedType
}

// Cases resolves the closed types declared under path. Diagnostics are
// still collected so callers can report broken declarations.
func Cases(ctx context.Context, path string, opts Options) (*Result, error) {
	opts.Fixes = false
	opts.Progress = nil
	return Diagnose(ctx, path, opts)
}

// ClosedTypes lists closed types in file order. A non-empty name keeps
// only types whose full or last-segment name matches.
func (r *Result) ClosedTypes(name string) []ClosedListing {
	if r == nil {
		return nil
	}
	var out []ClosedListing
	for _, fr := range r.Files {
		for _, ct := range fr.Closed {
			if name != "" && ct.Name != name && lastSegment(ct.Name) != name {
				continue
			}
			out = append(out, ClosedListing{Path: fr.Path, Type: ct})
		}
	}
	return out
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
