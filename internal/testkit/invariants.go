package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"enumclass/internal/ast"
	"enumclass/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed file:
// the file span lies within the content, every item lies within the file
// span and its parent, names lie within their items, constructs lie within
// their function and arms within their construct, in source order.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}
	if len(f.Items) > 0 && f.Span.Empty() {
		return fmt.Errorf("file span is empty but the file has %d items", len(f.Items))
	}

	var failure error
	b.Walk(fileID, func(id ast.ItemID, it *ast.Item) {
		if failure == nil {
			failure = checkItem(b, f, id, it)
		}
	})
	return failure
}

func checkItem(b *ast.Builder, f *ast.File, id ast.ItemID, it *ast.Item) error {
	if it.Span.Empty() {
		return fmt.Errorf("item %d (%s %s) has an empty span", id, it.Kind, it.Name)
	}
	if !within(it.Span, f.Span) {
		return fmt.Errorf("item %s span %v is outside file span %v", it.Name, it.Span, f.Span)
	}
	if !it.NameSpan.Empty() && !within(it.NameSpan, it.Span) {
		return fmt.Errorf("item %s name span %v is outside %v", it.Name, it.NameSpan, it.Span)
	}
	if it.Parent != ast.NoItemID {
		if parent := b.Items.Get(it.Parent); parent != nil && !within(it.Span, parent.Span) {
			return fmt.Errorf("item %s span %v is outside parent %s %v", it.Name, it.Span, parent.Name, parent.Span)
		}
	}
	for _, cid := range it.Constructs {
		con := b.Constructs.Get(cid)
		if con == nil {
			return fmt.Errorf("nil construct for id=%d", cid)
		}
		if !within(con.Span, it.Span) {
			return fmt.Errorf("%s span %v is outside fn %s %v", con.Kind, con.Span, it.Name, it.Span)
		}
		if !within(con.Keyword, con.Span) {
			return fmt.Errorf("%s keyword %v is outside %v", con.Kind, con.Keyword, con.Span)
		}
		var prev uint32
		for i, arm := range con.Arms {
			if !within(arm.Span, con.Span) {
				return fmt.Errorf("%s arm %d span %v is outside %v", con.Kind, i, arm.Span, con.Span)
			}
			if arm.Span.Start < prev {
				return fmt.Errorf("%s arm %d starts before the previous arm", con.Kind, i)
			}
			prev = arm.Span.Start
		}
	}
	return nil
}

func within(inner, outer source.Span) bool {
	return inner.File == outer.File && inner.Start >= outer.Start && inner.End <= outer.End
}
