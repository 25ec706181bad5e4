package directive

import (
	"fmt"

	"enumclass/internal/source"
)

// NamespaceExpect lists the diagnostic codes reported on a line:
//
//	switch s { // expect: EC2002
const NamespaceExpect = "expect"

// Scenario is one directive comment.
type Scenario struct {
	// Namespace is the word before the colon, e.g. "expect".
	Namespace string

	// Index numbers the scenarios of one namespace within their file.
	Index int

	SourceFile string
	File       source.FileID
	// Line is the 1-based line carrying the comment.
	Line uint32

	// Codes are the diagnostic IDs named by the directive, e.g. "EC2002".
	Codes []string

	// Span covers the comment.
	Span source.Span
}

func (s *Scenario) Location() string {
	return fmt.Sprintf("%s:%d", s.SourceFile, s.Line)
}
