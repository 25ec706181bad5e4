// Package fuzztests holds fuzz harnesses for the .ec front end
// (source -> lexer -> parser -> sema). They look for panics, hangs and
// broken span invariants on arbitrary input.
//
// Seeds come from the .ec files under the repository testdata directory
// and from a few inline snippets.
package fuzztests
