// Package token defines the lexical tokens of .ec files.
// Invariants:
//   - Token.Text is the source slice covered by Token.Span, except that
//     identifiers are NFC-normalized.
//   - Attributes are lexed as '@' (At) followed by Ident.
//   - Builtin type names (int, float, string, bool, object) are identifiers.
//   - ">>" is never produced; nested generic closers lex as two Gt tokens.
package token
