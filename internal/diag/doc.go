// Package diag defines the diagnostic model shared by the front ends, the
// coverage reporting adapter, the driver and the CLI.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: numeric identifier with a stable textual ID such as EC2001 (codes.go).
//   - Message: short, actionable text.
//   - Primary: the source.Span the finding points at.
//   - Notes: secondary spans that add context ("case declared here").
//   - Fixes: structured text edits that internal/fix can apply.
//
// Codes in the EC1xxx range belong to declaration validation of closed
// types, EC2xxx to exhaustiveness and reachability of match constructs.
// Lexer, parser, binder, IO and project codes use the LEX/SYN/SEM/IO/PRJ
// prefixes.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. ReportBuilder (ReportError, ReportWarning)
// lets them chain WithNote and WithFix before Emit. BagReporter collects into
// a capped Bag which supports sorting, deduplication and filtering.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt
// and fix application in internal/fix.
package diag
