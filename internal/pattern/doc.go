// Package pattern turns the arms of a match construct into a flat sequence
// of coverage nodes.
//
// Front ends describe their patterns with the host-neutral Syntax tree and
// wrap them in a Construct (switch statement, switch expression, is-test or
// Go type switch). Normalize classifies every arm into Wildcard, NullCheck,
// TypeCheck or Opaque nodes in source order. When a pattern cannot be
// classified with certainty it becomes Opaque or a partial TypeCheck, never
// something that claims more coverage than it provides.
package pattern
