// Package sema binds a parsed .ec file and checks it.
//
// The pass runs in four steps: declare classes and interfaces, resolve
// their headers, validate closed hierarchies, then resolve function
// signatures and analyze every match construct whose scrutinee is a
// closed class. Coverage results go through report.Adapter, so sema only
// decides which constructs qualify and how patterns map to types.
package sema
