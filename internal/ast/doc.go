// Package ast holds the arena-backed syntax tree of .ec files.
//
// Only declarations, parameter/local types and match constructs are kept.
// Function bodies are otherwise skimmed by the parser and leave no nodes.
package ast
