// Package coverage decides whether a sequence of normalized patterns covers
// every leaf case of a closed type, and which patterns can never match.
//
// Each case carries a State on the lattice None < Partial < Full. The
// analyzer scans the patterns once, left to right. Every step computes the
// next StateTable from the previous one, so the effect of a pattern on one
// case never depends on the order in which cases are visited. States only
// ever go up.
//
// Subtyping questions are delegated to the host through TypeSystem. The
// analyzer never fails: unrelated types are inert, Opaque nodes never grant
// coverage and an empty case set yields an exhaustive report.
package coverage
