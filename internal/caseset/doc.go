// Package caseset resolves the leaf cases of a closed type.
//
// A closed type owns an ordered list of direct cases. A direct case is a
// type declared inside the closed type whose declared base belongs to the
// same type family. A case that is itself closed is a nested hierarchy and
// is replaced by its own leaves. Anything else nested inside the closed
// type is ignored.
//
// The package is generic over the host's type handle so both the .ec front
// end and the Go analyzer share it.
package caseset
