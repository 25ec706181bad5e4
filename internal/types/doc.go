// Package types is the nominal type table of the .ec front end.
//
// Every class, interface, type parameter and instantiation is interned to
// a TypeID. A generic declaration's definition type is the declaration
// applied to its own parameters. Nested declarations inherit the type
// parameters of their enclosing classes, so `Option<T>.Some` has the
// argument list [T] even though Some declares none.
//
// Table implements coverage.TypeSystem, caseset.Hierarchy and
// caseset.Specializer over TypeID.
package types
