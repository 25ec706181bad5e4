/*
Package goanalyzer checks type switches over closed interfaces in Go code.

# Closed interfaces

An interface becomes a closed sum type when its declaration carries the
directive comment

	//enumclass:closed
	type Shape interface{ isShape() }

Its cases are the named, non-interface types declared in the same package
that implement it, with either a value or a pointer receiver. A closed
interface implemented by other closed interfaces of the same package is a
nested hierarchy: the cases of the inner interface are spliced into the
outer one.

A case implemented through value receivers can be stored in the interface
both as T and as *T, and a type switch clause for one form does not catch
the other. Such a type contributes two cases, T and *T. A type implementing
the interface only through pointer receivers is a single case, written *T.

The case list of every closed interface is exported as a fact, so packages
importing Shape are checked against the same closed world.

# Type switches

A type switch whose operand has a closed interface type must handle every
case, either explicitly or through a default clause. The analyzer also
reports clauses that can never match because earlier clauses already
handled every type they name, and interface clauses that no case
implements. A type assertion x.(I) to an interface no case implements is
reported as well.

Interface values can be nil. With the -nil flag, a switch also has to
handle nil, through a "case nil" or a default clause.

Missing cases come with a suggested fix that appends one clause per
unhandled case.
*/
package goanalyzer
