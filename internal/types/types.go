package types

import "fmt"

// TypeID identifies an interned type. IDs are only meaningful within the
// Table that produced them.
type TypeID uint32

const NoTypeID TypeID = 0

// DeclID identifies a class or interface declaration.
type DeclID uint32

const NoDeclID DeclID = 0

type Kind uint8

const (
	KindInvalid Kind = iota
	KindObject
	KindInt
	KindFloat
	KindString
	KindBool
	KindNamed
	KindParam
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindObject:
		return "object"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNamed:
		return "named"
	case KindParam:
		return "param"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is an interned descriptor. Args is read-only.
type Type struct {
	Kind Kind
	Decl DeclID
	Args []TypeID
	// Param indexes the parameter table for KindParam.
	Param uint32
}

type DeclKind uint8

const (
	DeclClass DeclKind = iota
	DeclInterface
)

func (k DeclKind) String() string {
	if k == DeclInterface {
		return "interface"
	}
	return "class"
}

// Builtins holds the predeclared types.
type Builtins struct {
	Object TypeID
	Int    TypeID
	Float  TypeID
	String TypeID
	Bool   TypeID
}

// Field is a typed member of a class. Nullable comes from a `?` suffix.
type Field struct {
	Name     string
	Type     TypeID
	Nullable bool
}
