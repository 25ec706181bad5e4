package ast

import "enumclass/internal/source"

type ItemKind uint8

const (
	ItemClass ItemKind = iota
	ItemInterface
	ItemFn
)

func (k ItemKind) String() string {
	switch k {
	case ItemClass:
		return "class"
	case ItemInterface:
		return "interface"
	case ItemFn:
		return "fn"
	}
	return "item"
}

type Attr struct {
	Name string
	Span source.Span
}

type TypeParam struct {
	Name string
	Span source.Span
}

// Binding is a named, typed slot: a field, a parameter or a local.
type Binding struct {
	Name string
	Span source.Span
	Type TypeRef
}

type Item struct {
	Kind     ItemKind
	Name     string
	NameSpan source.Span
	Span     source.Span
	// HeaderSpan runs from the keyword to the end of the base list.
	HeaderSpan source.Span
	Attrs      []Attr
	TypeParams []TypeParam
	// Bases are the declared supertypes of a class or interface, in source order.
	Bases []TypeRef
	// Members are the types nested directly in a class body.
	Members []ItemID
	Fields  []Binding

	Params     []Binding
	Result     TypeRef
	Locals     []Binding
	Constructs []ConstructID

	// Parent is the enclosing class for nested declarations.
	Parent ItemID
}

func (it *Item) HasAttr(name string) bool {
	for _, a := range it.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

type Items struct {
	Arena *Arena[Item]
}

func NewItems(capHint uint) *Items {
	return &Items{Arena: NewArena[Item](capHint)}
}

func (i *Items) New(kind ItemKind, sp source.Span, name string) ItemID {
	return ItemID(i.Arena.Allocate(Item{Kind: kind, Span: sp, Name: name}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}
