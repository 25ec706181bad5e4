package ast

import "enumclass/internal/source"

type Hints struct{ Files, Items, Patterns, Constructs uint }

type Builder struct {
	Files      *Files
	Items      *Items
	Patterns   *Patterns
	Constructs *Constructs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 4
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Patterns == 0 {
		hints.Patterns = 1 << 7
	}
	if hints.Constructs == 0 {
		hints.Constructs = 1 << 4
	}
	return &Builder{
		Files:      NewFiles(hints.Files),
		Items:      NewItems(hints.Items),
		Patterns:   NewPatterns(hints.Patterns),
		Constructs: NewConstructs(hints.Constructs),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) NewItem(kind ItemKind, sp source.Span, name string) ItemID {
	return b.Items.New(kind, sp, name)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Walk visits every item of file depth-first, nested types after their parent.
func (b *Builder) Walk(file FileID, visit func(ItemID, *Item)) {
	var rec func(ItemID)
	rec = func(id ItemID) {
		it := b.Items.Get(id)
		if it == nil {
			return
		}
		visit(id, it)
		for _, m := range it.Members {
			rec(m)
		}
	}
	for _, id := range b.Files.Get(file).Items {
		rec(id)
	}
}
