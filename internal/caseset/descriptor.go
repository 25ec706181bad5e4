package caseset

// Hierarchy is the view of a host type system needed to build descriptors.
type Hierarchy[T comparable] interface {
	// Family strips type arguments, returning the generic definition.
	Family(t T) T
	IsClosed(t T) bool
	// Members lists the types declared directly inside t in declaration order.
	Members(t T) []T
	// DirectBase returns the declared supertype of t, if any.
	DirectBase(t T) (T, bool)
}

// Case is a direct case of a closed type. Nested is set when the case is a
// closed hierarchy of its own.
type Case[T comparable] struct {
	Type   T
	Nested *Descriptor[T]
}

func (c Case[T]) IsLeaf() bool { return c.Nested == nil }

// Descriptor describes one closed type and its direct cases.
type Descriptor[T comparable] struct {
	Type  T
	Cases []Case[T]
}

// Build derives the descriptor of root's family from h.
func Build[T comparable](root T, h Hierarchy[T]) *Descriptor[T] {
	return build(h.Family(root), h, make(map[T]struct{}))
}

func build[T comparable](root T, h Hierarchy[T], visiting map[T]struct{}) *Descriptor[T] {
	visiting[root] = struct{}{}
	defer delete(visiting, root)

	d := &Descriptor[T]{Type: root}
	for _, member := range h.Members(root) {
		if !IsDirectCase(root, member, h) {
			continue
		}
		c := Case[T]{Type: member}
		if h.IsClosed(member) {
			fam := h.Family(member)
			if _, cyclic := visiting[fam]; cyclic {
				continue
			}
			c.Nested = build(fam, h, visiting)
		}
		d.Cases = append(d.Cases, c)
	}
	return d
}

// IsDirectCase reports whether member, declared inside root, derives from
// root's family. Type arguments on the base are ignored.
func IsDirectCase[T comparable](root, member T, h Hierarchy[T]) bool {
	base, ok := h.DirectBase(member)
	return ok && h.Family(base) == h.Family(root)
}

// Leaves flattens d.
func (d *Descriptor[T]) Leaves() []T {
	return Resolve(d)
}
