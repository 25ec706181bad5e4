package caseset

import (
	"slices"
	"sync"
)

// Resolve flattens a descriptor into its leaf cases. Declaration order is
// kept and every leaf appears once.
func Resolve[T comparable](d *Descriptor[T]) []T {
	if d == nil {
		return nil
	}
	seen := make(map[T]struct{})
	out := make([]T, 0, len(d.Cases))
	var walk func(*Descriptor[T])
	walk = func(d *Descriptor[T]) {
		for _, c := range d.Cases {
			if c.Nested != nil {
				walk(c.Nested)
				continue
			}
			if _, dup := seen[c.Type]; dup {
				continue
			}
			seen[c.Type] = struct{}{}
			out = append(out, c.Type)
		}
	}
	walk(d)
	return out
}

// Specializer rebuilds family-level cases for a concrete instantiation.
type Specializer[T comparable] interface {
	// TypeArgs returns the arguments t was instantiated with; nil for
	// non-generic types and for unbound generic definitions.
	TypeArgs(t T) []T
	// Instantiate applies args to the family-level case c.
	Instantiate(c T, args []T) (T, bool)
}

// Specialize maps family-level cases onto the scrutinee's type arguments.
// Cases that cannot be instantiated are kept as they are.
func Specialize[T comparable](cases []T, scrutinee T, s Specializer[T]) []T {
	if s == nil {
		return cases
	}
	args := s.TypeArgs(scrutinee)
	if len(args) == 0 {
		return cases
	}
	out := make([]T, len(cases))
	for i, c := range cases {
		if inst, ok := s.Instantiate(c, args); ok {
			out[i] = inst
			continue
		}
		out[i] = c
	}
	return out
}

// Cache memoizes resolution per type family. Safe for concurrent use.
type Cache[T comparable] struct {
	mu       sync.Mutex
	byFamily map[T][]T
}

func NewCache[T comparable]() *Cache[T] {
	return &Cache[T]{byFamily: make(map[T][]T)}
}

// Cases resolves the leaves of scrutinee's family once, then specializes
// them for scrutinee. The returned slice is owned by the caller.
func (c *Cache[T]) Cases(scrutinee T, h Hierarchy[T], s Specializer[T]) []T {
	fam := h.Family(scrutinee)
	c.mu.Lock()
	leaves, ok := c.byFamily[fam]
	if !ok {
		leaves = Resolve(Build(fam, h))
		c.byFamily[fam] = leaves
	}
	c.mu.Unlock()
	return Specialize(slices.Clone(leaves), scrutinee, s)
}
