package pattern

// Normalize flattens the arms of c into nodes in source order.
func Normalize[T comparable](c *Construct[T]) []Node[T] {
	if c == nil {
		return nil
	}
	out := make([]Node[T], 0, len(c.Arms))
	for _, arm := range c.Arms {
		out = append(out, NormalizeArm(arm)...)
	}
	return out
}

// NormalizeArm normalizes one arm, applying its guard.
func NormalizeArm[T comparable](arm Arm[T]) []Node[T] {
	if arm.Default {
		return []Node[T]{NewWildcard[T](arm.Pos)}
	}
	if arm.Pattern == nil {
		return []Node[T]{NewOpaque[T](arm.Pos)}
	}
	nodes := NormalizePattern(arm.Pattern)
	if arm.Guarded {
		nodes = ApplyGuard(nodes)
	}
	return nodes
}

// NormalizePattern classifies a single pattern tree.
func NormalizePattern[T comparable](s *Syntax[T]) []Node[T] {
	if s == nil {
		return []Node[T]{NewOpaque[T](NoPos)}
	}
	switch s.Kind {
	case SynDiscard, SynVar:
		return []Node[T]{NewWildcard[T](s.Pos)}
	case SynNull:
		return []Node[T]{NewNullCheck[T](s.Pos)}
	case SynType:
		return typeCheck(s, false)
	case SynParen:
		if len(s.Sub) != 1 {
			return []Node[T]{NewOpaque[T](s.Pos)}
		}
		return NormalizePattern(s.Sub[0])
	case SynOr:
		if len(s.Sub) != 2 {
			return []Node[T]{NewOpaque[T](s.Pos)}
		}
		left := NormalizePattern(s.Sub[0])
		return append(left, NormalizePattern(s.Sub[1])...)
	case SynAnd:
		if len(s.Sub) == 2 && IsWildcard(s.Sub[0]) && IsWildcard(s.Sub[1]) {
			return []Node[T]{NewWildcard[T](s.Pos)}
		}
		return []Node[T]{NewOpaque[T](s.Pos)}
	case SynRecursive:
		return recursive(s)
	}
	// constants, relational, list, not and anything unknown
	return []Node[T]{NewOpaque[T](s.Pos)}
}

func typeCheck[T comparable](s *Syntax[T], partial bool) []Node[T] {
	if !s.HasType {
		return []Node[T]{NewOpaque[T](s.Pos)}
	}
	return []Node[T]{NewTypeCheck(s.Type, partial, s.Pos)}
}

func recursive[T comparable](s *Syntax[T]) []Node[T] {
	if s.HasType {
		partial := false
		for _, sub := range s.Sub {
			if !IsWildcard(sub) {
				partial = true
				break
			}
		}
		return typeCheck(s, partial)
	}
	if len(s.Sub) == 0 {
		return []Node[T]{NewWildcard[T](s.Pos)}
	}
	return []Node[T]{NewOpaque[T](s.Pos)}
}

// IsWildcard reports whether s normalizes to wildcards only.
func IsWildcard[T comparable](s *Syntax[T]) bool {
	for _, n := range NormalizePattern(s) {
		if n.Kind != Wildcard {
			return false
		}
	}
	return true
}

// ApplyGuard weakens nodes guarded by a condition: type checks become
// partial and everything else becomes opaque.
func ApplyGuard[T comparable](nodes []Node[T]) []Node[T] {
	out := make([]Node[T], len(nodes))
	for i, n := range nodes {
		if n.Kind == TypeCheck {
			n.Partial = true
			out[i] = n
			continue
		}
		out[i] = NewOpaque[T](n.Pos)
	}
	return out
}
