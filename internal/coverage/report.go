package coverage

// CaseState pairs a case with its final state.
type CaseState[T comparable] struct {
	Case  T
	State State
}

// Situation summarizes how the unmatched cases are distributed.
type Situation uint8

const (
	// Complete: no unmatched cases.
	Complete Situation = iota
	// AllPartial: every unmatched case is partially matched.
	AllPartial
	// AllUntouched: no unmatched case is matched at all.
	AllUntouched
	// Mixed: some unmatched cases are partial, others untouched.
	Mixed
)

func (s Situation) String() string {
	switch s {
	case Complete:
		return "complete"
	case AllPartial:
		return "all-partial"
	case AllUntouched:
		return "all-untouched"
	case Mixed:
		return "mixed"
	}
	return "invalid"
}

// Report is the outcome of one analysis.
type Report[T comparable] struct {
	SumType          T
	Cases            []CaseState[T]
	Nullable         bool
	MissingNullCheck bool
	Findings         []Finding[T]
}

// Unmatched lists the cases below Full in case order.
func (r *Report[T]) Unmatched() []T {
	return r.collect(func(s State) bool { return s != Full })
}

// Partial lists the cases left at Partial.
func (r *Report[T]) Partial() []T {
	return r.collect(func(s State) bool { return s == Partial })
}

// Untouched lists the cases left at None.
func (r *Report[T]) Untouched() []T {
	return r.collect(func(s State) bool { return s == None })
}

func (r *Report[T]) collect(keep func(State) bool) []T {
	var out []T
	for _, c := range r.Cases {
		if keep(c.State) {
			out = append(out, c.Case)
		}
	}
	return out
}

// Exhaustive is true when every case is Full and null is handled.
func (r *Report[T]) Exhaustive() bool {
	return !r.MissingNullCheck && len(r.Unmatched()) == 0
}

func (r *Report[T]) Situation() Situation {
	var partial, none int
	for _, c := range r.Cases {
		switch c.State {
		case Partial:
			partial++
		case None:
			none++
		}
	}
	switch {
	case partial == 0 && none == 0:
		return Complete
	case none == 0:
		return AllPartial
	case partial == 0:
		return AllUntouched
	}
	return Mixed
}

// State returns the final state of c and whether c is a known case.
func (r *Report[T]) State(c T) (State, bool) {
	for _, cs := range r.Cases {
		if cs.Case == c {
			return cs.State, true
		}
	}
	return None, false
}
