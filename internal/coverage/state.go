package coverage

// State is the coverage of one case.
type State uint8

const (
	None State = iota
	Partial
	Full
)

func (s State) String() string {
	switch s {
	case None:
		return "none"
	case Partial:
		return "partial"
	case Full:
		return "full"
	}
	return "invalid"
}

// StateTable holds one State per case, indexed like the case list.
type StateTable []State

func NewStateTable(n int) StateTable {
	return make(StateTable, n)
}

// Clone returns an independent copy.
func (t StateTable) Clone() StateTable {
	out := make(StateTable, len(t))
	copy(out, t)
	return out
}

// Raise lifts case i to s. Lower states are ignored.
func (t StateTable) Raise(i int, s State) {
	if s > t[i] {
		t[i] = s
	}
}

// RaiseAll returns a copy with every case lifted to s.
func (t StateTable) RaiseAll(s State) StateTable {
	out := t.Clone()
	for i := range out {
		out.Raise(i, s)
	}
	return out
}

// AllFull is true for an empty table: every pattern over a type without
// cases is unreachable.
func (t StateTable) AllFull() bool {
	for _, s := range t {
		if s != Full {
			return false
		}
	}
	return true
}

// Dominates reports whether every entry of t is >= the matching entry of prev.
func (t StateTable) Dominates(prev StateTable) bool {
	if len(t) != len(prev) {
		return false
	}
	for i := range t {
		if t[i] < prev[i] {
			return false
		}
	}
	return true
}
