package coverage

import "enumclass/internal/pattern"

// TypeSystem answers subtype questions for the host language.
type TypeSystem[T comparable] interface {
	// IsSubtype reports whether a value of type a is always assignable to b.
	IsSubtype(a, b T) bool
	IsInterface(t T) bool
}

// Options tune host-specific assumptions.
type Options struct {
	// WildcardCoversNull makes a wildcard also satisfy the null check.
	WildcardCoversNull bool
}

func DefaultOptions() Options {
	return Options{WildcardCoversNull: true}
}

// Input is everything one analysis needs.
type Input[T comparable] struct {
	SumType  T
	Cases    []T
	Patterns []pattern.Node[T]
	Nullable bool
}

// Analyze runs the coverage scan. sink may be nil; findings are also
// returned in the report in pattern order.
func Analyze[T comparable](in Input[T], ts TypeSystem[T], opts Options, sink Sink[T]) Report[T] {
	s := scan[T]{
		in:          in,
		ts:          ts,
		opts:        opts,
		sink:        sink,
		states:      NewStateTable(len(in.Cases)),
		missingNull: in.Nullable,
	}
	for i, n := range in.Patterns {
		s.step(i, n)
	}
	cases := make([]CaseState[T], len(in.Cases))
	for i, c := range in.Cases {
		cases[i] = CaseState[T]{Case: c, State: s.states[i]}
	}
	return Report[T]{
		SumType:          in.SumType,
		Cases:            cases,
		Nullable:         in.Nullable,
		MissingNullCheck: s.missingNull,
		Findings:         s.findings,
	}
}

// CheckIs analyzes a single is-test. Only findings matter here: an is-test
// does not have to be exhaustive.
func CheckIs[T comparable](sum T, cases []T, nodes []pattern.Node[T], ts TypeSystem[T], sink Sink[T]) []Finding[T] {
	r := Analyze(Input[T]{SumType: sum, Cases: cases, Patterns: nodes}, ts, DefaultOptions(), sink)
	return r.Findings
}

type scan[T comparable] struct {
	in          Input[T]
	ts          TypeSystem[T]
	opts        Options
	sink        Sink[T]
	states      StateTable
	missingNull bool
	findings    []Finding[T]
}

func (s *scan[T]) step(i int, n pattern.Node[T]) {
	switch n.Kind {
	case pattern.Wildcard:
		if !s.missingNull || !s.opts.WildcardCoversNull {
			s.checkAllHandled(i, n)
		}
		if s.opts.WildcardCoversNull {
			s.missingNull = false
		}
		s.states = s.states.RaiseAll(Full)
	case pattern.NullCheck:
		s.missingNull = false
	case pattern.TypeCheck:
		s.typeCheck(i, n)
	default:
		s.checkAllHandled(i, n)
	}
}

func (s *scan[T]) typeCheck(i int, n pattern.Node[T]) {
	prev := s.states
	next := prev.Clone()
	matched, useful := false, false
	for ci, c := range s.in.Cases {
		target := s.classify(c, n)
		if target == None {
			continue
		}
		matched = true
		if prev[ci] != Full {
			useful = true
		}
		next.Raise(ci, target)
	}
	switch {
	case matched && !useful:
		s.emit(Finding[T]{Kind: FindingAlreadyHandled, Pos: n.Pos, Index: i})
	case !matched:
		s.checkAllHandled(i, n)
		if s.ts.IsInterface(n.Type) {
			s.emit(Finding[T]{Kind: FindingNoCaseImplements, Pos: n.Pos, Index: i, Type: n.Type})
		}
	}
	s.states = next
}

// classify returns the state a type check can lift case c to.
func (s *scan[T]) classify(c T, n pattern.Node[T]) State {
	if s.ts.IsSubtype(c, n.Type) {
		if n.Partial {
			return Partial
		}
		return Full
	}
	if s.ts.IsSubtype(n.Type, c) {
		return Partial
	}
	return None
}

func (s *scan[T]) checkAllHandled(i int, n pattern.Node[T]) {
	if s.states.AllFull() {
		s.emit(Finding[T]{Kind: FindingAllHandled, Pos: n.Pos, Index: i})
	}
}

func (s *scan[T]) emit(f Finding[T]) {
	s.findings = append(s.findings, f)
	if s.sink != nil {
		s.sink(f)
	}
}
