package coverage

import "enumclass/internal/pattern"

// FindingKind identifies the reason of a reachability finding.
type FindingKind uint8

const (
	// FindingAllHandled: every case was already fully handled.
	FindingAllHandled FindingKind = iota + 1
	// FindingAlreadyHandled: the pattern only matches cases that were
	// already fully handled.
	FindingAlreadyHandled
	// FindingNoCaseImplements: the pattern tests an interface that no
	// case implements.
	FindingNoCaseImplements
)

// Reason is the stable key adapters use to pick a message.
func (k FindingKind) Reason() string {
	switch k {
	case FindingAllHandled:
		return "all-cases-handled"
	case FindingAlreadyHandled:
		return "already-handled"
	case FindingNoCaseImplements:
		return "no-case-implements"
	}
	return "unknown"
}

func (k FindingKind) String() string { return k.Reason() }

// Unreachable reports whether the finding means the pattern never matches.
func (k FindingKind) Unreachable() bool {
	return k == FindingAllHandled || k == FindingAlreadyHandled
}

// Finding points at the offending pattern. Index is the position of the
// pattern in the analyzed sequence. Type is set for FindingNoCaseImplements.
type Finding[T comparable] struct {
	Kind  FindingKind
	Pos   pattern.Pos
	Index int
	Type  T
}

// Sink receives findings as they are produced. It must not block.
type Sink[T comparable] func(Finding[T])
