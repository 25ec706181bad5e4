package report

import (
	"fmt"

	"enumclass/internal/coverage"
)

const (
	msgNotExhaustive = "Switch is not exhaustive. "
	msgUnreachable   = "Unreachable pattern. "
	msgMissingNull   = "The value being switched on can be null, but none of the arms check for it"
)

// Namer renders host types for messages.
type Namer[T comparable] interface {
	DisplayName(t T) string
}

func names[T comparable](n Namer[T], ts []T) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = n.DisplayName(t)
	}
	return out
}

// NotExhaustiveMessages returns the messages for an incomplete report: one
// for the missing null check and one for the unmatched cases. It returns
// nil for exhaustive reports.
func NotExhaustiveMessages[T comparable](r *coverage.Report[T], n Namer[T]) []string {
	var out []string
	if r.MissingNullCheck {
		out = append(out, msgNotExhaustive+msgMissingNull)
	}
	sum := n.DisplayName(r.SumType)
	unmatched := names(n, r.Unmatched())
	partial := names(n, r.Partial())
	switch r.Situation() {
	case coverage.AllPartial:
		out = append(out, msgNotExhaustive+fmt.Sprintf(
			"The following cases are being matched on, but only partially: %s.",
			FormatCaseList(sum, partial)))
	case coverage.Mixed:
		out = append(out, msgNotExhaustive+fmt.Sprintf(
			"Unhandled cases: %s. Some of these are already being matched on, but only partially: %s.",
			FormatCaseList(sum, unmatched), FormatCaseList(sum, partial)))
	case coverage.AllUntouched:
		out = append(out, msgNotExhaustive+fmt.Sprintf("Unhandled cases: %s.", FormatCaseList(sum, unmatched)))
	}
	return out
}

// FindingMessage renders one reachability finding.
func FindingMessage[T comparable](f coverage.Finding[T], n Namer[T]) string {
	switch f.Kind {
	case coverage.FindingAllHandled:
		return msgUnreachable + "All enum cases have already been handled"
	case coverage.FindingAlreadyHandled:
		return msgUnreachable + "This pattern has already been handled by previous matches"
	case coverage.FindingNoCaseImplements:
		return fmt.Sprintf("None of the enum cases implement this interface (%s)", n.DisplayName(f.Type))
	}
	return f.Kind.Reason()
}
