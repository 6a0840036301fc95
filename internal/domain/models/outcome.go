package models

// OutcomeKind classifies a provider result.
type OutcomeKind int

const (
	// OutcomeFound carries a Signal.
	OutcomeFound OutcomeKind = iota
	// OutcomeAbsent means the provider had nothing to say (unknown destination, no data).
	OutcomeAbsent
	// OutcomeFailed means the upstream dependency errored or answered with garbage.
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeAbsent:
		return "absent"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single provider invocation.
type Outcome struct {
	Kind   OutcomeKind
	Signal Signal
	Reason string
	Err    error
}

// Found wraps a successful signal.
func Found(s Signal) Outcome {
	return Outcome{Kind: OutcomeFound, Signal: s}
}

// Absent records a resolution failure or an empty answer.
func Absent(reason string) Outcome {
	return Outcome{Kind: OutcomeAbsent, Reason: reason}
}

// Failed records an upstream or malformed-response failure.
func Failed(err error) Outcome {
	o := Outcome{Kind: OutcomeFailed, Err: err}
	if err != nil {
		o.Reason = err.Error()
	}
	return o
}

// OK reports whether the outcome carries a signal.
func (o Outcome) OK() bool { return o.Kind == OutcomeFound }
