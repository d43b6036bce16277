package model

// OutcomeKind classifies the result of executing one example.
type OutcomeKind int

const (
	// Success indicates the snippet raised no fault and its output matched.
	Success OutcomeKind = iota
	// Failure indicates the snippet ran cleanly but produced wrong output.
	Failure
	// Error indicates the snippet raised a fault that was not expected, or
	// whose text did not match the expected fault.
	Error
)

// String returns the lower-case name of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Error:
		return "error"
	}

	return "unknown"
}

// Outcome is the tagged result of one example execution. It is produced once
// per example and consumed immediately by the event sink; it is not retained.
type Outcome struct {
	Kind OutcomeKind

	// Actual is the captured output (Failure only).
	Actual string
	// Diff is the rendered expected/actual difference (Failure only).
	Diff string
	// Fault is the formatted fault description (Error only).
	Fault string
}
