package reconcile

import "github.com/agentstation/agentsgen/pkg/markers"

// State classifies an existing target file before reconciliation.
type State int

const (
	// StateMissing means the target does not exist yet.
	StateMissing State = iota
	// StateNoMarkers means the target exists but contains no marker lines.
	// It is never modified.
	StateNoMarkers
	// StateMalformed means the target's markers fail validation.
	StateMalformed
	// StatePatchable means the target's markers are well-formed.
	StatePatchable
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateNoMarkers:
		return "no_markers"
	case StateMalformed:
		return "malformed"
	case StatePatchable:
		return "patchable"
	default:
		return "unknown"
	}
}

// Classify determines the state of a target from its content. The first
// matching state wins, in declaration order. Problems are returned only for
// StateMalformed.
func Classify(existing string, exists bool) (State, []markers.Problem) {
	if !exists {
		return StateMissing, nil
	}
	if !markers.HasAny(existing) {
		return StateNoMarkers, nil
	}
	if problems := markers.Validate(existing); len(problems) > 0 {
		return StateMalformed, problems
	}
	return StatePatchable, nil
}
