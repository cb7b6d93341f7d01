package reconcile

import (
	"fmt"
	"strings"
)

// Action is the outcome recorded for one managed file.
type Action string

// Actions reported by the reconciler.
const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionSkipped   Action = "skipped"
	ActionGenerated Action = "generated"
	ActionError     Action = "error"
)

// String returns the string representation of an action.
func (a Action) String() string {
	return string(a)
}

// Result describes what happened to one file.
type Result struct {
	Path    string `json:"path"    yaml:"path"`
	Action  Action `json:"action"  yaml:"action"`
	Message string `json:"message" yaml:"message"`
	Changed bool   `json:"changed" yaml:"changed"`
	Diff    string `json:"diff"    yaml:"diff,omitempty"`
}

// Results is the ordered list of results for one command invocation.
type Results []Result

// HasErrors reports whether any file ended in ActionError.
func (rs Results) HasErrors() bool {
	return rs.Count(ActionError) > 0
}

// Drift reports whether any file was, or in dry-run would be, written.
func (rs Results) Drift() bool {
	for _, r := range rs {
		if !r.Changed {
			continue
		}
		switch r.Action {
		case ActionCreated, ActionUpdated, ActionGenerated:
			return true
		}
	}
	return false
}

// Count returns the number of results with the given action.
func (rs Results) Count(action Action) int {
	n := 0
	for _, r := range rs {
		if r.Action == action {
			n++
		}
	}
	return n
}

// Errors returns only the failed results.
func (rs Results) Errors() Results {
	var out Results
	for _, r := range rs {
		if r.Action == ActionError {
			out = append(out, r)
		}
	}
	return out
}

// Summary returns a one-line human readable summary, e.g.
// "update: 1 created, 2 skipped".
func (rs Results) Summary(label string) string {
	var parts []string
	for _, a := range []Action{ActionCreated, ActionUpdated, ActionGenerated, ActionSkipped, ActionError} {
		if n := rs.Count(a); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, a))
		}
	}
	if len(parts) == 0 {
		return label + ": nothing to do"
	}
	return label + ": " + strings.Join(parts, ", ")
}
