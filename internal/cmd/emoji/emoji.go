// Package emoji provides the status symbols used in CLI output.
package emoji

// Status symbols.
const (
	// Success marks a file written or a passing check.
	Success = "✓"

	// Error marks a failed file or a check problem.
	Error = "✗"

	// Warning marks non-fatal findings such as placeholder sections.
	Warning = "!"

	// Skipped marks files left untouched.
	Skipped = "-"

	// Diverted marks output written to a generated sibling.
	Diverted = "→"

	// Info marks informational lines.
	Info = "i"
)
