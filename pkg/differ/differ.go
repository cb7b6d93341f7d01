// Package differ produces unified diffs between the on-disk and candidate
// content of a managed file.
package differ

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines shown around each hunk.
const DefaultContext = 3

// Differ renders unified diffs.
type Differ struct {
	context int
}

// New creates a Differ with default settings.
func New(opts ...Option) *Differ {
	d := &Differ{context: DefaultContext}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Unified returns a unified diff from old to updated, labelled
// "a/<path>" and "b/<path>". It returns "" when the inputs are equal.
func (d *Differ) Unified(path, old, updated string) string {
	if old == updated {
		return ""
	}
	ud := difflib.UnifiedDiff{
		A:        splitLines(old),
		B:        splitLines(updated),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  d.context,
	}
	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		// difflib only fails on writer errors; strings.Builder never returns one.
		return ""
	}
	return out
}

// Unified renders a diff with default settings.
func Unified(path, old, updated string) string {
	return New().Unified(path, old, updated)
}

// splitLines keeps line terminators so the diff reproduces the content
// exactly. A final line without a newline gets one, as difflib expects.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := difflib.SplitLines(s)
	// SplitLines appends "\n" to the final element; drop the empty tail it
	// leaves behind when s already ended in a newline.
	if strings.HasSuffix(s, "\n") && len(lines) > 0 && lines[len(lines)-1] == "\n" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
