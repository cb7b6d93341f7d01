// Package normalize canonicalizes managed document text so that regenerating
// unchanged content never reports a change.
//
// Only whitespace at line boundaries and at end of file is touched: line
// endings become LF, trailing spaces and tabs are removed from every line,
// and the document ends with exactly one newline. Section bodies keep their
// meaning byte for byte apart from that.
package normalize

import "strings"

// Markdown returns the canonical form of text. It is idempotent and
// deterministic. Input that is empty or whitespace only normalizes to "".
func Markdown(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	if end == 0 {
		return ""
	}
	return strings.Join(lines[:end], "\n") + "\n"
}

// Equal reports whether a and b are identical after normalization.
func Equal(a, b string) bool {
	return Markdown(a) == Markdown(b)
}
