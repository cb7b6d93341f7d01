// Package markers defines the comment markers that delimit managed sections
// inside AGENTS.md, RUNBOOK.md and pack documents, and validates that a
// document's markers form disjoint, closed ranges before it is patched.
//
// A section with key K is written as
//
//	<!-- AGENTSGEN:START section=K -->
//	...body...
//	<!-- AGENTSGEN:END section=K -->
//
// Each marker sits on a line of its own. Surrounding whitespace on the
// marker line is ignored when scanning.
package markers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentstation/agentsgen/pkg/constants"
)

// markerLine matches a single marker line. Keys are restricted so that a
// marker can never swallow prose or another marker.
var markerLine = regexp.MustCompile(`^\s*<!--\s*` + constants.MarkerPrefix + `:(START|END)\s+section=([A-Za-z0-9_.\-]+)\s*-->\s*$`)

// Start returns the start marker for key.
func Start(key string) string {
	return fmt.Sprintf("<!-- %s:START section=%s -->", constants.MarkerPrefix, key)
}

// End returns the end marker for key.
func End(key string) string {
	return fmt.Sprintf("<!-- %s:END section=%s -->", constants.MarkerPrefix, key)
}

// Kind distinguishes start from end markers.
type Kind int

const (
	// KindStart opens a section.
	KindStart Kind = iota
	// KindEnd closes a section.
	KindEnd
)

// String returns the marker keyword.
func (k Kind) String() string {
	if k == KindEnd {
		return "END"
	}
	return "START"
}

// Token is one marker line found in a document.
type Token struct {
	Kind Kind
	Key  string
	// Line is 1-based.
	Line int
	// Offset is the byte offset where the marker line begins.
	Offset int
	// Next is the byte offset just past the marker line's newline
	// (len(doc) when the marker is on the last line).
	Next int
}

// Scan returns every marker token in document order.
func Scan(doc string) []Token {
	var tokens []Token
	offset := 0
	for lineNo := 1; offset <= len(doc); lineNo++ {
		end := strings.IndexByte(doc[offset:], '\n')
		next := len(doc)
		line := doc[offset:]
		if end >= 0 {
			line = doc[offset : offset+end]
			next = offset + end + 1
		}

		if strings.Contains(line, constants.MarkerPrefix) {
			if m := markerLine.FindStringSubmatch(line); m != nil {
				kind := KindStart
				if m[1] == "END" {
					kind = KindEnd
				}
				tokens = append(tokens, Token{Kind: kind, Key: m[2], Line: lineNo, Offset: offset, Next: next})
			}
		}

		if end < 0 {
			break
		}
		offset = next
	}
	return tokens
}

// HasAny reports whether doc contains at least one start or end marker,
// well-formed or not.
func HasAny(doc string) bool {
	if !strings.Contains(doc, constants.MarkerPrefix) {
		return false
	}
	return len(Scan(doc)) > 0
}
