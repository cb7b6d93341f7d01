// Package sections extracts and replaces the bodies of marker-delimited
// sections. All operations are pure text transformations: nothing outside the
// start and end marker lines of the addressed section is ever modified.
//
// A section body is the text strictly between the start marker line and the
// end marker line, without the line terminator of the last body line. The
// terminator follows the start marker line: CRLF when that line ends in
// "\r\n", LF otherwise. A start marker directly followed by its end marker
// has an empty body.
package sections

import (
	"strings"

	"github.com/agentstation/agentsgen/pkg/markers"
)

// span locates the first start marker for key and the first end marker for
// key after it.
type span struct {
	start markers.Token
	end   markers.Token
}

func find(doc, key string) (span, bool) {
	var s span
	started := false
	for _, tok := range markers.Scan(doc) {
		if tok.Key != key {
			continue
		}
		if !started {
			if tok.Kind == markers.KindStart {
				s.start = tok
				started = true
			}
			continue
		}
		if tok.Kind == markers.KindEnd {
			s.end = tok
			return s, true
		}
	}
	return span{}, false
}

// Extract returns the body of the section named key. ok is false when the
// section's start or end marker is missing. It matches the first start/end
// pair for key and assumes the caller validated the document.
func Extract(doc, key string) (body string, ok bool) {
	s, ok := find(doc, key)
	if !ok {
		return "", false
	}
	return s.body(doc), true
}

// eol is the line terminator of the start marker line.
func (s span) eol(doc string) string {
	if strings.HasSuffix(doc[:s.start.Next], "\r\n") {
		return "\r\n"
	}
	return "\n"
}

func (s span) body(doc string) string {
	return strings.TrimSuffix(doc[s.start.Next:s.end.Offset], s.eol(doc))
}

// Replace returns doc with the body of section key replaced by body. The
// marker lines and all text outside them are kept byte for byte. When either
// marker is missing, or body itself contains a marker line, the original doc
// is returned with ok false. Replacing a body with its current value returns
// doc unchanged.
func Replace(doc, key, body string) (string, bool) {
	if markers.HasAny(body) {
		return doc, false
	}
	s, ok := find(doc, key)
	if !ok {
		return doc, false
	}
	if s.body(doc) == body {
		return doc, true
	}

	var b strings.Builder
	b.Grow(len(doc) + len(body))
	b.WriteString(doc[:s.start.Next])
	if body != "" {
		b.WriteString(body)
		b.WriteString(s.eol(doc))
	}
	b.WriteString(doc[s.end.Offset:])
	return b.String(), true
}

// Wrap renders a complete section: start marker, body, end marker. The result
// has no trailing newline.
func Wrap(key, body string) string {
	if body == "" {
		return markers.Start(key) + "\n" + markers.End(key)
	}
	return markers.Start(key) + "\n" + body + "\n" + markers.End(key)
}

// Keys returns the distinct section keys opened in doc, in document order.
func Keys(doc string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, tok := range markers.Scan(doc) {
		if tok.Kind != markers.KindStart || seen[tok.Key] {
			continue
		}
		seen[tok.Key] = true
		keys = append(keys, tok.Key)
	}
	return keys
}
