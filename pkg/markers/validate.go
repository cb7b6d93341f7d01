package markers

import "fmt"

// ProblemKind classifies a marker validation failure.
type ProblemKind string

const (
	// ProblemEndWithoutStart is an end marker with no start for its key.
	ProblemEndWithoutStart ProblemKind = "end_without_start"
	// ProblemReversed is an end marker that precedes its own start.
	ProblemReversed ProblemKind = "reversed"
	// ProblemDuplicateStart is a second start for a key that is still open.
	ProblemDuplicateStart ProblemKind = "duplicate_start"
	// ProblemDuplicateSection is a key that forms more than one range.
	ProblemDuplicateSection ProblemKind = "duplicate_section"
	// ProblemOverlap is a start for one key while another key is open.
	ProblemOverlap ProblemKind = "overlap"
	// ProblemMismatched is an end for one key while another key is open.
	ProblemMismatched ProblemKind = "mismatched"
	// ProblemUnclosed is a start that is never closed.
	ProblemUnclosed ProblemKind = "unclosed"
)

// Problem describes why a document's markers are not safely patchable.
type Problem struct {
	Kind    ProblemKind `json:"kind"`
	Key     string      `json:"key"`
	Line    int         `json:"line"`
	Message string      `json:"message"`
}

// String returns the problem message.
func (p Problem) String() string {
	return p.Message
}

// Validate scans doc once and returns every marker problem. The result is
// empty iff every section is a closed range and no two ranges overlap or nest.
//
// While a section is open, any other start marker is reported as overlap and
// ignored; the open section is still closed by its own end marker. A second
// start for the open key is reported as a duplicate start.
func Validate(doc string) []Problem {
	tokens := Scan(doc)
	var problems []Problem

	var open *Token
	closed := make(map[string]int)

	for i := range tokens {
		tok := tokens[i]
		switch tok.Kind {
		case KindStart:
			if open != nil {
				if open.Key == tok.Key {
					problems = append(problems, problem(ProblemDuplicateStart, tok,
						"duplicate start marker for section '%s' at line %d (already open since line %d)", tok.Key, tok.Line, open.Line))
				} else {
					problems = append(problems, problem(ProblemOverlap, tok,
						"section '%s' starts at line %d before section '%s' (opened at line %d) is closed", tok.Key, tok.Line, open.Key, open.Line))
				}
				continue
			}
			if line, seen := closed[tok.Key]; seen {
				problems = append(problems, problem(ProblemDuplicateSection, tok,
					"section '%s' appears more than once (lines %d and %d)", tok.Key, line, tok.Line))
			}
			open = &tokens[i]

		case KindEnd:
			switch {
			case open == nil:
				if later := startAfter(tokens, i, tok.Key); later != nil {
					problems = append(problems, problem(ProblemReversed, tok,
						"end marker for section '%s' at line %d appears before its start at line %d", tok.Key, tok.Line, later.Line))
				} else {
					problems = append(problems, problem(ProblemEndWithoutStart, tok,
						"end marker for section '%s' at line %d has no matching start", tok.Key, tok.Line))
				}
			case open.Key != tok.Key:
				problems = append(problems, problem(ProblemMismatched, tok,
					"end marker for section '%s' at line %d does not match open section '%s' (opened at line %d)", tok.Key, tok.Line, open.Key, open.Line))
			default:
				if _, seen := closed[tok.Key]; !seen {
					closed[tok.Key] = open.Line
				}
				open = nil
			}
		}
	}

	if open != nil {
		problems = append(problems, problem(ProblemUnclosed, *open,
			"start marker for section '%s' at line %d is never closed", open.Key, open.Line))
	}
	return problems
}

// Messages returns the message of every problem, in order.
func Messages(problems []Problem) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.Message
	}
	return out
}

func startAfter(tokens []Token, i int, key string) *Token {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Kind == KindStart && tokens[j].Key == key {
			return &tokens[j]
		}
	}
	return nil
}

func problem(kind ProblemKind, tok Token, format string, args ...any) Problem {
	return Problem{
		Kind:    kind,
		Key:     tok.Key,
		Line:    tok.Line,
		Message: fmt.Sprintf(format, args...),
	}
}
