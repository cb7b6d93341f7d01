package render

import (
	"strings"

	md "github.com/nao1215/markdown"
)

// body accumulates the lines of one section body.
type body struct {
	lines []string
}

func (b *body) line(s string) *body {
	b.lines = append(b.lines, s)
	return b
}

func (b *body) blank() *body {
	return b.line("")
}

func (b *body) bullet(s string) *body {
	return b.line("- " + s)
}

func (b *body) bullets(items ...string) *body {
	for _, it := range items {
		b.bullet(it)
	}
	return b
}

func (b *body) heading(level int, s string) *body {
	return b.line(strings.Repeat("#", level) + " " + s)
}

func (b *body) fence(lang, code string) *body {
	return b.line("```" + lang).line(strings.TrimSpace(code)).line("```")
}

func (b *body) String() string {
	return strings.TrimSpace(strings.Join(b.lines, "\n"))
}

// buildLabeled creates "**Label:** `value`".
func buildLabeled(label, value string) string {
	return md.Bold(label+":") + " " + md.Code(value)
}

// buildCodeList renders items as a comma separated list of inline code spans.
func buildCodeList(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, md.Code(it))
		}
	}
	return strings.Join(out, ", ")
}

// orDefault returns s trimmed, or def when s is blank.
func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
