package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n\t\n\n", ""},
		{"adds final newline", "# Title", "# Title\n"},
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"bare cr", "a\rb", "a\nb\n"},
		{"trailing spaces", "a  \nb\t\n", "a\nb\n"},
		{"collapses trailing blank lines", "a\n\n\n\n", "a\n"},
		{"keeps inner blank lines", "a\n\n\nb\n", "a\n\n\nb\n"},
		{"keeps leading indentation", "  - item\n", "  - item\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Markdown(tt.in))
		})
	}
}

func TestMarkdownIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"x \r\n\r\n y\t\n\n",
		"<!-- AGENTSGEN:START section=a -->\r\nbody  \r\n<!-- AGENTSGEN:END section=a -->",
	}
	for _, in := range inputs {
		once := Markdown(in)
		assert.Equal(t, once, Markdown(once), "input %q", in)
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("a\r\nb  \n\n", "a\nb"))
	assert.False(t, Equal("a\nb", "a\n b"))
}
