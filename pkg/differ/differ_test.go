package differ

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedEqual(t *testing.T) {
	assert.Empty(t, Unified("AGENTS.md", "same\n", "same\n"))
	assert.Empty(t, Unified("AGENTS.md", "", ""))
}

func TestUnifiedHeaders(t *testing.T) {
	out := Unified("AGENTS.md", "a\nb\nc\n", "a\nB\nc\n")
	require.NotEmpty(t, out)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "--- a/AGENTS.md", lines[0])
	assert.Equal(t, "+++ b/AGENTS.md", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "@@ "))
	assert.Contains(t, out, "\n-b\n")
	assert.Contains(t, out, "\n+B\n")
	assert.Contains(t, out, "\n a\n")
}

func TestUnifiedCreation(t *testing.T) {
	out := Unified("RUNBOOK.md", "", "line one\nline two\n")
	assert.Contains(t, out, "+line one\n")
	assert.Contains(t, out, "+line two\n")
	assert.NotContains(t, out, "\n-")
}

func TestUnifiedMissingFinalNewline(t *testing.T) {
	out := Unified("x.md", "a\nb", "a\nb\n")
	assert.Empty(t, out, "content differing only by final newline renders no hunks")

	out = Unified("x.md", "a", "b")
	assert.Contains(t, out, "-a\n")
	assert.Contains(t, out, "+b\n")
}

func TestWithContext(t *testing.T) {
	old := "1\n2\n3\n4\n5\n6\n7\n8\n9\n"
	updated := "1\n2\n3\n4\nFIVE\n6\n7\n8\n9\n"

	narrow := New(WithContext(0)).Unified("n.txt", old, updated)
	assert.NotContains(t, narrow, " 4\n")

	wide := New(WithContext(3)).Unified("n.txt", old, updated)
	assert.Contains(t, wide, " 4\n")
	assert.Contains(t, wide, " 2\n")
	assert.NotContains(t, wide, " 1\n")
}
