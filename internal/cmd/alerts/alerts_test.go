package alerts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterTo(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	w := NewWriterTo(&buf)
	require.NoError(t, WriteAll(w,
		NewWarning("AGENTS.md: section 'commands' looks like a placeholder"),
		NewError("AGENTS.md").WithError(errors.New("boom")).WithDetails("run agentsgen check"),
	))

	assert.Equal(t,
		"WARN: AGENTS.md: section 'commands' looks like a placeholder\n"+
			"ERROR: AGENTS.md: boom\n"+
			"   run agentsgen check\n",
		buf.String())
}

func TestAlertString(t *testing.T) {
	assert.Equal(t, "ERROR: x: y", NewError("x").WithError(errors.New("y")).String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
}

func TestDiscardWriter(t *testing.T) {
	assert.NoError(t, DiscardWriter.WriteAlert(NewInfo("ignored")))
}
