package cmdutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsgen/internal/cmd/output"
	"github.com/agentstation/agentsgen/pkg/config"
	pkgerrors "github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/reconcile"
)

func TestOutputFormat(t *testing.T) {
	f, err := OutputFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, output.FormatYAML, f)

	_, err = OutputFormat("csv")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "field format")
}

func TestGeneratedSuffix(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/repo", 0o755))
	assert.Equal(t, "", GeneratedSuffix(fs, "/repo"))

	cfg := config.Default()
	cfg.GeneratedSuffix = ".agentsgen"
	require.NoError(t, config.Save(fs, "/repo", cfg))
	assert.Equal(t, ".agentsgen", GeneratedSuffix(fs, "/repo"))
}

func TestReportResults(t *testing.T) {
	color.NoColor = true
	results := reconcile.Results{
		{Path: "/repo/AGENTS.md", Action: reconcile.ActionCreated, Message: "created", Changed: true},
		{Path: "/repo/RUNBOOK.md", Action: reconcile.ActionError, Message: "Missing required marker sections: quickstart"},
	}

	var stdout, stderr bytes.Buffer
	err := ReportResults(&stdout, &stderr, output.FormatTable, "/repo", "update", results, false)

	var exit *ExitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.Code)
	assert.Contains(t, stdout.String(), "update: 1 created, 1 error")
	assert.Equal(t, "ERROR: RUNBOOK.md: Missing required marker sections: quickstart\n", stderr.String())
}

func TestReportResultsClean(t *testing.T) {
	var stdout, stderr bytes.Buffer
	results := reconcile.Results{{Path: "/repo/AGENTS.md", Action: reconcile.ActionSkipped, Message: "no changes"}}
	require.NoError(t, ReportResults(&stdout, &stderr, output.FormatJSON, "/repo", "update", results, false))
	assert.NotContains(t, stdout.String(), "update:")
	assert.Empty(t, stderr.String())
}
