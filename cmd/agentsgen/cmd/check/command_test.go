package check

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/internal/cmd/cmdutil"
	"github.com/agentstation/agentsgen/pkg/agentsgen"
	"github.com/agentstation/agentsgen/pkg/doctor"
)

const root = "/work/demo"

func newApp(t *testing.T) *application.Mock {
	t.Helper()
	app := &application.Mock{}
	require.NoError(t, app.Fs().MkdirAll(root, 0o755))
	require.NoError(t, afero.WriteFile(app.Fs(), filepath.Join(root, "package.json"),
		[]byte(`{"name":"web","scripts":{"dev":"vite","test":"vitest","lint":"eslint ."}}`), 0o644))
	require.NoError(t, afero.WriteFile(app.Fs(), filepath.Join(root, "pnpm-lock.yaml"), nil, 0o644))
	return app
}

func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestMissingConfigExitsTwo(t *testing.T) {
	app := newApp(t)

	for _, cmd := range []*cobra.Command{NewCommand(app), NewDoctorCommand(app)} {
		_, stderr, err := execute(cmd, root)
		var exitErr *cmdutil.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, doctor.CodeMissingConfig, exitErr.Code)
		assert.Contains(t, stderr, "- Missing .agentsgen.json. Run: agentsgen init")
	}
}

func TestReadyRepoPasses(t *testing.T) {
	app := newApp(t)
	_, err := agentsgen.Init(context.Background(), app.Fs(), app.Reconciler(root),
		agentsgen.InitOptions{Autodetect: true, Prompts: true})
	require.NoError(t, err)

	_, stderr, err := execute(NewCommand(app), root)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "- ")
}

func TestProblemsExitOne(t *testing.T) {
	app := newApp(t)
	_, err := agentsgen.Init(context.Background(), app.Fs(), app.Reconciler(root),
		agentsgen.InitOptions{Autodetect: true})
	require.NoError(t, err)
	require.NoError(t, app.Fs().Remove(filepath.Join(root, "RUNBOOK.md")))

	_, stderr, err := execute(NewDoctorCommand(app), root)
	var exitErr *cmdutil.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, doctor.CodeProblems, exitErr.Code)
	assert.Contains(t, stderr, "- Missing RUNBOOK.md. Run: agentsgen init")
}

func TestJSONReport(t *testing.T) {
	app := newApp(t)
	app.OutputFormatFunc = func() string { return "json" }

	stdout, stderr, err := execute(NewCommand(app), root)
	require.Error(t, err)
	assert.Empty(t, stderr)

	var rep doctor.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, doctor.CodeMissingConfig, rep.Code)
	assert.Len(t, rep.Problems, 1)
}
