package initialize

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/types"
)

const root = "/work/demo"

func newApp(t *testing.T) *application.Mock {
	t.Helper()
	app := &application.Mock{}
	require.NoError(t, app.Fs().MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, afero.WriteFile(app.Fs(), filepath.Join(root, "pyproject.toml"),
		[]byte("[project]\nname = \"demo\"\n"), 0o644))
	return app
}

func execute(app application.Application, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func exists(t *testing.T, app *application.Mock, name string) bool {
	t.Helper()
	ok, err := afero.Exists(app.Fs(), filepath.Join(root, name))
	require.NoError(t, err)
	return ok
}

func TestInitWritesConfigAndDocs(t *testing.T) {
	app := newApp(t)

	stdout, _, err := execute(app, root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "init: 3 created")

	assert.True(t, exists(t, app, ".agentsgen.json"))
	assert.True(t, exists(t, app, "AGENTS.md"))
	assert.True(t, exists(t, app, "RUNBOOK.md"))
	assert.True(t, exists(t, app, "prompt/execspec.md"))

	cfg, err := config.Load(app.Fs(), root)
	require.NoError(t, err)
	assert.Equal(t, types.StackPython, cfg.Project.PrimaryStack)

	stdout, _, err = execute(app, root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "init: 3 skipped")
}

func TestInitOverridesAndNoPrompts(t *testing.T) {
	app := newApp(t)

	_, _, err := execute(app, "--stack", "static", "--name", "site", "--prompts=false", root)
	require.NoError(t, err)
	assert.False(t, exists(t, app, "prompt/execspec.md"))

	cfg, err := config.Load(app.Fs(), root)
	require.NoError(t, err)
	assert.Equal(t, "site", cfg.Project.Name)
	assert.Equal(t, types.StackStatic, cfg.Project.PrimaryStack)
}

func TestInitDryRunPrintsDetection(t *testing.T) {
	app := newApp(t)

	_, stderr, err := execute(app, "--dry-run", "--print-detect", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"primary_stack": "python"`)
	assert.False(t, exists(t, app, ".agentsgen.json"))
	assert.False(t, exists(t, app, "AGENTS.md"))
}

func TestInitUnknownStack(t *testing.T) {
	_, _, err := execute(newApp(t), "--stack", "cobol", root)
	require.Error(t, err)
}
