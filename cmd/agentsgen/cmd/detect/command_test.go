package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/pkg/errors"
)

const root = "/work/demo"

func init() {
	color.NoColor = true
}

func newApp(t *testing.T) *application.Mock {
	t.Helper()
	app := &application.Mock{}
	require.NoError(t, app.Fs().MkdirAll(root, 0o755))
	require.NoError(t, afero.WriteFile(app.Fs(), filepath.Join(root, "package.json"),
		[]byte(`{"name":"web","scripts":{"test":"vitest"}}`), 0o644))
	require.NoError(t, afero.WriteFile(app.Fs(), filepath.Join(root, "pnpm-lock.yaml"), nil, 0o644))
	return app
}

func execute(app application.Application, args ...string) (string, error) {
	var stdout bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestDetectTable(t *testing.T) {
	app := newApp(t)

	stdout, err := execute(app, "--explain", root)
	require.NoError(t, err)
	assert.Contains(t, stdout, "node")
	assert.Contains(t, stdout, "pnpm")
	assert.Contains(t, stdout, "Rationale:")
}

func TestDetectJSON(t *testing.T) {
	app := newApp(t)
	app.OutputFormatFunc = func() string { return "json" }

	stdout, err := execute(app, root)
	require.NoError(t, err)

	var got struct {
		Project struct {
			PrimaryStack string `json:"primary_stack"`
		} `json:"project"`
		Commands map[string]string `json:"commands"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "node", got.Project.PrimaryStack)
	assert.Equal(t, "pnpm test", got.Commands["test"])
}

func TestDetectMissingDir(t *testing.T) {
	_, err := execute(newApp(t), "/nowhere")
	assert.True(t, errors.IsNotFound(err))
}
