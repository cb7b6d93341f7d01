package agentsgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/reconcile"
	"github.com/agentstation/agentsgen/pkg/types"
)

func TestPackConfigKeepsPackSettings(t *testing.T) {
	fs := uvRepo(t)
	cfg := config.Default()
	cfg.Project.Name = "configured"
	cfg.Pack.OutputDir = "handbook"
	cfg.Pack.Files = []string{"llms", "how-to-run.md"}
	require.NoError(t, config.Save(fs, root, cfg))

	got, err := PackConfig(fs, root, PackOptions{Autodetect: true})
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Project.Name)
	assert.Equal(t, types.StackPython, got.Project.PrimaryStack)
	assert.Equal(t, "handbook", got.Pack.OutputDir)
	assert.Equal(t, []string{"llms", "how-to-run.md"}, got.Pack.Files)

	got, err = PackConfig(fs, root, PackOptions{})
	require.NoError(t, err)
	assert.Equal(t, "configured", got.Project.Name)
}

func TestPackConfigOverrides(t *testing.T) {
	fs := uvRepo(t)
	got, err := PackConfig(fs, root, PackOptions{
		Stack:      "static",
		LLMSFormat: "md",
		OutputDir:  "docs/llm",
		Files:      []string{},
	})
	require.NoError(t, err)
	assert.Equal(t, types.StackStatic, got.Project.PrimaryStack)
	assert.Equal(t, "md", got.Pack.LLMSFormat)
	assert.Equal(t, "docs/llm", got.Pack.OutputDir)
	assert.Empty(t, got.Pack.Files)

	_, err = PackConfig(fs, root, PackOptions{LLMSFormat: "pdf"})
	require.Error(t, err)
}

func TestPackCheckDetectsDrift(t *testing.T) {
	fs := uvRepo(t)
	ctx := context.Background()
	opts := PackOptions{Autodetect: true, Check: true}

	res, err := Pack(ctx, fs, newReconciler(fs, reconcile.WithDryRun(true)), opts)
	require.NoError(t, err)
	assert.Equal(t, StatusDrift, res.Status)
	assert.True(t, res.Failed())
	assert.Equal(t, "pack:drift (created=8, updated=0, generated=0, errors=0)", res.Summary)
	assert.False(t, exists(t, fs, "llms.txt"))

	plan := res.Plan(root)
	require.Len(t, plan, 8)
	assert.Equal(t, PlanRow{Path: "CONTRIBUTING_AI.md", Action: "create", Sections: []string{"contributing_ai"}, Message: "created"}, plan[0])

	written, err := Pack(ctx, fs, newReconciler(fs), PackOptions{Autodetect: true})
	require.NoError(t, err)
	assert.Equal(t, StatusOK, written.Status)
	assert.True(t, exists(t, fs, "docs/ai/how-to-test.md"))

	clean, err := Pack(ctx, fs, newReconciler(fs, reconcile.WithDryRun(true)), opts)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, clean.Status)
	assert.False(t, clean.Failed())
	assert.Empty(t, clean.Plan(root))
}

func TestPackErrorsOnMalformedFile(t *testing.T) {
	fs := fixture(t, map[string]string{
		"SECURITY_AI.md": "<!-- AGENTSGEN:END section=security_ai -->\n",
	})
	res, err := Pack(context.Background(), fs, newReconciler(fs), PackOptions{Files: []string{"SECURITY_AI.md"}})
	require.NoError(t, err)
	assert.Equal(t, StatusError, res.Status)
	require.Len(t, res.Results, 1)
	assert.Equal(t, reconcile.ActionError, res.Results[0].Action)
}
