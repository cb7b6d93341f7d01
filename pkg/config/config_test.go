package config

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsgen/pkg/detect"
	"github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "<!-- AGENTSGEN:START section={section} -->", cfg.Markers.Start)
	assert.Equal(t, 300, cfg.DiffBudget())
	assert.True(t, cfg.ThinSlices())
	assert.Len(t, cfg.AskBefore(), 5)
	assert.Equal(t, []string{"feat", "fix", "test", "docs", "refactor"}, cfg.CommitTypes())
	assert.Equal(t, types.StackStatic, cfg.TemplateStack())
	assert.Equal(t, "txt", cfg.Pack.Format())
	assert.Equal(t, "docs/ai", cfg.Pack.Dir())
	assert.Len(t, cfg.Pack.Allowlist(), 8)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := Default()
	cfg.Project.Name = "demo"
	cfg.Project.PrimaryStack = types.StackNode
	cfg.Commands.Test = "npm test"
	cfg.Paths.SourceDirs = []string{"src/"}
	cfg.Pack.Files = []string{"llms", "SECURITY_AI.md"}
	thin := false
	cfg.Defaults.Workflow = &Workflow{ThinSlices: &thin}

	require.NoError(t, Save(fs, "/repo", cfg))
	assert.True(t, Exists(fs, "/repo"))

	raw, err := afero.ReadFile(fs, "/repo/.agentsgen.json")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), "}\n"))
	assert.Contains(t, string(raw), "\n  \"version\": 1,\n")
	assert.Contains(t, string(raw), `"python": []`)

	loaded, err := Load(fs, "/repo")
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Project.Name)
	assert.Equal(t, types.StackNode, loaded.TemplateStack())
	assert.Equal(t, "npm test", loaded.Commands.Test)
	assert.Equal(t, []string{"src/"}, loaded.Paths.SourceDirs)
	assert.Equal(t, []string{"llms", "SECURITY_AI.md"}, loaded.Pack.Allowlist())
	assert.False(t, loaded.ThinSlices())

	again, err := loaded.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(again))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/repo")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadInvalidJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/.agentsgen.json", []byte("{nope"), 0o644))
	_, err := Load(fs, "/repo")
	require.Error(t, err)
	var pe *errors.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"version":1,"project":{"name":"x","primary_stack":"Python"},"pack":{"output_dir":"docs/llm"}}`))
	require.NoError(t, err)
	assert.Equal(t, "safe", cfg.Mode)
	assert.Equal(t, ".generated", cfg.GeneratedSuffix)
	assert.Equal(t, types.StackPython, cfg.Project.PrimaryStack)
	assert.True(t, cfg.Pack.Enabled)
	assert.Equal(t, "txt", cfg.Pack.LLMSFormat)
	assert.Equal(t, "docs/llm", cfg.Pack.Dir())
	assert.Equal(t, []string{"guardrails", "workflow", "style", "verification", "stack", "repo_context"}, cfg.Sections)
}

func TestParseLegacy(t *testing.T) {
	cfg, err := Parse([]byte(`{
		"project_name": "old",
		"stack": "python",
		"python_tooling": "poetry",
		"commands": {"test": "pytest", "lint": "ruff check .", "unknown": "x"},
		"source_dirs": ["src", " "]
	}`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "old", cfg.Project.Name)
	assert.Equal(t, types.StackPython, cfg.Project.PrimaryStack)
	assert.Equal(t, ".", cfg.Project.RepoRoot)
	assert.Equal(t, "poetry", cfg.Project.PythonToolchain)
	assert.Equal(t, "pytest", cfg.Commands.Test)
	assert.Equal(t, "ruff check .", cfg.Commands.Lint)
	assert.Equal(t, []string{"src"}, cfg.Paths.SourceDirs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"version", func(c *Config) { c.Version = 2 }, "version"},
		{"mode", func(c *Config) { c.Mode = "force" }, "mode"},
		{"on missing markers", func(c *Config) { c.OnMissingMarkers = "overwrite" }, "on_missing_markers"},
		{"suffix", func(c *Config) { c.GeneratedSuffix = "a/b" }, "generated_suffix"},
		{"stack", func(c *Config) { c.Project.PrimaryStack = "rust" }, "project.primary_stack"},
		{"llms format", func(c *Config) { c.Pack.LLMSFormat = "html" }, "pack.llms_format"},
		{"output dir escape", func(c *Config) { c.Pack.OutputDir = "../docs" }, "pack.output_dir"},
		{"output dir absolute", func(c *Config) { c.Pack.OutputDir = "/tmp/docs" }, "pack.output_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var ve *errors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	cfg := Default()
	cfg.Project.PrimaryStack = types.StackMixed
	assert.NoError(t, cfg.Validate())
}

func TestFromDetect(t *testing.T) {
	res := &detect.Result{
		Project:  types.Project{Name: "svc", PrimaryStack: types.StackMixed, NodePackageManager: "pnpm"},
		Paths:    types.Paths{Docs: []string{"README.md"}, CI: ".github/workflows/"},
		Commands: types.Commands{Test: "make test"},
		Evidence: types.Evidence{Make: []string{"Makefile", "target:test"}},
	}
	cfg := FromDetect(res)
	assert.Equal(t, "svc", cfg.Project.Name)
	assert.Equal(t, ".", cfg.Project.RepoRoot)
	assert.Equal(t, types.StackStatic, cfg.TemplateStack())
	assert.Equal(t, "make test", cfg.Commands.Test)
	assert.Equal(t, ".github/workflows/", cfg.Paths.CI)
	assert.True(t, cfg.Pack.Enabled)
	assert.Equal(t, []string{"Makefile", "target:test"}, cfg.Evidence.Make)
}

func TestExplicitEmptyAskBefore(t *testing.T) {
	cfg, err := Parse([]byte(`{"version":1,"defaults":{"guardrails":{"ask_before":[]}}}`))
	require.NoError(t, err)
	assert.Empty(t, cfg.AskBefore())
	assert.NotNil(t, cfg.AskBefore())
}

func TestYAML(t *testing.T) {
	cfg := Default()
	cfg.Project.Name = "demo"
	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "version: 1")
	assert.Contains(t, string(out), "name: demo")
	assert.Contains(t, string(out), "on_missing_markers: write_generated")
}

func TestMarshalIsPlainJSON(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"version", "mode", "on_missing_markers", "generated_suffix", "markers", "sections", "presets", "defaults", "project", "paths", "commands", "evidence", "pack"} {
		assert.Contains(t, m, key)
	}
	assert.Contains(t, string(data), `"start": "<!-- AGENTSGEN:START section={section} -->"`)
	assert.NotContains(t, string(data), `\u003c`)
}
