// Package config defines the per-repository tool configuration persisted as
// .agentsgen.json and everything needed to load, validate and save it.
package config

import (
	"slices"
	"strings"

	"github.com/agentstation/agentsgen/pkg/constants"
	"github.com/agentstation/agentsgen/pkg/detect"
	"github.com/agentstation/agentsgen/pkg/types"
)

// Config is the v1 .agentsgen.json document.
type Config struct {
	Version          int            `json:"version"            yaml:"version"`
	Mode             string         `json:"mode"               yaml:"mode"`
	OnMissingMarkers string         `json:"on_missing_markers" yaml:"on_missing_markers"`
	GeneratedSuffix  string         `json:"generated_suffix"   yaml:"generated_suffix"`
	Markers          Markers        `json:"markers"            yaml:"markers"`
	Sections         []string       `json:"sections"           yaml:"sections"`
	Presets          map[string]any `json:"presets"            yaml:"presets"`
	Defaults         Defaults       `json:"defaults"           yaml:"defaults"`
	Project          types.Project  `json:"project"            yaml:"project"`
	Paths            types.Paths    `json:"paths"              yaml:"paths"`
	Commands         types.Commands `json:"commands"           yaml:"commands"`
	Evidence         types.Evidence `json:"evidence"           yaml:"evidence"`
	Pack             Pack           `json:"pack"               yaml:"pack"`
}

// Markers records the marker templates. They are persisted for reference;
// the engine always uses the fixed AGENTSGEN literal.
type Markers struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end"   yaml:"end"`
}

// Defaults tunes the shared guardrails and workflow sections.
type Defaults struct {
	Guardrails *Guardrails `json:"guardrails,omitempty" yaml:"guardrails,omitempty"`
	Workflow   *Workflow   `json:"workflow,omitempty"   yaml:"workflow,omitempty"`
}

// Guardrails configures the guardrails section.
type Guardrails struct {
	DiffBudgetLines int      `json:"diff_budget_lines,omitempty" yaml:"diff_budget_lines,omitempty"`
	AskBefore       []string `json:"ask_before"                  yaml:"ask_before"`
}

// Workflow configures the workflow section.
type Workflow struct {
	ThinSlices             *bool    `json:"thin_slices,omitempty"    yaml:"thin_slices,omitempty"`
	RecommendedCommitTypes []string `json:"recommended_commit_types" yaml:"recommended_commit_types"`
}

// Pack configures the LLM-oriented documentation pack.
type Pack struct {
	Enabled    bool     `json:"enabled"     yaml:"enabled"`
	LLMSFormat string   `json:"llms_format" yaml:"llms_format"`
	OutputDir  string   `json:"output_dir"  yaml:"output_dir"`
	Files      []string `json:"files"       yaml:"files"`
}

var (
	defaultSections    = []string{"guardrails", "workflow", "style", "verification", "stack", "repo_context"}
	defaultAskBefore   = []string{"schema changes", "auth/payments/crypto", "deletions or large refactors", "new build tooling/CI changes", "new major dependencies"}
	defaultCommitTypes = []string{"feat", "fix", "test", "docs", "refactor"}
)

// Default returns a config with every field at its default.
func Default() *Config {
	return &Config{
		Version:          constants.ConfigVersion,
		Mode:             constants.DefaultMode,
		OnMissingMarkers: constants.DefaultOnMissingMarkers,
		GeneratedSuffix:  constants.DefaultGeneratedSuffix,
		Markers: Markers{
			Start: "<!-- " + constants.MarkerPrefix + ":START section={section} -->",
			End:   "<!-- " + constants.MarkerPrefix + ":END section={section} -->",
		},
		Sections: slices.Clone(defaultSections),
		Presets:  map[string]any{},
		Project:  types.Project{RepoRoot: "."},
		Pack:     DefaultPack(),
	}
}

// DefaultPack returns the default pack settings.
func DefaultPack() Pack {
	return Pack{
		Enabled:    true,
		LLMSFormat: constants.DefaultPackLLMSFormat,
		OutputDir:  constants.DefaultPackOutputDir,
		Files:      []string{},
	}
}

// FromDetect builds a config from a detection result.
func FromDetect(res *detect.Result) *Config {
	cfg := Default()
	if res == nil {
		return cfg
	}
	cfg.Project = res.Project
	if cfg.Project.RepoRoot == "" {
		cfg.Project.RepoRoot = "."
	}
	cfg.Paths = res.Paths
	cfg.Commands = res.Commands
	cfg.Evidence = res.Evidence
	return cfg
}

// Stack returns the configured primary stack.
func (c *Config) Stack() types.Stack {
	return types.ParseStack(string(c.Project.PrimaryStack))
}

// TemplateStack returns the stack whose templates render this config.
func (c *Config) TemplateStack() types.Stack {
	return c.Stack().TemplateStack()
}

// ProjectName returns the configured name, or fallback when unset.
func (c *Config) ProjectName(fallback string) string {
	if n := strings.TrimSpace(c.Project.Name); n != "" {
		return n
	}
	return fallback
}

// DiffBudget returns the guardrail diff budget in lines.
func (c *Config) DiffBudget() int {
	if g := c.Defaults.Guardrails; g != nil && g.DiffBudgetLines > 0 {
		return g.DiffBudgetLines
	}
	return constants.DefaultDiffBudgetLines
}

// AskBefore returns the actions that need confirmation. An explicitly empty
// list stays empty.
func (c *Config) AskBefore() []string {
	if g := c.Defaults.Guardrails; g != nil && g.AskBefore != nil {
		return nonEmpty(g.AskBefore)
	}
	return slices.Clone(defaultAskBefore)
}

// ThinSlices reports whether the workflow section recommends thin slices.
func (c *Config) ThinSlices() bool {
	if w := c.Defaults.Workflow; w != nil && w.ThinSlices != nil {
		return *w.ThinSlices
	}
	return true
}

// CommitTypes returns the recommended conventional commit types.
func (c *Config) CommitTypes() []string {
	if w := c.Defaults.Workflow; w != nil && w.RecommendedCommitTypes != nil {
		return nonEmpty(w.RecommendedCommitTypes)
	}
	return slices.Clone(defaultCommitTypes)
}

// Format returns "txt" or "md"; anything else falls back to the default.
func (p Pack) Format() string {
	switch f := strings.ToLower(strings.TrimSpace(p.LLMSFormat)); f {
	case "txt", "md":
		return f
	}
	return constants.DefaultPackLLMSFormat
}

// Dir returns the pack output directory, defaulting to docs/ai.
func (p Pack) Dir() string {
	if d := strings.TrimSpace(p.OutputDir); d != "" {
		return d
	}
	return constants.DefaultPackOutputDir
}

// Allowlist returns the configured pack files, or the defaults when empty.
func (p Pack) Allowlist() []string {
	if files := nonEmpty(p.Files); len(files) > 0 {
		return files
	}
	return slices.Clone(constants.DefaultPackFiles)
}

func nonEmpty(items []string) []string {
	out := []string{}
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
