// Package pack plans and applies the optional LLM-oriented documentation pack:
// an llms manifest plus run, test, architecture, data contract, security,
// contributing and README snippet files.
package pack

import (
	"context"
	"path"
	"strings"

	"github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/reconcile"
	"github.com/agentstation/agentsgen/pkg/render"
)

// Spec describes one pack file.
type Spec struct {
	// Path is relative to the repository root, slash separated.
	Path     string   `json:"path"     yaml:"path"`
	Template string   `json:"template" yaml:"template"`
	Required []string `json:"required" yaml:"required"`
}

// Name returns the file name of the spec path.
func (s Spec) Name() string {
	return path.Base(s.Path)
}

func manifest(cfg *config.Config) Spec {
	if cfg.Pack.Format() == "md" {
		return Spec{Path: "LLMS.md", Template: "LLMS.md.tmpl", Required: []string{"llms"}}
	}
	return Spec{Path: "llms.txt", Template: "llms.txt.tmpl", Required: []string{"llms"}}
}

// All returns every pack file for cfg, before allowlist filtering.
func All(cfg *config.Config) []Spec {
	dir := strings.TrimSuffix(cfg.Pack.Dir(), "/")
	return []Spec{
		manifest(cfg),
		{Path: path.Join(dir, "how-to-run.md"), Template: "how-to-run.md.tmpl", Required: []string{"how_to_run"}},
		{Path: path.Join(dir, "how-to-test.md"), Template: "how-to-test.md.tmpl", Required: []string{"how_to_test"}},
		{Path: path.Join(dir, "architecture.md"), Template: "architecture.md.tmpl", Required: []string{"architecture"}},
		{Path: path.Join(dir, "data-contracts.md"), Template: "data-contracts.md.tmpl", Required: []string{"data_contracts"}},
		{Path: "SECURITY_AI.md", Template: "SECURITY_AI.md.tmpl", Required: []string{"security_ai"}},
		{Path: "CONTRIBUTING_AI.md", Template: "CONTRIBUTING_AI.md.tmpl", Required: []string{"contributing_ai"}},
		{Path: "README_SNIPPETS.md", Template: "README_SNIPPETS.md.tmpl", Required: []string{"readme_snippets"}},
	}
}

// Plan returns the pack files selected by the allowlist. An entry matches a
// file by path or by name, case-insensitively; "llms" matches either manifest
// format. The plan is never empty: with no match it holds the manifest.
func Plan(cfg *config.Config) []Spec {
	allow := make(map[string]bool)
	for _, f := range cfg.Pack.Allowlist() {
		allow[strings.ToLower(strings.ReplaceAll(f, "\\", "/"))] = true
	}

	var out []Spec
	for _, s := range All(cfg) {
		name := strings.ToLower(s.Name())
		isManifest := name == "llms.txt" || name == "llms.md"
		if allow[strings.ToLower(s.Path)] || allow[name] || (allow["llms"] && isManifest) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		out = []Spec{manifest(cfg)}
	}
	return out
}

// Targets renders every planned file.
func Targets(cfg *config.Config) ([]reconcile.Target, error) {
	plan := Plan(cfg)
	targets := make([]reconcile.Target, 0, len(plan))
	for _, s := range plan {
		doc, err := render.Pack(cfg, s.Template)
		if err != nil {
			return nil, err
		}
		targets = append(targets, reconcile.Target{Path: s.Path, Rendered: doc, Required: s.Required})
	}
	return targets, nil
}

// Apply reconciles the planned pack files. A disabled pack yields one
// skipped result for the root.
func Apply(ctx context.Context, rec *reconcile.Reconciler, cfg *config.Config) (reconcile.Results, error) {
	if !cfg.Pack.Enabled {
		return reconcile.Results{{
			Path:    rec.Root(),
			Action:  reconcile.ActionSkipped,
			Message: "pack.disabled in config",
		}}, nil
	}
	targets, err := Targets(cfg)
	if err != nil {
		return nil, err
	}
	return rec.ReconcileAll(ctx, targets), nil
}
