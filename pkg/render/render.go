// Package render produces the full managed documents from a tool config.
// Templates are embedded and executed with text/template; section bodies are
// built in Go so that every document carries complete AGENTSGEN markers.
package render

import (
	"bytes"
	"embed"
	"io/fs"
	"path"
	"strings"
	"text/template"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/normalize"
	"github.com/agentstation/agentsgen/pkg/sections"
	"github.com/agentstation/agentsgen/pkg/types"
)

//go:embed templates
var templatesFS embed.FS

var baseSections = []string{
	"overview",
	"repo_context",
	"guardrails",
	"workflow",
	"verification",
	"style",
	"rules",
	"commands",
	"structure",
	"output_protocol",
}

// RequiredSections returns the AGENTS.md sections patched for stack. Stacks
// with their own templates add a section named after the stack.
func RequiredSections(stack types.Stack) []string {
	out := append([]string(nil), baseSections...)
	if s := types.ParseStack(string(stack)); s.HasTemplates() {
		out = append(out, string(s))
	}
	return out
}

// RunbookSections returns the RUNBOOK.md sections patched on update.
func RunbookSections() []string {
	return []string{"quickstart", "common_tasks", "troubleshooting"}
}

// funcs are available to every template.
var funcs = template.FuncMap{
	"section": func(key string, bodies map[string]string) string {
		return sections.Wrap(key, bodies[key])
	},
	"code": md.Code,
	"bold": md.Bold,
}

// agentsData is the AGENTS.md and RUNBOOK.md template context.
type agentsData struct {
	ProjectName    string
	Stack          string
	SingleTestHint string
	ConfigsHint    string
	Sections       map[string]string
}

func newAgentsData(cfg *config.Config, bodies map[string]string) agentsData {
	configs := "(not specified)"
	if l := buildCodeList(cfg.Paths.ConfigLocations); l != "" {
		configs = l
	}
	single := "(not specified)"
	if v := cfg.Commands.Get("single_test"); v != "" {
		single = md.Code(v)
	}
	return agentsData{
		ProjectName:    cfg.ProjectName("this repo"),
		Stack:          stackLabel(cfg),
		SingleTestHint: single,
		ConfigsHint:    configs,
		Sections:       bodies,
	}
}

// Agents renders the full AGENTS.md for cfg.
func Agents(cfg *config.Config) (string, error) {
	data := newAgentsData(cfg, agentsSections(cfg))
	return execute(path.Join(string(cfg.TemplateStack()), "AGENTS.md.tmpl"), data)
}

// Runbook renders the full RUNBOOK.md for cfg.
func Runbook(cfg *config.Config) (string, error) {
	data := newAgentsData(cfg, runbookSections(cfg))
	return execute(path.Join(string(cfg.TemplateStack()), "RUNBOOK.md.tmpl"), data)
}

// Prompt returns the exec-spec prompt written by init.
func Prompt() (string, error) {
	data, err := fs.ReadFile(templatesFS, "templates/prompts/execspec.md")
	if err != nil {
		return "", errors.WrapResource("read", "template", "prompts/execspec.md", err)
	}
	return normalize.Markdown(string(data)), nil
}

// execute runs templates/<name> together with the shared partials and
// returns normalized output.
func execute(name string, data any) (string, error) {
	tmpl, err := template.New(path.Base(name)).Funcs(funcs).ParseFS(templatesFS,
		"templates/partials.tmpl",
		"templates/"+name,
	)
	if err != nil {
		return "", errors.WrapParse("template", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, path.Base(name), data); err != nil {
		return "", errors.WrapParse("template", name, err)
	}
	return normalize.Markdown(buf.String()), nil
}

// Templates lists the embedded template files, relative to the templates dir.
func Templates() []string {
	var out []string
	_ = fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			out = append(out, strings.TrimPrefix(p, "templates/"))
		}
		return nil
	})
	return out
}
