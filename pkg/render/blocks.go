package render

import (
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/types"
)

// Placeholder bodies. pkg/doctor reports sections still holding one of these.
const (
	PlaceholderNotSpecified = "- (not specified)"
	PlaceholderNone         = "- (none)"
	PlaceholderNoCommands   = "- (no commands configured)"
	PlaceholderNotSet       = "- (not set)"
)

// Placeholders lists every placeholder body.
var Placeholders = []string{PlaceholderNotSpecified, PlaceholderNone, PlaceholderNoCommands, PlaceholderNotSet}

var commandLabels = []struct{ label, key string }{
	{"Install", "install"},
	{"Dev", "dev"},
	{"Test", "test"},
	{"Lint", "lint"},
	{"Format", "format"},
	{"Build", "build"},
}

// agentsSections builds every AGENTS.md section body keyed by section name.
func agentsSections(cfg *config.Config) map[string]string {
	return map[string]string{
		"overview":        overviewBlock(cfg),
		"repo_context":    repoContextBlock(cfg),
		"guardrails":      guardrailsBlock(cfg),
		"workflow":        workflowBlock(cfg),
		"verification":    verificationBlock(cfg),
		"style":           styleBlock(cfg),
		"rules":           rulesBlock(),
		"commands":        commandsBlock(cfg.Commands),
		"structure":       structureBlock(cfg.Paths),
		"output_protocol": outputProtocolBlock(),
		"python":          pythonBlock(),
		"node":            nodeBlock(),
		"static":          staticBlock(),
	}
}

func stackLabel(cfg *config.Config) string {
	stack := cfg.Stack()
	if stack == "" {
		stack = cfg.TemplateStack()
	}
	switch {
	case cfg.Project.NodePackageManager != "" && stack == types.StackNode:
		return fmt.Sprintf("%s (%s)", stack, cfg.Project.NodePackageManager)
	case cfg.Project.PythonToolchain != "" && stack == types.StackPython:
		return fmt.Sprintf("%s (%s)", stack, cfg.Project.PythonToolchain)
	}
	return string(stack)
}

func overviewBlock(cfg *config.Config) string {
	b := &body{}
	b.bullet(md.Bold("Project:") + " " + cfg.ProjectName("this repo"))
	b.bullet(md.Bold("Stack:") + " " + stackLabel(cfg))
	b.bullet("Keep changes small and verifiable.")
	return b.String()
}

func rulesBlock() string {
	b := &body{}
	b.line(md.Bold("DO"))
	b.bullets("Prefer small diffs.", "Add or update tests when behavior changes.", "Run the repo checks before finishing.")
	b.blank().line(md.Bold("DON'T"))
	b.bullets("Do not rewrite unrelated code.", "Do not refactor without confirming intent.", "Do not commit secrets or local env files.")
	b.blank().line(md.Bold("If uncertain"))
	b.bullet("Ask one short clarifying question before making big changes.")
	return b.String()
}

func commandsBlock(cmds types.Commands) string {
	b := &body{}
	for _, c := range commandLabels {
		if v := cmds.Get(c.key); v != "" {
			b.bullet(buildLabeled(c.label, v))
		}
	}
	if len(b.lines) == 0 {
		return PlaceholderNoCommands
	}
	return b.String()
}

func structureBlock(paths types.Paths) string {
	b := &body{}
	if len(paths.SourceDirs) > 0 {
		b.bullet(md.Bold("Source:") + " " + buildCodeList(paths.SourceDirs))
	}
	if len(paths.ConfigLocations) > 0 {
		b.bullet(md.Bold("Config:") + " " + buildCodeList(paths.ConfigLocations))
	}
	if len(b.lines) == 0 {
		return PlaceholderNotSpecified
	}
	return b.String()
}

func outputProtocolBlock() string {
	b := &body{}
	b.line("When you finish work, include:")
	b.bullets("Summary (1-3 bullets)", "Files changed (list paths)", "Verification (exact commands to run)")
	return b.String()
}

func pythonBlock() string {
	b := &body{}
	b.heading(2, "Python project notes").blank()
	b.heading(3, "Local setup")
	b.bullet("Create a venv: " + md.Code("python -m venv .venv && source .venv/bin/activate"))
	b.bullet("Install: " + md.Code("pip install -e ."))
	b.blank().heading(3, "Common commands")
	b.bullets("Tests: "+md.Code("pytest"), "Lint: "+md.Code("ruff check ."), "Format: "+md.Code("ruff format ."))
	b.blank().heading(3, "Packaging expectations")
	b.bullets("Keep dependencies minimal", "Prefer the standard library where reasonable", "Keep CLI help output clear and stable")
	return b.String()
}

func nodeBlock() string {
	b := &body{}
	b.heading(2, "Node project notes").blank()
	b.heading(3, "Common commands")
	b.bullet("Install: " + md.Code("npm ci") + " (or " + md.Code("pnpm i --frozen-lockfile") + ")")
	b.bullets("Tests: "+md.Code("npm test"), "Lint: "+md.Code("npm run lint"), "Build: "+md.Code("npm run build"))
	b.blank().heading(3, "Guardrails")
	b.bullets("Don't update lockfiles unless necessary", "Prefer minimal dependency changes")
	return b.String()
}

func staticBlock() string {
	b := &body{}
	b.heading(2, "Static site / docs notes").blank()
	b.heading(3, "Safe edits")
	b.bullets(
		"Avoid large HTML/CSS refactors unless requested",
		"Prefer small layout changes with predictable impact",
		"If the mobile layout changes, verify at least one narrow breakpoint",
	)
	b.blank().heading(3, "Quick checks")
	b.bullets("Run the formatter (if present)", "Spot-check links")
	return b.String()
}

func guardrailsBlock(cfg *config.Config) string {
	b := &body{}
	b.heading(3, fmt.Sprintf("Guardrails (how to not break %s)", cfg.ProjectName("this repo"))).blank()
	b.line(md.Bold("Your job:") + " be useful and safe. Small diffs. Deterministic output. No surprises.").blank()

	b.heading(4, "0) Scope & intent")
	b.bullets(
		"Implement exactly what's requested. If requirements are ambiguous, ask one precise question or make the smallest reasonable assumption and state it.",
		"Prefer changing existing code over adding new systems.",
		"Avoid framework upgrades unless explicitly asked.",
	)
	b.blank().heading(4, "1) Safe edits only")
	b.bullets(
		fmt.Sprintf("Keep diffs small (target: <%d lines unless unavoidable).", cfg.DiffBudget()),
		"Never rewrite whole files when a patch will do.",
		"Preserve formatting, naming patterns and local conventions.",
	)
	b.blank().heading(4, "2) No destructive operations")
	b.bullets(
		"Do not delete data, migrations, buckets or user files.",
		"Avoid broad refactors touching many modules at once.",
		"Never remove features as unused without explicit instruction.",
	)
	b.blank().heading(4, "3) Secrets & credentials")
	b.bullets("Never hardcode tokens or keys.", "Never print secrets into logs.", "If a secret is needed, use an env var and document its name.")
	b.blank().heading(4, "4) Side effects")
	b.bullets(
		"Don't run commands that modify the system or network unless asked.",
		"Don't use dangerous flags unless explicitly approved.",
	)
	b.blank().heading(4, "5) Ask-before list (must confirm)")
	b.line("Before doing any of these, ask:")
	if ask := cfg.AskBefore(); len(ask) > 0 {
		b.bullets(ask...)
	} else {
		b.line(PlaceholderNone)
	}
	b.blank().heading(4, "6) Definition of Done")
	b.line("A change is done only if:")
	b.bullets(
		"the behavior is correct,",
		"tests/checks were run (or you explain why they can't be),",
		"the diff is minimal and readable,",
		"docs/comments are updated if behavior changed.",
	)
	return b.String()
}

func workflowBlock(cfg *config.Config) string {
	b := &body{}
	b.heading(3, fmt.Sprintf("Workflow (how we ship changes in %s)", cfg.ProjectName("this repo"))).blank()
	b.heading(4, "1) Start with reality")
	b.bullets("Read the nearest README, docs and existing patterns.", "If there's a failing case, reproduce it first.")
	b.blank().heading(4, "2) Work in thin slices")
	if cfg.ThinSlices() {
		b.bullets("Prefer one small working increment over a big redesign.", "Change one thing, verify, then move on.")
	} else {
		b.bullet("Keep the approach incremental and testable.")
	}
	b.blank().heading(4, "3) Make changes reviewable")
	b.bullets("Keep diffs minimal.", "Avoid unrelated formatting churn.", "Refactor after the fix works, not before.")
	b.blank().heading(4, "4) Verification loop")
	b.bullets("Run fast checks after each meaningful change.", "Run full checks before finalizing.", "If you cannot run checks, say why and what to run.")
	b.blank().heading(4, "5) Commit discipline")
	allowed := "(not set)"
	if ct := cfg.CommitTypes(); len(ct) > 0 {
		allowed = strings.Join(ct, ", ")
	}
	b.bullet("Allowed commit types: " + allowed)
	b.bullet("Example: " + md.Code("fix: handle empty input in parser"))
	return b.String()
}

func styleBlock(cfg *config.Config) string {
	stack := string(cfg.Stack())
	if stack == "" {
		stack = "unknown"
	}
	b := &body{}
	b.heading(3, fmt.Sprintf("Style & conventions (%s)", stack)).blank()
	b.heading(4, "1) Follow the repo")
	b.bullets("Match existing naming, structure and patterns.", "Don't introduce new abstractions unless they reduce complexity.")
	b.blank().heading(4, "2) Readability wins")
	b.bullets("Prefer clear code over clever code.", "Keep functions small and single-purpose.")
	b.blank().heading(4, "3) Errors & edge cases")
	b.bullets("Validate inputs at boundaries.", "Write actionable error messages.")
	b.blank().heading(4, "4) Dependencies")
	b.bullets("Prefer the standard library and existing deps.", "Avoid heavy dependencies for small tasks.")
	return b.String()
}

func verificationBlock(cfg *config.Config) string {
	b := &body{}
	b.heading(3, "Verification (don't trust yourself, verify)").blank()
	b.heading(4, "Fast checks (run often)")
	if fast := cfg.Commands.Get("fast"); fast != "" {
		b.fence("bash", fast)
	} else {
		b.bullets("Define a fast check for this repo (lint, unit tests or a smoke test).", "If none exists, add a minimal smoke check.")
	}
	b.blank().heading(4, "Full checks (run before finalizing)")
	if full := cfg.Commands.Get("full"); full != "" {
		b.fence("bash", full)
	} else {
		b.bullet("Run the repo's full test suite (or the closest equivalent).")
	}
	b.blank().heading(4, "If checks cannot be run")
	b.line("State why, what to run, and the expected outcome.")
	return b.String()
}

func repoContextBlock(cfg *config.Config) string {
	p := cfg.Paths
	docs := p.Docs
	if len(docs) == 0 {
		docs = []string{"README.md"}
	}
	ci := orDefault(p.CI, ".github/workflows/")
	plans := orDefault(p.Plans, "plans/")
	drafts := orDefault(p.Drafts, "drafts/")
	scripts := orDefault(p.Scripts, "scripts/")

	b := &body{}
	b.heading(3, "Repo context (read this first)").blank()
	b.line(md.Bold("Project:") + " " + cfg.ProjectName("this repo") + "  ")
	b.line(md.Bold("Stack:") + " " + orDefault(string(cfg.Stack()), "unknown") + "  ")
	b.line(md.Bold("Repo root:") + " " + md.Code(orDefault(cfg.Project.RepoRoot, "."))).blank()

	b.heading(4, "Quick orientation")
	b.bullet("Start here:")
	for _, d := range docs {
		b.line("  - " + md.Code(d))
	}
	b.bullet("CI workflows live in: " + md.Code(ci))
	b.bullet("Plans: " + md.Code(plans) + ", drafts/specs: " + md.Code(drafts))
	b.bullet("Useful scripts: " + md.Code(scripts))

	if len(cfg.Project.Entrypoints) > 0 {
		b.blank().heading(4, "Entrypoints (what actually runs)")
		for _, ep := range cfg.Project.Entrypoints {
			b.bullet(md.Code(ep))
		}
	}

	var cmds []struct{ label, cmd string }
	for _, c := range []struct{ label, key string }{
		{"Dev / run", "dev"}, {"Build", "build"}, {"Lint", "lint"},
		{"Format", "format"}, {"Typecheck", "typecheck"}, {"Tests", "test"},
	} {
		if v := cfg.Commands.Get(c.key); v != "" {
			cmds = append(cmds, struct{ label, cmd string }{c.label, v})
		}
	}
	if len(cmds) > 0 {
		b.blank().heading(4, "Commands (copy/paste)")
		for _, c := range cmds {
			b.line(md.Bold(c.label)).fence("bash", c.cmd)
		}
	}

	b.blank().heading(4, "Where to put new things")
	b.bullet("Small scripts/utilities: " + md.Code(scripts))
	b.bullet("Specs/exec notes: " + md.Code(drafts))
	b.bullet("Plans (if requested): " + md.Code(plans))
	return b.String()
}

// runbookSections builds the RUNBOOK.md section bodies.
func runbookSections(cfg *config.Config) map[string]string {
	c := cfg.Commands

	quick := &body{}
	n := 0
	for _, key := range []string{"install", "dev", "test", "lint"} {
		if v := c.Get(key); v != "" {
			if n > 0 {
				quick.blank()
			}
			quick.fence("sh", v)
			n++
		}
	}
	quickstart := quick.String()
	if n == 0 {
		quickstart = "- (no quickstart commands configured)"
	}

	tasks := &body{}
	for _, t := range []struct{ label, key string }{{"Run tests", "test"}, {"Lint", "lint"}, {"Build", "build"}} {
		v := "(not set)"
		if cmd := c.Get(t.key); cmd != "" {
			v = md.Code(cmd)
		}
		tasks.bullet(t.label + ": " + v)
	}

	trouble := &body{}
	trouble.bullets(
		"If dependencies fail: check the Node/Python version this repo expects.",
		"If tests are flaky: re-run once, then isolate and fix the root cause.",
		"If the environment is unclear: ask for the expected OS and tooling versions.",
	)

	return map[string]string{
		"quickstart":      quickstart,
		"common_tasks":    tasks.String(),
		"troubleshooting": trouble.String(),
	}
}
