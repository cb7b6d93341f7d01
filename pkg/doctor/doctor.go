// Package doctor checks a repository's managed files without changing them.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/constants"
	"github.com/agentstation/agentsgen/pkg/markers"
	"github.com/agentstation/agentsgen/pkg/render"
	"github.com/agentstation/agentsgen/pkg/sections"
)

// Exit codes reported by Check.
const (
	CodeOK            = 0
	CodeProblems      = 1
	CodeMissingConfig = 2
)

// Report is the outcome of a check.
type Report struct {
	Code     int      `json:"code"     yaml:"code"`
	Problems []string `json:"problems" yaml:"problems"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// OK reports whether no problem was found. Warnings do not count.
func (r Report) OK() bool {
	return r.Code == CodeOK
}

func (r *Report) problem(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Check inspects the tool config, AGENTS.md and RUNBOOK.md under root.
func Check(fsys afero.Fs, root string) Report {
	rep := Report{Problems: []string{}, Warnings: []string{}}

	if !config.Exists(fsys, root) {
		rep.problem("Missing %s. Run: agentsgen init", constants.ConfigFilename)
		rep.Code = CodeMissingConfig
		return rep
	}

	cfg, err := config.Load(fsys, root)
	if err != nil {
		rep.problem("%s: %v", constants.ConfigFilename, err)
		rep.Code = CodeProblems
		return rep
	}

	files := []struct {
		name     string
		required []string
	}{
		{constants.AgentsFilename, render.RequiredSections(cfg.Stack())},
		{constants.RunbookFilename, render.RunbookSections()},
	}
	for _, f := range files {
		checkFile(fsys, filepath.Join(root, f.name), f.name, f.required, &rep)
	}

	if len(rep.Problems) > 0 {
		rep.Code = CodeProblems
	}
	return rep
}

func checkFile(fsys afero.Fs, path, name string, required []string, rep *Report) {
	data, err := afero.ReadFile(fsys, path)
	if os.IsNotExist(err) {
		rep.problem("Missing %s. Run: agentsgen init", name)
		return
	}
	if err != nil {
		rep.problem("%s: %v", name, err)
		return
	}

	text := string(data)
	if !markers.HasAny(text) {
		rep.problem("%s has no AGENTSGEN markers (cannot update safely)", name)
		return
	}
	for _, p := range markers.Validate(text) {
		rep.problem("%s: %s", name, p.Message)
	}

	for _, key := range required {
		body, ok := sections.Extract(text, key)
		if !ok {
			rep.problem("%s: missing section markers for '%s'", name, key)
			continue
		}
		body = strings.TrimSpace(body)
		if body == "" {
			rep.problem("%s: section '%s' is empty", name, key)
			continue
		}
		if slices.Contains(render.Placeholders, body) {
			rep.warn("%s: section '%s' looks like a placeholder; fill it or remove the section", name, key)
		}
	}
}
