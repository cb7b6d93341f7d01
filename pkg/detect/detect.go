// Package detect inspects a repository with cheap, read-only heuristics and
// reports its primary stack, useful paths and likely commands, together with
// the evidence for each conclusion.
package detect

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/constants"
	"github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/types"
)

// Result is the outcome of detection.
type Result struct {
	Project   types.Project  `json:"project"             yaml:"project"`
	Paths     types.Paths    `json:"paths"               yaml:"paths"`
	Commands  types.Commands `json:"commands"            yaml:"commands"`
	Evidence  types.Evidence `json:"evidence"            yaml:"evidence"`
	Rationale []string       `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

var (
	docCandidates    = []string{"README.md", "RUNBOOK.md", "CONTRIBUTING.md"}
	sourceCandidates = []string{"src", "lib", "app", "apps", "packages", "cmd", "internal", "pkg", "services"}
	configCandidates = []string{
		"pyproject.toml", "setup.cfg", "package.json", "tsconfig.json", "Makefile",
		"ruff.toml", "mypy.ini", "pytest.ini", "tox.ini", ".editorconfig", ".env.example",
	}
	makeCommandTargets = []string{"dev", "test", "lint", "format", "build", "typecheck"}
	makeDevAlternates  = []string{"run", "start", "serve"}
	skipDirs           = map[string]bool{
		"node_modules": true, ".git": true, ".venv": true, "venv": true,
		"__pycache__": true, "dist": true, "build": true, ".tox": true,
	}
)

// Repo runs detection against root on fs. It never writes.
func Repo(fsys afero.Fs, root string) (*Result, error) {
	ok, err := afero.IsDir(fsys, root)
	if err != nil || !ok {
		return nil, errors.NewNotFoundError("directory", root)
	}
	r := repo{fs: fsys, root: root}
	res := &Result{}

	res.Project.Name = projectName(root)
	res.Project.RepoRoot = "."

	res.Paths.Docs = r.existing(docCandidates...)
	if len(res.Paths.Docs) == 0 {
		res.Paths.Docs = []string{"README.md"}
	}
	for _, d := range []struct {
		name string
		dst  *string
	}{{"scripts", &res.Paths.Scripts}, {"plans", &res.Paths.Plans}, {"drafts", &res.Paths.Drafts}} {
		if r.isDir(d.name) {
			*d.dst = d.name + "/"
		}
	}
	for _, d := range sourceCandidates {
		if r.isDir(d) {
			res.Paths.SourceDirs = append(res.Paths.SourceDirs, d+"/")
		}
	}
	res.Paths.ConfigLocations = r.existing(configCandidates...)

	if ci := detectGitHubActions(r); ci != nil {
		res.Paths.CI = ci.Dir
		if len(ci.Workflows) > 0 {
			res.Evidence.CI = append(res.Evidence.CI, ci.Workflows...)
		} else {
			res.Evidence.CI = append(res.Evidence.CI, ci.Dir)
		}
	}

	mk := detectMakefile(r)
	if mk != nil {
		res.Evidence.Make = append(res.Evidence.Make, mk.Path)
		for _, t := range mk.Targets {
			res.Evidence.Make = append(res.Evidence.Make, "target:"+t)
		}
	}

	py := detectPython(r)
	if py != nil {
		res.Evidence.Python = append(res.Evidence.Python, py.Evidence...)
	}
	node := detectNode(r)
	if node != nil {
		res.Evidence.Node = append(res.Evidence.Node, node.Evidence...)
	}

	if py == nil && node == nil {
		pkgs, pys := scanNested(r)
		res.Evidence.Node = append(res.Evidence.Node, pkgs...)
		res.Evidence.Python = append(res.Evidence.Python, pys...)
		res.Project.PrimaryStack = stackOf(len(pys) > 0, len(pkgs) > 0)
		if len(pkgs)+len(pys) > 0 {
			res.note("no root manifest; nested manifests found: %s", strings.Join(append(pys, pkgs...), ", "))
		}
	} else {
		res.Project.PrimaryStack = stackOf(py != nil, node != nil)
	}
	res.note("primary_stack=%s (python evidence: %d, node evidence: %d)",
		res.Project.PrimaryStack, len(res.Evidence.Python), len(res.Evidence.Node))

	res.Commands = chooseCommands(res, mk, node, py)
	return res, nil
}

// chooseCommands applies the priority Makefile, then node scripts, then
// Python tooling. Package manager and toolchain are recorded whenever seen.
func chooseCommands(res *Result, mk *MakefileInfo, node *NodeInfo, py *PythonInfo) types.Commands {
	var cmds types.Commands
	if mk != nil {
		for _, t := range makeCommandTargets {
			if mk.HasTarget(t) {
				cmds.Set(t, "make "+t)
			}
		}
		if cmds.Dev == "" {
			for _, alt := range makeDevAlternates {
				if mk.HasTarget(alt) {
					cmds.Dev = "make " + alt
					break
				}
			}
		}
		if !cmds.IsEmpty() {
			res.note("commands from %s targets", mk.Path)
		}
	}
	if cmds.IsEmpty() && node != nil {
		cmds = node.Commands()
		if !cmds.IsEmpty() {
			res.note("commands from package.json scripts (%s)", node.PackageManager)
		}
	}
	if cmds.IsEmpty() && py != nil {
		cmds = py.Commands()
		if !cmds.IsEmpty() {
			res.note("commands from python tooling (%s)", py.Toolchain)
		}
	}
	if cmds.IsEmpty() {
		res.note("no commands detected")
	}

	if node != nil {
		res.Project.NodePackageManager = node.PackageManager
	}
	if py != nil {
		res.Project.PythonToolchain = py.Toolchain
	}
	return cmds
}

// scanNested looks for package.json and pyproject.toml below the root,
// bounded in depth and hit count.
func scanNested(r repo) (pkgs, pys []string) {
	_ = afero.Walk(r.fs, r.root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(r.root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		depth := strings.Count(rel, "/") + 1
		if info.IsDir() {
			if skipDirs[info.Name()] || depth >= constants.MaxMonorepoDepth {
				return filepath.SkipDir
			}
			return nil
		}
		switch info.Name() {
		case "package.json":
			if len(pkgs) < constants.MaxMonorepoHits {
				pkgs = append(pkgs, rel)
			}
		case "pyproject.toml":
			if len(pys) < constants.MaxMonorepoHits {
				pys = append(pys, rel)
			}
		}
		return nil
	})
	slices.Sort(pkgs)
	slices.Sort(pys)
	return pkgs, pys
}

func stackOf(python, node bool) types.Stack {
	switch {
	case python && node:
		return types.StackMixed
	case python:
		return types.StackPython
	case node:
		return types.StackNode
	}
	return types.StackStatic
}

func projectName(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return filepath.Base(root)
}

func (res *Result) note(format string, args ...any) {
	res.Rationale = append(res.Rationale, fmt.Sprintf(format, args...))
}
