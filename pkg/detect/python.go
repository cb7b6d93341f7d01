package detect

import (
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/agentstation/agentsgen/pkg/types"
)

var pythonSentinels = []string{
	"pyproject.toml",
	"requirements.txt",
	"setup.py",
	"setup.cfg",
	"Pipfile",
	"pytest.ini",
	"tox.ini",
}

// Python toolchains.
const (
	ToolchainUV      = "uv"
	ToolchainPoetry  = "poetry"
	ToolchainVanilla = "vanilla"
)

// PythonInfo describes the Python tooling at the repository root.
type PythonInfo struct {
	Toolchain  string
	HasRuff    bool
	HasBlack   bool
	HasMypy    bool
	HasPytest  bool
	HasProject bool
	Evidence   []string
}

// pyproject answers "is [tool.X] configured" from the parsed TOML, falling
// back to a substring search when the file does not parse.
type pyproject struct {
	tool map[string]any
	text string
	ok   bool
}

func parsePyproject(text string) pyproject {
	p := pyproject{text: text}
	if text == "" {
		return p
	}
	var doc struct {
		Tool map[string]any `toml:"tool"`
	}
	if err := toml.Unmarshal([]byte(text), &doc); err == nil {
		p.tool = doc.Tool
		p.ok = true
	}
	return p
}

func (p pyproject) hasTool(name string) bool {
	if p.ok {
		_, found := p.tool[name]
		return found
	}
	return strings.Contains(p.text, "[tool."+name+"]") || strings.Contains(p.text, "[tool."+name+".")
}

func detectPython(r repo) *PythonInfo {
	evidence := r.existing(pythonSentinels...)
	if len(evidence) == 0 {
		return nil
	}
	info := &PythonInfo{Toolchain: ToolchainVanilla, HasProject: r.isFile("pyproject.toml")}
	py := parsePyproject(r.read("pyproject.toml"))

	switch {
	case r.isFile("uv.lock"):
		info.Toolchain = ToolchainUV
		evidence = append(evidence, "uv.lock")
	case py.hasTool("uv"):
		info.Toolchain = ToolchainUV
		evidence = append(evidence, "pyproject.toml:[tool.uv]")
	case r.isFile("poetry.lock"):
		info.Toolchain = ToolchainPoetry
		evidence = append(evidence, "poetry.lock")
	case py.hasTool("poetry"):
		info.Toolchain = ToolchainPoetry
		evidence = append(evidence, "pyproject.toml:[tool.poetry]")
	}

	switch {
	case r.isFile("ruff.toml"):
		info.HasRuff = true
		evidence = append(evidence, "ruff.toml")
	case py.hasTool("ruff"):
		info.HasRuff = true
		evidence = append(evidence, "pyproject.toml:[tool.ruff]")
	}

	if py.hasTool("black") {
		info.HasBlack = true
		evidence = append(evidence, "pyproject.toml:[tool.black]")
	}

	switch {
	case r.isFile("mypy.ini"):
		info.HasMypy = true
		evidence = append(evidence, "mypy.ini")
	case py.hasTool("mypy"):
		info.HasMypy = true
		evidence = append(evidence, "pyproject.toml:[tool.mypy]")
	}

	switch {
	case r.isFile("pytest.ini"):
		info.HasPytest = true
	case py.hasTool("pytest"):
		info.HasPytest = true
		evidence = append(evidence, "pyproject.toml:pytest")
	}

	slices.Sort(evidence)
	info.Evidence = slices.Compact(evidence)
	return info
}

// Commands fills the command table only for tools that are configured.
func (p *PythonInfo) Commands() types.Commands {
	runner := ""
	switch p.Toolchain {
	case ToolchainUV:
		runner = "uv run "
	case ToolchainPoetry:
		runner = "poetry run "
	}

	var cmds types.Commands
	if p.HasPytest {
		cmds.Test = runner + "pytest"
		cmds.Fast = runner + "pytest -q"
	}
	if p.HasRuff {
		cmds.Lint = runner + "ruff check ."
		cmds.Format = runner + "ruff format ."
	} else if p.HasBlack {
		cmds.Format = runner + "black ."
	}
	if p.HasMypy {
		cmds.Typecheck = runner + "mypy ."
	}
	return cmds
}
