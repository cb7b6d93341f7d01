package detect

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/types"
)

const root = "/work/demo"

// fixture builds a repository on an in-memory fs. Keys ending in "/" are
// directories.
func fixture(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0o755))
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, fs.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fs, p, []byte(content), 0o644))
	}
	return fs
}

func TestRepoNotADirectory(t *testing.T) {
	_, err := Repo(afero.NewMemMapFs(), "/missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestStaticRepo(t *testing.T) {
	fs := fixture(t, map[string]string{"index.html": "<html></html>"})
	res, err := Repo(fs, root)
	require.NoError(t, err)

	assert.Equal(t, "demo", res.Project.Name)
	assert.Equal(t, types.StackStatic, res.Project.PrimaryStack)
	assert.Equal(t, ".", res.Project.RepoRoot)
	assert.Equal(t, []string{"README.md"}, res.Paths.Docs)
	assert.Empty(t, res.Paths.CI)
	assert.True(t, res.Commands.IsEmpty())
	assert.Contains(t, res.Rationale, "no commands detected")
}

func TestPythonUV(t *testing.T) {
	fs := fixture(t, map[string]string{
		"pyproject.toml": "[project]\nname = \"demo\"\n\n[tool.ruff]\nline-length = 100\n\n[tool.pytest.ini_options]\naddopts = \"-q\"\n\n[tool.mypy]\nstrict = true\n",
		"uv.lock":        "",
		"README.md":      "# demo",
		"src/":           "",
	})
	res, err := Repo(fs, root)
	require.NoError(t, err)

	assert.Equal(t, types.StackPython, res.Project.PrimaryStack)
	assert.Equal(t, "uv", res.Project.PythonToolchain)
	assert.Equal(t, "uv run pytest", res.Commands.Test)
	assert.Equal(t, "uv run pytest -q", res.Commands.Fast)
	assert.Equal(t, "uv run ruff check .", res.Commands.Lint)
	assert.Equal(t, "uv run ruff format .", res.Commands.Format)
	assert.Equal(t, "uv run mypy .", res.Commands.Typecheck)
	assert.Contains(t, res.Evidence.Python, "uv.lock")
	assert.Contains(t, res.Evidence.Python, "pyproject.toml:[tool.ruff]")
	assert.Equal(t, []string{"src/"}, res.Paths.SourceDirs)
	assert.Equal(t, []string{"pyproject.toml"}, res.Paths.ConfigLocations)
	assert.Equal(t, []string{"README.md"}, res.Paths.Docs)
}

func TestPythonPoetryFromPyproject(t *testing.T) {
	fs := fixture(t, map[string]string{
		"pyproject.toml": "[tool.poetry]\nname = \"demo\"\n\n[tool.black]\nline-length = 88\n",
		"pytest.ini":     "[pytest]\n",
	})
	res, err := Repo(fs, root)
	require.NoError(t, err)

	assert.Equal(t, "poetry", res.Project.PythonToolchain)
	assert.Equal(t, "poetry run pytest", res.Commands.Test)
	assert.Equal(t, "poetry run black .", res.Commands.Format)
	assert.Empty(t, res.Commands.Lint)
	assert.Contains(t, res.Evidence.Python, "pyproject.toml:[tool.poetry]")
}

func TestPyprojectTextFallback(t *testing.T) {
	p := parsePyproject("[tool.uv]\nthis is = = not toml\n")
	assert.False(t, p.ok)
	assert.True(t, p.hasTool("uv"))
	assert.False(t, p.hasTool("poetry"))
}

func TestNodePnpm(t *testing.T) {
	fs := fixture(t, map[string]string{
		"package.json":   `{"name":"demo","scripts":{"dev":"vite","test":"vitest","lint":"eslint .","build":"vite build","test:unit":"vitest run"}}`,
		"pnpm-lock.yaml": "",
		"tsconfig.json":  "{}",
	})
	res, err := Repo(fs, root)
	require.NoError(t, err)

	assert.Equal(t, types.StackNode, res.Project.PrimaryStack)
	assert.Equal(t, "pnpm", res.Project.NodePackageManager)
	assert.Equal(t, "pnpm dev", res.Commands.Dev)
	assert.Equal(t, "pnpm test", res.Commands.Test)
	assert.Equal(t, "pnpm test:unit", res.Commands.Fast)
	assert.Empty(t, res.Commands.Format)
	assert.Equal(t, []string{"package.json", "pnpm-lock.yaml"}, res.Evidence.Node)
	assert.Equal(t, []string{"package.json", "tsconfig.json"}, res.Paths.ConfigLocations)
}

func TestNodeNpmScripts(t *testing.T) {
	info := &NodeInfo{PackageManager: "npm", Scripts: map[string]string{"test": "jest", "lint": "eslint", "test:fast": "jest -o"}}
	cmds := info.Commands()
	assert.Equal(t, "npm test", cmds.Test)
	assert.Equal(t, "npm run lint", cmds.Lint)
	assert.Equal(t, "npm run test:fast", cmds.Fast)
}

func TestBrokenPackageJSON(t *testing.T) {
	fs := fixture(t, map[string]string{"package.json": "{not json", "yarn.lock": ""})
	res, err := Repo(fs, root)
	require.NoError(t, err)
	assert.Equal(t, types.StackNode, res.Project.PrimaryStack)
	assert.Equal(t, "yarn", res.Project.NodePackageManager)
	assert.True(t, res.Commands.IsEmpty())
}

func TestMakefileDominates(t *testing.T) {
	fs := fixture(t, map[string]string{
		"Makefile":                       "VERSION := 1.0\n.PHONY: test lint\n\n# comment\ntest:\n\tpytest\nlint: deps\n\truff check .\nserve:\n\tpython -m http.server\n%.o: %.c\n",
		"package.json":                   `{"scripts":{"test":"jest"}}`,
		"package-lock.json":              "{}",
		"requirements.txt":               "requests\n",
		".github/workflows/ci.yml":       "on: push",
		".github/workflows/release.yaml": "on: tag",
		"scripts/":                       "",
	})
	res, err := Repo(fs, root)
	require.NoError(t, err)

	assert.Equal(t, types.StackMixed, res.Project.PrimaryStack)
	assert.Equal(t, "make test", res.Commands.Test)
	assert.Equal(t, "make lint", res.Commands.Lint)
	assert.Equal(t, "make serve", res.Commands.Dev)
	assert.Empty(t, res.Commands.Build)
	assert.Equal(t, "npm", res.Project.NodePackageManager)
	assert.Equal(t, "vanilla", res.Project.PythonToolchain)
	assert.Equal(t, []string{"Makefile", "target:lint", "target:serve", "target:test"}, res.Evidence.Make)
	assert.Equal(t, []string{".github/workflows/ci.yml", ".github/workflows/release.yaml"}, res.Evidence.CI)
	assert.Equal(t, ".github/workflows/", res.Paths.CI)
	assert.Equal(t, "scripts/", res.Paths.Scripts)
	assert.Contains(t, res.Rationale, "commands from Makefile targets")
}

func TestParseTargets(t *testing.T) {
	got := parseTargets("CC = gcc\nFLAGS:=x\nall: build\nbuild:\n.DEFAULT_GOAL: all\nbuild:\n  indented: no\n")
	assert.Equal(t, []string{"all", "build"}, got)
}

func TestMonorepoScan(t *testing.T) {
	fs := fixture(t, map[string]string{
		"apps/web/package.json":         "{}",
		"services/api/pyproject.toml":   "[project]\nname='api'\n",
		"node_modules/dep/package.json": "{}",
		"a/b/c/d/package.json":          "{}",
		"a/b/c/package.json":            "{}",
	})
	res, err := Repo(fs, root)
	require.NoError(t, err)

	assert.Equal(t, types.StackMixed, res.Project.PrimaryStack)
	assert.Equal(t, []string{"a/b/c/package.json", "apps/web/package.json"}, res.Evidence.Node)
	assert.Equal(t, []string{"services/api/pyproject.toml"}, res.Evidence.Python)
	assert.Equal(t, []string{"apps/", "services/"}, res.Paths.SourceDirs)
}

func TestMonorepoHitLimit(t *testing.T) {
	files := map[string]string{}
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		files["packages/"+n+"/package.json"] = "{}"
	}
	res, err := Repo(fixture(t, files), root)
	require.NoError(t, err)
	assert.Len(t, res.Evidence.Node, 5)
	assert.Equal(t, types.StackNode, res.Project.PrimaryStack)
}
