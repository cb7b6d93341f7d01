package detect

import (
	"path"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

const workflowsDir = ".github/workflows"

// CIInfo describes GitHub Actions workflows.
type CIInfo struct {
	Dir       string
	Workflows []string
}

func detectGitHubActions(r repo) *CIInfo {
	if !r.isDir(workflowsDir) {
		return nil
	}
	entries, err := afero.ReadDir(r.fs, r.path(workflowsDir))
	if err != nil {
		return &CIInfo{Dir: workflowsDir + "/"}
	}
	var workflows []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name := e.Name(); strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			workflows = append(workflows, path.Join(workflowsDir, name))
		}
	}
	slices.Sort(workflows)
	return &CIInfo{Dir: workflowsDir + "/", Workflows: workflows}
}
