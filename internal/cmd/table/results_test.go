package table

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/agentsgen/pkg/agentsgen"
	"github.com/agentstation/agentsgen/pkg/detect"
	"github.com/agentstation/agentsgen/pkg/reconcile"
	"github.com/agentstation/agentsgen/pkg/types"
)

func init() {
	color.NoColor = true
}

func TestResultsToTableData(t *testing.T) {
	data := ResultsToTableData(reconcile.Results{
		{Path: "/repo/AGENTS.md", Action: reconcile.ActionCreated, Message: "created"},
		{Path: "/repo/AGENTS.generated.md", Action: reconcile.ActionGenerated, Message: "AGENTS.md has no markers; wrote AGENTS.generated.md instead"},
		{Path: "/elsewhere/x.md", Action: reconcile.ActionError, Message: "output path escapes target directory"},
	}, "/repo")

	assert.Equal(t, []string{"Action", "Path", "Message"}, data.Headers)
	assert.Equal(t, []string{"✓ created", "AGENTS.md", "created"}, data.Rows[0])
	assert.Equal(t, "→ generated", data.Rows[1][0])
	assert.Equal(t, []string{"✗ error", "/elsewhere/x.md", "output path escapes target directory"}, data.Rows[2])
}

func TestPlanToTableData(t *testing.T) {
	empty := PlanToTableData(nil)
	assert.Equal(t, [][]string{{"none", "-", "-"}}, empty.Rows)

	data := PlanToTableData([]agentsgen.PlanRow{
		{Path: "llms.txt", Action: "create", Sections: []string{"llms"}},
		{Path: "x.generated.md", Action: "generate", Sections: []string{}},
	})
	assert.Equal(t, [][]string{{"create", "llms.txt", "llms"}, {"generate", "x.generated.md", "-"}}, data.Rows)
}

func TestDetectToTableData(t *testing.T) {
	res := &detect.Result{
		Project:  types.Project{Name: "demo", PrimaryStack: types.StackNode, NodePackageManager: "pnpm"},
		Commands: types.Commands{Test: "pnpm test", SingleTest: "pnpm vitest -t"},
		Evidence: types.Evidence{Node: []string{"package.json", "pnpm-lock.yaml"}},
	}
	data := DetectToTableData(res)
	assert.Equal(t, [][]string{
		{"Project", "demo"},
		{"Primary Stack", "node"},
		{"Node Package Manager", "pnpm"},
		{"Command: Test", "pnpm test"},
		{"Command: Single Test", "pnpm vitest -t"},
		{"Evidence: Node", "package.json, pnpm-lock.yaml"},
	}, data.Rows)

	bare := DetectToTableData(&detect.Result{Project: types.Project{Name: "x", PrimaryStack: types.StackStatic}})
	assert.Contains(t, bare.Rows, []string{"Commands", "(none)"})
}
