package table

import (
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/agentsgen/internal/cmd/emoji"
	"github.com/agentstation/agentsgen/pkg/agentsgen"
	"github.com/agentstation/agentsgen/pkg/detect"
	"github.com/agentstation/agentsgen/pkg/reconcile"
	"github.com/agentstation/agentsgen/pkg/types"
)

var title = cases.Title(language.English)

var actionStyles = map[reconcile.Action]struct {
	symbol string
	color  *color.Color
}{
	reconcile.ActionCreated:   {emoji.Success, color.New(color.FgGreen)},
	reconcile.ActionUpdated:   {emoji.Success, color.New(color.FgCyan)},
	reconcile.ActionGenerated: {emoji.Diverted, color.New(color.FgYellow)},
	reconcile.ActionSkipped:   {emoji.Skipped, color.New(color.Faint)},
	reconcile.ActionError:     {emoji.Error, color.New(color.FgRed, color.Bold)},
}

// ActionCell renders an action with its symbol, coloured unless colour is
// disabled globally.
func ActionCell(a reconcile.Action) string {
	style, ok := actionStyles[a]
	if !ok {
		return string(a)
	}
	return style.color.Sprint(style.symbol + " " + string(a))
}

// RelPath shows p relative to root when it lies inside it.
func RelPath(root, p string) string {
	if rel, err := filepath.Rel(root, p); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(p)
}

// ResultsToTableData converts reconcile results to table format.
func ResultsToTableData(results reconcile.Results, root string) Data {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{ActionCell(r.Action), RelPath(root, r.Path), r.Message})
	}
	return Data{
		Headers:         []string{"Action", "Path", "Message"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft},
	}
}

// PlanToTableData converts a pack plan to table format. An empty plan shows
// a single "none" row.
func PlanToTableData(plan []agentsgen.PlanRow) Data {
	rows := make([][]string, 0, len(plan))
	for _, p := range plan {
		sections := strings.Join(p.Sections, ", ")
		if sections == "" {
			sections = "-"
		}
		rows = append(rows, []string{p.Action, p.Path, sections})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"none", "-", "-"})
	}
	return Data{
		Headers: []string{"Action", "Path", "Sections"},
		Rows:    rows,
	}
}

// DetectToTableData converts a detection result into a key/value table:
// stack and toolchain, then commands, then evidence.
func DetectToTableData(res *detect.Result) Data {
	rows := [][]string{
		{"Project", res.Project.Name},
		{"Primary Stack", string(res.Project.PrimaryStack)},
	}
	if pm := res.Project.NodePackageManager; pm != "" {
		rows = append(rows, []string{"Node Package Manager", pm})
	}
	if tc := res.Project.PythonToolchain; tc != "" {
		rows = append(rows, []string{"Python Toolchain", tc})
	}

	cmds := res.Commands.Map()
	if len(cmds) == 0 {
		rows = append(rows, []string{"Commands", "(none)"})
	}
	for _, k := range types.CommandKeys {
		if v, ok := cmds[k]; ok {
			rows = append(rows, []string{"Command: " + title.String(strings.ReplaceAll(k, "_", " ")), v})
		}
	}

	for _, g := range res.Evidence.Groups() {
		if len(g.Items) > 0 {
			rows = append(rows, []string{"Evidence: " + title.String(g.Name), strings.Join(g.Items, ", ")})
		}
	}
	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}
