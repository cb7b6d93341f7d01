package render

import (
	"github.com/agentstation/agentsgen/pkg/config"
)

// MixedCommandPlaceholder replaces every pack command for repositories
// without a single template stack.
const MixedCommandPlaceholder = "(mixed repo detected - set explicit command in .agentsgen.json)"

const notDetected = "(not detected)"

var packCommandKeys = []string{"install", "dev", "test", "lint", "format", "build", "fast", "full"}

// packData is the context of every pack template.
type packData struct {
	ProjectName     string
	Stack           string
	OutputDir       string
	SourceDirs      string
	ConfigLocations string
	DocsPaths       string
	CILocation      string
	Cmd             map[string]string
	Notes           string
}

func newPackData(cfg *config.Config) packData {
	mixed := !cfg.Stack().HasTemplates()
	stack := string(cfg.Stack())
	if stack == "" {
		stack = string(cfg.TemplateStack())
	}

	cmds := make(map[string]string, len(packCommandKeys))
	for _, k := range packCommandKeys {
		switch {
		case mixed:
			cmds[k] = MixedCommandPlaceholder
		default:
			cmds[k] = orDefault(cfg.Commands.Get(k), notDetected)
		}
	}

	notes := &body{}
	if mixed {
		notes.bullets(
			"Mixed repository detected.",
			"Commands are intentionally conservative.",
			"Configure explicit values in `.agentsgen.json` under `commands` and `pack`.",
		)
	} else {
		notes.bullet("Keep these files concise and command-accurate. Avoid speculative guidance.")
	}

	return packData{
		ProjectName:     cfg.ProjectName("repository"),
		Stack:           stack,
		OutputDir:       cfg.Pack.Dir(),
		SourceDirs:      orDefault(buildCodeList(cfg.Paths.SourceDirs), notDetected),
		ConfigLocations: orDefault(buildCodeList(cfg.Paths.ConfigLocations), notDetected),
		DocsPaths:       orDefault(buildCodeList(cfg.Paths.Docs), notDetected),
		CILocation:      orDefault(cfg.Paths.CI, ".github/workflows/"),
		Cmd:             cmds,
		Notes:           notes.String(),
	}
}

// Pack renders the pack template named tmpl (for example "how-to-run.md.tmpl").
func Pack(cfg *config.Config, tmpl string) (string, error) {
	return execute("pack/"+tmpl, newPackData(cfg))
}
