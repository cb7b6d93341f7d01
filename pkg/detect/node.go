package detect

import (
	"encoding/json"
	"slices"

	"github.com/agentstation/agentsgen/pkg/types"
)

// NodeInfo describes a package.json at the repository root.
type NodeInfo struct {
	PackageManager string
	Scripts        map[string]string
	Evidence       []string
}

func detectNode(r repo) *NodeInfo {
	if !r.isFile("package.json") {
		return nil
	}
	info := &NodeInfo{PackageManager: "npm", Scripts: map[string]string{}, Evidence: []string{"package.json"}}

	switch {
	case r.isFile("pnpm-lock.yaml"):
		info.PackageManager = "pnpm"
		info.Evidence = append(info.Evidence, "pnpm-lock.yaml")
	case r.isFile("yarn.lock"):
		info.PackageManager = "yarn"
		info.Evidence = append(info.Evidence, "yarn.lock")
	case r.isFile("package-lock.json"):
		info.Evidence = append(info.Evidence, "package-lock.json")
	}

	var manifest struct {
		Scripts map[string]any `json:"scripts"`
	}
	// A broken package.json still counts as node evidence, just without scripts.
	if err := json.Unmarshal([]byte(r.read("package.json")), &manifest); err == nil {
		for k, v := range manifest.Scripts {
			if s, ok := v.(string); ok {
				info.Scripts[k] = s
			}
		}
	}

	slices.Sort(info.Evidence)
	return info
}

// run returns the command that runs a package.json script.
func (n *NodeInfo) run(script string) string {
	switch n.PackageManager {
	case "yarn":
		return "yarn " + script
	case "pnpm":
		return "pnpm " + script
	}
	if script == "test" {
		return "npm test"
	}
	return "npm run " + script
}

// Commands maps well-known scripts onto the command table.
func (n *NodeInfo) Commands() types.Commands {
	var cmds types.Commands
	for _, key := range []string{"dev", "test", "lint", "build", "format", "typecheck"} {
		if _, ok := n.Scripts[key]; ok {
			cmds.Set(key, n.run(key))
		}
	}
	for _, script := range []string{"test:fast", "test:unit"} {
		if _, ok := n.Scripts[script]; ok {
			cmds.Fast = n.run(script)
			break
		}
	}
	return cmds
}
