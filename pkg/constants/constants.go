// Package constants provides shared constants used throughout the agentsgen codebase.
// This includes file names, marker literals, pack defaults and file permissions
// that must stay consistent between the CLI and the library packages.
package constants

// File name constants for the managed documents.
const (
	// ConfigFilename is the per-repository tool configuration file.
	ConfigFilename = ".agentsgen.json"

	// AgentsFilename is the agent-instructions document.
	AgentsFilename = "AGENTS.md"

	// RunbookFilename is the runbook document.
	RunbookFilename = "RUNBOOK.md"

	// AgentsGeneratedFilename is written instead of AGENTS.md when it has no markers.
	AgentsGeneratedFilename = "AGENTS.generated.md"

	// RunbookGeneratedFilename is written instead of RUNBOOK.md when it has no markers.
	RunbookGeneratedFilename = "RUNBOOK.generated.md"

	// PromptsDirname holds optional prompt files written by init.
	PromptsDirname = "prompt"

	// ExecSpecPromptFilename is the prompt written into PromptsDirname.
	ExecSpecPromptFilename = "execspec.md"
)

// Marker constants. The literal format must stay bit-exact so that
// repositories managed by earlier releases keep patching cleanly.
const (
	// MarkerPrefix tags every managed marker comment.
	MarkerPrefix = "AGENTSGEN"

	// DefaultGeneratedSuffix is inserted before the extension of a generated sibling.
	DefaultGeneratedSuffix = ".generated"
)

// Pack defaults
const (
	// DefaultPackOutputDir is where the docs/ai pack files are written.
	DefaultPackOutputDir = "docs/ai"

	// DefaultPackLLMSFormat selects llms.txt over LLMS.md.
	DefaultPackLLMSFormat = "txt"
)

// DefaultPackFiles is the default pack allowlist.
var DefaultPackFiles = []string{
	"llms",
	"how-to-run.md",
	"how-to-test.md",
	"architecture.md",
	"data-contracts.md",
	"SECURITY_AI.md",
	"CONTRIBUTING_AI.md",
	"README_SNIPPETS.md",
}

// Tool config defaults
const (
	// ConfigVersion is the current .agentsgen.json schema version.
	ConfigVersion = 1

	// DefaultMode is the only supported update mode.
	DefaultMode = "safe"

	// DefaultOnMissingMarkers diverts unmarked files to a generated sibling.
	DefaultOnMissingMarkers = "write_generated"

	// DefaultDiffBudgetLines is the guardrail diff budget when none is configured.
	DefaultDiffBudgetLines = 300
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Detection limits
const (
	// MaxDetectReadBytes caps how much of a manifest file detection reads.
	MaxDetectReadBytes = 256 * 1024

	// MaxMonorepoDepth bounds the nested manifest scan.
	MaxMonorepoDepth = 4

	// MaxMonorepoHits bounds how many nested manifests are recorded per kind.
	MaxMonorepoHits = 5
)
