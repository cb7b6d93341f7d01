package types

import "strings"

// Project identifies the repository and its toolchain.
type Project struct {
	Name               string   `json:"name"                           yaml:"name"`
	PrimaryStack       Stack    `json:"primary_stack"                  yaml:"primary_stack"`
	RepoRoot           string   `json:"repo_root"                      yaml:"repo_root"`
	NodePackageManager string   `json:"node_package_manager,omitempty" yaml:"node_package_manager,omitempty"`
	PythonToolchain    string   `json:"python_toolchain,omitempty"     yaml:"python_toolchain,omitempty"`
	Entrypoints        []string `json:"entrypoints,omitempty"          yaml:"entrypoints,omitempty"`
}

// Paths lists the repository locations worth pointing an agent at.
type Paths struct {
	SourceDirs      []string `json:"source_dirs,omitempty"      yaml:"source_dirs,omitempty"`
	ConfigLocations []string `json:"config_locations,omitempty" yaml:"config_locations,omitempty"`
	Docs            []string `json:"docs,omitempty"             yaml:"docs,omitempty"`
	CI              string   `json:"ci,omitempty"               yaml:"ci,omitempty"`
	Plans           string   `json:"plans,omitempty"            yaml:"plans,omitempty"`
	Drafts          string   `json:"drafts,omitempty"           yaml:"drafts,omitempty"`
	Scripts         string   `json:"scripts,omitempty"          yaml:"scripts,omitempty"`
}

// Commands is the command table rendered into the documents.
type Commands struct {
	Install    string `json:"install,omitempty"     yaml:"install,omitempty"`
	Dev        string `json:"dev,omitempty"         yaml:"dev,omitempty"`
	Test       string `json:"test,omitempty"        yaml:"test,omitempty"`
	Lint       string `json:"lint,omitempty"        yaml:"lint,omitempty"`
	Format     string `json:"format,omitempty"      yaml:"format,omitempty"`
	Build      string `json:"build,omitempty"       yaml:"build,omitempty"`
	Typecheck  string `json:"typecheck,omitempty"   yaml:"typecheck,omitempty"`
	Fast       string `json:"fast,omitempty"        yaml:"fast,omitempty"`
	Full       string `json:"full,omitempty"        yaml:"full,omitempty"`
	SingleTest string `json:"single_test,omitempty" yaml:"single_test,omitempty"`
}

// CommandKeys lists the command table keys in display order.
var CommandKeys = []string{
	"install", "dev", "test", "lint", "format", "build", "typecheck", "fast", "full", "single_test",
}

func (c *Commands) field(key string) *string {
	switch key {
	case "install":
		return &c.Install
	case "dev":
		return &c.Dev
	case "test":
		return &c.Test
	case "lint":
		return &c.Lint
	case "format":
		return &c.Format
	case "build":
		return &c.Build
	case "typecheck":
		return &c.Typecheck
	case "fast":
		return &c.Fast
	case "full":
		return &c.Full
	case "single_test":
		return &c.SingleTest
	}
	return nil
}

// Get returns the trimmed command for key, or "" for unknown keys.
func (c Commands) Get(key string) string {
	if f := c.field(key); f != nil {
		return strings.TrimSpace(*f)
	}
	return ""
}

// Set assigns the command for key. It reports false for unknown keys.
func (c *Commands) Set(key, value string) bool {
	f := c.field(key)
	if f == nil {
		return false
	}
	*f = strings.TrimSpace(value)
	return true
}

// Map returns the non-empty commands keyed by name.
func (c Commands) Map() map[string]string {
	out := make(map[string]string)
	for _, k := range CommandKeys {
		if v := c.Get(k); v != "" {
			out[k] = v
		}
	}
	return out
}

// IsEmpty reports whether no command is set.
func (c Commands) IsEmpty() bool {
	return len(c.Map()) == 0
}

// Evidence records the files that led detection to its conclusions.
type Evidence struct {
	Python []string `json:"python" yaml:"python"`
	Node   []string `json:"node"   yaml:"node"`
	Make   []string `json:"make"   yaml:"make"`
	CI     []string `json:"ci"     yaml:"ci"`
}

// Normalized returns a copy with nil lists replaced by empty ones so the
// JSON form always carries arrays.
func (e Evidence) Normalized() Evidence {
	fix := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	return Evidence{Python: fix(e.Python), Node: fix(e.Node), Make: fix(e.Make), CI: fix(e.CI)}
}

// Groups returns the evidence lists by name in display order.
func (e Evidence) Groups() []EvidenceGroup {
	return []EvidenceGroup{
		{Name: "python", Items: e.Python},
		{Name: "node", Items: e.Node},
		{Name: "make", Items: e.Make},
		{Name: "ci", Items: e.CI},
	}
}

// EvidenceGroup is one named evidence list.
type EvidenceGroup struct {
	Name  string
	Items []string
}
