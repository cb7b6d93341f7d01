package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/constants"
	"github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/reconcile"
	"github.com/agentstation/agentsgen/pkg/types"
)

// Path returns the config file location for a repository root.
func Path(root string) string {
	return filepath.Join(root, constants.ConfigFilename)
}

// Exists reports whether root has a config file.
func Exists(fs afero.Fs, root string) bool {
	ok, err := afero.Exists(fs, Path(root))
	return err == nil && ok
}

// Load reads and validates the config of the repository at root. A missing
// file yields an error matching errors.ErrNotFound.
func Load(fs afero.Fs, root string) (*Config, error) {
	path := Path(root)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("config", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to root atomically.
func Save(fs afero.Fs, root string, cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return errors.WrapParse("json", Path(root), err)
	}
	return reconcile.WriteAtomic(fs, Path(root), data)
}

// Parse decodes a config document. Fields missing from data keep their
// defaults. Legacy documents (project_name and stack, no version) are
// converted to the v1 layout.
func Parse(data []byte) (*Config, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	_, hasVersion := probe["version"]
	_, hasName := probe["project_name"]
	_, hasStack := probe["stack"]
	if !hasVersion && hasName && hasStack {
		return parseLegacy(data)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Project.PrimaryStack = types.ParseStack(string(cfg.Project.PrimaryStack))
	if cfg.Presets == nil {
		cfg.Presets = map[string]any{}
	}
	if cfg.Sections == nil {
		cfg.Sections = Default().Sections
	}
	return cfg, nil
}

// legacy is the pre-v1 flat layout.
type legacy struct {
	ProjectName     string            `json:"project_name"`
	Stack           string            `json:"stack"`
	PackageManager  string            `json:"package_manager"`
	PythonTooling   string            `json:"python_tooling"`
	Commands        map[string]string `json:"commands"`
	SourceDirs      []string          `json:"source_dirs"`
	ConfigLocations []string          `json:"config_locations"`
}

func parseLegacy(data []byte) (*Config, error) {
	var l legacy
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	cfg := Default()
	cfg.Project = types.Project{
		Name:               strings.TrimSpace(l.ProjectName),
		PrimaryStack:       types.ParseStack(l.Stack),
		RepoRoot:           ".",
		NodePackageManager: l.PackageManager,
		PythonToolchain:    l.PythonTooling,
	}
	cfg.Paths.SourceDirs = nonEmpty(l.SourceDirs)
	cfg.Paths.ConfigLocations = nonEmpty(l.ConfigLocations)
	for k, v := range l.Commands {
		cfg.Commands.Set(k, v)
	}
	return cfg, nil
}

// Marshal renders the config the way it is stored on disk: two-space
// indent and a trailing newline.
func (c *Config) Marshal() ([]byte, error) {
	type plain Config
	out := plain(*c)
	out.Evidence = c.Evidence.Normalized()
	if out.Sections == nil {
		out.Sections = []string{}
	}
	if out.Presets == nil {
		out.Presets = map[string]any{}
	}
	if out.Pack.Files == nil {
		out.Pack.Files = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAML renders the config as YAML for display.
func (c *Config) YAML() ([]byte, error) {
	return yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(false))
}

// Validate rejects values the renderer cannot honour.
func (c *Config) Validate() error {
	if c.Version != constants.ConfigVersion {
		return errors.NewValidationError("version", c.Version, "unsupported config version")
	}
	if c.Mode != constants.DefaultMode {
		return errors.NewValidationError("mode", c.Mode, `only "safe" mode is supported`)
	}
	if c.OnMissingMarkers != constants.DefaultOnMissingMarkers {
		return errors.NewValidationError("on_missing_markers", c.OnMissingMarkers, `only "write_generated" is supported`)
	}
	if s := c.GeneratedSuffix; s == "" || strings.ContainsAny(s, `/\`) {
		return errors.NewValidationError("generated_suffix", s, "must be a non-empty file name fragment")
	}
	if s := c.Stack(); s != "" && !s.IsValid() {
		return errors.NewValidationError("project.primary_stack", s, "must be one of python, node, static, mixed")
	}
	if f := strings.TrimSpace(c.Pack.LLMSFormat); f != "" && f != "txt" && f != "md" {
		return errors.NewValidationError("pack.llms_format", f, "must be txt or md")
	}
	if d := c.Pack.Dir(); filepath.IsAbs(d) || escapes(d) {
		return errors.NewValidationError("pack.output_dir", d, "must be a path inside the repository")
	}
	return nil
}

func escapes(rel string) bool {
	clean := filepath.ToSlash(filepath.Clean(rel))
	return clean == ".." || strings.HasPrefix(clean, "../")
}
