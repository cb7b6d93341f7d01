// Package agentsgen ties detection, configuration, rendering and
// reconciliation together into the init, update and pack workflows.
package agentsgen

import (
	"context"
	"path"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/constants"
	"github.com/agentstation/agentsgen/pkg/detect"
	"github.com/agentstation/agentsgen/pkg/logging"
	"github.com/agentstation/agentsgen/pkg/reconcile"
	"github.com/agentstation/agentsgen/pkg/render"
	"github.com/agentstation/agentsgen/pkg/types"
)

// Targets renders AGENTS.md and RUNBOOK.md, plus the exec-spec prompt when
// withPrompts is set.
func Targets(cfg *config.Config, withPrompts bool) ([]reconcile.Target, error) {
	agents, err := render.Agents(cfg)
	if err != nil {
		return nil, err
	}
	runbook, err := render.Runbook(cfg)
	if err != nil {
		return nil, err
	}
	targets := []reconcile.Target{
		{Path: constants.AgentsFilename, Rendered: agents, Required: render.RequiredSections(cfg.Stack())},
		{Path: constants.RunbookFilename, Rendered: runbook, Required: render.RunbookSections()},
	}
	if withPrompts {
		prompt, err := render.Prompt()
		if err != nil {
			return nil, err
		}
		targets = append(targets, reconcile.Target{
			Path:     path.Join(constants.PromptsDirname, constants.ExecSpecPromptFilename),
			Rendered: prompt,
			Owned:    true,
		})
	}
	return targets, nil
}

// ApplyConfig reconciles the managed documents for cfg.
func ApplyConfig(ctx context.Context, rec *reconcile.Reconciler, cfg *config.Config, withPrompts bool) (reconcile.Results, error) {
	targets, err := Targets(cfg, withPrompts)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithRoot(ctx, rec.Root())
	logging.FromContext(ctx).Debug().
		Int("targets", len(targets)).
		Bool("dry_run", rec.DryRun()).
		Msg("applying config")
	return rec.ReconcileAll(ctx, targets), nil
}

// UpdateFromConfig loads the repository config and patches the managed
// documents. It never writes prompts or the config itself.
func UpdateFromConfig(ctx context.Context, fs afero.Fs, rec *reconcile.Reconciler) (reconcile.Results, error) {
	cfg, err := config.Load(fs, rec.Root())
	if err != nil {
		return nil, err
	}
	return ApplyConfig(ctx, rec, cfg, false)
}

// InitOptions controls Init.
type InitOptions struct {
	// Autodetect fills the config from read-only detection.
	Autodetect bool
	// ForceConfig replaces an existing config file.
	ForceConfig bool
	// Name and Stack override the project name and primary stack of a new
	// config.
	Name  string
	Stack string
	// Prompts also writes the exec-spec prompt.
	Prompts bool
}

// InitResult is the outcome of Init.
type InitResult struct {
	Config *config.Config
	// Detection is set when detection ran.
	Detection *detect.Result
	// ConfigChanged reports whether the config was (or in dry-run would be)
	// written.
	ConfigChanged bool
	Results       reconcile.Results
}

// Init writes or refreshes the repository config and then applies it.
//
// An existing config is kept unless ForceConfig is set; with Autodetect it
// only gains source and config locations it lacks.
func Init(ctx context.Context, fs afero.Fs, rec *reconcile.Reconciler, opts InitOptions) (*InitResult, error) {
	root := rec.Root()
	ctx = logging.WithRoot(ctx, root)
	logger := logging.FromContext(ctx)
	out := &InitResult{}

	var det *detect.Result
	if opts.Autodetect || !config.Exists(fs, root) || opts.ForceConfig {
		var err error
		if det, err = detect.Repo(fs, root); err != nil {
			return nil, err
		}
		out.Detection = det
	}

	if config.Exists(fs, root) && !opts.ForceConfig {
		cfg, err := config.Load(fs, root)
		if err != nil {
			return nil, err
		}
		if opts.Autodetect && fillMissingPaths(cfg, det) {
			out.ConfigChanged = true
		}
		out.Config = cfg
	} else {
		cfg, err := newConfig(det, opts)
		if err != nil {
			return nil, err
		}
		out.Config = cfg
		out.ConfigChanged = true
	}

	if out.ConfigChanged && !rec.DryRun() {
		if err := config.Save(fs, root, out.Config); err != nil {
			return nil, err
		}
		logger.Info().Str("path", config.Path(root)).Msg("wrote config")
	}

	results, err := ApplyConfig(ctx, rec, out.Config, opts.Prompts)
	if err != nil {
		return nil, err
	}
	out.Results = results
	return out, nil
}

func newConfig(det *detect.Result, opts InitOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.Autodetect {
		cfg = config.FromDetect(det)
	} else {
		// Without autodetect only the name and a template stack are taken
		// from detection.
		cfg = config.Default()
		cfg.Project.Name = det.Project.Name
		cfg.Project.PrimaryStack = det.Project.PrimaryStack.TemplateStack()
	}
	if opts.Name != "" {
		cfg.Project.Name = opts.Name
	}
	if opts.Stack != "" {
		cfg.Project.PrimaryStack = types.ParseStack(opts.Stack)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillMissingPaths copies detected source and config locations into cfg
// where cfg has none. It reports whether anything changed.
func fillMissingPaths(cfg *config.Config, det *detect.Result) bool {
	if det == nil {
		return false
	}
	changed := false
	if len(cfg.Paths.SourceDirs) == 0 && len(det.Paths.SourceDirs) > 0 {
		cfg.Paths.SourceDirs = det.Paths.SourceDirs
		changed = true
	}
	if len(cfg.Paths.ConfigLocations) == 0 && len(det.Paths.ConfigLocations) > 0 {
		cfg.Paths.ConfigLocations = det.Paths.ConfigLocations
		changed = true
	}
	return changed
}
