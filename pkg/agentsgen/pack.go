package agentsgen

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/detect"
	"github.com/agentstation/agentsgen/pkg/logging"
	"github.com/agentstation/agentsgen/pkg/pack"
	"github.com/agentstation/agentsgen/pkg/reconcile"
	"github.com/agentstation/agentsgen/pkg/types"
)

// Pack run statuses.
const (
	StatusOK    = "ok"
	StatusDrift = "drift"
	StatusError = "error"
)

// PackOptions controls PackConfig and Pack. Empty strings and a nil Files
// keep the configured values.
type PackOptions struct {
	Autodetect bool
	Stack      string
	LLMSFormat string
	OutputDir  string
	Files      []string
	// Check reports drift as a failure; the run never writes.
	Check bool
}

// PackConfig returns the config a pack run renders from: the repository
// config (or defaults), refreshed from detection when enabled, with the
// option overrides applied. Pack settings from the config are kept.
func PackConfig(fs afero.Fs, root string, opts PackOptions) (*config.Config, error) {
	cfg := config.Default()
	exists := config.Exists(fs, root)
	if exists {
		loaded, err := config.Load(fs, root)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Autodetect || !exists {
		det, err := detect.Repo(fs, root)
		if err != nil {
			return nil, err
		}
		if opts.Autodetect {
			fromDet := config.FromDetect(det)
			cfg.Project = fromDet.Project
			cfg.Paths = fromDet.Paths
			cfg.Commands = fromDet.Commands
			cfg.Evidence = fromDet.Evidence
		} else {
			cfg.Project.Name = det.Project.Name
			cfg.Project.PrimaryStack = det.Project.PrimaryStack.TemplateStack()
		}
	}

	if opts.Stack != "" {
		cfg.Project.PrimaryStack = types.ParseStack(opts.Stack)
	}
	if opts.LLMSFormat != "" {
		cfg.Pack.LLMSFormat = opts.LLMSFormat
	}
	if opts.OutputDir != "" {
		cfg.Pack.OutputDir = opts.OutputDir
	}
	if opts.Files != nil {
		cfg.Pack.Files = opts.Files
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PlanRow is one file a pack run would write.
type PlanRow struct {
	Path     string   `json:"path"     yaml:"path"`
	Action   string   `json:"action"   yaml:"action"`
	Sections []string `json:"sections" yaml:"sections"`
	Message  string   `json:"message"  yaml:"message"`
}

// PackResult is the outcome of Pack.
type PackResult struct {
	Config  *config.Config    `json:"-"       yaml:"-"`
	Status  string            `json:"status"  yaml:"status"`
	Summary string            `json:"summary" yaml:"summary"`
	Check   bool              `json:"check"   yaml:"check"`
	DryRun  bool              `json:"dry_run" yaml:"dry_run"`
	Results reconcile.Results `json:"results" yaml:"results"`
}

// Failed reports whether the run should exit non-zero.
func (p *PackResult) Failed() bool {
	return p.Status != StatusOK
}

// Pack renders and reconciles the documentation pack.
func Pack(ctx context.Context, fs afero.Fs, rec *reconcile.Reconciler, opts PackOptions) (*PackResult, error) {
	cfg, err := PackConfig(fs, rec.Root(), opts)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithRoot(ctx, rec.Root())
	logging.FromContext(ctx).Debug().
		Str("output_dir", cfg.Pack.Dir()).
		Bool("check", opts.Check).
		Msg("applying pack")
	results, err := pack.Apply(ctx, rec, cfg)
	if err != nil {
		return nil, err
	}

	res := &PackResult{
		Config:  cfg,
		Status:  StatusOK,
		Check:   opts.Check,
		DryRun:  rec.DryRun(),
		Results: results,
	}
	switch {
	case results.HasErrors():
		res.Status = StatusError
	case opts.Check && results.Drift():
		res.Status = StatusDrift
	}
	res.Summary = fmt.Sprintf("pack:%s (created=%d, updated=%d, generated=%d, errors=%d)",
		res.Status,
		results.Count(reconcile.ActionCreated),
		results.Count(reconcile.ActionUpdated),
		results.Count(reconcile.ActionGenerated),
		results.Count(reconcile.ActionError),
	)
	return res, nil
}

var planActions = map[reconcile.Action]string{
	reconcile.ActionCreated:   "create",
	reconcile.ActionUpdated:   "update",
	reconcile.ActionGenerated: "generate",
}

// Plan lists the files the run wrote or would write, sorted by path.
func (p *PackResult) Plan(root string) []PlanRow {
	required := make(map[string][]string)
	for _, s := range pack.Plan(p.Config) {
		required[s.Path] = s.Required
	}

	rows := []PlanRow{}
	for _, r := range p.Results {
		action, ok := planActions[r.Action]
		if !ok {
			continue
		}
		rel := r.Path
		if v, err := filepath.Rel(root, r.Path); err == nil {
			rel = filepath.ToSlash(v)
		}
		sections := required[rel]
		if sections == nil {
			sections = []string{}
		}
		rows = append(rows, PlanRow{Path: rel, Action: action, Sections: sections, Message: r.Message})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })
	return rows
}
