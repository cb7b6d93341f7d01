// Package reconcile decides, per managed file, whether to create it, patch its
// marker sections, divert output to a generated sibling, skip it, or report an
// error. Each file is handled independently; one failure never stops others.
package reconcile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/constants"
	"github.com/agentstation/agentsgen/pkg/differ"
	"github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/logging"
	"github.com/agentstation/agentsgen/pkg/markers"
	"github.com/agentstation/agentsgen/pkg/normalize"
	"github.com/agentstation/agentsgen/pkg/sections"
)

// Target is one file to reconcile.
type Target struct {
	// Path is relative to the reconciler root, or absolute.
	Path string
	// Rendered is the freshly generated full document.
	Rendered string
	// Required lists the section keys that must be patched into an
	// existing marked file.
	Required []string
	// Owned files carry no markers and are replaced wholesale.
	Owned bool
}

// Reconciler applies rendered documents to files on an afero.Fs.
type Reconciler struct {
	fs              afero.Fs
	root            string
	dryRun          bool
	diff            bool
	generatedSuffix string
	maxParallel     int
	differ          *differ.Differ
	logger          *zerolog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithDryRun computes results without writing anything.
func WithDryRun(enabled bool) Option {
	return func(r *Reconciler) {
		r.dryRun = enabled
	}
}

// WithDiff attaches a unified diff to every changed result.
func WithDiff(enabled bool) Option {
	return func(r *Reconciler) {
		r.diff = enabled
	}
}

// WithGeneratedSuffix overrides the suffix used for generated siblings.
func WithGeneratedSuffix(suffix string) Option {
	return func(r *Reconciler) {
		if suffix != "" {
			r.generatedSuffix = suffix
		}
	}
}

// WithMaxParallel bounds the number of files reconciled at once.
func WithMaxParallel(n int) Option {
	return func(r *Reconciler) {
		r.maxParallel = n
	}
}

// WithLogger sets the logger. By default the context logger is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// New creates a Reconciler rooted at root on fs.
func New(fs afero.Fs, root string, opts ...Option) *Reconciler {
	r := &Reconciler{
		fs:              fs,
		root:            filepath.Clean(root),
		generatedSuffix: constants.DefaultGeneratedSuffix,
		differ:          differ.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the directory targets are resolved against.
func (r *Reconciler) Root() string {
	return r.root
}

// DryRun reports whether the reconciler writes files.
func (r *Reconciler) DryRun() bool {
	return r.dryRun
}

// ReconcileAll reconciles every target and returns results in input order.
func (r *Reconciler) ReconcileAll(ctx context.Context, targets []Target) Results {
	mapper := iter.Mapper[Target, Result]{MaxGoroutines: r.maxParallel}
	return mapper.Map(targets, func(t *Target) Result {
		return r.Reconcile(ctx, *t)
	})
}

// Reconcile applies one rendered document to its target path.
func (r *Reconciler) Reconcile(ctx context.Context, t Target) Result {
	path, err := r.resolve(t.Path)
	if err != nil {
		return errorResult(path, err)
	}
	logger := r.log(ctx).With().Str("path", path).Logger()

	if err := ctx.Err(); err != nil {
		return errorResult(path, err)
	}

	existing, exists, err := r.read(path)
	if err != nil {
		return errorResult(path, err)
	}

	if t.Owned {
		return r.replaceOwned(path, existing, exists, t.Rendered)
	}

	state, problems := Classify(existing, exists)
	logger.Debug().Str("state", state.String()).Msg("classified target")

	switch state {
	case StateMissing:
		res, err := r.write(path, "", false, t.Rendered)
		if err != nil {
			return errorResult(path, err)
		}
		res.Action = ActionCreated
		res.Message = "created"
		return res

	case StateNoMarkers:
		sibling, err := r.resolve(GeneratedSibling(path, r.generatedSuffix))
		if err != nil {
			return errorResult(sibling, err)
		}
		old, siblingExists, err := r.read(sibling)
		if err != nil {
			return errorResult(sibling, err)
		}
		res, err := r.write(sibling, old, siblingExists, t.Rendered)
		if err != nil {
			return errorResult(sibling, err)
		}
		res.Action = ActionGenerated
		res.Message = fmt.Sprintf("%s has no markers; wrote %s instead", filepath.Base(path), filepath.Base(sibling))
		logger.Info().Str("sibling", sibling).Msg("target has no markers, diverted to generated sibling")
		return res

	case StateMalformed:
		err := errors.NewMarkerError(path, markers.Messages(problems))
		logger.Warn().Err(err).Msg("malformed markers")
		return errorResult(path, err)
	}

	patched, missing, nested := patch(existing, t.Rendered, t.Required)
	if len(nested) > 0 {
		problems := make([]string, len(nested))
		for i, key := range nested {
			problems[i] = fmt.Sprintf("rendered section %q contains marker lines", key)
		}
		err := errors.NewMarkerError(path, problems)
		logger.Warn().Strs("sections", nested).Msg("rendered section body contains markers")
		return errorResult(path, err)
	}
	if len(missing) > 0 {
		err := errors.NewMissingSectionError(path, missing)
		logger.Warn().Strs("sections", missing).Msg("required sections missing")
		return errorResult(path, err)
	}

	res, err := r.write(path, existing, true, patched)
	if err != nil {
		return errorResult(path, err)
	}
	if res.Changed {
		res.Action = ActionUpdated
		res.Message = "updated"
	} else {
		res.Action = ActionSkipped
		res.Message = "no changes"
	}
	return res
}

func (r *Reconciler) replaceOwned(path, existing string, exists bool, rendered string) Result {
	res, err := r.write(path, existing, exists, rendered)
	if err != nil {
		return errorResult(path, err)
	}
	switch {
	case !exists:
		res.Action, res.Message = ActionCreated, "written"
	case res.Changed:
		res.Action, res.Message = ActionUpdated, "written"
	default:
		res.Action, res.Message = ActionSkipped, "unchanged"
	}
	return res
}

// patch replaces every required section of existing with the body from
// rendered. A key absent from either document is reported missing; a rendered
// body that itself holds marker lines is reported nested and left unpatched.
func patch(existing, rendered string, required []string) (patched string, missing, nested []string) {
	for _, key := range required {
		body, ok := sections.Extract(rendered, key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		if markers.HasAny(body) {
			nested = append(nested, key)
			continue
		}
		existing, ok = sections.Replace(existing, key, body)
		if !ok {
			missing = append(missing, key)
		}
	}
	return existing, missing, nested
}

// write applies the write decision: normalized equality skips, anything else
// is written (unless dry-run) and optionally diffed.
func (r *Reconciler) write(path, old string, exists bool, candidate string) (Result, error) {
	res := Result{Path: path}

	oldN := ""
	if exists {
		oldN = normalize.Markdown(old)
	}
	newN := normalize.Markdown(candidate)
	if exists && oldN == newN {
		return res, nil
	}

	res.Changed = true
	if r.diff {
		res.Diff = r.differ.Unified(r.display(path), oldN, newN)
	}
	if r.dryRun {
		return res, nil
	}
	if err := WriteAtomic(r.fs, path, []byte(newN)); err != nil {
		return res, err
	}
	return res, nil
}

func (r *Reconciler) read(path string) (string, bool, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err == nil {
		return string(data), true, nil
	}
	if os.IsNotExist(err) {
		return "", false, nil
	}
	return "", false, errors.NewIOError("read", path, err)
}

// display is the path shown in diff headers: relative to root when possible.
func (r *Reconciler) display(path string) string {
	if rel, err := filepath.Rel(r.root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func (r *Reconciler) log(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}

func errorResult(path string, err error) Result {
	return Result{Path: path, Action: ActionError, Message: err.Error()}
}
