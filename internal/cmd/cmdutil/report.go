package cmdutil

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/internal/cmd/alerts"
	"github.com/agentstation/agentsgen/internal/cmd/output"
	"github.com/agentstation/agentsgen/internal/cmd/table"
	"github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/reconcile"
)

// OutputFormat validates a configured format and resolves "" by terminal
// detection.
func OutputFormat(configured string) (output.Format, error) {
	f, err := output.ParseFormat(configured)
	if err != nil {
		return "", errors.WrapValidation("format", err)
	}
	return output.DetectFormat(string(f)), nil
}

// GeneratedSuffix returns the generated-sibling suffix from the repository
// config, or "" when there is no readable config.
func GeneratedSuffix(fs afero.Fs, root string) string {
	if !config.Exists(fs, root) {
		return ""
	}
	cfg, err := config.Load(fs, root)
	if err != nil {
		return ""
	}
	return cfg.GeneratedSuffix
}

// ReportResults prints results to stdout, then one alert per failed file
// to stderr. It returns an exit error when any file failed.
func ReportResults(stdout, stderr io.Writer, format output.Format, root, label string, results reconcile.Results, showDiff bool) error {
	if err := output.Results(stdout, format, root, results, showDiff); err != nil {
		return err
	}
	if format == output.FormatTable {
		if _, err := fmt.Fprintln(stdout, results.Summary(label)); err != nil {
			return err
		}
	}
	return ReportErrors(stderr, root, results)
}

// ReportErrors writes "ERROR: <path>: <message>" for every failed result and
// returns an exit error when there was at least one.
func ReportErrors(stderr io.Writer, root string, results reconcile.Results) error {
	failed := results.Errors()
	if len(failed) == 0 {
		return nil
	}
	w := alerts.NewWriterTo(stderr)
	for _, r := range failed {
		if err := w.WriteAlert(alerts.NewError(table.RelPath(root, r.Path) + ": " + r.Message)); err != nil {
			return err
		}
	}
	return Exit(1)
}
