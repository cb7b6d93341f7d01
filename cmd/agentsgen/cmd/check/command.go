// Package check provides the check command and its doctor alias.
package check

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/internal/cmd/alerts"
	"github.com/agentstation/agentsgen/internal/cmd/cmdutil"
	"github.com/agentstation/agentsgen/internal/cmd/output"
	"github.com/agentstation/agentsgen/pkg/doctor"
)

// NewCommand creates the check command.
func NewCommand(app application.Application) *cobra.Command {
	return newCommand(app, "check", "Validate that a repository is agentsgen-ready")
}

// NewDoctorCommand creates doctor, an alias of check kept as its own
// command so it shows up in help.
func NewDoctorCommand(app application.Application) *cobra.Command {
	return newCommand(app, "doctor", "Alias for check")
}

func newCommand(app application.Application, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " [dir]",
		GroupID: "core",
		Short:   short,
		Args:    cobra.MaximumNArgs(1),
		Long: `Check validates .agentsgen.json, AGENTS.md and RUNBOOK.md without writing.

Exit codes:
  0  ready (warnings may still be printed)
  1  problems found: missing files, broken markers, missing or empty sections
  2  .agentsgen.json is missing`,
		Example: "  agentsgen " + name + "\n  agentsgen " + name + " ./service --format json",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := app.Fs()
			dir, err := cmdutil.TargetDir(fs, args)
			if err != nil {
				return err
			}
			format, err := cmdutil.OutputFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			rep := doctor.Check(fs, dir)
			app.Logger().Debug().
				Str("repo", dir).
				Int("code", rep.Code).
				Int("problems", len(rep.Problems)).
				Int("warnings", len(rep.Warnings)).
				Msg("check finished")

			if format != output.FormatTable {
				if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), rep); err != nil {
					return err
				}
			} else if err := writeReport(cmd.ErrOrStderr(), rep); err != nil {
				return err
			}
			return cmdutil.Exit(rep.Code)
		},
	}
}

// writeReport prints warnings as alerts, then one "- " line per problem.
func writeReport(w io.Writer, rep doctor.Report) error {
	aw := alerts.NewWriterTo(w)
	for _, warning := range rep.Warnings {
		if err := aw.WriteAlert(alerts.NewWarning(warning)); err != nil {
			return err
		}
	}
	for _, p := range rep.Problems {
		if _, err := io.WriteString(w, "- "+p+"\n"); err != nil {
			return err
		}
	}
	return nil
}
