// Package update provides the update command.
package update

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/internal/cmd/cmdutil"
	"github.com/agentstation/agentsgen/pkg/agentsgen"
	"github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/logging"
	"github.com/agentstation/agentsgen/pkg/reconcile"
)

// NewCommand creates the update command.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.WriteFlags

	cmd := &cobra.Command{
		Use:     "update [dir]",
		GroupID: "core",
		Short:   "Update marked sections in AGENTS.md and RUNBOOK.md",
		Args:    cobra.MaximumNArgs(1),
		Long: `Update re-renders AGENTS.md and RUNBOOK.md from .agentsgen.json and patches
only the regions between AGENTSGEN markers. Text outside the markers is never
changed. Files without markers are left alone and the output goes to a
generated sibling instead (AGENTS.generated.md).`,
		Example: `  agentsgen update                  # Update the current repository
  agentsgen update ../service       # Update another repository
  agentsgen update --dry-run --print-diff`,
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

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			rec := app.Reconciler(dir,
				reconcile.WithDryRun(flags.DryRun),
				reconcile.WithDiff(flags.PrintDiff),
				reconcile.WithGeneratedSuffix(cmdutil.GeneratedSuffix(fs, dir)),
			)

			results, err := agentsgen.UpdateFromConfig(ctx, fs, rec)
			if errors.IsNotFound(err) {
				return &cmdutil.ExitError{Code: 1, Err: fmt.Errorf("missing .agentsgen.json, run: agentsgen init")}
			}
			if err != nil {
				return err
			}
			return cmdutil.ReportResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, dir, "update", results, flags.PrintDiff)
		},
	}

	flags = cmdutil.AddWriteFlags(cmd)

	return cmd
}
