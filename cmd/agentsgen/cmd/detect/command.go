// Package detect provides the detect command.
package detect

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/internal/cmd/cmdutil"
	"github.com/agentstation/agentsgen/internal/cmd/output"
	"github.com/agentstation/agentsgen/internal/cmd/table"
	"github.com/agentstation/agentsgen/pkg/detect"
)

// NewCommand creates the detect command.
func NewCommand(app application.Application) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:     "detect [dir]",
		GroupID: "core",
		Short:   "Detect stack, tooling and commands and print the evidence",
		Args:    cobra.MaximumNArgs(1),
		Long: `Detect inspects well-known files (pyproject.toml, package.json, lockfiles,
Makefile, GitHub workflows) and reports the stack, the package manager and
the commands agentsgen would use. It never writes.`,
		Example: `  agentsgen detect
  agentsgen detect --explain
  agentsgen detect ../api --format json`,
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

			res, err := detect.Repo(fs, dir)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			if format != output.FormatTable {
				return output.NewFormatter(format).Format(stdout, res)
			}
			if err := output.NewFormatter(format).Format(stdout, table.DetectToTableData(res)); err != nil {
				return err
			}
			if explain {
				return writeRationale(stdout, res.Rationale)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false,
		"Print why detection chose these values")

	return cmd
}

func writeRationale(w io.Writer, rationale []string) error {
	if len(rationale) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nRationale:"); err != nil {
		return err
	}
	for _, r := range rationale {
		if _, err := fmt.Fprintf(w, "  - %s\n", r); err != nil {
			return err
		}
	}
	return nil
}
