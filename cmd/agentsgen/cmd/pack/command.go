// Package pack provides the pack command.
package pack

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/internal/cmd/alerts"
	"github.com/agentstation/agentsgen/internal/cmd/cmdutil"
	"github.com/agentstation/agentsgen/internal/cmd/output"
	"github.com/agentstation/agentsgen/internal/cmd/table"
	"github.com/agentstation/agentsgen/pkg/agentsgen"
	"github.com/agentstation/agentsgen/pkg/logging"
	"github.com/agentstation/agentsgen/pkg/reconcile"
)

const driftHint = "Pack drift detected. Run `agentsgen pack` to update generated files."

// Flags holds the pack flags.
type Flags struct {
	*cmdutil.WriteFlags
	Autodetect bool
	Stack      string
	LLMSFormat string
	OutputDir  string
	Files      string
	Check      bool
	PrintPlan  bool
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{WriteFlags: cmdutil.AddWriteFlags(cmd)}

	cmd.Flags().BoolVar(&flags.Autodetect, "autodetect", true,
		"Refresh stack, paths and commands from read-only detection")
	cmd.Flags().StringVar(&flags.Stack, "stack", "",
		"Override the stack used for pack content: python, node, static or mixed")
	cmd.Flags().StringVar(&flags.LLMSFormat, "llms-format", "",
		"Manifest format: txt (llms.txt) or md (LLMS.md)")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "",
		"Directory for the how-to, architecture and data contract docs (default docs/ai)")
	cmd.Flags().StringVar(&flags.Files, "files", "",
		"Comma separated allowlist, e.g. llms,how-to-run.md,SECURITY_AI.md")
	cmd.Flags().BoolVar(&flags.Check, "check", false,
		"Exit non-zero when pack files are out of date; writes nothing")
	cmd.Flags().BoolVar(&flags.PrintPlan, "print-plan", false,
		"Print the files a pack run would write; writes nothing")

	return flags
}

func (f *Flags) options(cmd *cobra.Command) agentsgen.PackOptions {
	opts := agentsgen.PackOptions{
		Autodetect: f.Autodetect,
		Stack:      f.Stack,
		LLMSFormat: f.LLMSFormat,
		OutputDir:  f.OutputDir,
		Check:      f.Check,
	}
	if cmd.Flags().Changed("files") {
		opts.Files = cmdutil.ParseCSV(f.Files)
	}
	return opts
}

// planPayload is the structured form of --print-plan.
type planPayload struct {
	Version   int                 `json:"version"    yaml:"version"`
	Status    string              `json:"status"     yaml:"status"`
	Summary   string              `json:"summary"    yaml:"summary"`
	Check     bool                `json:"check"      yaml:"check"`
	DryRun    bool                `json:"dry_run"    yaml:"dry_run"`
	PrintPlan bool                `json:"print_plan" yaml:"print_plan"`
	Plan      []agentsgen.PlanRow `json:"plan"       yaml:"plan"`
}

// NewCommand creates the pack command.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "pack [dir]",
		GroupID: "core",
		Short:   "Generate or update the LLM documentation pack",
		Args:    cobra.MaximumNArgs(1),
		Long: `Pack writes an llms manifest plus agent-oriented docs (how to run, how to
test, architecture, data contracts, security and contributing rules, README
snippets) with the same marker-safe updates as AGENTS.md.

Pack settings (pack.files, pack.output_dir, pack.llms_format) come from
.agentsgen.json and can be overridden with flags.`,
		Example: `  agentsgen pack
  agentsgen pack --files llms,how-to-run.md --llms-format md
  agentsgen pack --check                   # CI: fail when the pack is stale
  agentsgen pack --print-plan --format json`,
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

			dryRun := flags.DryRun || flags.Check || flags.PrintPlan
			showDiff := flags.PrintDiff && !flags.PrintPlan

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			rec := app.Reconciler(dir,
				reconcile.WithDryRun(dryRun),
				reconcile.WithDiff(showDiff),
				reconcile.WithGeneratedSuffix(cmdutil.GeneratedSuffix(fs, dir)),
			)

			res, err := agentsgen.Pack(ctx, fs, rec, flags.options(cmd))
			if err != nil {
				return err
			}

			stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
			if flags.PrintPlan {
				return printPlan(stdout, stderr, format, dir, flags, res)
			}

			if format == output.FormatTable {
				if err := output.Results(stdout, format, dir, res.Results, showDiff); err != nil {
					return err
				}
				fmt.Fprintln(stdout, res.Summary)
				if res.Status == agentsgen.StatusDrift {
					_ = alerts.NewWriterTo(stderr).WriteAlert(alerts.NewWarning(driftHint))
				}
			} else if err := output.NewFormatter(format).Format(stdout, res); err != nil {
				return err
			}

			if err := cmdutil.ReportErrors(stderr, dir, res.Results); err != nil {
				return err
			}
			if res.Failed() {
				return cmdutil.Exit(1)
			}
			return nil
		},
	}

	flags = addFlags(cmd)

	return cmd
}

// printPlan writes the plan. It fails only in check mode, on errors or
// drift.
func printPlan(stdout, stderr io.Writer, format output.Format, dir string, flags *Flags, res *agentsgen.PackResult) error {
	plan := res.Plan(dir)

	if format == output.FormatTable {
		fmt.Fprintf(stdout, "repo: %s\n", dir)
		fmt.Fprintf(stdout, "autodetect: %s\n", onOff(flags.Autodetect))
		fmt.Fprintf(stdout, "output_dir: %s\n", res.Config.Pack.Dir())
		fmt.Fprintf(stdout, "files_count: %d\n", len(plan))
		if err := output.NewFormatter(format).Format(stdout, table.PlanToTableData(plan)); err != nil {
			return err
		}
		fmt.Fprintln(stdout, res.Summary)
		if res.Status == agentsgen.StatusDrift {
			_ = alerts.NewWriterTo(stderr).WriteAlert(alerts.NewWarning(driftHint))
		}
	} else {
		payload := planPayload{
			Version:   1,
			Status:    res.Status,
			Summary:   res.Summary,
			Check:     flags.Check,
			DryRun:    true,
			PrintPlan: true,
			Plan:      plan,
		}
		if err := output.NewFormatter(format).Format(stdout, payload); err != nil {
			return err
		}
	}

	if flags.Check && res.Failed() {
		return cmdutil.Exit(1)
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
