// Package initialize provides the init command.
package initialize

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/internal/cmd/cmdutil"
	"github.com/agentstation/agentsgen/internal/cmd/output"
	"github.com/agentstation/agentsgen/pkg/agentsgen"
	"github.com/agentstation/agentsgen/pkg/logging"
	"github.com/agentstation/agentsgen/pkg/reconcile"
)

// Flags holds the init flags.
type Flags struct {
	*cmdutil.WriteFlags
	Defaults    bool
	Stack       string
	Name        string
	Autodetect  bool
	PrintDetect bool
	ForceConfig bool
	Prompts     bool
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{WriteFlags: cmdutil.AddWriteFlags(cmd)}

	cmd.Flags().BoolVar(&flags.Defaults, "defaults", true,
		"Use defaults without prompting (the only supported mode)")
	cmd.Flags().StringVar(&flags.Stack, "stack", "",
		"Override the primary stack: python, node, static or mixed")
	cmd.Flags().StringVar(&flags.Name, "name", "",
		"Override the project name")
	cmd.Flags().BoolVar(&flags.Autodetect, "autodetect", true,
		"Fill the config from read-only detection")
	cmd.Flags().BoolVar(&flags.PrintDetect, "print-detect", false,
		"Print the detection result to stderr")
	cmd.Flags().BoolVar(&flags.ForceConfig, "force-config", false,
		"Overwrite an existing .agentsgen.json")
	cmd.Flags().BoolVar(&flags.Prompts, "prompts", true,
		"Write prompt/execspec.md")

	_ = cmd.Flags().MarkHidden("defaults")
	return flags
}

// NewCommand creates the init command.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "init [dir]",
		GroupID: "core",
		Short:   "Write .agentsgen.json and create or update AGENTS.md and RUNBOOK.md",
		Args:    cobra.MaximumNArgs(1),
		Long: `Init writes .agentsgen.json (from detection unless --autodetect=false) and
then creates AGENTS.md and RUNBOOK.md, or safely patches their marked
sections when they already exist.

An existing .agentsgen.json is kept unless --force-config is given; with
autodetect on it only gains missing source and config locations.`,
		Example: `  agentsgen init
  agentsgen init --stack node --name web
  agentsgen init --autodetect=false --prompts=false
  agentsgen init --dry-run --print-diff`,
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

			out, err := agentsgen.Init(ctx, fs, rec, agentsgen.InitOptions{
				Autodetect:  flags.Autodetect,
				ForceConfig: flags.ForceConfig,
				Name:        flags.Name,
				Stack:       flags.Stack,
				Prompts:     flags.Prompts,
			})
			if err != nil {
				return err
			}

			if flags.PrintDetect && out.Detection != nil {
				if err := output.NewFormatter(output.FormatJSON).Format(cmd.ErrOrStderr(), out.Detection); err != nil {
					return err
				}
			}
			return cmdutil.ReportResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, dir, "init", out.Results, flags.PrintDiff)
		},
	}

	flags = addFlags(cmd)

	return cmd
}
