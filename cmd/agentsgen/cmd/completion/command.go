// Package completion provides the completion command.
package completion

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/internal/cmd/alerts"
	"github.com/agentstation/agentsgen/internal/cmd/completion"
)

// NewCommand creates the completion command. It replaces cobra's default
// completion command to add install and uninstall.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate or install shell completions",
		Long: `Generate shell completion scripts to stdout, or install them where your
shell looks for them.`,
		Example: `  source <(agentsgen completion bash)
  agentsgen completion install --shell zsh
  agentsgen completion uninstall`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	for _, shell := range []string{completion.ShellBash, completion.ShellZsh, completion.ShellFish, completion.ShellPowerShell} {
		cmd.AddCommand(newGenerateCommand(shell))
	}
	cmd.AddCommand(newInstallCommand(app))
	cmd.AddCommand(newUninstallCommand(app))

	return cmd
}

func newGenerateCommand(shell string) *cobra.Command {
	return &cobra.Command{
		Use:                   shell,
		Short:                 fmt.Sprintf("Generate the %s completion script", shell),
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return completion.Generate(cmd.Root(), shell, cmd.OutOrStdout())
		},
	}
}

// shells returns the requested shell, or every installable one.
func shells(shell string) ([]string, error) {
	if shell == "" {
		return completion.Installable, nil
	}
	if !slices.Contains(completion.Installable, shell) {
		return nil, fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish)", shell)
	}
	return []string{shell}, nil
}

func newInstallCommand(app application.Application) *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install completion scripts for bash, zsh and fish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := shells(shell)
			if err != nil {
				return err
			}
			loc, err := completion.NewLocator(app.Fs())
			if err != nil {
				return err
			}

			w := alerts.NewWriterTo(cmd.OutOrStdout())
			for _, s := range targets {
				path, err := completion.Install(app.Fs(), cmd.Root(), loc, s)
				if err != nil {
					return err
				}
				if err := w.WriteAlert(alerts.NewSuccess(fmt.Sprintf("%s completions installed to %s", s, path))); err != nil {
					return err
				}
			}
			return w.WriteAlert(alerts.NewInfo("Start a new shell session to enable completions."))
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "", "Only install for this shell: bash, zsh or fish")

	return cmd
}

func newUninstallCommand(app application.Application) *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove installed completion scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := shells(shell)
			if err != nil {
				return err
			}
			loc, err := completion.NewLocator(app.Fs())
			if err != nil {
				return err
			}

			w := alerts.NewWriterTo(cmd.OutOrStdout())
			for _, s := range targets {
				removed, err := completion.Uninstall(app.Fs(), loc, s)
				if err != nil {
					return err
				}
				if len(removed) == 0 {
					if err := w.WriteAlert(alerts.NewInfo(fmt.Sprintf("no %s completions found", s))); err != nil {
						return err
					}
					continue
				}
				if err := w.WriteAlert(alerts.NewSuccess(fmt.Sprintf("removed %s completions", s)).WithDetails(removed...)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&shell, "shell", "", "Only uninstall for this shell: bash, zsh or fish")

	return cmd
}
