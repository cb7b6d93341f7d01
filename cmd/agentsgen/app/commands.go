package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/cmd/agentsgen/cmd/check"
	"github.com/agentstation/agentsgen/cmd/agentsgen/cmd/completion"
	"github.com/agentstation/agentsgen/cmd/agentsgen/cmd/config"
	"github.com/agentstation/agentsgen/cmd/agentsgen/cmd/detect"
	"github.com/agentstation/agentsgen/cmd/agentsgen/cmd/initialize"
	"github.com/agentstation/agentsgen/cmd/agentsgen/cmd/pack"
	"github.com/agentstation/agentsgen/cmd/agentsgen/cmd/update"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(initialize.NewCommand(a))
	rootCmd.AddCommand(update.NewCommand(a))
	rootCmd.AddCommand(pack.NewCommand(a))
	rootCmd.AddCommand(check.NewCommand(a))
	rootCmd.AddCommand(check.NewDoctorCommand(a))
	rootCmd.AddCommand(detect.NewCommand(a))

	rootCmd.AddCommand(config.NewCommand(a))
	rootCmd.AddCommand(completion.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "agentsgen %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(w, "  commit:   %s\n", a.commit)
				fmt.Fprintf(w, "  built:    %s\n", a.date)
				fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
				fmt.Fprintf(w, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
