// Package config provides the config command.
package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/internal/cmd/cmdutil"
	"github.com/agentstation/agentsgen/internal/cmd/output"
	toolconfig "github.com/agentstation/agentsgen/pkg/config"
	"github.com/agentstation/agentsgen/pkg/errors"
)

// NewCommand creates the config command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect .agentsgen.json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newShowCommand(app))

	return cmd
}

func newShowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "show [dir]",
		Short: "Print the repository config (YAML unless --format json)",
		Args:  cobra.MaximumNArgs(1),
		Example: `  agentsgen config show
  agentsgen config show ../api --format json`,
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

			cfg, err := toolconfig.Load(fs, dir)
			if errors.IsNotFound(err) {
				return &cmdutil.ExitError{Code: 2, Err: fmt.Errorf("missing .agentsgen.json, run: agentsgen init")}
			}
			if err != nil {
				return err
			}

			var data []byte
			if format == output.FormatJSON {
				data, err = cfg.Marshal()
			} else {
				data, err = cfg.YAML()
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
