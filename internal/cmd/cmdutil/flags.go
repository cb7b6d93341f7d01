// Package cmdutil provides flags and helpers shared by agentsgen commands.
package cmdutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/agentstation/agentsgen/pkg/errors"
)

// WriteFlags holds the flags of commands that reconcile files.
type WriteFlags struct {
	DryRun    bool
	PrintDiff bool
}

// AddWriteFlags adds --dry-run and --print-diff to a command.
func AddWriteFlags(cmd *cobra.Command) *WriteFlags {
	flags := &WriteFlags{}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Do not write files")
	cmd.Flags().BoolVar(&flags.PrintDiff, "print-diff", false,
		"Print a unified diff for every changed file")

	return flags
}

// TargetDir returns the directory argument (default ".") as an absolute
// path, or an error when it is not an existing directory on fs.
func TargetDir(fs afero.Fs, args []string) (string, error) {
	dir := "."
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}
	if _, ok := fs.(*afero.OsFs); ok {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", errors.WrapIO("resolve", dir, err)
		}
		dir = abs
	}
	dir = filepath.Clean(dir)

	ok, err := afero.IsDir(fs, dir)
	if err != nil || !ok {
		return "", errors.NewNotFoundError("directory", dir)
	}
	return dir, nil
}

// ParseCSV splits a comma separated flag value, dropping blank entries.
// The result is never nil.
func ParseCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ExitError ends a command with a specific exit code. A nil Err means the
// command already reported the failure.
type ExitError struct {
	Code int
	Err  error
}

// Error implements error.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit returns an ExitError with no message, or nil for code 0.
func Exit(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code}
}
