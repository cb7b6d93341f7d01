// Package application provides the application interface for agentsgen
// commands.
//
// Commands accept an Application rather than the concrete App so they can be
// exercised against an in-memory filesystem with a Mock:
//
//	mock := &application.Mock{FsFunc: func() afero.Fs { return memFs }}
//	cmd := update.NewCommand(mock)
//	cmd.SetArgs([]string{"/repo"})
//	err := cmd.Execute()
package application

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/reconcile"
)

// Application provides what commands need from the running program.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Fs returns the filesystem commands read from and write to.
	Fs() afero.Fs

	// Reconciler returns a reconciler rooted at root, configured from the
	// application settings and then from opts.
	Reconciler(root string, opts ...reconcile.Option) *reconcile.Reconciler

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml)
	// or "" to detect it from the terminal.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
