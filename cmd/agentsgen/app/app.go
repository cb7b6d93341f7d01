// Package app wires configuration, logging and the filesystem into the
// agentsgen commands.
package app

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/cmd/application"
	"github.com/agentstation/agentsgen/pkg/errors"
	"github.com/agentstation/agentsgen/pkg/reconcile"
)

// App holds the dependencies shared by every command.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	fs     afero.Fs
}

// New creates an App. Configuration is loaded from the environment and the
// settings file before the options are applied.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Fs returns the filesystem commands read and write.
func (a *App) Fs() afero.Fs {
	return a.fs
}

// OutputFormat returns the --format value, "" when unset.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Reconciler returns a reconciler rooted at root. The configured
// parallelism and the app logger come first so opts can override them.
func (a *App) Reconciler(root string, opts ...reconcile.Option) *reconcile.Reconciler {
	base := []reconcile.Option{
		reconcile.WithLogger(a.logger),
		reconcile.WithMaxParallel(a.config.MaxParallel),
	}
	return reconcile.New(a.fs, root, append(base, opts...)...)
}

// Shutdown releases resources. agentsgen holds none beyond open files,
// which every command closes itself.
func (a *App) Shutdown(_ context.Context) error {
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithFs sets the filesystem, e.g. an in-memory one for tests.
func WithFs(fs afero.Fs) Option {
	return func(a *App) error {
		a.fs = fs
		return nil
	}
}

var _ application.Application = (*App)(nil)
