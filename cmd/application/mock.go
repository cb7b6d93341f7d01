package application

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/agentsgen/pkg/reconcile"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value: an
// in-memory filesystem shared by all calls, a no-op logger and "table"
// output.
type Mock struct {
	FsFunc           func() afero.Fs
	ReconcilerFunc   func(root string, opts ...reconcile.Option) *reconcile.Reconciler
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string

	once sync.Once
	fs   afero.Fs
}

// Fs returns the filesystem from the mock function or a shared MemMapFs.
func (m *Mock) Fs() afero.Fs {
	if m.FsFunc != nil {
		return m.FsFunc()
	}
	m.once.Do(func() { m.fs = afero.NewMemMapFs() })
	return m.fs
}

// Reconciler returns a reconciler from the mock function or one on Fs.
func (m *Mock) Reconciler(root string, opts ...reconcile.Option) *reconcile.Reconciler {
	if m.ReconcilerFunc != nil {
		return m.ReconcilerFunc(root, opts...)
	}
	opts = append([]reconcile.Option{reconcile.WithLogger(m.Logger())}, opts...)
	return reconcile.New(m.Fs(), root, opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

var _ Application = (*Mock)(nil)
