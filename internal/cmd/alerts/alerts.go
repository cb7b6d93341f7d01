// Package alerts writes status notifications such as check problems,
// warnings and per-file errors to the terminal.
package alerts

import (
	"fmt"
	"io"
)

// Alert represents a status notification.
type Alert struct {
	Level   Level
	Message string
	Details []string
	Err     error
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewError creates a new error alert.
func NewError(message string) *Alert {
	return New(LevelError, message)
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// WithError adds an underlying error to the alert.
func (a *Alert) WithError(err error) *Alert {
	a.Err = err
	return a
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns the alert without colour.
func (a *Alert) String() string {
	msg := a.Level.Prefix() + " " + a.Message
	if a.Err != nil {
		msg += fmt.Sprintf(": %v", a.Err)
	}
	return msg
}

// Writer handles alert output.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// NewWriterTo creates a Writer that writes one line per alert to w, followed
// by indented details. The prefix is coloured unless colour is disabled
// globally (--no-color, NO_COLOR or a non-terminal stdout).
func NewWriterTo(w io.Writer) Writer {
	return WriterFunc(func(a *Alert) error {
		line := a.Level.Color().Sprint(a.Level.Prefix()) + " " + a.Message
		if a.Err != nil {
			line += fmt.Sprintf(": %v", a.Err)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for _, d := range a.Details {
			if _, err := fmt.Fprintf(w, "   %s\n", d); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteAll writes every alert, stopping at the first error.
func WriteAll(w Writer, alerts ...*Alert) error {
	for _, a := range alerts {
		if err := w.WriteAlert(a); err != nil {
			return err
		}
	}
	return nil
}
