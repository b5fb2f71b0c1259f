// Package interfaces holds the contracts shared between the site builder
// packages and host applications.
package interfaces

import "context"

// Logger is the leveled logger used by every service. Its method set matches
// github.com/goliatone/go-logger so that logger plugs in through a thin
// adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider returns the logger for a module name such as
// "sitebuilder.editor".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
