package interfaces

import "context"

// Logger receives extraction events: section strategy picks, fields resolved
// per variant, cache hits and evictions. Its method set matches
// github.com/goliatone/go-logger, whose loggers satisfy it as they are.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out the logger for a report module such as
// "report.extract" or "report.cache".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger tags every line with report fields like document id and variant.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
