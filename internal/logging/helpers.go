package logging

import (
	"maps"

	"github.com/goliatone/go-reportmd/pkg/interfaces"
)

// WithFields attaches a copy of fields when logger implements
// interfaces.FieldsLogger and returns it unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	with, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return with.WithFields(maps.Clone(fields))
}
