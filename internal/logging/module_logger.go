package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-reportmd/pkg/interfaces"
)

const (
	rootModule     = "report"
	extractModule  = "report.extract"
	cacheModule    = "report.cache"
	variantsModule = "report.variants"
)

const (
	fieldDocumentIdentity = "document_identity"
	fieldFingerprint      = "fingerprint"
	fieldVariant          = "variant"
)

// fingerprintPrefix is how much of a fingerprint is logged.
const fingerprintPrefix = 12

// ModuleLogger returns the provider's logger for module tagged with a module
// field. A nil provider, or one returning nil, yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}
	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	if logger == nil {
		return NoOp()
	}
	return WithFields(logger, map[string]any{"module": module})
}

// ExtractLogger returns the logger namespace used by the report assembler.
func ExtractLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, extractModule)
}

// CacheLogger returns the logger namespace used by memoizers and stores.
func CacheLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cacheModule)
}

// VariantsLogger returns the logger namespace used while loading variants.
func VariantsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, variantsModule)
}

// WithDocumentContext enriches logger with the document identity, a shortened
// fingerprint and the variant name. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, identity, fingerprint, variant string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(identity); trimmed != "" {
		fields[fieldDocumentIdentity] = trimmed
	}
	if trimmed := strings.TrimSpace(fingerprint); trimmed != "" {
		if len(trimmed) > fingerprintPrefix {
			trimmed = trimmed[:fingerprintPrefix]
		}
		fields[fieldFingerprint] = trimmed
	}
	if trimmed := strings.TrimSpace(variant); trimmed != "" {
		fields[fieldVariant] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
