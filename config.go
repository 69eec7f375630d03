package reportmd

import (
	"github.com/goliatone/go-reportmd/internal/assembler"
	"github.com/goliatone/go-reportmd/internal/reportcache"
	"github.com/goliatone/go-reportmd/internal/runtimeconfig"
	"github.com/goliatone/go-reportmd/internal/variants"
)

var (
	ErrDefaultVariantRequired  = runtimeconfig.ErrDefaultVariantRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrCacheProviderUnknown    = runtimeconfig.ErrCacheProviderUnknown
	ErrCacheSizeInvalid        = runtimeconfig.ErrCacheSizeInvalid
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheRedisAddrRequired  = runtimeconfig.ErrCacheRedisAddrRequired

	ErrUnknownVariant    = variants.ErrUnknownVariant
	ErrInvalidDefinition = variants.ErrInvalidDefinition
	ErrInvalidVariant    = assembler.ErrInvalidVariant
	ErrCacheMiss         = reportcache.ErrMiss
)

type (
	Config         = runtimeconfig.Config
	VariantsConfig = runtimeconfig.VariantsConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	CacheConfig    = runtimeconfig.CacheConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// AsSchemaViolation unwraps a cardinality failure from an extraction error.
func AsSchemaViolation(err error) (*SchemaViolation, bool) {
	return assembler.AsSchemaViolation(err)
}
