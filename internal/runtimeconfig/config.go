package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrDefaultVariantRequired = errors.New("reportmd config: default variant is required")
var ErrLoggingProviderRequired = errors.New("reportmd config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("reportmd config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("reportmd config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("reportmd config: logging format is invalid")
var ErrCacheProviderUnknown = errors.New("reportmd config: cache provider is invalid")
var ErrCacheSizeInvalid = errors.New("reportmd config: cache size must be zero or positive")
var ErrCacheTTLInvalid = errors.New("reportmd config: cache ttl must be zero or positive")
var ErrCacheRedisAddrRequired = errors.New("reportmd config: redis address is required for the redis cache provider")

const (
	LoggingProviderConsole  = "console"
	LoggingProviderGoLogger = "gologger"

	CacheProviderMemory = "memory"
	CacheProviderRedis  = "redis"
)

// Config is the host-facing configuration of the extractor module.
type Config struct {
	// DefaultVariant is used by Extract; ExtractVariant picks one explicitly.
	DefaultVariant string
	Variants       VariantsConfig
	Logging        LoggingConfig
	Cache          CacheConfig
}

// VariantsConfig carries host variant definitions as YAML documents. They are
// loaded in order on top of the built-in variants.
type VariantsConfig struct {
	Definitions [][]byte
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CacheConfig describes the memoizer built by the module. The extractor never
// caches by itself.
type CacheConfig struct {
	Enabled   bool
	Provider  string
	Size      int
	TTL       time.Duration
	KeyPrefix string
	RedisAddr string
}

// DefaultConfig returns the standard variant, console logging at info and a
// disabled in-memory cache of 256 entries.
func DefaultConfig() Config {
	return Config{
		DefaultVariant: "standard",
		Logging: LoggingConfig{
			Provider: LoggingProviderConsole,
			Level:    "info",
		},
		Cache: CacheConfig{
			Provider:  CacheProviderMemory,
			Size:      256,
			KeyPrefix: "reportmd:",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultVariant) == "" {
		return ErrDefaultVariantRequired
	}
	if err := cfg.Logging.Validate(); err != nil {
		return err
	}
	if cfg.Cache.Enabled {
		return cfg.Cache.Validate()
	}
	return nil
}

// Validate checks the logging provider, level and format.
func (cfg LoggingConfig) Validate() error {
	provider := normalize(cfg.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if err := validation.Validate(provider, validation.In(LoggingProviderConsole, LoggingProviderGoLogger)); err != nil {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := normalize(cfg.Level); level != "" {
		if err := validation.Validate(level, validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")); err != nil {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
	}
	if provider == LoggingProviderGoLogger {
		if format := normalize(cfg.Format); format != "" {
			if err := validation.Validate(format, validation.In("json", "console", "pretty")); err != nil {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// Validate checks the cache provider and its limits.
func (cfg CacheConfig) Validate() error {
	provider := normalize(cfg.Provider)
	if provider == "" {
		provider = CacheProviderMemory
	}
	if err := validation.Validate(provider, validation.In(CacheProviderMemory, CacheProviderRedis)); err != nil {
		return fmt.Errorf("%w: %s", ErrCacheProviderUnknown, provider)
	}
	if err := validation.Validate(cfg.Size, validation.Min(0)); err != nil {
		return fmt.Errorf("%w: %d", ErrCacheSizeInvalid, cfg.Size)
	}
	if err := validation.Validate(cfg.TTL, validation.Min(time.Duration(0))); err != nil {
		return fmt.Errorf("%w: %s", ErrCacheTTLInvalid, cfg.TTL)
	}
	if provider == CacheProviderRedis && strings.TrimSpace(cfg.RedisAddr) == "" {
		return ErrCacheRedisAddrRequired
	}
	return nil
}

// NormalizedCacheProvider returns the cache provider, defaulting to memory.
func (cfg CacheConfig) NormalizedCacheProvider() string {
	if provider := normalize(cfg.Provider); provider != "" {
		return provider
	}
	return CacheProviderMemory
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
