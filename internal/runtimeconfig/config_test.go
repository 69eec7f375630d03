package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-reportmd/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.DefaultVariant != "standard" {
		t.Fatalf("expected standard default variant, got %q", cfg.DefaultVariant)
	}
	if cfg.Cache.Size != 256 {
		t.Fatalf("expected cache size 256, got %d", cfg.Cache.Size)
	}
}

func TestConfigValidate_RequiresDefaultVariant(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultVariant = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrDefaultVariantRequired) {
		t.Fatalf("expected ErrDefaultVariantRequired, got %v", err)
	}
}

func TestConfigValidate_Logging(t *testing.T) {
	cases := []struct {
		name    string
		logging runtimeconfig.LoggingConfig
		want    error
	}{
		{name: "missing provider", logging: runtimeconfig.LoggingConfig{}, want: runtimeconfig.ErrLoggingProviderRequired},
		{name: "unknown provider", logging: runtimeconfig.LoggingConfig{Provider: "syslog"}, want: runtimeconfig.ErrLoggingProviderUnknown},
		{name: "bad level", logging: runtimeconfig.LoggingConfig{Provider: "console", Level: "loud"}, want: runtimeconfig.ErrLoggingLevelInvalid},
		{name: "bad gologger format", logging: runtimeconfig.LoggingConfig{Provider: "gologger", Format: "xml"}, want: runtimeconfig.ErrLoggingFormatInvalid},
		{name: "console ignores format", logging: runtimeconfig.LoggingConfig{Provider: "Console", Format: "xml"}},
		{name: "gologger json", logging: runtimeconfig.LoggingConfig{Provider: "gologger", Level: "DEBUG", Format: "json"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.Logging = tc.logging

			err := cfg.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_CacheOnlyWhenEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Provider = "memcached"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected disabled cache to skip validation, got %v", err)
	}

	cfg.Cache.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCacheProviderUnknown) {
		t.Fatalf("expected ErrCacheProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_Cache(t *testing.T) {
	cases := []struct {
		name  string
		cache runtimeconfig.CacheConfig
		want  error
	}{
		{name: "negative size", cache: runtimeconfig.CacheConfig{Enabled: true, Size: -1}, want: runtimeconfig.ErrCacheSizeInvalid},
		{name: "negative ttl", cache: runtimeconfig.CacheConfig{Enabled: true, TTL: -time.Second}, want: runtimeconfig.ErrCacheTTLInvalid},
		{name: "redis without addr", cache: runtimeconfig.CacheConfig{Enabled: true, Provider: "redis"}, want: runtimeconfig.ErrCacheRedisAddrRequired},
		{name: "redis", cache: runtimeconfig.CacheConfig{Enabled: true, Provider: "redis", RedisAddr: "localhost:6379"}},
		{name: "memory default", cache: runtimeconfig.CacheConfig{Enabled: true, TTL: time.Minute}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.Cache = tc.cache

			err := cfg.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCacheConfigNormalizedProvider(t *testing.T) {
	if got := (runtimeconfig.CacheConfig{}).NormalizedCacheProvider(); got != "memory" {
		t.Fatalf("expected memory, got %q", got)
	}
	if got := (runtimeconfig.CacheConfig{Provider: " Redis "}).NormalizedCacheProvider(); got != "redis" {
		t.Fatalf("expected redis, got %q", got)
	}
}
