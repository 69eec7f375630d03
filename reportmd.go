// Package reportmd extracts structured records from semi-structured markdown
// assessment reports. Extraction is pure and synchronous; memoization is
// opt-in and owned by the host.
package reportmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-reportmd/internal/assembler"
	"github.com/goliatone/go-reportmd/internal/document"
	"github.com/goliatone/go-reportmd/internal/logging"
	"github.com/goliatone/go-reportmd/internal/logging/console"
	"github.com/goliatone/go-reportmd/internal/logging/gologger"
	"github.com/goliatone/go-reportmd/internal/report"
	"github.com/goliatone/go-reportmd/internal/reportcache"
	"github.com/goliatone/go-reportmd/internal/runtimeconfig"
	"github.com/goliatone/go-reportmd/internal/variants"
	"github.com/goliatone/go-reportmd/pkg/interfaces"
)

// Version identifies the extraction heuristics and is part of every cache key.
const Version = assembler.Version

// Record exports the extraction result.
type Record = report.Record

// LabeledEntry exports the strengths/challenges/strategies entry shape.
type LabeledEntry = report.LabeledEntry

// Action exports a single recommended or discouraged action.
type Action = report.Action

// NumberedEntry exports the barriers/accommodations entry shape.
type NumberedEntry = report.NumberedEntry

// ReviewedDocumentRecord exports a reviewed document row.
type ReviewedDocumentRecord = report.ReviewedDocumentRecord

// CaseInfo exports the report subject metadata.
type CaseInfo = report.CaseInfo

// SchemaViolation exports the cardinality failure returned by strict variants.
type SchemaViolation = assembler.SchemaViolation

// Variant exports a resolved report variant.
type Variant = variants.Variant

// Memoizer exports the caller-owned extraction cache.
type Memoizer = reportcache.Memoizer

// Module is the top level extractor façade.
type Module struct {
	cfg       Config
	registry  *variants.Registry
	assembler *assembler.Assembler
	provider  interfaces.LoggerProvider
	store     interfaces.CacheStore
	redis     *redis.Client
	memoizer  *reportcache.Memoizer
}

// Option overrides collaborators built from Config.
type Option func(*Module)

// WithLoggerProvider replaces the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithCacheStore supplies the store used when Config.Cache is enabled.
func WithCacheStore(store interfaces.CacheStore) Option {
	return func(m *Module) {
		if store != nil {
			m.store = store
		}
	}
}

// New validates cfg, loads host variant definitions over the built-in ones and
// wires logging and the optional cache.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.provider == nil {
		provider, err := configureLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	registry, err := variants.Builtin()
	if err != nil {
		return nil, err
	}
	registry.SetLogger(logging.VariantsLogger(m.provider))
	for i, def := range cfg.Variants.Definitions {
		if err := registry.Load(def); err != nil {
			return nil, fmt.Errorf("reportmd: variant definition %d: %w", i, err)
		}
	}
	if _, err := registry.Get(cfg.DefaultVariant); err != nil {
		return nil, err
	}
	m.registry = registry

	m.assembler = assembler.New(assembler.WithLogger(logging.ExtractLogger(m.provider)))

	if cfg.Cache.Enabled {
		if m.store == nil {
			m.store = m.configureStore(cfg.Cache)
		}
		m.memoizer = m.NewMemoizer(m.store)
	}
	return m, nil
}

// Extract runs the default variant over text.
func (m *Module) Extract(text string) (*Record, error) {
	return m.ExtractVariant(text, m.cfg.DefaultVariant)
}

// ExtractVariant runs the named variant over text.
func (m *Module) ExtractVariant(text, name string) (*Record, error) {
	variant, err := m.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return m.assembler.Assemble(document.New(text), variant)
}

// ExtractCached runs the default variant through the configured memoizer, or
// extracts directly when caching is disabled.
func (m *Module) ExtractCached(ctx context.Context, identity, text string) (*Record, error) {
	if m.memoizer == nil {
		return m.Extract(text)
	}
	return m.memoizer.Get(ctx, identity, text)
}

// Variants lists the registered variant names.
func (m *Module) Variants() []string {
	return m.registry.Names()
}

// Variant returns a resolved variant by name.
func (m *Module) Variant(name string) (Variant, error) {
	return m.registry.Get(name)
}

// NewMemoizer wraps the default variant with store. Cache keys carry the
// extractor version and the variant name.
func (m *Module) NewMemoizer(store interfaces.CacheStore) *Memoizer {
	name := m.cfg.DefaultVariant
	return reportcache.NewMemoizer(store,
		func(doc document.RawDocument) (*report.Record, error) {
			variant, err := m.registry.Get(name)
			if err != nil {
				return nil, err
			}
			return m.assembler.Assemble(doc, variant)
		},
		reportcache.WithVersion(m.assembler.Version()+"/"+name),
		reportcache.WithLogger(logging.CacheLogger(m.provider)),
	)
}

// Cache returns the memoizer built from Config.Cache, or nil when disabled.
func (m *Module) Cache() interfaces.ReportCache {
	if m.memoizer == nil {
		return nil
	}
	return m.memoizer
}

// Close releases the Redis client opened for Config.Cache, if any.
func (m *Module) Close() error {
	if m.redis == nil {
		return nil
	}
	return m.redis.Close()
}

func (m *Module) configureStore(cfg CacheConfig) interfaces.CacheStore {
	if cfg.NormalizedCacheProvider() == runtimeconfig.CacheProviderRedis {
		m.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return reportcache.NewRedisStore(m.redis, cfg.KeyPrefix, cfg.TTL)
	}
	return reportcache.NewMemoryStore(cfg.Size, cfg.TTL)
}

func configureLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	if strings.EqualFold(strings.TrimSpace(cfg.Provider), runtimeconfig.LoggingProviderGoLogger) {
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	}
	level, err := console.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return console.NewProvider(console.Options{MinLevel: &level}), nil
}

// NewMemoryStore builds an in-process LRU store for NewMemoizer.
func NewMemoryStore(size int, ttl time.Duration) interfaces.CacheStore {
	return reportcache.NewMemoryStore(size, ttl)
}

// NewRedisStore builds a Redis store for NewMemoizer over a host-owned client.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) interfaces.CacheStore {
	return reportcache.NewRedisStore(client, prefix, ttl)
}
