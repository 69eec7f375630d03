// Package reportcache memoizes extraction results keyed by document identity,
// content fingerprint and extractor version. Stores are pluggable; nothing is
// cached unless a host builds a Memoizer.
package reportcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-reportmd/internal/document"
	"github.com/goliatone/go-reportmd/internal/identity"
	"github.com/goliatone/go-reportmd/internal/logging"
	"github.com/goliatone/go-reportmd/internal/report"
	"github.com/goliatone/go-reportmd/pkg/interfaces"
)

// ErrIdentityRequired is returned when Get or Invalidate is called without a
// document identity.
var ErrIdentityRequired = errors.New("reportcache: document identity required")

// ExtractFunc produces a record for a normalised document.
type ExtractFunc func(doc document.RawDocument) (*report.Record, error)

// Stats counts memoizer lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// Memoizer wraps an ExtractFunc with a CacheStore.
type Memoizer struct {
	store   interfaces.CacheStore
	extract ExtractFunc
	version string
	logger  interfaces.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

var _ interfaces.ReportCache = (*Memoizer)(nil)

// Option configures a Memoizer.
type Option func(*Memoizer)

// WithLogger sets the logger used for cache events.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Memoizer) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithVersion sets the version component of cache keys. Hosts include both the
// extractor version and the variant name so either change misses the cache.
func WithVersion(version string) Option {
	return func(m *Memoizer) {
		m.version = version
	}
}

// NewMemoizer builds a memoizer over store.
func NewMemoizer(store interfaces.CacheStore, extract ExtractFunc, opts ...Option) *Memoizer {
	m := &Memoizer{
		store:   store,
		extract: extract,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Get returns the cached record for identity when the text is unchanged and
// extracts it otherwise. Store failures are logged and never fail the call;
// extraction errors are returned as-is and never cached.
func (m *Memoizer) Get(ctx context.Context, id, text string) (*report.Record, error) {
	if id == "" {
		return nil, goerrors.Wrap(ErrIdentityRequired, goerrors.CategoryValidation, "memoized extraction requires an identity")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := document.New(text)
	key := m.key(id, doc.Fingerprint())
	logger := logging.WithDocumentContext(m.logger, id, doc.Fingerprint(), "")

	if record, ok := m.lookup(ctx, logger, key); ok {
		m.hits.Add(1)
		logger.Debug("report.cache.hit")
		return record, nil
	}
	m.misses.Add(1)
	logger.Debug("report.cache.miss")

	record, err := m.extract(doc)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		logger.Warn("report.cache.encode_failed", "error", err)
		return record, nil
	}
	if err := m.store.Set(ctx, key, payload); err != nil {
		logger.Warn("report.cache.store_failed", "error", err)
	}
	return record, nil
}

// Invalidate drops every cached record for identity.
func (m *Memoizer) Invalidate(ctx context.Context, id string) error {
	if id == "" {
		return goerrors.Wrap(ErrIdentityRequired, goerrors.CategoryValidation, "cache invalidation requires an identity")
	}
	if err := m.store.DeletePrefix(ctx, namespace(id)); err != nil {
		return fmt.Errorf("reportcache: invalidate %q: %w", id, err)
	}
	m.logger.Debug("report.cache.invalidated", "document_identity", id)
	return nil
}

// InvalidateAll drops every cached record.
func (m *Memoizer) InvalidateAll(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("reportcache: clear: %w", err)
	}
	m.logger.Debug("report.cache.cleared")
	return nil
}

// Stats returns lookup counters since the memoizer was built.
func (m *Memoizer) Stats() Stats {
	return Stats{Hits: m.hits.Load(), Misses: m.misses.Load()}
}

func (m *Memoizer) lookup(ctx context.Context, logger interfaces.Logger, key string) (*report.Record, bool) {
	payload, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			logger.Warn("report.cache.lookup_failed", "error", err)
		}
		return nil, false
	}
	var record report.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		logger.Warn("report.cache.decode_failed", "error", err)
		return nil, false
	}
	return &record, true
}

func (m *Memoizer) key(id, fingerprint string) string {
	return namespace(id) + identity.CacheKey(id, fingerprint, m.version).String()
}

func namespace(id string) string {
	return identity.Namespace(id).String() + "/"
}
