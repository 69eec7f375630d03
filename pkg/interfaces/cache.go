package interfaces

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by CacheStore.Get when no live entry exists.
var ErrCacheMiss = errors.New("cache: miss")

// CacheStore is the byte-level storage used to memoize extraction results.
// The extractor never caches on its own; hosts own the store and its
// invalidation.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Clear(ctx context.Context) error
}

// ReportCache exposes the explicit invalidation calls of a memoizer.
type ReportCache interface {
	Invalidate(ctx context.Context, identity string) error
	InvalidateAll(ctx context.Context) error
}
