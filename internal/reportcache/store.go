package reportcache

import "github.com/goliatone/go-reportmd/pkg/interfaces"

// Store is the storage contract memoizers write through.
type Store = interfaces.CacheStore

// ErrMiss is returned by Store.Get when no live entry exists.
var ErrMiss = interfaces.ErrCacheMiss
