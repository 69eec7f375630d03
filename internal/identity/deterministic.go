// Package identity derives deterministic identifiers for extraction results.
package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const (
	cacheKeyPrefix     = "go-reportmd:record:"
	namespaceKeyPrefix = "go-reportmd:identity:"
)

// UUID derives a deterministic UUID from a stable key using go-hashid. Keys
// are hashed as given; callers prefix them by purpose to avoid collisions.
func UUID(key string) uuid.UUID {
	if key == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return uid
}

// CacheKey identifies one extraction result. A change to any of identity,
// fingerprint or version yields a different key, so a cached record can never
// be served for edited content or a newer extractor.
func CacheKey(identity, fingerprint, version string) uuid.UUID {
	return UUID(cacheKeyPrefix + lengthPrefixed(identity, fingerprint, version))
}

// lengthPrefixed joins parts so that no two distinct tuples share an encoding.
func lengthPrefixed(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}

// Namespace groups every cache key of one document identity so they can be
// invalidated together.
func Namespace(identity string) uuid.UUID {
	return UUID(namespaceKeyPrefix + identity)
}
