// Package cache provides caching for rendered diagram artifacts.
//
// Rendering is cached by content: the key is a hash of the emitted DOT text
// plus the output format, so any change to the diagram produces a new key and
// stale entries are simply never read again. Backends:
//   - FileCache: XDG cache directory, for local CLI use
//   - RedisCache: shared cache for CI render farms
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}

// DefaultTTL bounds how long artifacts are kept. Content-addressed entries
// never go stale, but unbounded growth of the cache directory is unhelpful.
const DefaultTTL = 30 * 24 * time.Hour

// RenderKey builds the cache key for a rendered artifact.
func RenderKey(dotText []byte, format string) string {
	return "render:" + format + ":" + Hash(dotText)
}
