package ports

import (
	"context"
	"time"
)

// KeyValueStore is the port for the remote key/value service backing the
// cache layer. Implementations hold a single long-lived handle that must be
// safe for concurrent use by many in-flight requests.
//
// The cache is never the source of truth: callers must treat every error
// from these methods as a miss or a no-op. The fail-soft decorator in
// infrastructure/cache enforces that policy once, at the adapter boundary,
// so higher layers never see an error at all.
type KeyValueStore interface {
	// Get retrieves the raw value for a key. A missing key is (nil, false, nil),
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. TTL expiry is delegated to the
	// backing service; there is no sliding expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes one or more keys. Deleting a missing key is not an error.
	Delete(ctx context.Context, keys ...string) error

	// DeleteMatching removes every key matching a glob-style pattern
	// (exact prefix + trailing wildcard, e.g. "itineraries:42:*").
	// The scan-then-delete is best-effort: keys created concurrently with
	// the scan may be missed and age out via TTL instead.
	DeleteMatching(ctx context.Context, pattern string) error

	// Close releases the underlying connection
	Close() error
}
