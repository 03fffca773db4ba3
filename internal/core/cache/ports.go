package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// Cache defines the caching operations interface following hexagonal architecture.
// This is a port that can be implemented by different cache providers.
type Cache interface {
	// Get retrieves a value by key. Missing keys return an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified TTL. TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}

// ScoredIndex stores values alongside a sorted index of their keys, used to find aged
// entries without scanning the keyspace. Both operations are atomic on the server, so
// a value and its index member are always written and removed together.
type ScoredIndex interface {
	// SetIndexed stores value at keyPrefix+member with no expiration and (re)scores
	// member in index. The index is written first; if it fails the value is untouched.
	SetIndexed(ctx context.Context, index, keyPrefix, member string, value []byte, score float64) error

	// DeleteIndexedBelow removes up to limit members scored strictly below max,
	// together with their keyPrefix+member values, and returns the removed members.
	DeleteIndexedBelow(ctx context.Context, index, keyPrefix string, max float64, limit int64) ([]string, error)
}

// IndexedCache is a Cache that also maintains scored indexes.
type IndexedCache interface {
	Cache
	ScoredIndex
}
