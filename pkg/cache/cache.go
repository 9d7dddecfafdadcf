// Package cache stores computed diagrams and rendered artifacts.
//
// Entries are opaque byte slices addressed by string keys built with a
// [Keyer]. Keys are content hashes of the inputs, so a changed member list,
// layout config or render option simply produces a different key; nothing
// is ever invalidated explicitly.
//
// Implementations:
//   - [FileCache]: one JSON envelope per key under a directory (CLI default)
//   - [RedisCache]: keys in Redis with native expiry
//   - [MemoryCache]: process-local, for tests and one-shot runs
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// GetJSON loads key and decodes it into v. It returns [ErrCacheMiss]
// when the key is absent or the entry does not decode.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return ErrCacheMiss
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	return c.Set(ctx, key, data, ttl)
}
