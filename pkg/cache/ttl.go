package cache

import (
	"context"
	"time"
)

// ttlCache caps the ttl of every Set.
type ttlCache struct {
	Cache
	max time.Duration
}

// WithTTL returns c with every entry's ttl capped at max. A ttl of zero
// ("no expiry") becomes max. A non-positive max returns c unchanged.
func WithTTL(c Cache, max time.Duration) Cache {
	if max <= 0 {
		return c
	}
	return &ttlCache{Cache: c, max: max}
}

func (c *ttlCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.max {
		ttl = c.max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}
