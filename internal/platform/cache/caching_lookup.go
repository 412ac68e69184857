// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"ticker_backend/internal/feature/resolution/domain/entity"
	"ticker_backend/internal/feature/resolution/usecase"
	"ticker_backend/internal/shared/normalize"
)

// CachingLookup decorates a SourceAdapter with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying adapter. Lookup errors are never cached, so a
// failing source recovers as soon as it comes back.
type CachingLookup struct {
	inner     usecase.SourceAdapter
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.SourceAdapter = (*CachingLookup)(nil)

// NewCachingLookup decorates a SourceAdapter with Redis caching.
// If ttl is 0, it defaults to 15 minutes. If namespace is empty, it uses "lookup".
func NewCachingLookup(rdb *redis.Client, ttl time.Duration, inner usecase.SourceAdapter, namespace string) *CachingLookup {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if namespace == "" {
		namespace = "lookup"
	}
	return &CachingLookup{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Source は内側の照会元の識別子をそのまま返します。
func (c *CachingLookup) Source() entity.Source { return c.inner.Source() }

// Lookup retrieves candidates, checking cache first then falling back to the
// inner adapter. Empty result sets are cached too; repeating a miss against
// a rate-limited external API is the expensive case.
func (c *CachingLookup) Lookup(ctx context.Context, name string) ([]entity.Candidate, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Lookup(ctx, name)
	}

	key := c.cacheKey(name)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var out []entity.Candidate
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the source
	out, err := c.inner.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a normalized lookup query.
func (c *CachingLookup) cacheKey(name string) string {
	return fmt.Sprintf("%s:%s:%s",
		c.namespace,
		c.inner.Source(),
		safe(normalize.Name(name)),
	)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
