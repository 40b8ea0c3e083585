package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"veggiekart-delivery/internal/core/cache"
	"veggiekart-delivery/internal/core/logger"
	"veggiekart-delivery/internal/features/delivery/domain"

	"go.uber.org/zap"
)

const cacheKeyPrefix = "delivery_cache_"

// CacheKey returns the storage key for a pincode's quote.
func CacheKey(pincode string) string {
	return cacheKeyPrefix + pincode
}

// QuoteCache is a TTL-checked quote store over a cache.Cache backend. The
// same implementation serves both tiers: instantiated once over the
// in-process backend (fast tier) and once over Redis (durable tier).
// Staleness is decided by the entry timestamp, not by the backend, so an
// entry backfilled from the durable tier keeps its original expiry. Backend
// failures degrade to cache misses; the cache is an optimization layer, not
// a correctness requirement.
type QuoteCache struct {
	backend cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewQuoteCache creates a quote cache over the given backend.
func NewQuoteCache(backend cache.Cache, ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		backend: backend,
		ttl:     ttl,
		logger:  logger.Get(),
	}
}

// Get returns the cached entry for a pincode if present and fresh. A stale
// or unreadable entry is evicted on read and reported as a miss.
func (c *QuoteCache) Get(ctx context.Context, pincode string) (*domain.CacheEntry, bool) {
	key := CacheKey(pincode)

	data, err := c.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			c.logger.Warn("Quote cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("Evicting unreadable quote cache entry", zap.String("key", key), zap.Error(err))
		c.backend.Delete(ctx, key)
		return nil, false
	}

	age := time.Since(time.UnixMilli(entry.Timestamp))
	if age >= c.ttl {
		if err := c.backend.Delete(ctx, key); err != nil {
			c.logger.Warn("Failed to evict stale quote", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	return &entry, true
}

// Put stores an entry. The backend TTL is set as well, but the read-side
// timestamp check is authoritative.
func (c *QuoteCache) Put(ctx context.Context, pincode string, entry domain.CacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("Failed to marshal quote cache entry", zap.String("pincode", pincode), zap.Error(err))
		return
	}

	if err := c.backend.Set(ctx, CacheKey(pincode), data, c.ttl); err != nil {
		c.logger.Warn("Quote cache write failed", zap.String("pincode", pincode), zap.Error(err))
	}
}

// Delete removes the entry for one pincode.
func (c *QuoteCache) Delete(ctx context.Context, pincode string) error {
	return c.backend.Delete(ctx, CacheKey(pincode))
}

// Clear removes every quote entry, leaving unrelated keys in the backend
// untouched.
func (c *QuoteCache) Clear(ctx context.Context) error {
	return c.backend.DeleteByPrefix(ctx, cacheKeyPrefix)
}
