package enrichment

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long a cached market cap stays valid.
const DefaultCacheTTL = 10 * time.Minute

const cacheKeyPrefix = "anubis:mcap:"

// CachedPriceSource is a read-through Redis cache in front of a PriceSource.
// Redis errors never fail a lookup; they fall through to the wrapped source.
type CachedPriceSource struct {
	next   PriceSource
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *log.Logger

	hits   int
	misses int
}

var _ PriceSource = (*CachedPriceSource)(nil)

// NewCachedPriceSource wraps next with a Redis cache.
func NewCachedPriceSource(next PriceSource, rdb redis.Cmdable, ttl time.Duration, logger *log.Logger) *CachedPriceSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CachedPriceSource{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

// MarketCap returns the cached value when present, otherwise asks the
// wrapped source and caches a successful answer.
func (c *CachedPriceSource) MarketCap(ctx context.Context, mint string) (float64, error) {
	key := cacheKeyPrefix + mint

	val, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if mcap, perr := strconv.ParseFloat(val, 64); perr == nil {
			c.hits++
			return mcap, nil
		}
		c.logger.Printf("Discarding malformed cache entry %s=%q", key, val)
	case !errors.Is(err, redis.Nil):
		c.logger.Printf("Price cache read failed for %s: %v", mint, err)
	}
	c.misses++

	mcap, err := c.next.MarketCap(ctx, mint)
	if err != nil {
		return 0, err
	}

	if err := c.rdb.Set(ctx, key, strconv.FormatFloat(mcap, 'f', -1, 64), c.ttl).Err(); err != nil {
		c.logger.Printf("Price cache write failed for %s: %v", mint, err)
	}
	return mcap, nil
}

// Stats returns cache hits and misses so far.
func (c *CachedPriceSource) Stats() (hits, misses int) {
	return c.hits, c.misses
}
