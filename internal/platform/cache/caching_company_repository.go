// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"nexora_backend/internal/feature/reports/domain/entity"
	"nexora_backend/internal/feature/reports/usecase"
)

// CachingCompanyRepository decorates a CompanyRepository with Redis caching.
// Entries are keyed by the requested field projection, so each view shares
// the cache with every other view asking for the same fields.
type CachingCompanyRepository struct {
	inner     usecase.CompanyRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string

	// refreshAt が設定されている場合、エントリはその時刻を越えて保持されない
	refreshAt *dailyRefresh
}

type dailyRefresh struct {
	hour int
	loc  *time.Location
	now  func() time.Time
}

var _ usecase.CompanyRepository = (*CachingCompanyRepository)(nil)

// NewCachingCompanyRepository decorates a CompanyRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "companies".
func NewCachingCompanyRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CompanyRepository, namespace string) *CachingCompanyRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "companies"
	}
	return &CachingCompanyRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// WithDailyRefresh caps every entry's lifetime at the next occurrence of hour:00 in loc.
// Use it when the store is reloaded by a daily batch.
func (c *CachingCompanyRepository) WithDailyRefresh(hour int, loc *time.Location) *CachingCompanyRepository {
	if loc == nil {
		loc = time.UTC
	}
	c.refreshAt = &dailyRefresh{hour: hour, loc: loc, now: time.Now}
	return c
}

// FindAll retrieves companies, checking cache first then falling back to the store.
func (c *CachingCompanyRepository) FindAll(ctx context.Context, fields []string) ([]entity.Company, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindAll(ctx, fields)
	}

	key := c.cacheKey(fields)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Company
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		slog.Warn("corrupted cache entry removed", "key", key)
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to store
	out, err := c.inner.FindAll(ctx, fields)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.expiry()).Err(); err != nil {
			slog.Warn("cache set failed", "key", key, "error", err)
		}
	}

	return out, nil
}

// Invalidate removes every entry under the namespace. Call it after the store is reloaded.
func (c *CachingCompanyRepository) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

// expiry returns the TTL for a new entry.
func (c *CachingCompanyRepository) expiry() time.Duration {
	if c.refreshAt == nil {
		return c.ttl
	}
	until := TimeUntilNext(c.refreshAt.now(), c.refreshAt.hour, c.refreshAt.loc)
	if until < c.ttl {
		return until
	}
	return c.ttl
}

// cacheKey generates a cache key for a specific field projection.
func (c *CachingCompanyRepository) cacheKey(fields []string) string {
	if len(fields) == 0 {
		return c.namespace + ":all"
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, safe(f))
	}
	return c.namespace + ":" + strings.Join(parts, ",")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingCompanyRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, ",", "_")
	return s
}
