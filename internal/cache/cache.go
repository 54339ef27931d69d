package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/h662/x-clone-go/internal/logs"
)

// PageCache keeps rendered post-listing pages in redis under a versioned
// namespace. Mutations bump the version instead of deleting keys, so
// stale pages simply age out with the TTL.
type PageCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// New connects to addr and returns a ready cache. An empty addr returns
// nil; every method is nil-safe, so callers never branch on whether
// caching is enabled.
func New(addr, prefix string) *PageCache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logs.LogJSON("WARN", "redis unavailable, cache disabled", map[string]interface{}{
			"addr":  addr,
			"error": err.Error(),
		})
		return nil
	}
	return &PageCache{rdb: rdb, prefix: prefix, ttl: 30 * time.Second}
}

func (p *PageCache) key(ctx context.Context, page string) (string, error) {
	ver, err := p.rdb.Get(ctx, p.prefix+":ver").Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d:page:%s", p.prefix, ver, page), nil
}

// Get returns the cached body for a page, or "" on miss.
func (p *PageCache) Get(ctx context.Context, page string) string {
	if p == nil {
		return ""
	}
	key, err := p.key(ctx, page)
	if err != nil {
		return ""
	}
	body, err := p.rdb.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return body
}

func (p *PageCache) Set(ctx context.Context, page, body string) {
	if p == nil {
		return
	}
	key, err := p.key(ctx, page)
	if err != nil {
		return
	}
	_ = p.rdb.Set(ctx, key, body, p.ttl).Err()
}

// Invalidate bumps the namespace version; all cached pages become
// unreachable at once.
func (p *PageCache) Invalidate(ctx context.Context) {
	if p == nil {
		return
	}
	_ = p.rdb.Incr(ctx, p.prefix+":ver").Err()
}
