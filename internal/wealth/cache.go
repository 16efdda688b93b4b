package wealth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	cacheVersionKey = "wealthdash:version"
	cachePrefix     = "wealthdash:page"
)

// Cache stores rendered pages in Redis under a versioned key. A nil client
// turns every lookup into a direct render.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	onErr  func(op string, err error)
}

// NewCache instantiates the page cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// OnError registers a hook for Redis failures that were absorbed by a fallback render.
func (c *Cache) OnError(fn func(op string, err error)) {
	if c != nil {
		c.onErr = fn
	}
}

// Enabled reports whether a Redis client backs the cache.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, cacheVersionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, cacheVersionKey, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// BuildKey composes the cache key for a page with the current version.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(append([]string{cachePrefix}, parts...), ":")
	if !c.Enabled() {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// Fetch returns the cached page for name, rendering and storing it on a miss.
// Concurrent misses for the same key share one render. The boolean reports a
// cache hit.
func (c *Cache) Fetch(ctx context.Context, name string, render func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	if render == nil {
		return nil, false, errors.New("wealth: cache render func required")
	}
	if !c.Enabled() {
		page, err := render(ctx)
		return page, false, err
	}

	key, err := c.BuildKey(ctx, name)
	if err != nil {
		c.reportErr("version", err)
		page, err := render(ctx)
		return page, false, err
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return payload, true, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.reportErr("get", err)
	}

	res, err, _ := c.group.Do(key, func() (interface{}, error) {
		page, err := render(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, key, page, c.ttl).Err(); err != nil {
			c.reportErr("set", err)
		}
		return page, nil
	})
	if err != nil {
		return nil, false, err
	}
	return res.([]byte), false, nil
}

// Bump invalidates every cached page by incrementing the global version.
func (c *Cache) Bump(ctx context.Context) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Result()
}

func (c *Cache) reportErr(op string, err error) {
	if c.onErr != nil {
		c.onErr(op, err)
	}
}
