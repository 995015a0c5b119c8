package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pos-service/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	MenuVersionKey   = "pos:menu:version"
	MenuCatalogKeyNS = "pos:menu:all"
	DefaultMenuTTL   = 10 * time.Minute
	redisOpTimeout   = 500 * time.Millisecond
)

// MenuCatalogKey is the key holding the catalog cached at version.
func MenuCatalogKey(version int64) string {
	return fmt.Sprintf("%s:%d", MenuCatalogKeyNS, version)
}

// NewRedisClient parses redisURL and pings the server once.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// RedisMenuCache stores the full menu catalog as a single JSON document
// under a versioned key. Invalidate bumps the version, so a catalog read
// before a write and stored after it lands under a key nobody reads again.
type RedisMenuCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisMenuCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisMenuCache {
	if ttl <= 0 {
		ttl = DefaultMenuTTL
	}
	return &RedisMenuCache{redis: client, ttl: ttl, logger: logger}
}

// Get returns the cached catalog and the version it was looked up at. The
// version must be passed back to Set after a miss. Any redis or decode
// failure is a miss; a version of -1 means Set should be skipped.
func (c *RedisMenuCache) Get(ctx context.Context) ([]models.MenuItem, int64, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	version, err := c.redis.Get(ctx, MenuVersionKey).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Menu cache version read failed", zap.Error(err))
			return nil, -1, false
		}
		version = 0
	}

	raw, err := c.redis.Get(ctx, MenuCatalogKey(version)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Menu cache read failed", zap.Error(err))
		}
		return nil, version, false
	}

	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("Failed to unmarshal cached menu", zap.Error(err))
		return nil, version, false
	}
	return items, version, true
}

func (c *RedisMenuCache) Set(ctx context.Context, version int64, items []models.MenuItem) {
	if version < 0 {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("Failed to marshal menu for cache", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := c.redis.Set(ctx, MenuCatalogKey(version), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache menu", zap.Error(err))
	}
}

func (c *RedisMenuCache) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	version, err := c.redis.Incr(ctx, MenuVersionKey).Result()
	if err != nil {
		c.logger.Error("Failed to invalidate menu cache", zap.Error(err))
		return
	}
	c.logger.Debug("Menu cache invalidated", zap.Int64("version", version))
}
