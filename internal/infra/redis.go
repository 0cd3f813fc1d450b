package infra

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"boothtrack.in/internal/config"
	"boothtrack.in/internal/constants"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// TokenCache is a Redis-backed lookaside cache for bearer-token resolution,
// keeping the hot auth path off the database. A nil client disables it.
type TokenCache struct {
	rdb *redis.Client
}

func NewTokenCache(rdb *redis.Client) *TokenCache {
	return &TokenCache{rdb: rdb}
}

// Get returns the cached user ID for a token key, or false on miss.
func (c *TokenCache) Get(ctx context.Context, tokenKey string) (uint, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	val, err := c.rdb.Get(ctx, constants.RedisTokenCachePrefix+tokenKey).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (c *TokenCache) Set(ctx context.Context, tokenKey string, userID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, constants.RedisTokenCachePrefix+tokenKey,
		strconv.FormatUint(uint64(userID), 10), constants.RedisTokenCacheTTL)
}

// Invalidate drops the cache entry so a logged-out token stops resolving
// immediately on every instance.
func (c *TokenCache) Invalidate(ctx context.Context, tokenKey string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, constants.RedisTokenCachePrefix+tokenKey)
}
