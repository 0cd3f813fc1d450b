package constants

import "time"

// Redis keys for the bearer-token cache.
const (
	// RedisTokenCachePrefix prefixes token-key -> user-id cache entries.
	RedisTokenCachePrefix = "authtoken:"

	// RedisTokenCacheTTL bounds staleness of cached token lookups. The
	// database row stays authoritative; logout deletes both.
	RedisTokenCacheTTL = 15 * time.Minute
)

// Redis Pub/Sub channels.
const (
	// RedisPubSubLocationEvents carries newly created check-ins so every
	// instance can feed its own WebSocket clients.
	RedisPubSubLocationEvents = "location.events"
)
