package config

import "time"

// CacheConfig controls the Redis-backed response cache for read-only admin
// endpoints such as the room overview.  Caching is disabled when Enabled is
// false or no Redis client is available.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads the cache settings from the environment with sane
// defaults.
func LoadCacheConfig() CacheConfig {
	ttl, err := time.ParseDuration(envStr("CACHE_TTL", "30s"))
	if err != nil || ttl <= 0 {
		ttl = 30 * time.Second
	}
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     ttl,
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}
