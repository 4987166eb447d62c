package config

import "time"

// RateLimitConfig controls the Redis-backed fixed-window limiter applied to
// the authentication endpoints.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // allowed requests per window
	Window  time.Duration // window length
	Prefix  string        // key prefix in Redis
}

// LoadRateLimitConfig reads the limiter settings from the environment with
// sane defaults.
func LoadRateLimitConfig() RateLimitConfig {
	window, err := time.ParseDuration(envStr("RATE_LIMIT_WINDOW", "1m"))
	if err != nil || window <= 0 {
		window = time.Minute
	}
	// The limiter indexes windows in whole seconds.
	if window < time.Second {
		window = time.Second
	}
	limit := envInt("RATE_LIMIT_LIMIT", 30)
	if limit < 1 {
		limit = 1
	}
	return RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Limit:   limit,
		Window:  window,
		Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
	}
}
