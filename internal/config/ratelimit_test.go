package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, 30, cfg.Limit)
}

func TestLoadRateLimitConfigCustomWindow(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "2m")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, 2*time.Minute, cfg.Window)
}

func TestLoadRateLimitConfigClampsSubSecondWindow(t *testing.T) {
	// The limiter derives its window index by whole-second division; a
	// sub-second window must never reach it.
	t.Setenv("RATE_LIMIT_WINDOW", "500ms")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, time.Second, cfg.Window)
}

func TestLoadRateLimitConfigInvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "soon")
	t.Setenv("RATE_LIMIT_LIMIT", "-5")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, 1, cfg.Limit)
}
