package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFillsRateLimitBuckets(t *testing.T) {
	cfg := Load()

	// Every bucket the middleware resolves must carry a positive limit,
	// otherwise the limiter rejects all traffic on that route class.
	assert.Greater(t, cfg.RateLimit.DefaultRequests, 0)
	assert.Greater(t, cfg.RateLimit.PublicRequests, 0)
	assert.Greater(t, cfg.RateLimit.AuthRequests, 0)
	assert.Greater(t, cfg.RateLimit.BookingRequests, 0)
	assert.Greater(t, cfg.RateLimit.BookingCriticalRequests, 0)
	assert.Greater(t, cfg.RateLimit.AdminRequests, 0)
	assert.Greater(t, cfg.RateLimit.AnalyticsRequests, 0)
	assert.Greater(t, cfg.RateLimit.UserRequests, 0)
	assert.Greater(t, cfg.RateLimit.HealthRequests, 0)
}

func TestRateLimitBucketsReadEnvironment(t *testing.T) {
	t.Setenv("RATE_LIMIT_BOOKING_CRITICAL_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_USER_REQUESTS", "25")
	t.Setenv("RATE_LIMIT_HEALTH_REQUESTS", "500")

	cfg := Load()
	assert.Equal(t, 5, cfg.RateLimit.BookingCriticalRequests)
	assert.Equal(t, 25, cfg.RateLimit.UserRequests)
	assert.Equal(t, 500, cfg.RateLimit.HealthRequests)
}
