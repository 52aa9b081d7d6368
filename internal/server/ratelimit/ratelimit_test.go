package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_AllowsUpToBurst(t *testing.T) {
	bucket := newTokenBucket(3, 0.001)

	assert.True(t, bucket.allow())
	assert.True(t, bucket.allow())
	assert.True(t, bucket.allow())
	assert.False(t, bucket.allow(), "Fourth request exceeds burst capacity")
}

func TestTokenBucket_Refills(t *testing.T) {
	// 100 tokens/second so the bucket refills within the test.
	bucket := newTokenBucket(1, 100)
	require.True(t, bucket.allow())
	require.False(t, bucket.allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, bucket.allow(), "Tokens refill over time")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/map", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_EnforcesBurst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/map", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/map", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/map", "POST")
	assert.True(t, allowed)
	allowed, info := limiter.Allow("1.2.3.4", "/map", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_BucketsArePerClient(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/map", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
		},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/map", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/map", "POST")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("5.6.7.8", "/map", "POST")
	assert.True(t, allowed, "A second client has its own bucket")
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:   true,
		Whitelist: map[string]bool{"10.0.0.1": true},
		EndpointConfigs: []EndpointConfig{
			{Path: "/map", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/map", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:   true,
		Blacklist: map[string]bool{"6.6.6.6": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("6.6.6.6", "/health", "GET")
	assert.False(t, allowed)
}

func TestMatchEndpoint_HealthIsUnlimited(t *testing.T) {
	cfg := MatchEndpoint("/health", "GET", DefaultEndpointConfigs())
	require.NotNil(t, cfg)
	assert.Equal(t, 0, cfg.Limit)
}

func TestMatchEndpoint_ExactMatch(t *testing.T) {
	cfg := MatchEndpoint("/analyze-career", "POST", DefaultEndpointConfigs())
	require.NotNil(t, cfg)
	assert.Equal(t, 30, cfg.Limit)
	assert.Equal(t, time.Hour, cfg.Window)
}

func TestMatchEndpoint_MethodMismatch(t *testing.T) {
	cfg := MatchEndpoint("/analyze-career", "GET", DefaultEndpointConfigs())
	assert.Nil(t, cfg)
}

func TestMatchEndpoint_PrefixMatch(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/courses/", Method: "GET", Limit: 100, Window: time.Minute},
	}
	cfg := MatchEndpoint("/courses/CS101", "GET", configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 100, cfg.Limit)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}
