package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiter(t *testing.T) {
	t.Run("Burst requests are allowed up front", func(t *testing.T) {
		limiter := NewLimiter(Rate{RequestsPerSecond: 1, Burst: 3})
		require.NotNil(t, limiter)

		assert.True(t, limiter.Allow())
		assert.True(t, limiter.Allow())
		assert.True(t, limiter.Allow())
		assert.False(t, limiter.Allow())
	})

	t.Run("Zero burst rejects everything", func(t *testing.T) {
		limiter := NewLimiter(Rate{RequestsPerSecond: 10, Burst: 0})

		assert.False(t, limiter.Allow())
	})
}

func TestLimiter_RetryAfter(t *testing.T) {
	limiter := NewLimiter(Rate{RequestsPerSecond: 1, Burst: 1})
	require.True(t, limiter.Allow())

	delay := limiter.RetryAfter()

	assert.Greater(t, delay, time.Duration(0))
	assert.LessOrEqual(t, delay, time.Second)
	// RetryAfter must not consume the token it reports on
	assert.InDelta(t, float64(delay), float64(limiter.RetryAfter()), float64(50*time.Millisecond))
}

func TestPerMinute(t *testing.T) {
	r := PerMinute(120, 5)

	assert.InDelta(t, 2.0, r.RequestsPerSecond, 0.0001)
	assert.Equal(t, 5, r.Burst)
}
