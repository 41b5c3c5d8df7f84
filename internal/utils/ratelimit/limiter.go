// Package ratelimit provides per-client rate limiting for the authentication endpoints.
// Each client gets a token bucket from golang.org/x/time/rate.
package ratelimit

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is the token bucket for one client identity.
type Limiter struct {
	bucket *rate.Limiter

	// lastSeen holds the unix nano time of the last Allow call
	lastSeen atomic.Int64
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// PerMinute builds a Rate from a requests-per-minute figure.
func PerMinute(requests int, burst int) Rate {
	return Rate{RequestsPerSecond: float64(requests) / 60, Burst: burst}
}

// NewLimiter creates a new rate limiter with the specified rate and burst capacity.
func NewLimiter(r Rate) *Limiter {
	l := &Limiter{bucket: rate.NewLimiter(rate.Limit(r.RequestsPerSecond), r.Burst)}
	l.lastSeen.Store(time.Now().UnixNano())
	return l
}

// Allow reports whether one more request may proceed now.
func (l *Limiter) Allow() bool {
	l.lastSeen.Store(time.Now().UnixNano())
	return l.bucket.Allow()
}

// RetryAfter estimates how long the client should wait for the next token.
func (l *Limiter) RetryAfter() time.Duration {
	r := l.bucket.Reserve()
	delay := r.Delay()
	r.Cancel()
	return delay
}

func (l *Limiter) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, l.lastSeen.Load()))
}
