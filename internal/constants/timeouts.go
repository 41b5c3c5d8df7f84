package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout  = 10 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
	DBConnMaxLifetime    = 1 * time.Hour
	DBConnMaxIdleTime    = 30 * time.Minute
	DBKeepAliveInterval  = 30 * time.Second
)

// Authentication Timeouts
const (
	// DefaultJWTExpiry is the session lifetime (7 days).
	DefaultJWTExpiry = 7 * 24 * time.Hour

	// AuthCookieMaxAge is the cookie lifetime in seconds, matching DefaultJWTExpiry.
	AuthCookieMaxAge = 604800

	// RateLimiterCleanupInterval is how often idle per-client limiters are dropped.
	RateLimiterCleanupInterval = 10 * time.Minute

	// RateLimiterIdleTTL is how long an unused per-client limiter is kept.
	RateLimiterIdleTTL = 30 * time.Minute
)
