// Package middleware provides HTTP middleware components.
package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
	"github.com/yasinhessnawi1/travelguide/internal/utils/ratelimit"
)

// RateLimit is middleware that limits the rate of requests from clients.
// Each client IP gets its own token bucket in store for the given category.
func RateLimit(store *ratelimit.Store, category string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExemptedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := ClientIP(r)
			limiter := store.GetLimiter(clientIP, category)
			if !limiter.Allow() {
				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Str("category", category).
					Msg("Rate limit exceeded")

				w.Header().Set(constants.HeaderRetryAfter, retryAfterSeconds(limiter))
				utils.ErrorFromAppError(w, utils.NewTooManyRequestsError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds security-related HTTP headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(constants.HeaderXContentTypeOptions, constants.ContentTypeOptionsNoSniff)
			h.Set(constants.HeaderXFrameOptions, constants.FrameOptionsDeny)
			h.Set(constants.HeaderXXSSProtection, constants.XSSProtectionModeBlock)
			h.Set(constants.HeaderReferrerPolicy, constants.ReferrerPolicyStrictOrigin)
			h.Set(constants.HeaderContentSecurityPolicy, constants.CSPDefaultSrc)

			// Authenticated API responses must not be cached by intermediaries
			if strings.HasPrefix(r.URL.Path, constants.APIBasePath+"/auth") || strings.HasPrefix(r.URL.Path, constants.APIBasePath+"/users") {
				h.Set(constants.HeaderCacheControl, constants.CacheControlNoStore)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client IP address from the request,
// taking into account common proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Use the leftmost IP in the list (client IP)
		ip, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(ip)
	}

	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func retryAfterSeconds(l *ratelimit.Limiter) string {
	secs := int(math.Ceil(l.RetryAfter().Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// isExemptedPath returns true if the path should be exempted from rate limiting.
func isExemptedPath(path string) bool {
	exemptPrefixes := []string{
		constants.HealthPath,
		constants.VersionPath,
		constants.MetricsPath,
	}

	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
