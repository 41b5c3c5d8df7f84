// Package auth provides password hashing, session tokens, session resolution
// and the HTTP middleware that guards authenticated routes.
package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// SessionContextKey is the context key for the resolved session.
const SessionContextKey ContextKey = constants.SessionContextKey

// SessionMiddleware resolves the request's session, if any, and stores it in
// the context. It never rejects a request.
func SessionMiddleware(resolver *SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := resolver.Resolve(r)
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireAuth rejects requests without a session with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSession(r) == nil {
			log.Info().
				Str(constants.RequestIDContextKey, middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Authentication required")
			utils.ErrorFromAppError(w, utils.NewUnauthorizedError(""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests without a session with 401 and requests
// whose role is not listed with 403.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSession(r)
			if !session.HasRole(roles...) {
				log.Warn().
					Int64(constants.UserIDContextKey, session.ID).
					Str(constants.RoleContextKey, session.Role).
					Strs("required", roles).
					Str("path", r.URL.Path).
					Msg("Access denied")
				utils.ErrorFromAppError(w, utils.NewForbiddenError(""))
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

// GetSession returns the session stored by SessionMiddleware, or nil.
func GetSession(r *http.Request) *Session {
	session, _ := r.Context().Value(SessionContextKey).(*Session)
	return session
}

// GetUserID extracts the user ID from the request context.
func GetUserID(r *http.Request) (int64, bool) {
	session := GetSession(r)
	if session == nil {
		return 0, false
	}
	return session.ID, true
}
