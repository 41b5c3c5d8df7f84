package auth

import (
	"net/http"
	"strings"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
)

// Session is the identity carried by a verified token. It is never stored.
type Session struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// HasRole reports whether the session's role is one of roles.
func (s *Session) HasRole(roles ...string) bool {
	if s == nil {
		return false
	}
	for _, role := range roles {
		if s.Role == role {
			return true
		}
	}
	return false
}

// SessionResolver extracts a token from a request and resolves it to a session.
type SessionResolver struct {
	verifier TokenVerifier
}

// NewSessionResolver creates a resolver backed by verifier.
func NewSessionResolver(verifier TokenVerifier) *SessionResolver {
	return &SessionResolver{verifier: verifier}
}

// Resolve returns the request's session, or nil when there is none. The
// auth cookie is consulted first; the Authorization bearer header serves
// programmatic clients.
func (sr *SessionResolver) Resolve(r *http.Request) *Session {
	token := TokenFromRequest(r)
	if token == "" {
		return nil
	}
	return sr.verifier.Verify(token)
}

// HasRole resolves the request's session and checks its role.
// An unauthenticated request has no role.
func (sr *SessionResolver) HasRole(r *http.Request, roles ...string) bool {
	return sr.Resolve(r).HasRole(roles...)
}

// TokenFromRequest returns the raw token from the auth cookie or the bearer header.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(constants.AuthTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get(constants.HeaderAuthorization)
	if strings.HasPrefix(header, constants.BearerTokenPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, constants.BearerTokenPrefix))
	}
	return ""
}
