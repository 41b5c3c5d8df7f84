package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/travelguide/internal/auth"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
)

// MockVerifier implements the TokenVerifier interface for testing
type MockVerifier struct {
	Sessions map[string]*auth.Session
	Seen     []string
}

func (m *MockVerifier) Verify(token string) *auth.Session {
	m.Seen = append(m.Seen, token)
	return m.Sessions[token]
}

func newMockVerifier() *MockVerifier {
	return &MockVerifier{Sessions: map[string]*auth.Session{
		"user-token":  {ID: 1, Email: "user@example.com", Name: "User", Role: constants.RoleUser},
		"admin-token": {ID: 2, Email: "admin@example.com", Name: "Admin", Role: constants.RoleAdmin},
	}}
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestSessionResolver_CookieFirst(t *testing.T) {
	verifier := newMockVerifier()
	resolver := auth.NewSessionResolver(verifier)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: constants.AuthTokenCookie, Value: "admin-token"})
	r.Header.Set(constants.HeaderAuthorization, "Bearer user-token")

	session := resolver.Resolve(r)
	require.NotNil(t, session)
	assert.Equal(t, int64(2), session.ID)
	assert.Equal(t, []string{"admin-token"}, verifier.Seen)
}

func TestSessionResolver_BearerFallback(t *testing.T) {
	resolver := auth.NewSessionResolver(newMockVerifier())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(constants.HeaderAuthorization, "Bearer user-token")

	session := resolver.Resolve(r)
	require.NotNil(t, session)
	assert.Equal(t, constants.RoleUser, session.Role)
}

func TestSessionResolver_NoToken(t *testing.T) {
	verifier := newMockVerifier()
	resolver := auth.NewSessionResolver(verifier)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(constants.HeaderAuthorization, "Basic dXNlcjpwYXNz")

	assert.Nil(t, resolver.Resolve(r))
	assert.Empty(t, verifier.Seen)
	assert.False(t, resolver.HasRole(r, constants.RoleUser, constants.RoleAdmin))
}

func TestSessionResolver_HasRole(t *testing.T) {
	resolver := auth.NewSessionResolver(newMockVerifier())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: constants.AuthTokenCookie, Value: "user-token"})

	assert.True(t, resolver.HasRole(r, constants.RoleUser))
	assert.True(t, resolver.HasRole(r, constants.RoleAdmin, constants.RoleUser))
	assert.False(t, resolver.HasRole(r, constants.RoleAdmin))
}

func TestSessionResolver_WithRealTokens(t *testing.T) {
	service := newTokenService(time.Hour)
	resolver := auth.NewSessionResolver(service)

	token, err := service.Issue(testSession())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(constants.HeaderAuthorization, "Bearer "+token)

	assert.True(t, resolver.HasRole(r, constants.RoleAdmin))
}

func TestRequireAuth(t *testing.T) {
	resolver := auth.NewSessionResolver(newMockVerifier())
	handler := auth.SessionMiddleware(resolver)(auth.RequireAuth(http.HandlerFunc(okHandler)))

	tests := []struct {
		name   string
		cookie string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"unknown token", "bogus", http.StatusUnauthorized},
		{"valid token", "user-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: constants.AuthTokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	resolver := auth.NewSessionResolver(newMockVerifier())
	handler := auth.SessionMiddleware(resolver)(auth.RequireRole(constants.RoleAdmin)(http.HandlerFunc(okHandler)))

	tests := []struct {
		name   string
		cookie string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"user", "user-token", http.StatusForbidden},
		{"admin", "admin-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodDelete, "/api/countries/1", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: constants.AuthTokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
			if tt.want != http.StatusOK {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestSessionMiddleware_StoresSession(t *testing.T) {
	resolver := auth.NewSessionResolver(newMockVerifier())

	var gotID int64
	var gotOK bool
	handler := auth.SessionMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = auth.GetUserID(r)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(constants.HeaderAuthorization, "Bearer admin-token")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, gotOK)
	assert.Equal(t, int64(2), gotID)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, auth.GetSession(r))
	id, ok := auth.GetUserID(r)
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestAuthCookies(t *testing.T) {
	w := httptest.NewRecorder()
	auth.SetAuthCookie(w, "token-value", true)

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, constants.AuthTokenCookie+"=token-value")
	assert.Contains(t, header, "Max-Age=604800")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=Strict")
	assert.Contains(t, header, "Path=/")

	w = httptest.NewRecorder()
	auth.ClearAuthCookie(w, false)

	header = w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "Max-Age=0")
	assert.True(t, strings.HasPrefix(header, constants.AuthTokenCookie+"="))
	assert.NotContains(t, header, "Secure")
}
