package auth

import (
	"net/http"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
)

// SetAuthCookie stores token in the HttpOnly, SameSite=Strict session cookie.
// secure adds the Secure flag and is set in production.
func SetAuthCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.AuthTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   constants.AuthCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearAuthCookie expires the session cookie.
func ClearAuthCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.AuthTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // written as Max-Age=0
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
