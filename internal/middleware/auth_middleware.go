package middleware

import (
	"net/http"

	"github.com/yasinhessnawi1/travelguide/internal/auth"
)

// Authorize guards a route. With no roles any authenticated session passes;
// otherwise the session's role must be one of roles.
func Authorize(roles ...string) func(http.Handler) http.Handler {
	if len(roles) == 0 {
		return auth.RequireAuth
	}
	return auth.RequireRole(roles...)
}
