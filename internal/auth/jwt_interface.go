package auth

// TokenVerifier turns a raw token into a session, or nil when it is not valid.
type TokenVerifier interface {
	Verify(token string) *Session
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(session Session) (string, error)
}

var (
	_ TokenVerifier = (*TokenService)(nil)
	_ TokenIssuer   = (*TokenService)(nil)
)
