package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yasinhessnawi1/travelguide/internal/config"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// JWT errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
)

// CustomClaims represents the claims in a session token. The subject holds the user id.
type CustomClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewTokenService creates a token service from the JWT settings.
// Rotating the secret invalidates every outstanding token.
func NewTokenService(cfg *config.JWTSettings) *TokenService {
	expiry := cfg.Expiry
	if expiry == 0 {
		expiry = constants.DefaultJWTExpiry
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = constants.DefaultJWTIssuer
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Expiry returns how long issued tokens stay valid.
func (s *TokenService) Expiry() time.Duration {
	return s.expiry
}

// Issue creates a signed token carrying the session's identity and role.
func (s *TokenService) Issue(session Session) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Email: session.Email,
		Name:  session.Name,
		Role:  session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(session.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", utils.NewInternalServerError(err)
	}
	return signed, nil
}

// ValidateToken checks signature, expiry and issuer and returns the claims.
// Failures are AppErrors: expired tokens and every other rejection are told apart.
func (s *TokenService) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSigningMethod
		}
		return s.secret, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, utils.NewInvalidTokenError()
	}
	if _, err := strconv.ParseInt(claims.Subject, 10, 64); err != nil {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}

// Verify returns the session a token stands for, or nil when the token is
// invalid, tampered with, expired or malformed. Timing claims are dropped.
func (s *TokenService) Verify(tokenString string) *Session {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil
	}

	id, _ := strconv.ParseInt(claims.Subject, 10, 64)
	return &Session{
		ID:    id,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}
}
