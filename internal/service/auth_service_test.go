package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yasinhessnawi1/travelguide/internal/auth"
	"github.com/yasinhessnawi1/travelguide/internal/config"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/database/dbtest"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

func newAuthService(t *testing.T) (*AuthService, *dbtest.MemoryStore, *auth.TokenService) {
	t.Helper()
	store := dbtest.NewMemoryStore()
	tokens := auth.NewTokenService(&config.JWTSettings{Secret: "test-secret", Expiry: time.Hour, Issuer: "test"})
	return NewAuthService(store, auth.NewPasswordHasher(bcrypt.MinCost), tokens), store, tokens
}

func TestAuthService_RegisterUser(t *testing.T) {
	svc, store, tokens := newAuthService(t)

	user, token, err := svc.RegisterUser(context.Background(), &models.UserRegistration{
		Name:     " Ada ",
		Email:    "Ada@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, constants.RoleUser, user.Role)
	assert.Empty(t, user.Password, "password hash is not returned")

	session := tokens.Verify(token)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.ID)
	assert.Equal(t, constants.RoleUser, session.Role)

	stored, err := store.GetByID(context.Background(), database.TableUsers, user.ID)
	require.NoError(t, err)
	hash, _ := stored["password"].(string)
	assert.NotEqual(t, "password123", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("password123")))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, store, _ := newAuthService(t)
	ctx := context.Background()
	reg := &models.UserRegistration{Name: "Ada", Email: "ada@example.com", Password: "password123"}

	_, _, err := svc.RegisterUser(ctx, reg)
	require.NoError(t, err)

	reg.Email = "ADA@example.com"
	_, _, err = svc.RegisterUser(ctx, reg)
	require.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))
	assert.Equal(t, http.StatusConflict, utils.StatusCode(err))
	assert.Equal(t, 1, store.Count(database.TableUsers))
}

func TestAuthService_AuthenticateUser(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()

	registered, _, err := svc.RegisterUser(ctx, &models.UserRegistration{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		creds   models.UserCredentials
		wantErr bool
	}{
		{"valid", models.UserCredentials{Email: "ada@example.com", Password: "password123"}, false},
		{"email case", models.UserCredentials{Email: "ADA@example.com", Password: "password123"}, false},
		{"wrong password", models.UserCredentials{Email: "ada@example.com", Password: "password124"}, true},
		{"unknown email", models.UserCredentials{Email: "bob@example.com", Password: "password123"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := svc.AuthenticateUser(ctx, &tt.creds)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
				assert.Equal(t, http.StatusUnauthorized, utils.StatusCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
			assert.Empty(t, user.Password)
			assert.NotNil(t, tokens.Verify(token))
		})
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	svc, store, _ := newAuthService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "", "admin@example.com", "adminpass1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpass1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, store.Count(database.TableUsers))

	user, _, err := svc.AuthenticateUser(ctx, &models.UserCredentials{Email: "admin@example.com", Password: "adminpass1"})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, user.Role)
	assert.Equal(t, "Administrator", user.Name)
}
