package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yasinhessnawi1/travelguide/internal/auth"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// AuthService handles registration and login
type AuthService struct {
	store  database.Store
	hasher *auth.PasswordHasher
	tokens auth.TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(store database.Store, hasher *auth.PasswordHasher, tokens auth.TokenIssuer) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// RegisterUser creates a user with the default role and returns it with a session token.
func (s *AuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, string, error) {
	email := normalizeEmail(reg.Email)

	existing, err := s.store.GetOne(ctx, database.TableUsers, map[string]interface{}{constants.ColumnEmail: email})
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		utils.LogAuth("register_failed", "0", email, false, "email taken")
		return nil, "", utils.NewDuplicateError("User", constants.ColumnEmail, email)
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return nil, "", err
	}

	row, err := s.store.Insert(ctx, database.TableUsers, map[string]interface{}{
		constants.ColumnName:     strings.TrimSpace(reg.Name),
		constants.ColumnEmail:    email,
		constants.ColumnPassword: hash,
		constants.ColumnRole:     constants.RoleUser,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	user := models.UserFromRow(row)
	user.Password = ""

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}

	utils.LogAuth("register_success", strconv.FormatInt(user.ID, 10), email, true, "")
	return user, token, nil
}

// AuthenticateUser verifies credentials and returns the user with a session token.
// Unknown emails and wrong passwords yield the same error.
func (s *AuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.User, string, error) {
	email := normalizeEmail(creds.Email)

	row, err := s.store.GetOne(ctx, database.TableUsers, map[string]interface{}{constants.ColumnEmail: email})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if row == nil {
		utils.LogAuth("login_failed", "0", email, false, "user not found")
		return nil, "", utils.NewInvalidCredentialsError()
	}

	user := models.UserFromRow(row)
	if !s.hasher.Verify(creds.Password, user.Password) {
		utils.LogAuth("login_failed", strconv.FormatInt(user.ID, 10), email, false, "invalid password")
		return nil, "", utils.NewInvalidCredentialsError()
	}
	user.Password = ""

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}

	utils.LogAuth("login_success", strconv.FormatInt(user.ID, 10), email, true, "")
	return user, token, nil
}

// EnsureAdmin creates an administrator account unless the email is taken.
// It reports whether a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = normalizeEmail(email)

	existing, err := s.store.GetOne(ctx, database.TableUsers, map[string]interface{}{constants.ColumnEmail: email})
	if err != nil {
		return false, fmt.Errorf("failed to check admin existence: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	if name == "" {
		name = "Administrator"
	}

	if _, err := s.store.Insert(ctx, database.TableUsers, map[string]interface{}{
		constants.ColumnName:     name,
		constants.ColumnEmail:    email,
		constants.ColumnPassword: hash,
		constants.ColumnRole:     constants.RoleAdmin,
	}); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}

func (s *AuthService) issue(user *models.User) (string, error) {
	token, err := s.tokens.Issue(auth.Session{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
