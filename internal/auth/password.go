package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// PasswordHasher hashes and verifies credentials with bcrypt.
// Plaintext passwords are never logged or stored.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost.
// A cost outside bcrypt's range falls back to DefaultPasswordHashCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = constants.DefaultPasswordHashCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", utils.NewValidationError(constants.ColumnPassword, "Password is too long")
		}
		return "", utils.NewWithDevInfo(utils.ErrHash, 500, constants.MsgInternalServerError, err.Error())
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is a mismatch.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Cost returns the bcrypt cost in use.
func (h *PasswordHasher) Cost() int {
	return h.cost
}
