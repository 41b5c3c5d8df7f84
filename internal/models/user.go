package models

import (
	"time"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
)

// User represents a registered account. The password hash is never serialized.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      string    `json:"role" db:"role"`
	Avatar    string    `json:"avatar,omitempty" db:"avatar"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return "users"
}

// UserFromRow builds a User from a stored row, including the password hash.
func UserFromRow(row map[string]interface{}) *User {
	if row == nil {
		return nil
	}
	u := &User{
		ID:       int64Value(row[constants.ColumnID]),
		Name:     stringValue(row[constants.ColumnName]),
		Email:    stringValue(row[constants.ColumnEmail]),
		Password: stringValue(row[constants.ColumnPassword]),
		Role:     stringValue(row[constants.ColumnRole]),
		Avatar:   stringValue(row[constants.ColumnAvatar]),
	}
	if t, ok := row[constants.ColumnCreatedAt].(time.Time); ok {
		u.CreatedAt = t
	}
	if t, ok := row[constants.ColumnUpdatedAt].(time.Time); ok {
		u.UpdatedAt = t
	}
	return u
}

// SanitizeUserRow returns a copy of row without the password column.
func SanitizeUserRow(row map[string]interface{}) map[string]interface{} {
	if row == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(row))
	for k, v := range row {
		if k == constants.ColumnPassword {
			continue
		}
		sanitized[k] = v
	}
	return sanitized
}

// UserRegistration represents the data required for user registration.
type UserRegistration struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserCredentials represents the login credentials provided by a user.
type UserCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RoleUpdate changes a user's role.
type RoleUpdate struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

// AuthResponse is returned by login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
