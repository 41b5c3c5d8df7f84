package utils_test

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

func TestNewValidationError(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		message string
		want    string
	}{
		{
			name:    "Basic validation error",
			field:   "slug",
			message: "Slug is required",
			want:    "slug: Slug is required",
		},
		{
			name:    "Empty field",
			field:   "",
			message: "General validation error",
			want:    "General validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := utils.NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.want, appErr.Error())
			assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
			assert.Equal(t, tt.field, appErr.Field)
			assert.ErrorIs(t, appErr, utils.ErrValidation)
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *utils.AppError
		status   int
		sentinel error
	}{
		{"Not found", utils.NewNotFoundError("Country", "japan"), http.StatusNotFound, utils.ErrNotFound},
		{"Unauthorized", utils.NewUnauthorizedError(""), http.StatusUnauthorized, utils.ErrUnauthorized},
		{"Forbidden", utils.NewForbiddenError(""), http.StatusForbidden, utils.ErrForbidden},
		{"Duplicate", utils.NewDuplicateError("User", "email", "a@b.c"), http.StatusConflict, utils.ErrDuplicate},
		{"Invalid credentials", utils.NewInvalidCredentialsError(), http.StatusUnauthorized, utils.ErrInvalidCredentials},
		{"Internal", utils.NewInternalServerError(errors.New("boom")), http.StatusInternalServerError, utils.ErrInternalServer},
		{"Directory", utils.NewStorageError(utils.ErrDirectory, errors.New("permission denied")), http.StatusInternalServerError, utils.ErrDirectory},
		{"Write", utils.NewStorageError(utils.ErrWrite, nil), http.StatusInternalServerError, utils.ErrWrite},
		{"Too many requests", utils.NewTooManyRequestsError(), http.StatusTooManyRequests, utils.ErrTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.NotEmpty(t, tt.err.Message)
		})
	}

	assert.Equal(t, "Country with identifier 'japan' not found", utils.NewNotFoundError("Country", "japan").Message)
	assert.Equal(t, "boom", utils.NewInternalServerError(errors.New("boom")).DevInfo)
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		sentinel  error
		wantField string
	}{
		{
			name:     "AppError passes through",
			err:      utils.NewForbiddenError("nope"),
			status:   http.StatusForbidden,
			sentinel: utils.ErrForbidden,
		},
		{
			name:      "MySQL duplicate entry",
			err:       &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'japan' for key 'countries.slug'"},
			status:    http.StatusConflict,
			sentinel:  utils.ErrDuplicate,
			wantField: "slug",
		},
		{
			name:     "MySQL missing parent",
			err:      &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"},
			status:   http.StatusBadRequest,
			sentinel: utils.ErrBadRequest,
		},
		{
			name:     "MySQL row still referenced",
			err:      &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"},
			status:   http.StatusConflict,
			sentinel: utils.ErrDuplicate,
		},
		{
			name:      "PostgreSQL unique violation wrapped",
			err:       fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "users_email_key"}),
			status:    http.StatusConflict,
			sentinel:  utils.ErrDuplicate,
			wantField: "email",
		},
		{
			name:     "PostgreSQL foreign key violation",
			err:      &pq.Error{Code: "23503"},
			status:   http.StatusBadRequest,
			sentinel: utils.ErrBadRequest,
		},
		{
			name:     "Connection sentinel",
			err:      fmt.Errorf("acquire: %w", utils.ErrConnection),
			status:   http.StatusInternalServerError,
			sentinel: utils.ErrConnection,
		},
		{
			name:     "Query sentinel",
			err:      fmt.Errorf("select: %w", utils.ErrQuery),
			status:   http.StatusInternalServerError,
			sentinel: utils.ErrQuery,
		},
		{
			name:     "Unknown error is sanitized",
			err:      sql.ErrConnDone,
			status:   http.StatusInternalServerError,
			sentinel: utils.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := utils.ParseError(tt.err)

			require.NotNil(t, appErr)
			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.ErrorIs(t, appErr, tt.sentinel)
			assert.Equal(t, tt.wantField, appErr.Field)
		})
	}

	t.Run("Nil error", func(t *testing.T) {
		assert.Nil(t, utils.ParseError(nil))
	})

	t.Run("Sanitized message hides driver text", func(t *testing.T) {
		appErr := utils.ParseError(errors.New("dial tcp 10.0.0.5:3306: connection refused"))
		assert.NotContains(t, appErr.Message, "10.0.0.5")
	})
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, utils.IsNotFoundError(utils.NewNotFoundError("City", 1)))
	assert.True(t, utils.IsNotFoundError(utils.ErrNotFound))
	assert.False(t, utils.IsNotFoundError(errors.New("other")))

	assert.True(t, utils.IsDuplicateError(utils.NewDuplicateError("User", "email", "x")))
	assert.True(t, utils.IsValidationError(utils.NewValidationError("name", "required")))
	assert.False(t, utils.IsValidationError(utils.NewBadRequestError("bad")))

	assert.Equal(t, http.StatusConflict, utils.StatusCode(utils.NewDuplicateError("User", "email", "x")))
	assert.Equal(t, http.StatusInternalServerError, utils.StatusCode(errors.New("plain")))
}
