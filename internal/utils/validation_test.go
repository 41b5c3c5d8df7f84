package utils_test

import (
	"bytes"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

type testPayload struct {
	Name  string `json:"name" validate:"required,max=20"`
	Slug  string `json:"slug" validate:"required,slug"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		requestBody string
		errContains string
	}{
		{
			name:        "Valid JSON",
			contentType: "application/json",
			requestBody: `{"name":"Japan","slug":"japan"}`,
		},
		{
			name:        "Content type with charset",
			contentType: "application/json; charset=utf-8",
			requestBody: `{"name":"Japan","slug":"japan"}`,
		},
		{
			name:        "Wrong content type",
			contentType: "text/plain",
			requestBody: `{"name":"Japan","slug":"japan"}`,
			errContains: "Content-Type must be application/json",
		},
		{
			name:        "Missing content type",
			requestBody: `{"name":"Japan","slug":"japan"}`,
			errContains: "Content-Type must be application/json",
		},
		{
			name:        "Invalid JSON syntax",
			contentType: "application/json",
			requestBody: `{"name":Japan}`,
			errContains: "malformed JSON",
		},
		{
			name:        "Empty request body",
			contentType: "application/json",
			requestBody: "",
			errContains: "must not be empty",
		},
		{
			name:        "Unknown field",
			contentType: "application/json",
			requestBody: `{"name":"Japan","slug":"japan","capital_city":"Tokyo"}`,
			errContains: "unknown field",
		},
		{
			name:        "Two objects",
			contentType: "application/json",
			requestBody: `{"name":"Japan","slug":"japan"}{"name":"x"}`,
			errContains: "single JSON object",
		},
		{
			name:        "Body too large",
			contentType: "application/json",
			requestBody: `{"name":"` + strings.Repeat("a", 1<<20) + `"}`,
			errContains: "too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.requestBody != "" {
				body = bytes.NewBufferString(tt.requestBody)
			}
			req := httptest.NewRequest("POST", "/", body)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var payload testPayload
			err := utils.DecodeJSON(req, &payload)

			if tt.errContains == "" {
				require.NoError(t, err)
				assert.Equal(t, "Japan", payload.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, 400, utils.StatusCode(err))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	t.Run("Valid payload", func(t *testing.T) {
		assert.NoError(t, utils.ValidateStruct(&testPayload{Name: "Japan", Slug: "japan"}))
	})

	t.Run("Single error names the json field", func(t *testing.T) {
		err := utils.ValidateStruct(&testPayload{Name: "Japan", Slug: "Not A Slug"})

		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "slug", appErr.Field)
		assert.True(t, utils.IsValidationError(err))
	})

	t.Run("Multiple errors become details", func(t *testing.T) {
		err := utils.ValidateStruct(&testPayload{Email: "not-an-email"})

		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Len(t, appErr.Details, 3)
		assert.Equal(t, "This field is required", appErr.Details["name"])
		assert.Equal(t, "Must be a valid email address", appErr.Details["email"])
	})
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Japan"}`))
	req.Header.Set("Content-Type", "application/json")

	var payload testPayload
	err := utils.DecodeAndValidate(req, &payload)

	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"japan", "new-york", "district-9", "a"}
	invalid := []string{"", "New-York", "new--york", "-japan", "japan-", "new york", "tōkyō"}

	for _, s := range valid {
		assert.True(t, utils.IsValidSlug(s), s)
	}
	for _, s := range invalid {
		assert.False(t, utils.IsValidSlug(s), s)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, utils.ValidatePassword("short"))
	assert.Error(t, utils.ValidatePassword(strings.Repeat("x", 73)))
	assert.NoError(t, utils.ValidatePassword("correct horse"))
}
