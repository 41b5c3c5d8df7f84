// Package utils provides utility functions and helpers for common operations
// used throughout the application: error types, JSON responses, request
// decoding, logging and small string and map helpers.
package utils

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
)

// sensitiveKeys lists map keys whose values are never logged or returned.
var sensitiveKeys = map[string]bool{
	constants.ColumnPassword: true,
	"password_hash":          true,
	"token":                  true,
	"secret":                 true,
}

// TruncateString truncates a string to the given maximum length and adds ellipsis if necessary.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// MaskEmail masks the user part of an email address, showing only the first and last character.
//
// For example: "user@example.com" becomes "u**r@example.com"
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	user := parts[0]
	domain := parts[1]

	if len(user) <= 2 {
		return email
	}

	return string(user[0]) + strings.Repeat("*", len(user)-2) + string(user[len(user)-1]) + "@" + domain
}

// SanitizeKeys removes potentially sensitive fields from a map.
// Nested maps and slices of maps are sanitized recursively.
func SanitizeKeys(data map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(data))

	for k, v := range data {
		if sensitiveKeys[strings.ToLower(k)] {
			result[k] = constants.LogRedactedValue
			continue
		}

		switch nested := v.(type) {
		case map[string]interface{}:
			result[k] = SanitizeKeys(nested)
		case []map[string]interface{}:
			sanitized := make([]map[string]interface{}, len(nested))
			for i, m := range nested {
				sanitized[i] = SanitizeKeys(m)
			}
			result[k] = sanitized
		default:
			result[k] = v
		}
	}

	return result
}

// ContainsString checks if a slice of strings contains a specific string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}

// ParseIDParam reads a positive integer URL parameter.
func ParseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewValidationError(name, "Must be a positive integer")
	}
	return id, nil
}

// ParseLimit reads the limit query parameter and clamps it to [MinListLimit, DefaultListLimit].
// A missing or malformed value yields the default.
func ParseLimit(r *http.Request) int {
	raw := r.URL.Query().Get(constants.QueryParamLimit)
	if raw == "" {
		return constants.DefaultListLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return constants.DefaultListLimit
	}
	return ClampLimit(n)
}

// ClampLimit bounds n to [MinListLimit, DefaultListLimit].
func ClampLimit(n int) int {
	if n < constants.MinListLimit {
		return constants.MinListLimit
	}
	if n > constants.DefaultListLimit {
		return constants.DefaultListLimit
	}
	return n
}

// ToInt64 converts a scanned column value into an int64.
// It accepts the integer, float, string and []byte shapes drivers return.
func ToInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	case []byte:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}
