// Package utils provides utility functions and helpers for the application.
// This file implements the JSON response helpers shared by every handler.
//
// Successful responses carry the resource or collection itself. Error responses
// always carry an "error" string so clients can rely on a single shape:
//
//	{"error": "Validation failed", "code": "validation_error", "details": {"slug": "..."}}
package utils

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/constants"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string            `json:"error"`             // A human-readable error message
	Code    string            `json:"code,omitempty"`    // A machine-readable error code
	Details map[string]string `json:"details,omitempty"` // Per-field messages for validation errors
	DevInfo string            `json:"dev_info,omitempty"`
}

// MessageResponse is returned by operations that have no resource to show.
type MessageResponse struct {
	Message string `json:"message"`
}

var exposeDevInfo atomic.Bool

// SetExposeDevInfo controls whether AppError.DevInfo is written to clients.
// It is enabled outside production only.
func SetExposeDevInfo(enabled bool) {
	exposeDevInfo.Store(enabled)
}

// JSON sends the given data as a JSON response with the given status code.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - data: The resource, collection or message to encode
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	SendJSON(w, statusCode, data)
}

// Message sends {"message": msg} with a 200 status.
func Message(w http.ResponseWriter, msg string) {
	SendJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// Error sends an error response with the given status code and error information.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - code: A machine-readable error code
//   - message: A human-readable error message
//   - details: Additional details about the error (e.g., validation errors)
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	SendJSON(w, statusCode, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// ErrorFromAppError sends an error response based on an AppError.
// The underlying error is always logged; clients only see the sanitized message.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	errCode := errorCode(err.Err)

	event := log.Warn()
	if err.StatusCode >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err.Err).
		Int("status", err.StatusCode).
		Str("code", errCode).
		Str("dev_info", err.DevInfo).
		Msg(err.Message)

	// Create error details if field is present
	details := err.Details
	if details == nil && err.Field != "" {
		details = map[string]string{
			err.Field: err.Message,
		}
	}

	body := ErrorResponse{
		Error:   err.Message,
		Code:    errCode,
		Details: details,
	}
	if exposeDevInfo.Load() {
		body.DevInfo = err.DevInfo
	}
	SendJSON(w, err.StatusCode, body)
}

// HandleError converts any error into an HTTP error response.
func HandleError(w http.ResponseWriter, err error) {
	ErrorFromAppError(w, ParseError(err))
}

func errorCode(err error) string {
	switch err {
	case ErrNotFound:
		return constants.CodeNotFound
	case ErrBadRequest:
		return constants.CodeBadRequest
	case ErrUnauthorized:
		return constants.CodeUnauthorized
	case ErrForbidden:
		return constants.CodeForbidden
	case ErrValidation:
		return constants.CodeValidationError
	case ErrDuplicate:
		return constants.CodeConflict
	case ErrInvalidCredentials:
		return constants.CodeInvalidCredentials
	case ErrExpiredToken:
		return constants.CodeTokenExpired
	case ErrInvalidToken:
		return constants.CodeTokenInvalid
	case ErrConnection, ErrQuery:
		return constants.CodeDatabaseError
	case ErrDirectory, ErrWrite:
		return constants.CodeStorageError
	case ErrTooManyRequests:
		return constants.CodeTooManyRequests
	}
	return constants.CodeInternalError
}

// SendJSON is a helper function to send JSON data with proper headers.
// This handles JSON marshaling and error handling for all response types.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	// Marshal first so a failure can still produce a clean 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"error":"Failed to generate response","code":"internal_error"}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err = w.Write(jsonData); err != nil {
		// Log write errors but don't try to recover
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// BadRequest sends a 400 Bad Request response with the given message.
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Error(w, http.StatusBadRequest, constants.CodeBadRequest, message, details)
}

// Unauthorized sends a 401 Unauthorized response with the given message.
// An empty message falls back to the default.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	Error(w, http.StatusUnauthorized, constants.CodeUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response with the given message.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAccessDenied
	}
	Error(w, http.StatusForbidden, constants.CodeForbidden, message, nil)
}

// NotFound sends a 404 Not Found response with the given message.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, http.StatusNotFound, constants.CodeNotFound, message, nil)
}

// MethodNotAllowed sends a 405 Method Not Allowed response.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, constants.MsgMethodNotAllowed, nil)
}

// TooManyRequests sends a 429 response.
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, constants.CodeTooManyRequests, constants.MsgTooManyRequests, nil)
}

// InternalServerError sends a 500 Internal Server Error response.
// The error is logged but not exposed to the client.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, http.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, nil)
}
