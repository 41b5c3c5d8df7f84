// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines HTTP-related constants such as error codes,
// headers, content types and security header values.
package constants

// Error codes are machine-readable labels logged next to each error response.
const (
	CodeBadRequest           = "bad_request"
	CodeUnauthorized         = "unauthorized"
	CodeForbidden            = "forbidden"
	CodeNotFound             = "not_found"
	CodeMethodNotAllowed     = "method_not_allowed"
	CodeConflict             = "conflict"
	CodeInternalError        = "internal_error"
	CodeValidationError      = "validation_error"
	CodeInvalidCredentials   = "invalid_credentials"
	CodeTokenExpired         = "token_expired"
	CodeTokenInvalid         = "token_invalid"
	CodeDatabaseError        = "database_error"
	CodeStorageError         = "storage_error"
	CodeTooManyRequests      = "too_many_requests"
	CodeUnsupportedMediaType = "unsupported_media_type"
)

// HTTP Headers define standard and custom HTTP header names used in the application.
const (
	HeaderContentType           = "Content-Type"
	HeaderCacheControl          = "Cache-Control"
	HeaderAuthorization         = "Authorization"
	HeaderXRequestID            = "X-Request-ID"
	HeaderXContentTypeOptions   = "X-Content-Type-Options"
	HeaderXFrameOptions         = "X-Frame-Options"
	HeaderXXSSProtection        = "X-XSS-Protection"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
	HeaderRetryAfter            = "Retry-After"
)

// Content Types define MIME types for HTTP content.
const (
	ContentTypeJSON          = "application/json"
	ContentTypeOctetStream   = "application/octet-stream"
	ContentTypeMultipartForm = "multipart/form-data"
)

// Security Header Values.
const (
	FrameOptionsDeny           = "DENY"
	XSSProtectionModeBlock     = "1; mode=block"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'self'; img-src 'self' data:"
	CacheControlNoStore        = "no-cache, no-store, must-revalidate"
)
