// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines user-facing messages and database error codes.
// Messages are safe to return to clients and never reveal implementation details.
package constants

// User-Facing Error Messages.
const (
	MsgAuthRequired          = "Authentication required"
	MsgInvalidCredentials    = "Invalid email or password"
	MsgAccessDenied          = "You don't have permission to access this resource"
	MsgInternalServerError   = "An internal server error occurred"
	MsgTokenExpired          = "Authentication token has expired"
	MsgInvalidToken          = "Invalid token"
	MsgRequestBodyTooLarge   = "Request body too large"
	MsgEmptyRequestBody      = "Request body must not be empty"
	MsgMalformedJSON         = "Request body contains malformed JSON"
	MsgContentTypeJSON       = "Content-Type must be application/json"
	MsgResourceNotFound      = "The requested resource could not be found"
	MsgResourceAlreadyExists = "A resource with the same unique identifier already exists"
	MsgParentNotFound        = "The referenced parent resource does not exist"
	MsgResourceInUse         = "The resource is still referenced by other records"
	MsgMethodNotAllowed      = "This method is not allowed for this resource"
	MsgDatabaseUnavailable   = "The database is currently unavailable"
	MsgStorageFailure        = "The file could not be stored"
	MsgLogoutSuccess         = "Successfully logged out"
	MsgDeleted               = "Successfully deleted"
	MsgTooManyRequests       = "Too many requests, please try again later"
	MsgNoFieldsToUpdate      = "No fields provided to update"
)

// Database driver error codes.
const (
	MySQLErrDuplicateEntry     = 1062
	MySQLErrRowIsReferenced    = 1451
	MySQLErrNoReferencedRow    = 1452
	MySQLErrBadNull            = 1048
	PGErrorDuplicateConstraint = "23505"
	PGErrorForeignKeyConstraint = "23503"
	PGErrorNotNullConstraint   = "23502"
)

// Log values.
const (
	LogRedactedValue = "[REDACTED]"
)
