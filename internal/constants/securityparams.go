package constants

// Context Key Names
const (
	UserIDContextKey    = "user_id"
	EmailContextKey     = "email"
	NameContextKey      = "name"
	RoleContextKey      = "role"
	SessionContextKey   = "session"
	RequestIDContextKey = "request_id"
)

// User roles
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Content status values
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Credential Validation
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores input past 72 bytes
	MaxNameLength     = 100
	MaxEmailLength    = 255
)

// Cookie Names
const (
	AuthTokenCookie = "auth_token"
)
