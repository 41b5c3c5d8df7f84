// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// Changes to these values may significantly impact application behavior, capacity and security.
package constants

// Default Listing Values define the result caps used by list endpoints and CRUD helpers.
const (
	// DefaultListLimit is the row cap applied when a caller does not ask for one.
	// It is a capacity ceiling and must not be lifted.
	DefaultListLimit = 100

	// MinListLimit is the smallest accepted list limit.
	MinListLimit = 1
)

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBDriver is the database driver used when none is configured.
	DefaultDBDriver = DriverMySQL

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default number of idle connections kept open.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultAppName names the service in logs.
	DefaultAppName = "travelguide-api"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Request Size Limits.
const (
	// MaxRequestBodySize is the maximum size in bytes for JSON request bodies.
	MaxRequestBodySize = 1048576 // 1MB in bytes
)

// Default Password Hash Settings.
const (
	// DefaultPasswordHashCost is the bcrypt cost factor (2^10 rounds).
	DefaultPasswordHashCost = 10
)

// Upload defaults.
const (
	// DefaultUploadBaseDir is where uploaded files are written on disk.
	DefaultUploadBaseDir = "./public/uploads"

	// DefaultUploadPublicPrefix is the URL prefix stored in the database for uploaded files.
	DefaultUploadPublicPrefix = "/uploads"

	// DefaultUploadMaxSize is the upload ceiling in bytes (5 MB). A file of exactly this size is accepted.
	DefaultUploadMaxSize = 5 * 1024 * 1024

	// DefaultUploadField is the multipart field read when a route does not name one.
	DefaultUploadField = "file"

	// ImageUploadField is the multipart field used by image-bearing forms.
	ImageUploadField = "image"

	// MaxMultipartMemory bounds the in-memory part of multipart parsing.
	MaxMultipartMemory = 8 << 20
)

// Rate limit defaults.
const (
	// DefaultAuthRequestsPerMinute limits login and registration attempts per client.
	DefaultAuthRequestsPerMinute = 10

	// DefaultAuthBurst is the burst allowed on auth endpoints.
	DefaultAuthBurst = 5

	// DefaultAPIWritesPerMinute limits write requests per client IP.
	DefaultAPIWritesPerMinute = 120
)

// Token settings.
const (
	// DefaultJWTIssuer is the issuer claim value for JWT tokens.
	DefaultJWTIssuer = "travelguide-api"

	// BearerTokenPrefix is the prefix for Authorization header bearer tokens.
	BearerTokenPrefix = "Bearer "
)
