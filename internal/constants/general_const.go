// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines general-purpose constants related to routing
// and request parameters. These constants keep URL structure and query parameter
// naming consistent across the API.
package constants

// Base Routes define the root URL paths for different parts of the API.
const (
	// APIBasePath is the root path prefix for all API endpoints.
	APIBasePath = "/api"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"

	// VersionPath reports build and environment information.
	VersionPath = "/version"

	// MetricsPath exposes Prometheus metrics.
	MetricsPath = "/metrics"
)

// URL Parameters define path parameter names used in route definitions.
const (
	// ParamID is the URL parameter for numeric resource identifiers.
	ParamID = "id"

	// ParamSlug is the URL parameter for slug lookups.
	ParamSlug = "slug"
)

// Query Parameters define common query string parameter names.
const (
	// QueryParamLimit caps the number of rows returned by list endpoints.
	QueryParamLimit = "limit"

	// QueryParamDir selects the upload subdirectory.
	QueryParamDir = "dir"
)
