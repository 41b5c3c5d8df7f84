package server

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/travelguide/internal/database"
)

// Lifecycle is the part of the server used by the process entry point and tests.
type Lifecycle interface {
	// SetupRoutes configures the HTTP routes for the server
	SetupRoutes()

	// GetRouter returns the configured router for request handling
	GetRouter() chi.Router

	// Start begins listening for HTTP requests and blocks until shutdown
	Start(ctx context.Context) error

	// Shutdown gracefully stops the server
	Shutdown(ctx context.Context) error
}

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

var (
	_ Lifecycle     = (*Server)(nil)
	_ HealthChecker = (*database.Pool)(nil)
)
