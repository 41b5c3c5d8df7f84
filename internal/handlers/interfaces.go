// Package handlers provides HTTP request handlers for the travel guide API.
package handlers

import (
	"context"
	"net/url"

	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/service"
	"github.com/yasinhessnawi1/travelguide/internal/upload"
)

// CatalogServiceInterface defines the methods required from the catalog service.
// Handlers depend on this interface so they can be tested without a database.
type CatalogServiceInterface interface {
	// Filters extracts the resource's allowed filters from query parameters.
	//
	// Returns:
	//   - Column to value map; unknown keys are dropped
	//   - A validation error if an id filter is not a positive integer
	Filters(res service.Resource, query url.Values) (map[string]interface{}, error)

	// List returns rows of a resource matching filters, at most limit of them.
	List(ctx context.Context, res service.Resource, filters map[string]interface{}, limit int) ([]database.Row, error)

	// Get returns a single row or a not found error.
	Get(ctx context.Context, res service.Resource, id int64) (database.Row, error)

	// GetCountryBySlug returns a country with its cities embedded under "cities".
	GetCountryBySlug(ctx context.Context, slug string) (database.Row, error)

	// GetCityWithChildren returns a city with its places, accommodations and transports.
	GetCityWithChildren(ctx context.Context, id int64) (database.Row, error)

	// Create validates and stores a new row.
	//
	// Returns:
	//   - The stored row including its generated id
	//   - A validation, missing parent (404) or duplicate (409) error
	Create(ctx context.Context, res service.Resource, payload models.Payload) (database.Row, error)

	// Update overlays the request body onto the stored row and writes it back.
	//
	// Parameters:
	//   - apply: decodes the request body onto the pre-filled payload
	Update(ctx context.Context, res service.Resource, id int64, apply func(models.Payload) error) (database.Row, error)

	// Delete removes a row; dependent rows are removed by the database.
	Delete(ctx context.Context, res service.Resource, id int64) error
}

// AuthServiceInterface defines the methods required from the authentication service.
type AuthServiceInterface interface {
	// RegisterUser creates an account with the user role.
	//
	// Returns:
	//   - The new user without password hash
	//   - A session token
	//   - A duplicate error if the email is taken
	RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, string, error)

	// AuthenticateUser checks credentials.
	//
	// Returns:
	//   - The user without password hash
	//   - A session token
	//   - An invalid credentials error for unknown email or wrong password
	AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.User, string, error)
}

// UserServiceInterface defines the methods required from the user service.
type UserServiceInterface interface {
	ListUsers(ctx context.Context, limit int) ([]map[string]interface{}, error)
	GetUserByID(ctx context.Context, id int64) (map[string]interface{}, error)
	UpdateRole(ctx context.Context, id int64, role string) (map[string]interface{}, error)
	DeleteUser(ctx context.Context, id int64) error
	UpdateAvatar(ctx context.Context, id int64, f upload.File) (map[string]interface{}, error)
}

// ImageUploader stores validated images.
type ImageUploader interface {
	Save(dir, prefix string, f upload.File) upload.Result
	MaxSize() int64
}

var (
	_ CatalogServiceInterface = (*service.CatalogService)(nil)
	_ AuthServiceInterface    = (*service.AuthService)(nil)
	_ UserServiceInterface    = (*service.UserService)(nil)
	_ ImageUploader           = (*upload.Uploader)(nil)
)
