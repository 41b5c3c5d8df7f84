package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/travelguide/internal/auth"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/models"
	"github.com/yasinhessnawi1/travelguide/internal/service"
	"github.com/yasinhessnawi1/travelguide/internal/upload"
)

// MockCatalogService implements CatalogServiceInterface with overridable funcs.
type MockCatalogService struct {
	FiltersFunc             func(res service.Resource, query url.Values) (map[string]interface{}, error)
	ListFunc                func(ctx context.Context, res service.Resource, filters map[string]interface{}, limit int) ([]database.Row, error)
	GetFunc                 func(ctx context.Context, res service.Resource, id int64) (database.Row, error)
	GetCountryBySlugFunc    func(ctx context.Context, slug string) (database.Row, error)
	GetCityWithChildrenFunc func(ctx context.Context, id int64) (database.Row, error)
	CreateFunc              func(ctx context.Context, res service.Resource, payload models.Payload) (database.Row, error)
	UpdateFunc              func(ctx context.Context, res service.Resource, id int64, apply func(models.Payload) error) (database.Row, error)
	DeleteFunc              func(ctx context.Context, res service.Resource, id int64) error
}

func (m *MockCatalogService) Filters(res service.Resource, query url.Values) (map[string]interface{}, error) {
	if m.FiltersFunc != nil {
		return m.FiltersFunc(res, query)
	}
	return map[string]interface{}{}, nil
}

func (m *MockCatalogService) List(ctx context.Context, res service.Resource, filters map[string]interface{}, limit int) ([]database.Row, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, res, filters, limit)
	}
	return []database.Row{}, nil
}

func (m *MockCatalogService) Get(ctx context.Context, res service.Resource, id int64) (database.Row, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, res, id)
	}
	return database.Row{"id": id}, nil
}

func (m *MockCatalogService) GetCountryBySlug(ctx context.Context, slug string) (database.Row, error) {
	if m.GetCountryBySlugFunc != nil {
		return m.GetCountryBySlugFunc(ctx, slug)
	}
	return database.Row{"slug": slug, "cities": []database.Row{}}, nil
}

func (m *MockCatalogService) GetCityWithChildren(ctx context.Context, id int64) (database.Row, error) {
	if m.GetCityWithChildrenFunc != nil {
		return m.GetCityWithChildrenFunc(ctx, id)
	}
	return database.Row{"id": id}, nil
}

func (m *MockCatalogService) Create(ctx context.Context, res service.Resource, payload models.Payload) (database.Row, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, res, payload)
	}
	row := database.Row(payload.Columns())
	row["id"] = int64(1)
	return row, nil
}

func (m *MockCatalogService) Update(ctx context.Context, res service.Resource, id int64, apply func(models.Payload) error) (database.Row, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, res, id, apply)
	}
	return database.Row{"id": id}, nil
}

func (m *MockCatalogService) Delete(ctx context.Context, res service.Resource, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, res, id)
	}
	return nil
}

// MockAuthService implements AuthServiceInterface.
type MockAuthService struct {
	RegisterUserFunc     func(ctx context.Context, reg *models.UserRegistration) (*models.User, string, error)
	AuthenticateUserFunc func(ctx context.Context, creds *models.UserCredentials) (*models.User, string, error)
}

func (m *MockAuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, string, error) {
	return m.RegisterUserFunc(ctx, reg)
}

func (m *MockAuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.User, string, error) {
	return m.AuthenticateUserFunc(ctx, creds)
}

// MockUserService implements UserServiceInterface.
type MockUserService struct {
	ListUsersFunc    func(ctx context.Context, limit int) ([]map[string]interface{}, error)
	GetUserByIDFunc  func(ctx context.Context, id int64) (map[string]interface{}, error)
	UpdateRoleFunc   func(ctx context.Context, id int64, role string) (map[string]interface{}, error)
	DeleteUserFunc   func(ctx context.Context, id int64) error
	UpdateAvatarFunc func(ctx context.Context, id int64, f upload.File) (map[string]interface{}, error)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit int) ([]map[string]interface{}, error) {
	return m.ListUsersFunc(ctx, limit)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id int64) (map[string]interface{}, error) {
	return m.GetUserByIDFunc(ctx, id)
}

func (m *MockUserService) UpdateRole(ctx context.Context, id int64, role string) (map[string]interface{}, error) {
	return m.UpdateRoleFunc(ctx, id, role)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	return m.DeleteUserFunc(ctx, id)
}

func (m *MockUserService) UpdateAvatar(ctx context.Context, id int64, f upload.File) (map[string]interface{}, error) {
	return m.UpdateAvatarFunc(ctx, id, f)
}

// withURLParams attaches chi URL parameters to r.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withSession attaches an authenticated session to r.
func withSession(r *http.Request, id int64, role string) *http.Request {
	return r.WithContext(auth.WithSession(r.Context(), &auth.Session{ID: id, Email: "user@example.com", Name: "User", Role: role}))
}
