package server

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/auth"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/handlers"
	"github.com/yasinhessnawi1/travelguide/internal/middleware"
	"github.com/yasinhessnawi1/travelguide/internal/utils"
)

// Rate limiter categories for the auth endpoints.
const (
	rateCategoryLogin    = "login"
	rateCategoryRegister = "register"
)

// idRoute matches numeric identifiers only, leaving other segments to slug routes.
const idRoute = "/{" + constants.ParamID + ":[0-9]+}"

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
//   - health, version and metrics endpoints (unprotected)
//   - authentication (register, login, logout, me)
//   - user administration and avatar upload
//   - generic image upload
//   - catalog resources: countries, cities, places, accommodations,
//     transports and categories
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.Recovery())
	r.Use(s.Metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constants.HeaderXRequestID},
		ExposedHeaders:   []string{constants.HeaderXRequestID, constants.HeaderRetryAfter},
		AllowCredentials: s.Config.CORS.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(middleware.SecurityHeaders())
	r.Use(auth.SessionMiddleware(s.resolver))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	r.Get(constants.HealthPath, s.handleHealth)
	r.Get(constants.VersionPath, s.handleVersion)
	r.Handle(constants.MetricsPath, s.Metrics.Handler())

	if s.Config.Upload.ServeFiles {
		s.mountUploadFiles(r)
	}

	writeLimit := httprate.Limit(
		s.Config.RateLimit.APIWritesPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.ErrorFromAppError(w, utils.NewTooManyRequestsError())
		}),
	)

	r.Route(constants.APIBasePath, func(r chi.Router) {
		r.Get("/routes", s.GetAPIRoutes)

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(s.authLimits, rateCategoryRegister)).Post("/register", s.Handlers.AuthHandler.Register)
			r.With(middleware.RateLimit(s.authLimits, rateCategoryLogin)).Post("/login", s.Handlers.AuthHandler.Login)
			r.Post("/logout", s.Handlers.AuthHandler.Logout)
			r.Get("/me", s.Handlers.AuthHandler.Me)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.Authorize(), writeLimit).Put("/me/avatar", s.Handlers.UserHandler.UpdateAvatar)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authorize(constants.RoleAdmin))
				r.Get("/", s.Handlers.UserHandler.ListUsers)
				r.Get(idRoute, s.Handlers.UserHandler.GetUser)
				r.Put(idRoute+"/role", s.Handlers.UserHandler.UpdateRole)
				r.Delete(idRoute, s.Handlers.UserHandler.DeleteUser)
			})
		})

		r.With(middleware.Authorize(), writeLimit).Post("/upload", s.Handlers.UploadHandler.Upload)

		for _, h := range s.Handlers.Resources {
			s.mountResource(r, h, writeLimit)
		}
	})

	s.router = r
}

// mountResource registers the read and write routes of one catalog resource.
func (s *Server) mountResource(r chi.Router, h *handlers.ResourceHandler, writeLimit func(http.Handler) http.Handler) {
	res := h.Resource()

	r.Route("/"+res.Name, func(r chi.Router) {
		r.Get("/", h.List)

		switch res.Table {
		case database.TableCountries:
			r.Get("/{"+constants.ParamSlug+"}", h.CountryBySlug)
		case database.TableCities:
			r.Get(idRoute, h.CityWithChildren)
		default:
			r.Get(idRoute, h.Get)
		}

		r.Group(func(r chi.Router) {
			r.Use(writeLimit)
			r.With(middleware.Authorize(res.WriteRoles...)).Post("/", h.Create)
			r.With(middleware.Authorize(res.WriteRoles...)).Put(idRoute, h.Update)
			r.With(middleware.Authorize(res.DeleteRoles...)).Delete(idRoute, h.Delete)
		})
	})
}

// mountUploadFiles serves saved images under the public prefix. Directory
// listings are not exposed.
func (s *Server) mountUploadFiles(r chi.Router) {
	prefix := strings.TrimSuffix(s.Config.Upload.PublicPrefix, "/")
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(s.uploader.BaseDir())))

	r.Get(prefix+"/*", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			utils.NotFound(w, "File not found")
			return
		}
		files.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.HealthCheck(r.Context()); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			utils.Error(w, http.StatusServiceUnavailable, "service_unavailable", "Service is not healthy", nil)
			return
		}
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.Config.App.Version,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"name":        s.Config.App.Name,
		"version":     s.Config.App.Version,
		"environment": s.Config.App.Environment,
	})
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// RouteInfo describes one registered endpoint.
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// GetAPIRoutes lists every registered route, sorted by path and method.
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	var routes []RouteInfo
	err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, RouteInfo{Method: method, Path: strings.TrimSuffix(route, "/*")})
		return nil
	})
	if err != nil {
		utils.ErrorFromAppError(w, utils.NewInternalServerError(err))
		return
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"routes": routes,
		"count":  len(routes),
	})
}
