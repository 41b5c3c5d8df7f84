// Package server provides the HTTP server for the travel guide API.
// It wires configuration, storage, services and handlers together, builds
// the router and manages the server lifecycle including graceful shutdown
// and the database keep-alive.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/travelguide/internal/auth"
	"github.com/yasinhessnawi1/travelguide/internal/config"
	"github.com/yasinhessnawi1/travelguide/internal/constants"
	"github.com/yasinhessnawi1/travelguide/internal/database"
	"github.com/yasinhessnawi1/travelguide/internal/handlers"
	"github.com/yasinhessnawi1/travelguide/internal/metrics"
	"github.com/yasinhessnawi1/travelguide/internal/service"
	"github.com/yasinhessnawi1/travelguide/internal/upload"
	"github.com/yasinhessnawi1/travelguide/internal/utils/ratelimit"
	"github.com/yasinhessnawi1/travelguide/migrations"
	"github.com/yasinhessnawi1/travelguide/scripts"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// Resources holds one handler per catalog resource, in route order
	Resources []*handlers.ResourceHandler

	AuthHandler   *handlers.AuthHandler
	UserHandler   *handlers.UserHandler
	UploadHandler *handlers.UploadHandler
}

// Services groups the business services behind the handlers.
type Services struct {
	Catalog *service.CatalogService
	Auth    *service.AuthService
	Users   *service.UserService
}

// Server represents the API server.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db is the connection pool; nil when the server runs over another store
	Db *database.Pool

	Handlers *Handlers
	Services *Services
	Metrics  *metrics.Metrics

	store      database.Store
	health     HealthChecker
	resolver   *auth.SessionResolver
	uploader   *upload.Uploader
	authLimits *ratelimit.Store
	router     chi.Router
	httpServer *http.Server
}

// NewServer connects to the configured database, applies migrations and
// seeds, and returns a server ready to start.
func NewServer(ctx context.Context, cfg *config.AppConfig) (*Server, error) {
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := migrations.NewMigrator(pool).RunMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	exec := database.NewExecutor(pool)
	s, err := New(cfg, database.NewCRUD(exec), pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	s.Db = pool

	exec.SetObserver(s.Metrics.ObserveQuery)
	if err := s.Metrics.RegisterDBStats(pool.Stats); err != nil {
		log.Warn().Err(err).Msg("Failed to register database pool metrics")
	}

	if err := s.Seed(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// New builds a server over an existing store. health backs the /health
// endpoint and may be nil, in which case the service always reports healthy.
func New(cfg *config.AppConfig, store database.Store, health HealthChecker) (*Server, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("server requires a configuration and a store")
	}

	uploader, err := upload.NewUploader(&cfg.Upload)
	if err != nil {
		return nil, fmt.Errorf("failed to set up uploads: %w", err)
	}

	s := &Server{
		Config:   cfg,
		Metrics:  metrics.New(),
		store:    store,
		health:   health,
		uploader: uploader,
	}
	uploader.SetObserver(s.Metrics.ObserveUpload)

	tokens := auth.NewTokenService(&cfg.JWT)
	s.resolver = auth.NewSessionResolver(tokens)
	s.setupServices(tokens)
	s.setupHandlers()
	s.setupRateLimits()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupServices initializes all business services.
func (s *Server) setupServices(tokens *auth.TokenService) {
	hasher := auth.NewPasswordHasher(s.Config.PasswordHash.Cost)
	s.Services = &Services{
		Catalog: service.NewCatalogService(s.store, s.uploader),
		Auth:    service.NewAuthService(s.store, hasher, tokens),
		Users:   service.NewUserService(s.store, s.uploader),
	}
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() {
	h := &Handlers{
		AuthHandler:   handlers.NewAuthHandler(s.Services.Auth, s.Config.App.IsProduction()),
		UserHandler:   handlers.NewUserHandler(s.Services.Users, s.uploader.MaxSize()),
		UploadHandler: handlers.NewUploadHandler(s.uploader, s.Config.Upload.DefaultField),
	}
	for _, res := range service.Resources {
		h.Resources = append(h.Resources, handlers.NewResourceHandler(s.Services.Catalog, res))
	}
	s.Handlers = h
}

// setupRateLimits configures the per-client budgets of the auth endpoints.
func (s *Server) setupRateLimits() {
	rate := ratelimit.PerMinute(s.Config.RateLimit.AuthRequestsPerMinute, s.Config.RateLimit.AuthBurst)
	s.authLimits = ratelimit.NewStore(rate, constants.RateLimiterIdleTTL)
	s.authLimits.SetRate(rateCategoryLogin, rate)
	s.authLimits.SetRate(rateCategoryRegister, rate)
}

// Seed runs the idempotent data seeds, including the bootstrap administrator.
func (s *Server) Seed(ctx context.Context) error {
	if err := scripts.NewSeeder(s.store, s.Services.Auth, s.Config.Seed).SeedDatabase(ctx); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	return nil
}

// Start serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully. Background maintenance runs for the server's lifetime.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.startMaintenance(ctx)

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().
			Str("address", s.httpServer.Addr).
			Msg("Starting server")
		serverErrors <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// startMaintenance launches the background tasks bound to ctx: the idle
// connection keep-alive and the rate limiter cleanup.
func (s *Server) startMaintenance(ctx context.Context) {
	if s.Db != nil && s.Config.Database.KeepAlive > 0 {
		go s.Db.StartKeepAlive(ctx, s.Config.Database.KeepAlive)
	}
	go s.authLimits.Run(ctx, constants.RateLimiterCleanupInterval)
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests, and then closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info().Msg("Server stopped gracefully")

	if s.Db != nil {
		s.Db.Close()
		log.Info().Msg("Database connection closed")
	}
	return nil
}
