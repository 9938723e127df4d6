// Package http provides the HTTP server, its router and the shared middleware.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/portfolio-auth/internal/auth/http"
	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
	authzHTTP "github.com/allisson/portfolio-auth/internal/authz/http"
	authzUseCase "github.com/allisson/portfolio-auth/internal/authz/usecase"
	"github.com/allisson/portfolio-auth/internal/config"
	"github.com/allisson/portfolio-auth/internal/database"
	"github.com/allisson/portfolio-auth/internal/metrics"
)

const readinessTimeout = 2 * time.Second

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// RouterDependencies holds the handlers and use cases mounted by SetupRouter.
type RouterDependencies struct {
	AuthHandler          *authHTTP.AuthHandler
	AuditEventHandler    *authHTTP.AuditEventHandler
	AuthorizationHandler *authzHTTP.AuthorizationHandler
	TokenUseCase         authUseCase.TokenUseCase
	AuthorizationUseCase authzUseCase.AuthorizationUseCase
	MetricsProvider      *metrics.Provider
}

// NewServer creates a new HTTP server. db backs the readiness probe and may be nil.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// listen blocks serving server until it is shut down. A graceful shutdown is not an error.
func listen(server *http.Server, logger *slog.Logger, name string) error {
	logger.Info("starting "+name, slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return nil
}

// SetupRouter builds the gin router with all routes and middleware. ctx bounds the
// background cleanup of the rate limiters.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDependencies) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger, "/health", "/ready"))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticated := authHTTP.AuthenticationMiddleware(deps.TokenUseCase, s.logger)
	requirePermission := func(resource, action string) gin.HandlerFunc {
		return authzHTTP.AuthorizationMiddleware(deps.AuthorizationUseCase, resource, action, s.logger)
	}

	var rateLimited []gin.HandlerFunc
	if cfg.RateLimitAuthEnabled {
		rateLimited = append(rateLimited,
			authHTTP.IPRateLimitMiddleware(ctx, cfg.RateLimitAuthRequestsPerSec, cfg.RateLimitAuthBurst, s.logger))
	}
	limited := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		return slices.Concat(rateLimited, handlers)
	}

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		if cfg.MockAuthEnabled {
			auth.POST("/login", limited(deps.AuthHandler.LoginHandler)...)
		}
		if cfg.UpstreamSharedKey != "" {
			auth.POST("/federated", limited(
				authHTTP.UpstreamKeyMiddleware(cfg.UpstreamSharedKey, s.logger),
				deps.AuthHandler.FederatedLoginHandler,
			)...)
		}
		auth.POST("/validate", deps.AuthHandler.ValidateHandler)
		auth.POST("/refresh", limited(deps.AuthHandler.RefreshHandler)...)
		auth.GET("/me", authenticated, deps.AuthHandler.MeHandler)

		authz := v1.Group("/authz", authenticated)
		authz.POST("/decisions", deps.AuthorizationHandler.DecideHandler)
		authz.GET("/users/:username/access",
			requirePermission("user", "read"),
			deps.AuthorizationHandler.AccessHandler,
		)

		v1.GET("/audit-events",
			authenticated,
			requirePermission("audit", "read"),
			deps.AuditEventHandler.ListHandler,
		)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	return listen(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only while the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := database.Ping(ctx, s.db); err != nil {
		s.logger.WarnContext(ctx, "readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
