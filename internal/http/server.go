// Package http provides the API server, its middleware, and the metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	grantsHTTP "github.com/allisson/grants/internal/grants/http"
	"github.com/allisson/grants/internal/metrics"
	paymentsHTTP "github.com/allisson/grants/internal/payments/http"
)

// Handlers groups the route handlers the API server exposes.
type Handlers struct {
	Webhook    *paymentsHTTP.WebhookHandler
	Redemption *grantsHTTP.RedemptionHandler
	Thanks     *grantsHTTP.ThanksHandler
	GrantAdmin *grantsHTTP.GrantAdminHandler
}

// RouterConfig holds the cross-cutting options applied when building the router.
type RouterConfig struct {
	CORSEnabled            bool
	CORSAllowOrigins       string
	AccessRateLimitEnabled bool
	AccessRateLimitRPS     float64
	AccessRateLimitBurst   int
	MeterProvider          metric.MeterProvider
	MetricsNamespace       string
}

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new API server bound to the given address.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin router with middleware and routes.
func (s *Server) SetupRouter(cfg RouterConfig, handlers Handlers) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.POST("/webhook", handlers.Webhook.Handle)
	v1.GET("/thanks", handlers.Thanks.Handle)
	v1.GET("/grants", handlers.GrantAdmin.ListHandler)
	v1.GET("/grants/:token", handlers.GrantAdmin.GetHandler)

	access := v1.Group("/access")
	if cfg.AccessRateLimitEnabled {
		access.Use(grantsHTTP.AccessRateLimitMiddleware(
			cfg.AccessRateLimitRPS,
			cfg.AccessRateLimitBurst,
			s.logger,
		))
	}
	access.GET("", handlers.Redemption.Handle)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking the
// database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
