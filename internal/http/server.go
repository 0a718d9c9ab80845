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

	cardsHTTP "github.com/allisson/cards/internal/cards/http"
	"github.com/allisson/cards/internal/metrics"
	plansHTTP "github.com/allisson/cards/internal/plans/http"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	host   string
	port   int
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is assembled later via
// SetupRouter once the handlers exist.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		host:   host,
		port:   port,
		logger: logger,
	}
}

// RouterConfig carries the handlers and middleware the router needs.
type RouterConfig struct {
	CardHandler         *cardsHTTP.CardHandler
	VerificationHandler *cardsHTTP.VerificationHandler
	PlanHandler         *plansHTTP.PlanHandler

	// IdentityMiddleware resolves the caller identity on protected routes.
	IdentityMiddleware gin.HandlerFunc

	// RateLimitMiddleware guards the internal verification endpoint.
	// Nil disables rate limiting.
	RateLimitMiddleware gin.HandlerFunc

	// MeterProvider enables HTTP metrics collection when non-nil.
	MeterProvider    metric.MeterProvider
	MetricsNamespace string

	CORSEnabled      bool
	CORSAllowOrigins string
}

// SetupRouter assembles the gin router with middleware and all routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Internal verification is service-to-service and bypasses caller
	// identity; it only carries the rate limit guard.
	internal := v1.Group("/cards/internal")
	if cfg.RateLimitMiddleware != nil {
		internal.Use(cfg.RateLimitMiddleware)
	}
	internal.POST("/verify", cfg.VerificationHandler.InternalVerifyHandler)

	cards := v1.Group("/cards")
	cards.Use(cfg.IdentityMiddleware)
	cards.POST("", cfg.CardHandler.IssueHandler)
	cards.GET("", cfg.CardHandler.ListHandler)
	cards.GET("/:id", cfg.CardHandler.GetSensitiveDataHandler)
	cards.GET("/number/:id", cfg.CardHandler.GetCardNumberHandler)
	cards.GET("/cvv/:id", cfg.CardHandler.GetCardCVVHandler)
	cards.GET("/:id/verify/:cardNumber", cfg.VerificationHandler.ExternalVerifyHandler)
	cards.PUT("/:id", cfg.CardHandler.UpdateHandler)
	cards.PUT("/:id/block", cfg.CardHandler.BlockHandler)
	cards.PUT("/:id/unblock", cfg.CardHandler.UnblockHandler)
	cards.PUT("/deliver/:id", cfg.CardHandler.DeliverHandler)
	cards.POST("/user/activate", cfg.CardHandler.ActivateHandler)

	plans := v1.Group("/card-plans")
	plans.Use(cfg.IdentityMiddleware)
	plans.POST("", cfg.PlanHandler.CreateHandler)
	plans.GET("", cfg.PlanHandler.ListHandler)
	plans.GET("/:id", cfg.PlanHandler.GetHandler)
	plans.DELETE("/:id", cfg.PlanHandler.DeleteHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic.
// Readiness requires a reachable database.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}

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
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	components["database"] = "ok"
	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the configured router as an http.Handler, or nil if
// SetupRouter has not been called. Used by tests to mount the API on a
// test server.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start starts the HTTP server. SetupRouter must have been called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
