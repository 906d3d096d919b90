package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inf25dw2g02/MindPool/config"
	"github.com/inf25dw2g02/MindPool/internal/application"
	"github.com/inf25dw2g02/MindPool/internal/interfaces/http/handlers"
	"github.com/inf25dw2g02/MindPool/internal/interfaces/http/middleware"
	"github.com/inf25dw2g02/MindPool/pkg/logger"
)

// Router wraps the Gin engine with application dependencies.
type Router struct {
	engine *gin.Engine
	cfg    *config.Config
}

// RouterDeps contains dependencies needed by the router.
type RouterDeps struct {
	Services      *application.Services
	Logger        logger.Logger
	DBHealther    handlers.HealthChecker
	RedisHealther handlers.HealthChecker
}

// NewRouter creates and configures the HTTP router.
func NewRouter(cfg *config.Config, deps *RouterDeps) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	requestLogger := middleware.NewRequestLoggerMiddleware(deps.Logger)
	engine.Use(requestLogger.Handler())

	authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Services.Token, cfg, deps.Logger)
	ideaHandler := handlers.NewIdeaHandler(deps.Services.Idea)
	catalogHandler := handlers.NewCatalogHandler(deps.Services.Catalog)
	userHandler := handlers.NewUserHandler(deps.Services.Identity)
	healthHandler := handlers.NewHealthHandler(deps.DBHealther, deps.RedisHealther)

	authMiddleware := middleware.NewAuthMiddleware(deps.Services.Auth, deps.Services.Token, cfg.Session.CookieName)

	var rateLimiter *middleware.RateLimiter
	var authRateLimiter *middleware.AuthRateLimiter
	if cfg.Security.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.Security.RateLimitRPS, cfg.Security.RateLimitBurst)
		authRateLimiter = middleware.NewAuthRateLimiter()
	}

	// Health endpoints (no rate limiting)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/live", healthHandler.Live)

	if rateLimiter != nil {
		engine.Use(rateLimiter.Middleware())
	}

	engine.Use(corsMiddleware(cfg.Security.FrontendOrigin))

	// Login flow and session endpoints
	auth := engine.Group("/auth")
	if authRateLimiter != nil {
		auth.Use(authRateLimiter.Middleware())
	}
	{
		auth.GET("/github", authHandler.BeginLogin)
		auth.GET("/github/callback", authHandler.Callback)
		auth.GET("/logout", authHandler.Logout)

		// Issuing a token requires a live session; a bearer token cannot
		// mint further tokens.
		auth.GET("/token", authMiddleware.OptionalAuth(), authHandler.Token)
		auth.GET("/user", authMiddleware.OptionalAuth(), authHandler.User)
	}

	// Public reads
	engine.GET("/categories", catalogHandler.ListCategories)
	engine.GET("/statuses", catalogHandler.ListStatuses)
	engine.GET("/users", userHandler.List)
	engine.GET("/users/:id", userHandler.Get)

	// Everything below requires authentication
	protected := engine.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/ideas", ideaHandler.ListMine)
		protected.GET("/ideas/:id", ideaHandler.Get)
		protected.POST("/ideas", ideaHandler.Create)
		protected.PUT("/ideas/:id", ideaHandler.Update)
		protected.DELETE("/ideas/:id", ideaHandler.Delete)

		protected.POST("/categories", catalogHandler.CreateCategory)
		protected.PUT("/categories/:id", catalogHandler.UpdateCategory)
		protected.DELETE("/categories/:id", catalogHandler.DeleteCategory)

		protected.POST("/statuses", catalogHandler.CreateStatus)
		protected.PUT("/statuses/:id", catalogHandler.UpdateStatus)
		protected.DELETE("/statuses/:id", catalogHandler.DeleteStatus)

		protected.DELETE("/users/:id", userHandler.Delete)
	}

	return &Router{
		engine: engine,
		cfg:    cfg,
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// corsMiddleware allows the configured frontend origin with credentials.
// Credentials rule out a wildcard origin.
func corsMiddleware(frontendOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin == frontendOrigin {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Server wraps the HTTP server configuration.
type Server struct {
	router *Router
	cfg    *config.Config
}

// NewServer creates an HTTP server with the router.
func NewServer(cfg *config.Config, router *Router) *Server {
	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// ListenAddr returns the server listen address.
func (s *Server) ListenAddr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
}

// ReadTimeout returns the server read timeout.
func (s *Server) ReadTimeout() time.Duration {
	return s.cfg.Server.ReadTimeout
}

// WriteTimeout returns the server write timeout.
func (s *Server) WriteTimeout() time.Duration {
	return s.cfg.Server.WriteTimeout
}

// IdleTimeout returns the server idle timeout.
func (s *Server) IdleTimeout() time.Duration {
	return s.cfg.Server.IdleTimeout
}

// Handler returns the HTTP handler.
func (s *Server) Handler() *gin.Engine {
	return s.router.Engine()
}
