package api

import (
	"database/sql"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/kko-site/backoffice/internal/api/handler"
	"github.com/kko-site/backoffice/internal/api/middleware"
	"github.com/kko-site/backoffice/internal/core/domain"
	"github.com/kko-site/backoffice/internal/core/ports"
)

// RouterConfig carries the collaborators the HTTP layer is wired with.
type RouterConfig struct {
	DB           *sql.DB
	Redis        *redis.Client // nil when redis is not configured
	AuthService  ports.AuthService
	VisitService ports.VisitService
	Gate         ports.AuthorizationGate
	VisitQueue   middleware.VisitEnqueuer
	StaticDir    string
	MediaDir     string
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.VisitLogger(cfg.VisitQueue))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	userHandler := handler.NewUserHandler(cfg.AuthService)
	visitHandler := handler.NewVisitHandler(cfg.VisitService)
	videoHandler := handler.NewVideoHandler(cfg.MediaDir)

	authenticated := middleware.Authenticate(cfg.Gate)
	adminOnly := middleware.RequireRole(cfg.Gate, domain.RoleAdmin)

	// --- API routes ---
	e.POST("/api/token", authHandler.Login)
	e.GET("/api/videos", videoHandler.List)

	users := e.Group("/api/users", authenticated)
	users.GET("/me", userHandler.Me)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("", userHandler.List, adminOnly)

	visits := e.Group("/api/visits", authenticated)
	visits.GET("", visitHandler.List)
	visits.GET("/top", visitHandler.TopPages)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Static SPA (dashboard build) ---
	if cfg.StaticDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:  cfg.StaticDir,
			HTML5: true, // unknown page paths fall back to index.html
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return strings.HasPrefix(p, "/api") || strings.HasPrefix(p, "/health") || p == "/metrics"
			},
		}))
	}

	return e
}
