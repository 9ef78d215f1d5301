package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mihrabhq/backend/internal/infrastructure/auth"
	"github.com/mihrabhq/backend/internal/interfaces/http/handler"
	"github.com/mihrabhq/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Place    *handler.PlaceHandler
	Category *handler.CategoryHandler
	Unit     *handler.UnitHandler
	Record   *handler.RecordHandler
	Report   *handler.ReportHandler
	User     *handler.UserHandler
	Activity *handler.ActivityHandler
	Health   *handler.HealthHandler
}

// Config carries the router's middleware dependencies.
type Config struct {
	JWTService    *auth.JWTService
	Blacklist     auth.TokenBlacklist
	Logger        *zap.Logger
	AllowOrigins  []string
	MaxBodyBytes  int64
	RateLimit     int
	RateLimitSpan time.Duration
}

// Setup mounts all routes on the engine. Everything under /api/v1 except
// login, refresh and health requires a valid access token.
func Setup(engine *gin.Engine, h Handlers, cfg Config) {
	middleware.SetupValidator()

	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Logger),
		middleware.Recovery(cfg.Logger),
		middleware.CORS(middleware.CORSConfig{AllowOrigins: cfg.AllowOrigins}),
		middleware.BodyLimit(cfg.MaxBodyBytes),
	)
	if cfg.RateLimit > 0 {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitSpan)))
	}

	api := engine.Group("/api/v1")

	api.GET("/health", h.Health.Health)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(cfg.JWTService, cfg.Blacklist, cfg.Logger))

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Me)

	places := authed.Group("/places")
	{
		places.GET("", h.Place.List)
		places.POST("", h.Place.Create)
		places.GET("/hierarchy", h.Place.Hierarchy)
		places.POST("/import", h.Place.Import)
		places.GET("/:id", h.Place.Get)
		places.PUT("/:id", h.Place.Update)
		places.DELETE("/:id", h.Place.Delete)
	}

	categories := authed.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	units := authed.Group("/units")
	{
		units.GET("", h.Unit.List)
		units.POST("", h.Unit.Create)
		units.GET("/:id", h.Unit.Get)
		units.PUT("/:id", h.Unit.Update)
		units.DELETE("/:id", h.Unit.Delete)
	}

	records := authed.Group("/records")
	{
		records.GET("", h.Record.List)
		records.POST("", h.Record.Create)
		records.GET("/:id", h.Record.Get)
		records.PUT("/:id", h.Record.Update)
		records.DELETE("/:id", h.Record.Delete)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("/records", h.Report.Records)
		reports.GET("/hierarchy", h.Report.Hierarchy)
		reports.GET("/profit", h.Report.Profit)
		reports.GET("/value", h.Report.Value)
	}

	users := authed.Group("/users")
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	authed.GET("/activity-logs", h.Activity.List)
}
