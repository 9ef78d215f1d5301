package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/mihrabhq/backend/internal/application/audit"
	identityapp "github.com/mihrabhq/backend/internal/application/identity"
	ledgerapp "github.com/mihrabhq/backend/internal/application/ledger"
	orgapp "github.com/mihrabhq/backend/internal/application/org"
	reportapp "github.com/mihrabhq/backend/internal/application/report"
	auditinfra "github.com/mihrabhq/backend/internal/infrastructure/audit"
	"github.com/mihrabhq/backend/internal/infrastructure/auth"
	"github.com/mihrabhq/backend/internal/infrastructure/config"
	"github.com/mihrabhq/backend/internal/infrastructure/logger"
	"github.com/mihrabhq/backend/internal/infrastructure/persistence"
	"github.com/mihrabhq/backend/internal/interfaces/http/handler"
	"github.com/mihrabhq/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Mihrab Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis-backed token blacklist
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := blacklist.Close(); err != nil {
			log.Error("Error closing Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	placeRepo := persistence.NewGormPlaceRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	activityLogRepo := persistence.NewGormActivityLogRepository(db.DB)

	// Audit trail writer. Entries are persisted off the request path and
	// dropped with a warning if the buffer fills up.
	auditor := auditinfra.NewAsyncRecorder(activityLogRepo, cfg.Audit, log)
	defer auditor.Close()

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, auditor, log)
	userService := identityapp.NewUserService(userRepo, placeRepo, auditor)
	placeService := orgapp.NewPlaceService(placeRepo, auditor)
	placeImportService := orgapp.NewPlaceImportService(placeRepo, auditor)
	categoryService := ledgerapp.NewCategoryService(categoryRepo, unitRepo, auditor)
	unitService := ledgerapp.NewUnitService(unitRepo, auditor)
	recordService := ledgerapp.NewRecordService(recordRepo, categoryRepo, placeRepo, auditor)
	reportService := reportapp.NewReportService(placeRepo, recordRepo)
	activityService := auditapp.NewActivityService(activityLogRepo)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
		}
	}

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Place:    handler.NewPlaceHandler(placeService, placeImportService),
		Category: handler.NewCategoryHandler(categoryService),
		Unit:     handler.NewUnitHandler(unitService),
		Record:   handler.NewRecordHandler(recordService),
		Report:   handler.NewReportHandler(reportService),
		User:     handler.NewUserHandler(userService),
		Activity: handler.NewActivityHandler(activityService),
		Health:   handler.NewHealthHandler(db),
	}

	routerCfg := router.Config{
		JWTService:    jwtService,
		Blacklist:     blacklist,
		Logger:        log,
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		MaxBodyBytes:  cfg.HTTP.MaxBodySize,
		RateLimitSpan: cfg.HTTP.RateLimitWindow,
	}
	if cfg.HTTP.RateLimitEnabled {
		routerCfg.RateLimit = cfg.HTTP.RateLimitRequests
	}
	router.Setup(engine, handlers, routerCfg)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
