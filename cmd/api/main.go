package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tutorhive/tutorhive-api/api/swagger"
	"github.com/tutorhive/tutorhive-api/internal/handler"
	"github.com/tutorhive/tutorhive-api/internal/middleware"
	"github.com/tutorhive/tutorhive-api/internal/models"
	"github.com/tutorhive/tutorhive-api/internal/repository"
	"github.com/tutorhive/tutorhive-api/internal/service"
	"github.com/tutorhive/tutorhive-api/pkg/cache"
	"github.com/tutorhive/tutorhive-api/pkg/config"
	"github.com/tutorhive/tutorhive-api/pkg/database"
	"github.com/tutorhive/tutorhive-api/pkg/jobs"
	"github.com/tutorhive/tutorhive-api/pkg/logger"
	corsmiddleware "github.com/tutorhive/tutorhive-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tutorhive/tutorhive-api/pkg/middleware/requestid"
	"github.com/tutorhive/tutorhive-api/pkg/storage"
)

// @title TutorHive API
// @version 0.1.0
// @description Tutoring marketplace backend: teacher profiles and lesson bookings
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, profile cache disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	receiptStore, err := storage.NewLocalStorage(cfg.Receipts.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare receipt storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Receipts.SignedURLSecret, cfg.Receipts.SignedURLTTL)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Profiles.CacheTTL, logr, cfg.Profiles.CacheEnabled && redisClient != nil)

	notificationSvc := service.NewNotificationService(jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	}, logr)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	profileSvc := service.NewProfileService(profileRepo, userRepo, cacheSvc, cfg.Profiles.CacheTTL, validate, logr)
	bookingSvc := service.NewBookingService(bookingRepo, profileRepo, userRepo, notificationSvc, metricsSvc, validate, logr)
	receiptSvc := service.NewReceiptService(bookingRepo, profileRepo, userRepo, receiptStore, signer, logr)
	exportSvc := service.NewExportService(bookingRepo, userRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc, receiptSvc, exportSvc)
	fileHandler := handler.NewFileHandler(receiptSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notificationSvc.Start(rootCtx)
	defer notificationSvc.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	profiles := api.Group("/teacher-profiles")
	{
		profiles.GET("", profileHandler.List)
		profiles.GET("/:id", middleware.OptionalJWT(authSvc), profileHandler.Get)
		profiles.PUT("/:id", middleware.JWT(authSvc), middleware.RBAC("ADMIN", "SELF"), profileHandler.Upsert)
		profiles.GET("/:id/bookings/export", middleware.JWT(authSvc), middleware.RBAC("ADMIN", "SELF"), bookingHandler.ExportCSV)
	}

	bookings := api.Group("/bookings")
	{
		bookings.POST("/quote", bookingHandler.Quote)

		authed := bookings.Group("", middleware.JWT(authSvc))
		authed.POST("", middleware.RequireRoles(models.RoleStudent), bookingHandler.Create)
		authed.GET("", bookingHandler.List)
		authed.GET("/:id", bookingHandler.Get)
		authed.POST("/:id/cancel", bookingHandler.Cancel)
		authed.GET("/:id/receipt", bookingHandler.Receipt)
	}

	api.GET("/files/receipts", fileHandler.DownloadReceipt)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
