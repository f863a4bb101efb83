package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sporting-life/enrollment-api/internal/repository"
	"github.com/sporting-life/enrollment-api/internal/router"
	"github.com/sporting-life/enrollment-api/internal/service"
	"github.com/sporting-life/enrollment-api/pkg/cache"
	"github.com/sporting-life/enrollment-api/pkg/config"
	"github.com/sporting-life/enrollment-api/pkg/database"
	"github.com/sporting-life/enrollment-api/pkg/logger"
	"github.com/sporting-life/enrollment-api/pkg/payments"
)

// @title Sporting Life Enrollment API
// @version 1.0.0
// @description Course enrollment backend for the Sporting Life summer camp
// @BasePath /
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
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	// The catalog cache is best-effort: a missing Redis only disables it.
	var cacheSvc *service.CacheService
	if cfg.Catalog.CacheEnabled {
		redisClient, redisErr := cache.NewRedis(cfg.Redis)
		if redisErr != nil {
			logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", redisErr)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})
	userSvc := service.NewUserService(userRepo, validate, logr, cfg.Catalog.InstructorSpotlight)
	classSvc := service.NewClassService(classRepo, cacheSvc, validate, logr, cfg.Catalog.TopClassCount)
	selectionSvc := service.NewSelectionService(selectionRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, validate, logr)

	gateway := payments.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency)
	paymentSvc := service.NewPaymentService(paymentRepo, gateway, validate, logr)

	engine := router.New(router.Deps{
		Config:      cfg,
		Logger:      logr,
		Auth:        authSvc,
		Users:       userSvc,
		Classes:     classSvc,
		Selections:  selectionSvc,
		Enrollments: enrollmentSvc,
		Payments:    paymentSvc,
		Metrics:     metricsSvc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
		return
	}
	logr.Sugar().Infow("server stopped")
}
