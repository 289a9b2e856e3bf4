package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/leandrovr13/onfly/config"
	"github.com/leandrovr13/onfly/internal/api/handler"
	"github.com/leandrovr13/onfly/internal/api/router"
	"github.com/leandrovr13/onfly/internal/jobs"
	"github.com/leandrovr13/onfly/internal/repository"
	"github.com/leandrovr13/onfly/internal/service"
	"github.com/leandrovr13/onfly/pkg/database"
	"github.com/leandrovr13/onfly/pkg/jwt"
	applogger "github.com/leandrovr13/onfly/pkg/logger"
	"github.com/leandrovr13/onfly/pkg/observability"
	"github.com/leandrovr13/onfly/pkg/redis"
)

func main() {
	// 1. config
	cfg, err := config.Load(os.Getenv("ONFLY_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting travel order service",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. telemetry
	shutdownTelemetry, err := observability.Init(ctx, &cfg.Telemetry, logger)
	if err != nil {
		logger.Fatal("failed to init telemetry", zap.Error(err))
	}

	// 4. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	logger.Info("database connected")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// 5. redis, optional: without it tokens cannot be revoked and login is not throttled
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, token blacklist and rate limiting disabled", zap.Error(err))
			rdb = nil
		}
	}

	// 6. wiring: repository → service → handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	if cfg.Seed.AdminEmail != "" {
		if err := svc.User.EnsureAdmin(ctx, &cfg.Seed); err != nil {
			logger.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	// 7. background jobs
	jobManager := jobs.NewJobManager(&cfg.Jobs, svc.Notification, logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Fatal("failed to start jobs", zap.Error(err))
	}

	// 8. HTTP server
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 9. graceful shutdown
	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	jobManager.StopAll()

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown failed", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("database close failed", zap.Error(err))
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close failed", zap.Error(err))
		}
	}

	logger.Info("server stopped")
}
