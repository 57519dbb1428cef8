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

	"staffhub/internal/api"
	"staffhub/internal/config"
	"staffhub/internal/identity"
	"staffhub/internal/media"
	"staffhub/internal/model"
	"staffhub/internal/repository"
	"staffhub/internal/service"
	"staffhub/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// Initialize logger
	logger.InitLogger(cfg.Server.Environment)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("application startup failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// 2. Fail fast on misconfiguration (absent or shared secrets, etc.)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize Infrastructure
	db, err := initDB(cfg.MySQL)
	if err != nil {
		return err
	}

	uploader, err := media.NewS3Uploader(ctx, cfg.Media)
	if err != nil {
		return err
	}

	// 4. Initialize Repositories & Services
	employeeRepo := repository.NewEmployeeRepository(db)
	employeeSvc := service.NewEmployeeService(employeeRepo, uploader)

	provider := identity.NewStaticProvider(cfg.Auth.Username, cfg.Auth.Password)
	authSvc := service.NewAuthService(
		provider,
		[]byte(cfg.Auth.AccessSecret),
		[]byte(cfg.Auth.RefreshSecret),
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// 5. Setup HTTP Server
	devMode := cfg.Server.Environment != "prod"
	r := api.RegisterRoutes(
		api.NewEmployeeHandler(employeeSvc, devMode),
		api.NewAuthHandler(authSvc),
		[]byte(cfg.Auth.AccessSecret),
		cfg.CORS.AllowedOrigin,
	)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: r,
	}

	// 6. Start Server
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen failed", zap.Error(err))
		}
	}()

	// 7. Graceful Shutdown Signal Wait
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited properly")
	return nil
}

// -- Infrastructure Initializers --

func initDB(cfg config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		// Map unique-index violations to gorm.ErrDuplicatedKey so the
		// repository can translate them to conflicts.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	// Simple auto-migrate for dev convenience
	if err := db.AutoMigrate(&model.Employee{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
