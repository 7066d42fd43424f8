package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/mikededo/hubbl-sub002/docs"
	"github.com/mikededo/hubbl-sub002/internal/booking"
	"github.com/mikededo/hubbl-sub002/internal/cache"
	"github.com/mikededo/hubbl-sub002/internal/config"
	"github.com/mikededo/hubbl-sub002/internal/db"
	"github.com/mikededo/hubbl-sub002/internal/logger"
	"github.com/mikededo/hubbl-sub002/internal/server"
	"github.com/mikededo/hubbl-sub002/internal/user"
	"github.com/mikededo/hubbl-sub002/internal/zone"
)

// @title Hubbl Booking API
// @version 1.0
// @description API for gym zone appointment booking and availability.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting Hubbl booking application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	availabilityCache := cache.NewAvailabilityCache(redisClient, cfg.AvailabilityTTL)

	userRepo := user.NewRepository(database)
	zoneRepo := zone.NewRepository(database)
	bookingRepo := booking.NewRepository(database)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	zoneService := zone.NewService(zoneRepo)
	bookingService := booking.NewService(
		bookingRepo,
		zoneRepo,
		booking.SystemClock(),
		availabilityCache,
		[]booking.Policy{
			booking.CovidPassportPolicy(userRepo, zoneRepo),
		},
		func(role string) bool { return role == user.RoleOwner },
	)

	srv := server.New(
		cfg,
		user.NewHandler(userService),
		zone.NewHandler(zoneService),
		booking.NewHandler(bookingService),
	)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
