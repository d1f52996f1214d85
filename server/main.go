package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zombieland/api/routes"
	"zombieland/internal/activities"
	"zombieland/internal/bookings"
	"zombieland/internal/notifications"
	"zombieland/internal/periods"
	"zombieland/internal/shared/config"
	"zombieland/internal/shared/database"
	"zombieland/internal/shared/middleware"
	"zombieland/internal/users"
	"zombieland/pkg/cache"
	"zombieland/pkg/logger"
	"zombieland/pkg/ratelimit"
	"zombieland/pkg/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		logger.GetDefault().Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	appLogger := logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)
	appLogger.Info("starting zombieland backend",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("commit", GitCommit),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		appLogger.Warn("tracing disabled", slog.Any("error", err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db.PostgreSQL,
		&users.User{},
		&periods.Period{},
		&activities.Category{},
		&activities.Activity{},
		&activities.Multimedia{},
		&bookings.Reservation{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			AuthRequests:    cfg.RateLimit.AuthRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			UserRequests:    cfg.RateLimit.UserRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	publisher := startNotifications(ctx, cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Warn("closing reservation publisher", slog.Any("error", err))
		}
	}()

	appRouter := routes.NewRouter(cfg, db, cache.NewService(db.Redis), publisher)
	engine := setupEngine(cfg, appRouter, rateLimiter)

	jobs := bookings.NewJobProcessor(appRouter.BookingService(), cfg.Booking.CompletionInterval)
	jobs.Start(ctx)
	defer jobs.Stop()

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
			slog.Bool("kafka", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
	return nil
}

// startNotifications wires the Kafka publisher and the email consumer.
// With Kafka disabled or unreachable, events are dropped.
func startNotifications(ctx context.Context, cfg *config.Config) notifications.Publisher {
	appLogger := logger.GetDefault()
	if !cfg.Kafka.Enabled {
		appLogger.Info("Kafka disabled, reservation emails will not be sent")
		return notifications.NewNoopPublisher()
	}

	publisher, err := notifications.NewKafkaPublisher(cfg.Kafka)
	if err != nil {
		appLogger.Error("Failed to initialize Kafka publisher", slog.Any("error", err))
		return notifications.NewNoopPublisher()
	}

	consumer, err := notifications.NewConsumer(cfg.Kafka, notifications.NewEmailService(cfg.Email))
	if err != nil {
		appLogger.Error("Failed to initialize notification consumer", slog.Any("error", err))
		return publisher
	}
	go func() {
		consumer.Run(ctx)
		if err := consumer.Close(); err != nil {
			appLogger.Warn("closing notification consumer", slog.Any("error", err))
		}
	}()

	return publisher
}

func setupEngine(cfg *config.Config, appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.Recovery(), telemetry.Middleware(), middleware.RequestLogger())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter.SetupRoutes(engine)
	return engine
}
