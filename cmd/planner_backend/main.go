package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/crew_planner/internal/core/ledger"
	portsrepo "github.com/SscSPs/crew_planner/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/crew_planner/internal/core/ports/services"
	"github.com/SscSPs/crew_planner/internal/core/services"
	"github.com/SscSPs/crew_planner/internal/handlers"
	"github.com/SscSPs/crew_planner/internal/middleware"
	"github.com/SscSPs/crew_planner/internal/platform/config"
	"github.com/SscSPs/crew_planner/internal/repositories/cache/rediscache"
	"github.com/SscSPs/crew_planner/internal/repositories/database/pgsql"
	"github.com/SscSPs/crew_planner/internal/utils"
	"github.com/SscSPs/crew_planner/pkg/database"
	natstransport "github.com/SscSPs/crew_planner/pkg/transport/nats"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Crew Planner API
// @version 1.0
// @description Crew scheduling ledger with capacity placeholders, approvals and undo/redo planner sessions.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	healthChecks := map[string]handlers.HealthChecker{"postgres": dbPool}

	// The settings store stays a nil interface when Redis is not configured.
	var settingsStore portsrepo.PlannerSettingsStore
	if addr := cfg.RedisAddr(); addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		store := rediscache.NewSettingsStore(redisClient)
		settingsStore = store
		healthChecks["redis"] = store
		logger.Info("Redis settings store configured", slog.String("addr", addr))
	}

	var events portssvc.EventPublisher
	if cfg.NatsURL != "" {
		publisher, err := natstransport.NewEventPublisher(cfg.NatsURL, cfg.NatsSubjectPrefix)
		if err != nil {
			logger.Error("Failed to connect to NATS", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer publisher.Close()
		events = publisher
		logger.Info("NATS event publisher configured", slog.String("subject_prefix", cfg.NatsSubjectPrefix))
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := ledger.NewRegistry(cfg.SessionTTL)
	go registry.Run(ctx, cfg.SessionSweepInterval)

	repos := pgsql.NewRepositoryProvider(dbPool, settingsStore)
	serviceContainer := services.NewServiceContainer(cfg, repos, events, registry)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", middleware.OrganizationHeader},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDependencies{
		Posthog:      posthogClient,
		RateLimiter:  rateLimiter,
		HealthChecks: healthChecks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// runMigrations applies every pending "up" migration through a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.MigrationsDir, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
