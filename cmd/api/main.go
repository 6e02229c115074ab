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

	_ "codeswitch-review/docs" // swag-generated API docs
	"codeswitch-review/internal/config"
	"codeswitch-review/internal/database"
	"codeswitch-review/internal/greeting"
	"codeswitch-review/internal/handlers"
	"codeswitch-review/internal/janitor"
	"codeswitch-review/internal/logger"
	"codeswitch-review/internal/middleware"
	"codeswitch-review/internal/service"
	"codeswitch-review/internal/session"
	"codeswitch-review/internal/store"
	"codeswitch-review/internal/vault"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Code-Switched Text Review API
// @version 1.0
// @description Backend API for the code-switched text review pipeline: review queue, history, analytics and bulk ingestion over two item pools

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a session token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	// Resolve secrets from Vault when enabled, env otherwise
	if cfg.Vault.Enabled {
		if err := loadVaultSecrets(cfg); err != nil {
			slog.Error("Failed to load secrets from Vault", "error", err)
			os.Exit(1)
		}
		slog.Info("Secrets loaded from Vault", "vault_addr", cfg.Vault.Address)
	}
	if cfg.Database.Password == "" {
		slog.Error("No database password available from env or Vault")
		os.Exit(1)
	}
	if cfg.Speech.Enabled && cfg.Speech.APIKey == "" {
		slog.Error("Speech greeting is enabled but no API key is available from env or Vault")
		os.Exit(1)
	}

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	migrator := database.NewMigrationExecutor(db.DB)
	if err := migrator.RunMigrations("./migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Initialize store and services
	itemStore := store.NewPostgresStore(db.DB)
	queueService := service.NewQueueService(itemStore)
	progressService := service.NewProgressService(itemStore)
	historyService := service.NewHistoryService(itemStore)
	analyticsService := service.NewAnalyticsService(itemStore)
	ingestService := service.NewIngestService(itemStore)
	sessionService := session.NewService(&cfg.Session)

	var greeter greeting.Greeter
	if cfg.Speech.Enabled {
		greeter = greeting.NewService(&cfg.Speech)
		slog.Info("Speech greeting enabled", "voice", cfg.Speech.Voice)
	} else {
		slog.Warn("Speech greeting is disabled - sessions start silently")
	}

	// Periodic cleanup of greeting audio and ingest snapshots
	cleaner := janitor.New(&cfg.Janitor, cfg.Speech.OutputDir, cfg.Ingest.SnapshotDir)
	cleaner.Start()
	defer cleaner.Stop()

	// Initialize middleware
	sessionMw := middleware.NewSessionMiddleware(sessionService)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionService, progressService, greeter)
	queueHandler := handlers.NewQueueHandler(queueService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, progressService)
	ingestHandler := handlers.NewIngestHandler(ingestService, &cfg.Ingest)
	healthHandler := handlers.NewHealthHandler(db)

	// Setup router
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /api/v1/session", sessionHandler.StartSession)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Pool routes (session token required)
	mux.Handle("GET /api/v1/pools/{pool}/queue/next",
		sessionMw.Require(http.HandlerFunc(queueHandler.NextPending)))
	mux.Handle("POST /api/v1/pools/{pool}/queue/{id}/decision",
		sessionMw.Require(http.HandlerFunc(queueHandler.SubmitDecision)))
	mux.Handle("GET /api/v1/pools/{pool}/items/{id}",
		sessionMw.Require(http.HandlerFunc(queueHandler.GetItem)))
	mux.Handle("GET /api/v1/pools/{pool}/progress",
		sessionMw.Require(http.HandlerFunc(analyticsHandler.GetProgress)))
	mux.Handle("GET /api/v1/pools/{pool}/history",
		sessionMw.Require(http.HandlerFunc(historyHandler.GetHistory)))
	mux.Handle("PUT /api/v1/pools/{pool}/history/{id}",
		sessionMw.Require(http.HandlerFunc(historyHandler.ReviseEntry)))
	mux.Handle("GET /api/v1/pools/{pool}/analytics",
		sessionMw.Require(http.HandlerFunc(analyticsHandler.Aggregate)))
	mux.Handle("POST /api/v1/pools/{pool}/ingest/validate",
		sessionMw.Require(http.HandlerFunc(ingestHandler.ValidateUpload)))
	mux.Handle("POST /api/v1/pools/{pool}/ingest",
		sessionMw.Require(http.HandlerFunc(ingestHandler.Ingest)))

	// Middleware chain
	handler := middleware.LoggingMiddleware(
		corsMw.Handler(
			rateLimiter.Limit(mux),
		),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// loadVaultSecrets overrides env-provided secrets with Vault values
func loadVaultSecrets(cfg *config.Config) error {
	client, err := vault.NewClient(&vault.Config{
		Address: cfg.Vault.Address,
		Token:   cfg.Vault.Token,
		KVMount: cfg.Vault.KVMount,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.HealthCheck(ctx); err != nil {
		return err
	}

	secrets, err := client.ReadSecrets(ctx, cfg.Vault.SecretPath)
	if err != nil {
		return err
	}

	if secrets.DBPassword != "" {
		cfg.Database.Password = secrets.DBPassword
	}
	if secrets.SpeechAPIKey != "" {
		cfg.Speech.APIKey = secrets.SpeechAPIKey
	}

	return nil
}
