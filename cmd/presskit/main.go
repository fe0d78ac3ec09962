// Package main is the entry point for the PressKit API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"presskit/internal/auth"
	"presskit/internal/cache"
	"presskit/internal/config"
	"presskit/internal/database"
	"presskit/internal/handlers"
	"presskit/internal/router"
	"presskit/internal/storage"
	"presskit/internal/store"
)

func main() {
	// Structured logger — text handler, debug level in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis — optional; public lookups fall back to the
	// database when the cache is unavailable.
	var contentCache *cache.ContentCache
	redisClient, err := cache.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Warn("redis not available — projection cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		contentCache = cache.NewContentCache(redisClient, cache.DefaultTTL)
	}

	// Connect to S3-compatible object storage (optional — the app works
	// without it; media uploads answer 503).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3BucketPublic,
			"private_bucket", cfg.S3BucketPrivate,
		)
	} else {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	sectionStore := store.NewSectionStore(db)
	pageStore := store.NewPageStore(db)
	postStore := store.NewPostStore(db)
	blockStore := store.NewBlockStore(db)
	mediaStore := store.NewMediaStore(db)

	// Token issuer for the bearer-token API.
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// Create handler groups with their dependencies.
	h := router.Handlers{
		Auth:     handlers.NewAuth(issuer, userStore),
		Sections: handlers.NewSections(sectionStore, contentCache),
		Pages:    handlers.NewPages(pageStore, sectionStore, blockStore, contentCache),
		Posts:    handlers.NewPosts(postStore, contentCache),
		Blocks:   handlers.NewBlocks(blockStore, contentCache),
		Media:    handlers.NewMedia(mediaStore, storageClient),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(issuer, cfg.CORSOrigins, h)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// media uploads to object storage.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
