package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"estate_portal_backend/internal/adapters/storage"
	"estate_portal_backend/internal/admin"
	"estate_portal_backend/internal/auth"
	apphttp "estate_portal_backend/internal/http"
	"estate_portal_backend/internal/http/router"
	"estate_portal_backend/internal/properties"
	"estate_portal_backend/migrations"
	"estate_portal_backend/platform/config"
	"estate_portal_backend/platform/db"
	"estate_portal_backend/platform/logger"
	"estate_portal_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	redisClient, closeRedis := initRedis(ctx, cfg, log)
	if closeRedis != nil {
		defer closeRedis()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for property image uploads (MinIO)
	var storageSvc storage.StorageService
	if cfg.IsMinIOEnabled() {
		svc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		storageSvc = svc

		bucket := cfg.GetMinioBucketPropertyImages()
		if err := withRetry(ctx, log, "ensure property-images bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucketExists(ctx, bucket)
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		log.Info("storage service initialized", "propertyImagesBucket", bucket)
	} else {
		log.Warn("MINIO_ENDPOINT not configured; image uploads disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, val, log)
	propertiesModule := properties.NewModule(pool, storageSvc, cfg.GetMinioBucketPropertyImages(), redisClient, val, log)
	adminModule := admin.NewModule(pool, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			authModule,
			propertiesModule,
			adminModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initRedis connects the likes cache backend. Caching is optional; a broken
// or absent Redis only costs extra database reads.
func initRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*redis.Client, func()) {
	if cfg.GetRedisAddr() == "" {
		log.Warn("REDIS_ADDR not configured; likes cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr()})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable; likes cache disabled", "error", err)
		_ = client.Close()
		return nil, nil
	}

	log.Info("redis connection established", "addr", cfg.GetRedisAddr())
	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
