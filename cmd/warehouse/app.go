// cmd/warehouse/app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ammerola/warehouse/internal/adapters/auth"
	"github.com/ammerola/warehouse/internal/adapters/db"
	"github.com/ammerola/warehouse/internal/adapters/file"
	redis_a "github.com/ammerola/warehouse/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse/internal/adapters/storage"
	"github.com/ammerola/warehouse/internal/core/domain"
	"github.com/ammerola/warehouse/internal/core/ports"
	"github.com/ammerola/warehouse/internal/core/services"
	"github.com/ammerola/warehouse/internal/handlers"
	"github.com/ammerola/warehouse/internal/pkg/config"
	"github.com/ammerola/warehouse/internal/pkg/logger"
)

// dependencies holds everything a command needs
type dependencies struct {
	cfg      *config.Config
	logger   *slog.Logger
	service  *services.InventoryService
	opener   *file.Opener
	health   *handlers.HealthHandler
	cleanups []func()
}

func (d *dependencies) cleanup() {
	for i := len(d.cleanups) - 1; i >= 0; i-- {
		d.cleanups[i]()
	}
}

func initializeDependencies(ctx context.Context, logLevel string) (*dependencies, error) {
	bootstrap := logger.SetupLogger("warn", "text", "stderr")

	cfg, err := config.Load(bootstrap)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	slogger := logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat, cfg.App.LogOutput)

	deps := &dependencies{
		cfg:    cfg,
		logger: slogger,
		health: handlers.NewHealthHandler(reportedVersion(cfg), cfg.App.Environment, slogger),
	}

	local := storage.NewLocalStorage("", slogger)

	store, err := deps.sessionStore(ctx, local)
	if err != nil {
		deps.cleanup()
		return nil, err
	}

	verifier, err := auth.NewFromConfig(ctx, cfg, slogger)
	if err != nil {
		deps.cleanup()
		return nil, fmt.Errorf("failed to initialize credential gate: %w", err)
	}

	deps.service = services.NewInventoryService(store, verifier, slogger)
	deps.opener = file.NewOpener(local, s3Factory(cfg.AWS, slogger), slogger)

	slogger.DebugContext(ctx, "dependencies initialized",
		slog.String("store_backend", cfg.Store.Backend),
		slog.String("auth_source", cfg.Auth.Source))

	return deps, nil
}

// reportedVersion is APP_VERSION when set, else the version baked in at build time
func reportedVersion(cfg *config.Config) string {
	if cfg.App.Version != "" {
		return cfg.App.Version
	}
	return Version
}

// sessionStore opens the store that login loads and logout persists
func (d *dependencies) sessionStore(ctx context.Context, local storage.BlobStorage) (ports.InventoryStore, error) {
	cfg := d.cfg

	switch cfg.Store.Backend {
	case config.StoreBackendSQL:
		d.logger.DebugContext(ctx, "opening database",
			slog.String("driver", cfg.Database.Driver))

		database, err := db.NewDatabase(ctx, &db.Config{
			Driver:             cfg.Database.Driver,
			Path:               cfg.Database.Path,
			Host:               cfg.Database.Host,
			Port:               cfg.Database.Port,
			User:               cfg.Database.User,
			Password:           cfg.Database.Password,
			Database:           cfg.Database.Name,
			SSLMode:            cfg.Database.SSLMode,
			MaxConnections:     cfg.Database.MaxConnections,
			MaxConnLifetime:    cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
			ConnectTimeout:     cfg.Database.ConnectTimeout,
			BusyTimeout:        cfg.Database.BusyTimeout,
			EnableQueryLogging: cfg.Database.EnableQueryLogging,
		}, d.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		d.cleanups = append(d.cleanups, database.Close)
		d.health.AddCheck("session_store", func(ctx context.Context) (map[string]interface{}, error) {
			if err := database.Ping(ctx); err != nil {
				return nil, err
			}
			return database.Health(ctx), nil
		})

		return db.NewInventoryStore(database, d.logger), nil

	case config.StoreBackendRedis:
		d.logger.DebugContext(ctx, "connecting to Redis",
			slog.String("address", cfg.GetRedisAddress()))

		client := redis_a.NewClient(cfg.Redis)
		d.cleanups = append(d.cleanups, func() { client.Close() })

		store := redis_a.NewInventoryStore(client, cfg.Redis.KeyPrefix, d.logger)
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		d.health.AddCheck("session_store", func(ctx context.Context) (map[string]interface{}, error) {
			return map[string]interface{}{
				"backend": "redis",
				"address": cfg.GetRedisAddress(),
				"key":     store.Key(),
			}, store.Ping(ctx)
		})
		return store, nil

	case config.StoreBackendFile:
		store := file.NewSnapshotStore(local, cfg.Store.SnapshotPath, d.logger)
		d.health.AddCheck("session_store", func(ctx context.Context) (map[string]interface{}, error) {
			details := map[string]interface{}{
				"backend": "file",
				"path":    cfg.Store.SnapshotPath,
			}
			inv, err := store.Load(ctx)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				details["products"] = 0
				return details, nil
			case err != nil:
				return details, err
			}
			details["products"] = inv.Len()
			return details, nil
		})
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}

// s3Factory builds the S3 client on first use and shares it across buckets
func s3Factory(cfg config.AWSConfig, logger *slog.Logger) file.S3Factory {
	var (
		once    sync.Once
		client  storage.S3API
		initErr error
	)

	return func(ctx context.Context, bucket string) (storage.BlobStorage, error) {
		once.Do(func() {
			client, initErr = storage.NewS3Client(ctx, cfg)
		})
		if initErr != nil {
			return nil, initErr
		}
		return storage.NewS3Storage(client, bucket, logger), nil
	}
}
