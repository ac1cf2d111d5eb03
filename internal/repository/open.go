package repository

import (
	"context"
	"fmt"
	"log/slog"

	"notevault/internal/config"
	"notevault/internal/domain/repositories"
	"notevault/internal/repository/dynamo"
	"notevault/internal/repository/filestore"
	"notevault/internal/repository/memory"
	"notevault/internal/repository/postgres"
)

// OpenStore connects the key-value backend selected by cfg.StorageBackend.
// The caller owns the returned store and must Close it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.KeyValueStore, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory storage, data is lost on exit")
		return memory.NewStore(), nil

	case config.BackendFile:
		store, err := filestore.NewStore(cfg.DataDir, logger)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		logger.Info("file storage ready", "data_dir", cfg.DataDir)
		return store, nil

	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the %s backend", config.BackendPostgres)
		}
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("create connection pool: %w", err)
		}
		store := postgres.NewStore(pool, postgres.NewTableNames(cfg.TablePrefix), logger)
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info("database connected", "table_prefix", cfg.TablePrefix)
		return store, nil

	case config.BackendDynamoDB:
		client, err := dynamo.NewClient(ctx, dynamo.Options{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("create dynamodb client: %w", err)
		}
		logger.Info("dynamodb storage ready", "table", cfg.DynamoDBTable, "region", cfg.AWSRegion)
		return dynamo.NewStore(client, cfg.DynamoDBTable, logger), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
