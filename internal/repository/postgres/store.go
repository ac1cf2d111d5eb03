package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"notevault/internal/domain/repositories"
)

// Store implements repositories.KeyValueStore with one row per key
type Store struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewStore creates a store over pool
func NewStore(pool *pgxpool.Pool, tables *TableNames, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, tables: tables, logger: logger}
}

var _ repositories.KeyValueStore = (*Store)(nil)

// EnsureSchema creates the kv table when it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, s.tables.KV)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", s.tables.KV, err)
	}
	return nil
}

// Get returns the value stored under key
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, s.tables.KV)

	var value []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, false, nil
		}
		if IsPgUndefinedTableError(err) {
			return nil, false, fmt.Errorf("table %s does not exist: %w", s.tables.KV, err)
		}
		return nil, false, fmt.Errorf("get key %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the value stored under key
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.pool.Exec(ctx, s.upsertQuery(), key, value); err != nil {
		return fmt.Errorf("set key %s: %w", key, err)
	}
	return nil
}

// SetMany upserts every key inside one database transaction
func (s *Store) SetMany(ctx context.Context, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			s.logger.Warn("rollback failed", "error", err)
		}
	}()

	// Fixed key order keeps concurrent writers from deadlocking
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	batch := &pgx.Batch{}
	query := s.upsertQuery()
	for _, key := range keys {
		batch.Queue(query, key, values[key])
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if IsPgSerializationError(err) {
			return fmt.Errorf("set keys %v: concurrent write: %w", keys, err)
		}
		return fmt.Errorf("set keys %v: %w", keys, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Delete removes key
func (s *Store) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, s.tables.KV)
	if _, err := s.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the connection pool
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) upsertQuery() string {
	return fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, s.tables.KV)
}
