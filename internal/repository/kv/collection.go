package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"notevault/internal/domain"
	"notevault/internal/domain/repositories"
)

// Collection persists a slice of T as one JSON array under a fixed key.
// Every mutation is a full read-modify-write of the array.
type Collection[T any] struct {
	key   string
	store repositories.KeyValueStore
	tx    *TransactionManager
}

// NewCollection binds a collection to key
func NewCollection[T any](key string, store repositories.KeyValueStore, tx *TransactionManager) *Collection[T] {
	return &Collection[T]{key: key, store: store, tx: tx}
}

// Key returns the storage key
func (c *Collection[T]) Key() string { return c.key }

// GetAll deserializes the stored array. A missing key yields an empty
// slice; unreadable or malformed data is a FETCH_ERROR.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	data, ok, err := c.read(ctx)
	if err != nil {
		return nil, &domain.StorageError{Code: domain.CodeFetchError, Key: c.key, Err: err}
	}
	if !ok || len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &domain.StorageError{
			Code: domain.CodeFetchError,
			Key:  c.key,
			Err:  fmt.Errorf("decode collection: %w", err),
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveAll serializes items and overwrites the collection with one write.
// Inside a transaction the write is staged until commit.
func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return &domain.StorageError{
			Code: domain.CodeSaveError,
			Key:  c.key,
			Err:  fmt.Errorf("encode collection: %w", err),
		}
	}

	if state := c.tx.stateFrom(ctx); state != nil {
		state.staged[c.key] = data
		return nil
	}

	if err := c.store.Set(ctx, c.key, data); err != nil {
		return &domain.StorageError{Code: domain.CodeSaveError, Key: c.key, Err: err}
	}
	return nil
}

// Mutate runs a read-modify-write cycle inside a transaction. fn receives
// the current items and returns the items to save; an error aborts the
// cycle without writing.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return c.tx.ExecTx(ctx, func(txCtx context.Context) error {
		items, err := c.GetAll(txCtx)
		if err != nil {
			return err
		}
		next, err := fn(items)
		if err != nil {
			return err
		}
		return c.SaveAll(txCtx, next)
	})
}

// read prefers writes staged by the enclosing transaction
func (c *Collection[T]) read(ctx context.Context) ([]byte, bool, error) {
	if state := c.tx.stateFrom(ctx); state != nil {
		if data, ok := state.staged[c.key]; ok {
			return data, true, nil
		}
	}
	return c.store.Get(ctx, c.key)
}
