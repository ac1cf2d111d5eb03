package kv

import (
	"log/slog"
	"time"

	"notevault/internal/domain/repositories"
)

// RepositoryConfig holds configuration for key-value backed repositories
type RepositoryConfig struct {
	Store     repositories.KeyValueStore
	TxManager *TransactionManager
	Keys      *CollectionKeys
	Logger    *slog.Logger
	Clock     func() time.Time // nil = time.Now
}

// CollectionKeys holds the fixed keys each collection is stored under
type CollectionKeys struct {
	Files   string
	Folders string
}

// NewCollectionKeys creates collection keys with the given prefix
func NewCollectionKeys(prefix string) *CollectionKeys {
	if prefix == "" {
		prefix = "notevault"
	}
	return &CollectionKeys{
		Files:   prefix + ".files",
		Folders: prefix + ".folders",
	}
}

func (c *RepositoryConfig) clock() func() time.Time {
	if c.Clock != nil {
		return c.Clock
	}
	return time.Now
}

func (c *RepositoryConfig) keys() *CollectionKeys {
	if c.Keys != nil {
		return c.Keys
	}
	return NewCollectionKeys("")
}

// nextUpdatedAt returns now, or one nanosecond past prev when the clock has
// not advanced, so updated_at strictly increases on every update.
func nextUpdatedAt(prev, now time.Time) time.Time {
	now = now.UTC()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}
