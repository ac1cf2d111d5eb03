package filestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"notevault/internal/domain/repositories"
)

// Store implements repositories.KeyValueStore with one JSON file per key
// under a root directory. Writes go to a temp file that is renamed into
// place, so a crash never leaves a half-written collection behind.
type Store struct {
	root   string
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewStore creates the root directory if needed
func NewStore(root string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{root: root, logger: logger}, nil
}

var _ repositories.KeyValueStore = (*Store)(nil)

// Get reads the file for key
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set replaces the file for key
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetMany(ctx, map[string][]byte{key: value})
}

// SetMany stages every value in a temp file before renaming any of them,
// so an encoding or disk-full failure leaves all keys untouched.
func (s *Store) SetMany(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	temps := make(map[string]string, len(keys))
	defer func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}()

	for _, key := range keys {
		tmp, err := s.writeTemp(values[key])
		if err != nil {
			return fmt.Errorf("write %s: %w", key, err)
		}
		temps[key] = tmp
	}

	for _, key := range keys {
		if err := os.Rename(temps[key], s.pathFor(key)); err != nil {
			return fmt.Errorf("replace %s: %w", key, err)
		}
		delete(temps, key)
	}

	s.logger.Debug("filestore write", "dir", s.root, "keys", keys)
	return nil
}

// Delete removes the file for key
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close is a no-op
func (s *Store) Close() error { return nil }

func (s *Store) pathFor(key string) string {
	return filepath.Join(s.root, url.PathEscape(key)+".json")
}

func (s *Store) writeTemp(data []byte) (string, error) {
	f, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
