package kv

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"notevault/internal/domain"
	"notevault/internal/domain/repositories"
)

// txContextKey is the type for transaction context keys
type txContextKey struct{}

// txState stages collection writes until commit
type txState struct {
	owner  *TransactionManager
	staged map[string][]byte
}

// TransactionManager implements repositories.TransactionManager over a
// KeyValueStore. Writes made inside ExecTx are staged and flushed with one
// SetMany on success; on failure they are dropped. Transactions are
// serialized, so concurrent read-modify-write cycles cannot lose updates.
type TransactionManager struct {
	store  repositories.KeyValueStore
	mu     sync.Mutex
	logger *slog.Logger
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(store repositories.KeyValueStore, logger *slog.Logger) *TransactionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionManager{store: store, logger: logger}
}

var _ repositories.TransactionManager = (*TransactionManager)(nil)

// ExecTx executes fn within a transaction. A nested call joins the
// enclosing transaction.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if state := tm.stateFrom(ctx); state != nil {
		return fn(ctx)
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	state := &txState{owner: tm, staged: make(map[string][]byte)}
	txCtx := context.WithValue(ctx, txContextKey{}, state)

	if err := fn(txCtx); err != nil {
		if len(state.staged) > 0 {
			tm.logger.Debug("transaction rolled back",
				"keys", stagedKeys(state.staged),
				"error", err,
			)
		}
		return err
	}

	if len(state.staged) == 0 {
		return nil
	}

	if err := tm.store.SetMany(ctx, state.staged); err != nil {
		return &domain.StorageError{
			Code: domain.CodeSaveError,
			Key:  strings.Join(stagedKeys(state.staged), ","),
			Err:  err,
		}
	}
	return nil
}

// stateFrom returns the transaction owned by tm in ctx, if any
func (tm *TransactionManager) stateFrom(ctx context.Context) *txState {
	state, ok := ctx.Value(txContextKey{}).(*txState)
	if !ok || state.owner != tm {
		return nil
	}
	return state
}

func stagedKeys(staged map[string][]byte) []string {
	keys := make([]string, 0, len(staged))
	for key := range staged {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
